package filter

import (
	"strings"

	"dsync/internal/model"
)

//Scope restricts a filter to files, directories or both.
type Scope int

const (
	Either Scope = iota // the zero value, so an unspecified scope means "directories and files"
	FilesOnly
	DirectoriesOnly
)

var scopeNames = [...]struct{ name, label string }{
	Either:          {name: "DirFile", label: "Directories and files"},
	FilesOnly:       {name: "File", label: "Files"},
	DirectoriesOnly: {name: "Dir", label: "Directories"},
}

//ParseScope never fails: an unknown name resolves to Either, so that configuration files written by
//other versions of the tool still load. Names are matched case-insensitively.
func ParseScope(name string) Scope {
	name = strings.TrimSpace(name)
	for s, n := range scopeNames {
		if strings.EqualFold(n.name, name) {
			return Scope(s)
		}
	}
	return Either
}

//Name is the stable name used in configuration files.
func (s Scope) Name() string {
	if !s.valid() {
		return scopeNames[Either].name
	}
	return scopeNames[s].name
}

//Label is the display label used in descriptions.
func (s Scope) Label() string {
	if !s.valid() {
		return scopeNames[Either].label
	}
	return scopeNames[s].label
}

func (s Scope) String() string {
	return s.Label()
}

//Allows reports whether the probed entry is within the scope. A missing entry is neither a file nor a directory.
func (s Scope) Allows(info model.PathInfo) bool {
	return s == Either ||
		(info.Exists && info.IsDir && s == DirectoriesOnly) ||
		(info.IsFile() && s == FilesOnly)
}

func (s Scope) valid() bool {
	return s >= Either && s <= DirectoriesOnly
}
