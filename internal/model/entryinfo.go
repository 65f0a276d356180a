package model

import (
	"io/fs"
	"time"

	"github.com/spf13/afero"
)

//PathInfo holds info about one dir entry in a file tree.
type PathInfo struct {
	Exists   bool
	FullPath string
	IsDir    bool
	Size     int64 // in bytes
	ModTime  time.Time
}

//IsFile reports whether the entry exists and is not a directory.
func (pi PathInfo) IsFile() bool {
	return pi.Exists && !pi.IsDir
}

//FromFileInfo converts the result of a successful stat.
func FromFileInfo(path string, info fs.FileInfo) PathInfo {
	return PathInfo{
		Exists:   true,
		FullPath: path,
		IsDir:    info.IsDir(),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}
}

//Probe stats the path once. A missing or unreadable entry is not an error:
//it is reported as not existing (and so neither a file nor a directory).
func Probe(fsys afero.Fs, path string) PathInfo {
	info, err := fsys.Stat(path)
	if err != nil {
		return PathInfo{FullPath: path}
	}
	return FromFileInfo(path, info)
}

//EntryInfo holds the result of the last evaluation of one dir entry against the job's filters.
type EntryInfo struct {
	PathInfo
	Included bool
	Rule     string // description of the deciding rule, empty if no rule decided
	PassID   uint64 // scan pass in which the entry was evaluated last time
}

//SetPathInfo is a convenience setter for (d *dirScanner) walk.
func (e *EntryInfo) SetPathInfo(pi PathInfo) {
	e.PathInfo = pi
}

//SetDecision records the outcome of the filters.
func (e *EntryInfo) SetDecision(included bool, rule string, passID uint64) {
	e.Included, e.Rule, e.PassID = included, rule, passID
}
