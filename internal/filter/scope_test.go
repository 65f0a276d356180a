package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dsync/internal/model"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Scope
	}{
		{name: "files", input: "File", want: FilesOnly},
		{name: "dirs", input: "Dir", want: DirectoriesOnly},
		{name: "both", input: "DirFile", want: Either},
		{name: "case insensitive", input: " dir ", want: DirectoriesOnly},
		{name: "unknown name", input: "Folders", want: Either},
		{name: "label is not a name", input: "Files", want: Either},
		{name: "empty", input: "", want: Either},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseScope(tt.input))
		})
	}
}

func TestScope_NameAndLabel(t *testing.T) {
	requires := require.New(t)
	requires.Equal("File", FilesOnly.Name())
	requires.Equal("Files", FilesOnly.Label())
	requires.Equal("Dir", DirectoriesOnly.Name())
	requires.Equal("Directories", DirectoriesOnly.Label())
	requires.Equal("DirFile", Either.Name())
	requires.Equal("Directories and files", Either.String())

	for _, s := range []Scope{Either, FilesOnly, DirectoriesOnly} {
		requires.Equal(s, ParseScope(s.Name()))
	}
}

func TestScope_Allows(t *testing.T) {
	file := model.PathInfo{Exists: true}
	dir := model.PathInfo{Exists: true, IsDir: true}
	missing := model.PathInfo{}

	tests := []struct {
		name  string
		scope Scope
		info  model.PathInfo
		want  bool
	}{
		{name: "either file", scope: Either, info: file, want: true},
		{name: "either dir", scope: Either, info: dir, want: true},
		{name: "either missing", scope: Either, info: missing, want: true},
		{name: "files file", scope: FilesOnly, info: file, want: true},
		{name: "files dir", scope: FilesOnly, info: dir, want: false},
		{name: "files missing", scope: FilesOnly, info: missing, want: false},
		{name: "dirs dir", scope: DirectoriesOnly, info: dir, want: true},
		{name: "dirs file", scope: DirectoriesOnly, info: file, want: false},
		{name: "dirs missing", scope: DirectoriesOnly, info: missing, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.scope.Allows(tt.info))
		})
	}
}
