package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"dsync/internal/model"
)

//PatternFilter matches entries whose base name matches a glob (see filepath.Match).
type PatternFilter struct {
	glob   string
	scope  Scope
	prober Prober
}

func NewPattern(glob string, scope Scope, fsys afero.Fs) (*PatternFilter, error) {
	if strings.TrimSpace(glob) == "" {
		return nil, ErrEmptyPattern
	}
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", glob, err)
	}
	if !scope.valid() {
		scope = Either
	}
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &PatternFilter{glob: glob, scope: scope, prober: FsProber{Fs: fsys}}, nil
}

func (f *PatternFilter) Kind() Kind { return KindByPattern }

func (f *PatternFilter) Glob() string { return f.glob }

func (f *PatternFilter) Scope() Scope { return f.scope }

func (f *PatternFilter) Matches(path string) bool {
	return f.MatchesInfo(f.prober.Probe(path))
}

func (f *PatternFilter) MatchesInfo(info model.PathInfo) bool {
	if !info.Exists || !f.scope.Allows(info) {
		return false
	}
	ok, _ := filepath.Match(f.glob, filepath.Base(info.FullPath))
	return ok
}

func (f *PatternFilter) Describe() string {
	return fmt.Sprintf("%s named %s", f.scope.Label(), f.glob)
}

func (f *PatternFilter) String() string {
	return f.Describe()
}

func (f *PatternFilter) CompareTo(other Filter, byKind KindOrder) int {
	o, ok := other.(*PatternFilter)
	if !ok {
		return byKind(f.Kind(), other.Kind())
	}
	return strings.Compare(f.glob, o.glob)
}
