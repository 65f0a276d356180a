// Package filter decides whether a filesystem entry takes part in a synchronization pass.
package filter

import (
	"errors"

	"github.com/spf13/afero"

	"dsync/internal/model"
)

var (
	ErrInvalidOperator = errors.New("invalid date operator")
	ErrInvalidUnit     = errors.New("invalid time unit")
	ErrNegativeOffset  = errors.New("time offset must not be negative")
	ErrZeroInstant     = errors.New("reference instant is not set")
	ErrNoCriterion     = errors.New("date criterion is not set")
	ErrEmptyPattern    = errors.New("pattern is empty")
)

//Kind identifies the type of filter.
type Kind int

const (
	KindByPattern Kind = iota + 1
	KindByDate
)

func (k Kind) String() string {
	switch k {
	case KindByPattern:
		return "pattern"
	case KindByDate:
		return "date"
	}
	return "unknown"
}

type Filter interface {
	Kind() Kind
	Matches(path string) bool
	MatchesInfo(info model.PathInfo) bool
	Describe() string
}

//KindOrder is a total order over filter kinds, used when two filters of different kinds are compared.
type KindOrder func(a, b Kind) int

//DefaultKindOrder orders kinds by their declaration order.
func DefaultKindOrder(a, b Kind) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

//Orderable filters know how to compare themselves with filters of their own kind.
type Orderable interface {
	Filter
	CompareTo(other Filter, byKind KindOrder) int
}

//Compare orders two filters. Filters that are not Orderable are ordered by kind only.
func Compare(a, b Filter, byKind KindOrder) int {
	if byKind == nil {
		byKind = DefaultKindOrder
	}
	if o, ok := a.(Orderable); ok {
		return o.CompareTo(b, byKind)
	}
	return byKind(a.Kind(), b.Kind())
}

//Prober answers the existence/type/modification time query for a path.
type Prober interface {
	Probe(path string) model.PathInfo
}

//FsProber probes entries of an afero filesystem.
type FsProber struct {
	Fs afero.Fs
}

func (p FsProber) Probe(path string) model.PathInfo {
	return model.Probe(p.Fs, path)
}
