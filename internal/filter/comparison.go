package filter

import (
	"time"

	"dsync/internal/model"
)

//Comparison is the result of comparing an entry's modification time with a reference instant.
type Comparison int

const (
	Earlier Comparison = -1
	Equal   Comparison = 0
	Later   Comparison = 1
)

func (c Comparison) String() string {
	switch c {
	case Earlier:
		return "earlier"
	case Later:
		return "later"
	}
	return "equal"
}

//CompareMinutes compares the entry's modification time with ref at one-minute granularity:
//both instants are truncated to the minute, so seconds within the same minute never distinguish them.
//The second result is false when the entry does not exist, since there is nothing to compare.
func CompareMinutes(info model.PathInfo, ref time.Time) (Comparison, bool) {
	if !info.Exists {
		return Equal, false
	}
	mod := info.ModTime.Truncate(time.Minute)
	ref = ref.Truncate(time.Minute)
	switch {
	case mod.Before(ref):
		return Earlier, true
	case mod.After(ref):
		return Later, true
	}
	return Equal, true
}
