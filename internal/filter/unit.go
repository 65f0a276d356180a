package filter

import (
	"fmt"
	"strings"
	"time"
)

//Unit is the unit of a rolling offset.
type Unit int

const (
	Hours Unit = iota
	Days
	Weeks
	Months
)

var unitNames = map[Unit]struct{ name, plural string }{
	Hours:  {name: "Hours", plural: "hours"},
	Days:   {name: "Days", plural: "days"},
	Weeks:  {name: "Weeks", plural: "weeks"},
	Months: {name: "Months", plural: "months"},
}

func ParseUnit(name string) (Unit, error) {
	name = strings.TrimSpace(name)
	for u, n := range unitNames {
		if strings.EqualFold(n.name, name) {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, name)
}

func (u Unit) Name() string {
	return unitNames[u].name
}

func (u Unit) Plural() string {
	return unitNames[u].plural
}

func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return u.Name()
}

//SubtractFrom goes n units back from t, in t's location.
//Days and weeks keep the wall clock across DST changes. Months are calendar months: the day of month is
//clamped to the length of the target month, so Mar 31 minus one month is the last day of February.
func (u Unit) SubtractFrom(t time.Time, n int) time.Time {
	switch u {
	case Hours:
		return subtractHours(t, n)
	case Days:
		return t.AddDate(0, 0, -n)
	case Weeks:
		return t.AddDate(0, 0, -7*n)
	case Months:
		return subtractMonths(t, n)
	}
	return t
}

//subtractHours goes through the UTC calendar, since n hours may not fit in a time.Duration.
func subtractHours(t time.Time, n int) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour()-n, u.Minute(), u.Second(), u.Nanosecond(), time.UTC).
		In(t.Location())
}

func subtractMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// normalize the target month through its first day, then clamp
	first := time.Date(year, month-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func (u Unit) valid() bool {
	_, ok := unitNames[u]
	return ok
}
