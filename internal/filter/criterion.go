package filter

import "time"

//Mode tells how the reference instant of a date filter is obtained.
type Mode int

const (
	ModeAbsolute Mode = iota + 1 // fixed instant
	ModeRolling                  // now minus an offset, recomputed on every evaluation
)

func (m Mode) String() string {
	switch m {
	case ModeAbsolute:
		return "absolute"
	case ModeRolling:
		return "rolling"
	}
	return "unknown"
}

//Criterion is either an AbsoluteInstant or a RollingOffset.
type Criterion interface {
	Mode() Mode
	isCriterion()
}

type AbsoluteInstant struct {
	At time.Time
}

func (AbsoluteInstant) Mode() Mode { return ModeAbsolute }

func (AbsoluteInstant) isCriterion() {}

type RollingOffset struct {
	Magnitude int
	Unit      Unit
}

func (RollingOffset) Mode() Mode { return ModeRolling }

func (RollingOffset) isCriterion() {}

//ReferenceInstant returns the instant an entry is compared with when evaluated at now.
//It does not depend on anything but its arguments.
func ReferenceInstant(c Criterion, now time.Time) time.Time {
	switch c := c.(type) {
	case AbsoluteInstant:
		return c.At
	case RollingOffset:
		return c.Unit.SubtractFrom(now.Local(), c.Magnitude)
	}
	return now
}

func validateCriterion(c Criterion) error {
	switch c := c.(type) {
	case AbsoluteInstant:
		if c.At.IsZero() {
			return ErrZeroInstant
		}
		return nil
	case RollingOffset:
		if c.Magnitude < 0 {
			return ErrNegativeOffset
		}
		if !c.Unit.valid() {
			return ErrInvalidUnit
		}
		return nil
	}
	return ErrNoCriterion
}
