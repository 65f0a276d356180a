package filter

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"dsync/internal/model"
)

//DefaultDateLayout renders absolute instants in descriptions unless another layout is configured.
const DefaultDateLayout = "2006-01-02 15:04"

//DateFilter matches entries by their modification time.
//
//Evaluation never writes to the filter: the reference instant of a rolling filter is computed anew on each call,
//so one filter can be evaluated from many goroutines. The setters are not synchronized with evaluation.
type DateFilter struct {
	criterion  Criterion
	operator   Operator
	scope      Scope
	prober     Prober
	clock      clockwork.Clock
	dateLayout string
}

type Option func(*DateFilter)

func WithProber(p Prober) Option {
	return func(f *DateFilter) { f.prober = p }
}

//WithFs is a shortcut for WithProber(FsProber{Fs: fsys}).
func WithFs(fsys afero.Fs) Option {
	return WithProber(FsProber{Fs: fsys})
}

func WithClock(c clockwork.Clock) Option {
	return func(f *DateFilter) { f.clock = c }
}

func WithDateLayout(layout string) Option {
	return func(f *DateFilter) {
		if layout != "" {
			f.dateLayout = layout
		}
	}
}

func New(c Criterion, op Operator, scope Scope, opts ...Option) (*DateFilter, error) {
	if err := validateCriterion(c); err != nil {
		return nil, err
	}
	if !op.valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOperator, op)
	}
	if !scope.valid() {
		scope = Either
	}
	f := &DateFilter{
		criterion:  c,
		operator:   op,
		scope:      scope,
		prober:     FsProber{Fs: afero.NewOsFs()},
		clock:      clockwork.NewRealClock(),
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func NewAbsolute(at time.Time, op Operator, scope Scope, opts ...Option) (*DateFilter, error) {
	return New(AbsoluteInstant{At: at}, op, scope, opts...)
}

func NewRolling(magnitude int, unit Unit, op Operator, scope Scope, opts ...Option) (*DateFilter, error) {
	return New(RollingOffset{Magnitude: magnitude, Unit: unit}, op, scope, opts...)
}

func (f *DateFilter) Kind() Kind { return KindByDate }

func (f *DateFilter) Matches(path string) bool {
	return f.MatchesInfo(f.prober.Probe(path))
}

//MatchesInfo evaluates an already probed entry.
func (f *DateFilter) MatchesInfo(info model.PathInfo) bool {
	ref := ReferenceInstant(f.criterion, f.clock.Now())
	if !f.scope.Allows(info) {
		return false
	}
	cmp, ok := CompareMinutes(info, ref)
	return ok && f.operator.Accepts(cmp)
}

//ReferenceInstant is the instant entries would be compared with if evaluated now.
func (f *DateFilter) ReferenceInstant() time.Time {
	return ReferenceInstant(f.criterion, f.clock.Now())
}

//Describe renders the filter as "<scope> modified <operator> <time>".
func (f *DateFilter) Describe() string {
	return fmt.Sprintf("%s modified %s %s", f.scope.Label(), f.operator.Phrase(), f.describeTime())
}

func (f *DateFilter) describeTime() string {
	switch c := f.criterion.(type) {
	case AbsoluteInstant:
		return c.At.Local().Format(f.dateLayout)
	case RollingOffset:
		return fmt.Sprintf("%d %s ago", c.Magnitude, c.Unit.Plural())
	}
	return ""
}

func (f *DateFilter) String() string {
	return f.Describe()
}

//CompareTo orders date filters by their reference instants, both taken at the same moment.
//Filters of other kinds are ordered by byKind.
func (f *DateFilter) CompareTo(other Filter, byKind KindOrder) int {
	o, ok := other.(*DateFilter)
	if !ok {
		return byKind(f.Kind(), other.Kind())
	}
	now := f.clock.Now()
	return ReferenceInstant(f.criterion, now).Compare(ReferenceInstant(o.criterion, now))
}

func (f *DateFilter) Criterion() Criterion { return f.criterion }

func (f *DateFilter) Mode() Mode { return f.criterion.Mode() }

func (f *DateFilter) Operator() Operator { return f.operator }

func (f *DateFilter) Scope() Scope { return f.scope }

func (f *DateFilter) SetScope(scope Scope) {
	if !scope.valid() {
		scope = Either
	}
	f.scope = scope
}

func (f *DateFilter) SetOperator(op Operator) error {
	if !op.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidOperator, op)
	}
	f.operator = op
	return nil
}

//SetAbsolute switches the filter to a fixed instant. The rolling offset, if any, is dropped.
func (f *DateFilter) SetAbsolute(at time.Time) error {
	return f.setCriterion(AbsoluteInstant{At: at})
}

//SetRolling switches the filter to a rolling offset. The fixed instant, if any, is dropped.
func (f *DateFilter) SetRolling(magnitude int, unit Unit) error {
	return f.setCriterion(RollingOffset{Magnitude: magnitude, Unit: unit})
}

func (f *DateFilter) setCriterion(c Criterion) error {
	if err := validateCriterion(c); err != nil {
		return err
	}
	f.criterion = c
	return nil
}

//Offset returns the rolling offset, or the defaults (0 hours) for an absolute filter.
func (f *DateFilter) Offset() (int, Unit) {
	if c, ok := f.criterion.(RollingOffset); ok {
		return c.Magnitude, c.Unit
	}
	return 0, Hours
}
