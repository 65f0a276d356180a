package filter

import (
	"fmt"
	"strings"
)

type Operator int

const (
	EarlierThan Operator = iota + 1
	ExactlyOn
	LaterThan
)

var operatorNames = map[Operator]struct{ name, phrase string }{
	EarlierThan: {name: "EarlierThan", phrase: "earlier than"},
	ExactlyOn:   {name: "ExactlyOn", phrase: "exactly on"},
	LaterThan:   {name: "LaterThan", phrase: "later than"},
}

func ParseOperator(name string) (Operator, error) {
	name = strings.TrimSpace(name)
	for op, n := range operatorNames {
		if strings.EqualFold(n.name, name) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, name)
}

func (o Operator) Name() string {
	return operatorNames[o].name
}

func (o Operator) Phrase() string {
	return operatorNames[o].phrase
}

func (o Operator) String() string {
	if !o.valid() {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return o.Name()
}

//Accepts tells whether the result of a time comparison satisfies the operator.
func (o Operator) Accepts(cmp Comparison) bool {
	switch o {
	case EarlierThan:
		return cmp == Earlier
	case ExactlyOn:
		return cmp == Equal
	case LaterThan:
		return cmp == Later
	}
	return false
}

func (o Operator) valid() bool {
	_, ok := operatorNames[o]
	return ok
}
