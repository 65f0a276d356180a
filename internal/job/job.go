package job

import (
	"fmt"
	"slices"
	"strings"

	"dsync/internal/filter"
	"dsync/internal/model"
)

//Action says what happens to the entries matched by a rule.
type Action string

const (
	Include Action = "include"
	Exclude Action = "exclude"
)

func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case Include:
		return Include, nil
	case Exclude:
		return Exclude, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

type Rule struct {
	Action Action
	Filter filter.Filter
}

func (r Rule) Describe() string {
	return fmt.Sprintf("%s: %s", r.Action, r.Filter.Describe())
}

//Job is a synchronization job: a source tree and the rules that select its entries.
type Job struct {
	Name   string
	SrcDir string
	Rules  []Rule
}

//Decide tells whether the entry takes part in the synchronization.
//An entry matched by any exclude rule is left out. Otherwise, if the job has include rules,
//the entry must match at least one of them. The returned rule is the one that decided, if any.
func (j *Job) Decide(info model.PathInfo) (bool, *Rule) {
	hasIncludes := false
	for i := range j.Rules {
		r := &j.Rules[i]
		if r.Action == Include {
			hasIncludes = true
			continue
		}
		if r.Filter.MatchesInfo(info) {
			return false, r
		}
	}
	if !hasIncludes {
		return true, nil
	}
	for i := range j.Rules {
		r := &j.Rules[i]
		if r.Action == Include && r.Filter.MatchesInfo(info) {
			return true, r
		}
	}
	return false, nil
}

//SortedRules returns a copy of the rules: includes before excludes, then in filter order.
func (j *Job) SortedRules(byKind filter.KindOrder) []Rule {
	rules := slices.Clone(j.Rules)
	slices.SortStableFunc(rules, func(a, b Rule) int {
		if a.Action != b.Action {
			return strings.Compare(string(a.Action), string(b.Action)) * -1 // "include" first
		}
		return filter.Compare(a.Filter, b.Filter, byKind)
	})
	return rules
}
