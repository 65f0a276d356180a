package config

import (
	"fmt"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"dsync/internal/filter"
	"dsync/internal/job"
)

// Marshal renders a job back to the job file format.
func Marshal(j *job.Job) ([]byte, error) {
	jobFile := JobFile{Name: j.Name, Source: j.SrcDir}
	for i, rule := range j.Rules {
		dto, err := toDTO(rule)
		if err != nil {
			return nil, zerr.With(err, "filter_index", i)
		}
		jobFile.Filters = append(jobFile.Filters, dto)
	}

	data, err := yaml.Marshal(&jobFile)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode job file")
	}
	return data, nil
}

func toDTO(rule job.Rule) (FilterDTO, error) {
	dto := FilterDTO{Action: string(rule.Action)}
	switch f := rule.Filter.(type) {
	case *filter.DateFilter:
		date := &DateDTO{Scope: f.Scope().Name(), Operator: f.Operator().Name()}
		switch c := f.Criterion().(type) {
		case filter.AbsoluteInstant:
			date.Mode = modeAbsolute
			date.At = c.At.Local().Format(InstantLayout)
		case filter.RollingOffset:
			date.Mode = modeRolling
			date.Offset = c.Magnitude
			date.Unit = c.Unit.Name()
		}
		dto.Date = date
	case *filter.PatternFilter:
		dto.Pattern = &PatternDTO{Glob: f.Glob(), Scope: f.Scope().Name()}
	default:
		return FilterDTO{}, zerr.New(fmt.Sprintf("unsupported filter kind %v", rule.Filter.Kind()))
	}
	return dto, nil
}
