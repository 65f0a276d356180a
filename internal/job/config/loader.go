// Package config reads and writes job configuration files.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"dsync/internal/filter"
	"dsync/internal/job"
)

// zerr.With copies a *zerr.Error, so the sentinels are wrapped before metadata is attached to them.
var (
	// ErrConfigRead is returned when the job file cannot be read.
	ErrConfigRead = zerr.New("failed to read job file")
	// ErrConfigParse is returned when the job file is not valid YAML.
	ErrConfigParse = zerr.New("failed to parse job file")
	// ErrInvalidFilter is returned when a filter entry cannot be turned into a filter.
	ErrInvalidFilter = zerr.New("invalid filter")
	// ErrUnknownMode is returned for a date filter mode other than absolute or rolling.
	ErrUnknownMode = zerr.New("unknown date filter mode")
	// ErrBadInstant is returned when the instant of an absolute date filter cannot be parsed.
	ErrBadInstant = zerr.New("cannot parse instant")
	// ErrEmptyFilter is returned for a filter entry with neither a date nor a pattern section.
	ErrEmptyFilter = zerr.New("filter has neither date nor pattern")
	// ErrAmbiguousFilter is returned for a filter entry with both a date and a pattern section.
	ErrAmbiguousFilter = zerr.New("filter has both date and pattern")
)

// InstantLayout is used when instants are written back to job files.
const InstantLayout = "2006-01-02T15:04:05"

var instantLayouts = []string{InstantLayout, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

// Options are handed down to the filters built from the file.
type Options struct {
	Fs         afero.Fs
	Clock      clockwork.Clock
	DateLayout string
}

func (o Options) withDefaults() Options {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// Load reads a job file. A relative source directory is resolved against the file's directory.
func Load(path string, opts Options) (*job.Job, error) {
	opts = opts.withDefaults()
	data, err := afero.ReadFile(opts.Fs, path)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrConfigRead, err), "path", path)
	}

	j, err := Parse(data, opts)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if j.SrcDir != "" && !filepath.IsAbs(j.SrcDir) {
		j.SrcDir = filepath.Join(filepath.Dir(path), j.SrcDir)
	}
	return j, nil
}

// Parse builds a job from the content of a job file.
func Parse(data []byte, opts Options) (*job.Job, error) {
	opts = opts.withDefaults()

	var jobFile JobFile
	if err := yaml.Unmarshal(data, &jobFile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, err)
	}

	j := &job.Job{Name: jobFile.Name, SrcDir: jobFile.Source}
	for i, dto := range jobFile.Filters {
		rule, err := buildRule(dto, opts)
		if err != nil {
			return nil, zerr.With(err, "filter_index", i)
		}
		j.Rules = append(j.Rules, rule)
	}
	return j, nil
}

func buildRule(dto FilterDTO, opts Options) (job.Rule, error) {
	action, err := job.ParseAction(dto.Action)
	if err != nil {
		return job.Rule{}, invalidFilter(err)
	}

	switch {
	case dto.Date != nil && dto.Pattern != nil:
		return job.Rule{}, fmt.Errorf("%w", ErrAmbiguousFilter)
	case dto.Date != nil:
		f, err := buildDateFilter(*dto.Date, opts)
		if err != nil {
			return job.Rule{}, err
		}
		return job.Rule{Action: action, Filter: f}, nil
	case dto.Pattern != nil:
		f, err := filter.NewPattern(dto.Pattern.Glob, filter.ParseScope(dto.Pattern.Scope), opts.Fs)
		if err != nil {
			return job.Rule{}, invalidFilter(err)
		}
		return job.Rule{Action: action, Filter: f}, nil
	}
	return job.Rule{}, fmt.Errorf("%w", ErrEmptyFilter)
}

func buildDateFilter(dto DateDTO, opts Options) (*filter.DateFilter, error) {
	op, err := filter.ParseOperator(dto.Operator)
	if err != nil {
		return nil, invalidFilter(err)
	}
	// the scope never fails to parse: unknown names mean "directories and files"
	scope := filter.ParseScope(dto.Scope)

	criterion, err := buildCriterion(dto)
	if err != nil {
		return nil, err
	}

	f, err := filter.New(criterion, op, scope,
		filter.WithFs(opts.Fs), filter.WithClock(opts.Clock), filter.WithDateLayout(opts.DateLayout))
	if err != nil {
		return nil, invalidFilter(err)
	}
	return f, nil
}

func buildCriterion(dto DateDTO) (filter.Criterion, error) {
	mode := strings.ToLower(strings.TrimSpace(dto.Mode))
	if mode == "" {
		mode = modeRolling
		if dto.At != "" {
			mode = modeAbsolute
		}
	}

	switch mode {
	case modeAbsolute:
		at, err := parseInstant(dto.At)
		if err != nil {
			return nil, zerr.With(fmt.Errorf("%w: %w", ErrBadInstant, err), "at", dto.At)
		}
		return filter.AbsoluteInstant{At: at}, nil
	case modeRolling:
		unit, err := filter.ParseUnit(dto.Unit)
		if err != nil {
			return nil, invalidFilter(err)
		}
		return filter.RollingOffset{Magnitude: dto.Offset, Unit: unit}, nil
	}
	return nil, zerr.With(fmt.Errorf("%w %q", ErrUnknownMode, dto.Mode), "mode", dto.Mode)
}

// invalidFilter keeps both ErrInvalidFilter and the cause matchable with errors.Is.
func invalidFilter(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidFilter, cause)
}

// parseInstant reads wall-clock layouts in local time; RFC 3339 keeps its own offset.
func parseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	var lastErr error
	for _, layout := range instantLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
