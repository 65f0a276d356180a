package config

// JobFile represents the structure of a job configuration file.
type JobFile struct {
	Name    string      `yaml:"name"`
	Source  string      `yaml:"source,omitempty"`
	Filters []FilterDTO `yaml:"filters,omitempty"`
}

// FilterDTO is one rule of the job. Exactly one of Date and Pattern is set.
type FilterDTO struct {
	Action  string      `yaml:"action"`
	Date    *DateDTO    `yaml:"date,omitempty"`
	Pattern *PatternDTO `yaml:"pattern,omitempty"`
}

// DateDTO holds either an absolute instant (At) or a rolling offset (Offset and Unit), as told by Mode.
type DateDTO struct {
	Scope    string `yaml:"scope,omitempty"`
	Operator string `yaml:"operator"`
	Mode     string `yaml:"mode,omitempty"`
	At       string `yaml:"at,omitempty"`
	Offset   int    `yaml:"offset,omitempty"`
	Unit     string `yaml:"unit,omitempty"`
}

// PatternDTO matches entry names against a glob.
type PatternDTO struct {
	Glob  string `yaml:"glob"`
	Scope string `yaml:"scope,omitempty"`
}

const (
	modeAbsolute = "absolute"
	modeRolling  = "rolling"
)
