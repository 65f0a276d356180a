package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dsync/internal/filter"
	"dsync/internal/log"
)

//EnvPrefix prefixes the environment variables that override settings, e.g. DSYNC_LOGLVL=debug.
const EnvPrefix = "DSYNC"

const (
	keyConfig     = "config"
	keySource     = "source"
	keyJob        = "job"
	keyScanPeriod = "scanperiod"
	keyHidden     = "hidden"
	keyLogLevel   = "loglvl"
	keyLogToStd   = "log2std"
	keyLogFile    = "logfile"
	keyOnce       = "once"
	keyWorkers    = "workers"
	keyDateLayout = "datelayout"
	keyMetrics    = "metrics"
)

type Settings struct {
	SrcDir        string
	JobFile       string
	ScanPeriod    time.Duration
	IncludeHidden bool
	LogLevel      log.Level
	LogToStd      bool
	LogFile       string
	Once          bool
	WorkersCount  int
	DateLayout    string
	MetricsAddr   string
}

//BindFlags declares the command line flags of the settings.
func BindFlags(flagSet *pflag.FlagSet) {
	flagSet.String(keyConfig, "", "optional settings file (yaml, json or toml)")
	flagSet.String(keyJob, "", "job file with the filters to apply")
	flagSet.Duration(keyScanPeriod, time.Second, "period between two scans of the source directory")
	flagSet.Bool(keyHidden, false, "if true, then hidden entries (with names starting with a dot) are scanned too")
	flagSet.String(keyLogLevel, log.InfoLevel,
		fmt.Sprintf("level of logging, permitted values are: %v, %v, %v, %v",
			log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel),
	)
	flagSet.Bool(keyLogToStd, false,
		"if true, then logs are written to the console, otherwise - to the text file")
	flagSet.String(keyLogFile, log.DefaultLogFile, "log file used when logs are not written to the console")
	flagSet.Bool(keyOnce, false,
		"if true, then the directory is scanned only once (i.e. the program has finite execution), "+
			"otherwise - the process is started and lasts indefinitely (until interruption)")
	flagSet.Int(keyWorkers, runtime.NumCPU(), "number of goroutines evaluating the filters")
	flagSet.String(keyDateLayout, filter.DefaultDateLayout, "Go time layout used to display dates")
	flagSet.String(keyMetrics, "", "address to expose Prometheus metrics on, e.g. :9100 (disabled if empty)")
}

//New merges, in increasing priority, the defaults, the settings file, the environment and the flags.
//The source directory is the first positional argument, if given.
func New(flagSet *pflag.FlagSet, args []string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, fmt.Errorf("cannot bind flags: %w", err)
	}

	if cfgFile := v.GetString(keyConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read settings file %q: %w", cfgFile, err)
		}
	}

	srcDir := v.GetString(keySource)
	if len(args) > 0 {
		srcDir = args[0]
	}
	if srcDir == "" {
		return nil, errors.New("the source directory must be given")
	}
	if v.GetString(keyJob) == "" {
		return nil, errors.New("the job file must be given")
	}

	stg := &Settings{
		ScanPeriod:    v.GetDuration(keyScanPeriod),
		IncludeHidden: v.GetBool(keyHidden),
		LogToStd:      v.GetBool(keyLogToStd),
		LogFile:       v.GetString(keyLogFile),
		Once:          v.GetBool(keyOnce),
		WorkersCount:  v.GetInt(keyWorkers),
		DateLayout:    v.GetString(keyDateLayout),
		MetricsAddr:   v.GetString(keyMetrics),
	}

	var err error
	if stg.SrcDir, err = filepath.Abs(srcDir); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", srcDir, err)
	}
	if stg.JobFile, err = filepath.Abs(v.GetString(keyJob)); err != nil {
		return nil, fmt.Errorf("path %q cannot be converted to absolute: %v", v.GetString(keyJob), err)
	}
	level := v.GetString(keyLogLevel)
	if !log.Level(level).IsValid() {
		return nil, fmt.Errorf("logging level %q does not exist", level)
	}
	stg.LogLevel = log.Level(strings.ToLower(level))
	if stg.ScanPeriod <= 0 {
		return nil, fmt.Errorf("scan period must be positive, got %v", stg.ScanPeriod)
	}
	if stg.WorkersCount < 1 {
		return nil, fmt.Errorf("workers count must be positive, got %d", stg.WorkersCount)
	}

	return stg, nil
}

func (stg *Settings) Validate() error {
	if err := validateDirectoryPath(stg.SrcDir); err != nil {
		return fmt.Errorf("the source directory is invalid: %v", err)
	}
	info, err := os.Stat(stg.JobFile)
	if err != nil {
		return fmt.Errorf("the job file is invalid: %v", err)
	}
	if info.IsDir() {
		return fmt.Errorf("the job file %q is a directory", stg.JobFile)
	}
	return nil
}

func validateDirectoryPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %q is not a directory path", path)
	}
	return nil
}
