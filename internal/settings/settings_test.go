package settings

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"dsync/internal/filter"
	"dsync/internal/log"
)

func parse(t *testing.T, commandArgs []string) (*Settings, error) {
	t.Helper()
	flagSet := pflag.NewFlagSet("dsync", pflag.ContinueOnError)
	BindFlags(flagSet)
	if err := flagSet.Parse(commandArgs); err != nil {
		return nil, err
	}
	return New(flagSet, flagSet.Args())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		commandArgs []string
		wantErr     bool
		want        *Settings
	}{
		{name: "undefined flag", commandArgs: []string{"--undefined"}, wantErr: true},
		{name: "bad bool", commandArgs: []string{"--once=123"}, wantErr: true},
		{name: "bad workers", commandArgs: []string{"--workers=a"}, wantErr: true},
		{name: "bad scan period", commandArgs: []string{"--scanperiod=b"}, wantErr: true},
		{name: "no args", commandArgs: nil, wantErr: true},
		{name: "no job", commandArgs: []string{"dir"}, wantErr: true},
		{name: "bad level", commandArgs: []string{"--loglvl=nope", "--job=j.yaml", "d1"}, wantErr: true},
		{name: "zero workers", commandArgs: []string{"--workers=0", "--job=j.yaml", "d1"}, wantErr: true},
		{name: "zero period", commandArgs: []string{"--scanperiod=0s", "--job=j.yaml", "d1"}, wantErr: true},
		{
			name: "valid args",
			commandArgs: []string{"--hidden", "--log2std", "--once", "--loglvl=DEBUG", "--scanperiod=3s",
				"--workers=10", "--job=job.yaml", "--datelayout=02.01.2006", "--metrics=:9100", "dir1"},
			want: &Settings{
				SrcDir:        abs("dir1"),
				JobFile:       abs("job.yaml"),
				ScanPeriod:    3 * time.Second,
				IncludeHidden: true,
				LogLevel:      log.DebugLevel,
				LogToStd:      true,
				LogFile:       log.DefaultLogFile,
				Once:          true,
				WorkersCount:  10,
				DateLayout:    "02.01.2006",
				MetricsAddr:   ":9100",
			},
		},
		{
			name:        "default args",
			commandArgs: []string{"--job=job.yaml", "dir1"},
			want: &Settings{
				SrcDir:        abs("dir1"),
				JobFile:       abs("job.yaml"),
				ScanPeriod:    time.Second,
				IncludeHidden: false,
				LogLevel:      log.InfoLevel,
				LogToStd:      false,
				LogFile:       log.DefaultLogFile,
				Once:          false,
				WorkersCount:  runtime.NumCPU(),
				DateLayout:    filter.DefaultDateLayout,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requires := require.New(t)

			stg, err := parse(t, tt.commandArgs)

			if tt.wantErr {
				requires.Error(err)
				requires.Nil(stg)
				return
			}

			requires.NoError(err)
			requires.NotNil(stg)
			requires.Equal(*tt.want, *stg)
		})
	}
}

func TestNewFromEnvAndFile(t *testing.T) {
	requires := require.New(t)

	// 1. arrange
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "dsync.yaml")
	requires.NoError(os.WriteFile(cfgFile, []byte("source: /data\njob: /jobs/photos.yaml\nworkers: 3\nloglvl: warn\n"), 0o644))
	t.Setenv("DSYNC_WORKERS", "5")

	// 2. act
	stg, err := parse(t, []string{"--config=" + cfgFile, "--once"})

	// 3. assert: env beats the file, the file beats the defaults
	requires.NoError(err)
	requires.Equal(abs("/data"), stg.SrcDir)
	requires.Equal(abs("/jobs/photos.yaml"), stg.JobFile)
	requires.Equal(5, stg.WorkersCount)
	requires.Equal(log.Level(log.WarnLevel), stg.LogLevel)
	requires.True(stg.Once)
}

func TestNewFlagsBeatEnv(t *testing.T) {
	t.Setenv("DSYNC_LOGLVL", "error")
	stg, err := parse(t, []string{"--job=j.yaml", "--loglvl=debug", "src"})
	require.NoError(t, err)
	require.Equal(t, log.Level(log.DebugLevel), stg.LogLevel)
}

func TestValidate(t *testing.T) {
	requires := require.New(t)
	dir := t.TempDir()
	jobFile := filepath.Join(dir, "job.yaml")
	requires.NoError(os.WriteFile(jobFile, []byte("name: test\n"), 0o644))

	requires.NoError((&Settings{SrcDir: dir, JobFile: jobFile}).Validate())
	requires.Error((&Settings{SrcDir: filepath.Join(dir, "missing"), JobFile: jobFile}).Validate())
	requires.Error((&Settings{SrcDir: jobFile, JobFile: jobFile}).Validate())
	requires.Error((&Settings{SrcDir: dir, JobFile: dir}).Validate())
	requires.Error((&Settings{SrcDir: dir, JobFile: filepath.Join(dir, "none.yaml")}).Validate())
}

func abs(path string) string {
	s, _ := filepath.Abs(path)
	return s
}
