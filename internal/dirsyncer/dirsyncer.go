package dirsyncer

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"dsync/internal/job"
	"dsync/internal/log"
	"dsync/internal/metrics"
	"dsync/internal/model"
	"dsync/internal/settings"
)

type DirSyncer struct {
	log      log.Logger
	settings settings.Settings
	job      *job.Job
	fs       afero.Fs
	clock    clockwork.Clock
	metrics  *metrics.Metrics
	reporter func(Report)
}

type Option func(*DirSyncer)

func WithFs(fsys afero.Fs) Option {
	return func(d *DirSyncer) { d.fs = fsys }
}

//WithClock sets the clock driving the scan period. The job's filters have clocks of their own.
func WithClock(c clockwork.Clock) Option {
	return func(d *DirSyncer) { d.clock = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *DirSyncer) { d.metrics = m }
}

//WithReporter registers a callback invoked after every completed scan pass.
func WithReporter(fn func(Report)) Option {
	return func(d *DirSyncer) { d.reporter = fn }
}

func New(logger log.Logger, stg settings.Settings, j *job.Job, opts ...Option) *DirSyncer {
	d := &DirSyncer{
		log:      logger,
		settings: stg,
		job:      j,
		fs:       afero.NewOsFs(),
		clock:    clockwork.NewRealClock(),
		reporter: func(Report) {},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = metrics.New()
	}
	return d
}

//Start returns only most critical errors that make further work impossible, otherwise returns nil.
func (d *DirSyncer) Start(ctx context.Context, stop context.CancelFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			stop()
			if perr, ok := p.(error); ok {
				err = perr
			} else {
				err = fmt.Errorf("panic! %v", p)
			}
		}
	}()

	eMap := model.NewDirEntriesMap()
	dirScanner := newDirScanner(d.log, d.settings, d.job, d.fs, d.clock, eMap, d.metrics)

	if d.settings.Once {
		return d.scan(ctx, dirScanner)
	}

	// the ticker is created before the first pass, so that no tick gets lost during it
	ticker := d.clock.NewTicker(d.settings.ScanPeriod)
	defer ticker.Stop()
	if err := d.scan(ctx, dirScanner); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			stop() // stop receiving signal notifications as soon as possible
			return nil
		case <-ticker.Chan():
			if err := d.scan(ctx, dirScanner); err != nil {
				return err
			}
		}
	}
}

func (d *DirSyncer) scan(ctx context.Context, dirScanner *dirScanner) error {
	report, err := dirScanner.scanOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil // interrupted, not a failure
		}
		return fmt.Errorf("scan of %q failed: %w", d.settings.SrcDir, err)
	}
	d.reporter(report)
	return nil
}
