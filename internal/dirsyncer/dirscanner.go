package dirsyncer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"dsync/internal/job"
	"dsync/internal/log"
	"dsync/internal/metrics"
	"dsync/internal/model"
	"dsync/internal/settings"
	"dsync/pkg/helpers/run"
	"dsync/pkg/helpers/ut"
)

//Report summarizes one scan pass.
type Report struct {
	PassID    uint64
	StartedAt time.Time
	Duration  time.Duration
	Evaluated int
	Removed   int
	Included  []string // relative paths, sorted
}

type scannedEntry struct {
	relPath string
	info    model.PathInfo
}

//dirScanner walks the source tree and evaluates every entry against the job's rules.
type dirScanner struct {
	log        log.Logger
	settings   settings.Settings
	job        *job.Job
	fs         afero.Fs
	clock      clockwork.Clock
	entriesMap *model.DirEntriesMap
	metrics    *metrics.Metrics
	nextPassID func() uint64
}

func newDirScanner(
	logger log.Logger, stg settings.Settings, j *job.Job,
	fsys afero.Fs, clock clockwork.Clock, eMap *model.DirEntriesMap, m *metrics.Metrics,
) *dirScanner {
	return &dirScanner{
		log:        logger,
		settings:   stg,
		job:        j,
		fs:         fsys,
		clock:      clock,
		entriesMap: eMap,
		metrics:    m,
		nextPassID: ut.CreateUint64IDGenerator(),
	}
}

func (d *dirScanner) scanOnce(ctx context.Context) (Report, error) {
	report := Report{PassID: d.nextPassID(), StartedAt: d.clock.Now()}
	d.log.Debug("scanOnce started", log.Uint64("passID", report.PassID))

	entries, err := d.walk(ctx)
	if err != nil {
		return report, err
	}
	if err := d.entriesMap.PrepareForScan(); err != nil {
		return report, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.settings.WorkersCount)
	for _, e := range entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := run.WithError(func() error { return d.evaluate(e, report.PassID) }); err != nil {
				// one broken entry must not stop the pass
				d.metrics.EvaluationErrors.Inc()
				d.log.Error("failed to evaluate the entry", log.Cause(err), log.String("path", e.relPath))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Removed = d.entriesMap.RemoveObsolete()
	report.Evaluated = len(entries)
	report.Included = d.entriesMap.Included()
	report.Duration = d.clock.Since(report.StartedAt)
	d.metrics.ObservePass(report.Duration, len(report.Included))

	d.log.Info("scan pass finished",
		log.Uint64("passID", report.PassID),
		log.String("job", d.job.Name),
		log.Time("startedAt", report.StartedAt),
		log.Int("evaluated", report.Evaluated),
		log.Int("included", len(report.Included)),
		log.Duration("took", report.Duration),
	)
	d.log.Debug("included entries", log.Uint64("passID", report.PassID), log.Any("paths", report.Included))
	return report, nil
}

func (d *dirScanner) evaluate(e scannedEntry, passID uint64) error {
	included, rule := d.job.Decide(e.info)
	ruleDescr := ""
	if rule != nil {
		ruleDescr = rule.Describe()
	}
	d.entriesMap.UpdateValueByKey(e.relPath, func(entry *model.EntryInfo) {
		entry.SetPathInfo(e.info)
		entry.SetDecision(included, ruleDescr, passID)
	})
	d.metrics.ObserveEntry(included)
	d.log.Debug("entry evaluated",
		log.String("path", e.relPath), log.Bool("included", included), log.String("rule", ruleDescr))
	return nil
}

func (d *dirScanner) walk(ctx context.Context) ([]scannedEntry, error) {
	root := d.settings.SrcDir
	var entries []scannedEntry
	err := afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			d.log.Warn("cannot read the entry, it is skipped", log.String("path", path), log.Cause(err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if !d.settings.IncludeHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, scannedEntry{relPath: filepath.ToSlash(relPath), info: model.FromFileInfo(path, info)})
		return nil
	})
	return entries, err
}
