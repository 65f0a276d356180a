package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dsync/internal/dirsyncer"
	"dsync/internal/job/config"
	"dsync/internal/log"
	"dsync/internal/metrics"
	"dsync/internal/settings"
	"dsync/pkg/helpers/run"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <srcdir>",
		Short: "Scan the source directory once or periodically and print the included entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stg, err := settings.New(cmd.Flags(), args)
			if err != nil {
				return err
			}
			if err = stg.Validate(); err != nil {
				return err
			}

			logger, err := log.New(stg.LogLevel, stg.LogToStd, stg.LogFile)
			if err != nil {
				return fmt.Errorf("cannot create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			j, err := config.Load(stg.JobFile, config.Options{DateLayout: stg.DateLayout})
			if err != nil {
				logger.Error("job file cannot be loaded", log.String("job", stg.JobFile), log.Cause(err))
				return err
			}
			logger.Info("dsync started", log.String("source", stg.SrcDir), log.String("job", j.Name),
				log.Int("rules", len(j.Rules)), log.Bool("once", stg.Once))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			var metricsErrCh <-chan error
			if stg.MetricsAddr != "" {
				metricsErrCh = run.AsyncWithError(func() error { return m.Serve(ctx, stg.MetricsAddr) })
			}

			out := cmd.OutOrStdout()
			syncer := dirsyncer.New(logger, *stg, j,
				dirsyncer.WithMetrics(m),
				dirsyncer.WithReporter(func(r dirsyncer.Report) { printReport(out, r) }),
			)
			err = syncer.Start(ctx, stop)
			stop()

			if metricsErrCh != nil {
				if merr := <-metricsErrCh; merr != nil {
					logger.Error("metrics endpoint failed", log.String("addr", stg.MetricsAddr), log.Cause(merr))
					if err == nil {
						err = merr
					}
				}
			}
			if err != nil {
				logger.Error("dsync stopped with error", log.Cause(err))
				return err
			}
			logger.Info("dsync finished")
			return nil
		},
	}
	settings.BindFlags(cmd.Flags())

	return cmd
}

func printReport(w io.Writer, r dirsyncer.Report) {
	_, _ = fmt.Fprintf(w, "pass %d: %d of %d entries included\n", r.PassID, len(r.Included), r.Evaluated)
	for _, path := range r.Included {
		_, _ = fmt.Fprintf(w, "  %s\n", path)
	}
}
