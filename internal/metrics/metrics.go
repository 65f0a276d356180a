package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DecisionIncluded = "included"
	DecisionExcluded = "excluded"
)

//Metrics of the scan passes, registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	ScanPassesTotal  prometheus.Counter
	EntriesTotal     *prometheus.CounterVec
	ScanDuration     prometheus.Histogram
	IncludedEntries  prometheus.Gauge
	EvaluationErrors prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ScanPassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dsync_scan_passes_total",
			Help: "Total number of completed scan passes (count)",
		}),
		EntriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dsync_entries_evaluated_total",
			Help: "Total number of entries evaluated against the job filters (count)",
		}, []string{"decision"}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dsync_scan_duration_seconds",
			Help:    "Duration of one scan pass in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		IncludedEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dsync_included_entries",
			Help: "Number of entries included by the last scan pass (count)",
		}),
		EvaluationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dsync_evaluation_errors_total",
			Help: "Total number of entries whose evaluation failed (count)",
		}),
	}
	m.Registry.MustRegister(m.ScanPassesTotal, m.EntriesTotal, m.ScanDuration, m.IncludedEntries, m.EvaluationErrors)
	return m
}

func (m *Metrics) ObserveEntry(included bool) {
	decision := DecisionExcluded
	if included {
		decision = DecisionIncluded
	}
	m.EntriesTotal.WithLabelValues(decision).Inc()
}

func (m *Metrics) ObservePass(duration time.Duration, included int) {
	m.ScanPassesTotal.Inc()
	m.ScanDuration.Observe(duration.Seconds())
	m.IncludedEntries.Set(float64(included))
}

//Serve exposes the registry on addr at /metrics until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
