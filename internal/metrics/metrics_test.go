package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	requires := require.New(t)
	m := New()

	m.ObserveEntry(true)
	m.ObserveEntry(true)
	m.ObserveEntry(false)
	m.ObservePass(150*time.Millisecond, 2)

	requires.Equal(2.0, testutil.ToFloat64(m.EntriesTotal.WithLabelValues(DecisionIncluded)))
	requires.Equal(1.0, testutil.ToFloat64(m.EntriesTotal.WithLabelValues(DecisionExcluded)))
	requires.Equal(1.0, testutil.ToFloat64(m.ScanPassesTotal))
	requires.Equal(2.0, testutil.ToFloat64(m.IncludedEntries))
	requires.Equal(1, testutil.CollectAndCount(m.ScanDuration))
}
