package accesstracker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-accesstrack/pkg/ticker"
)

func TestCollector_MetricCount(t *testing.T) {
	tr := newCountingTracker(t, 3, ticker.NewManual(0))
	c := NewCollector(tr, "")

	// Two per-bucket families of three buckets each, plus the byte gauge.
	assert.Equal(t, 7, testutil.CollectAndCount(c))
}

func TestCollector_Gather(t *testing.T) {
	tick := ticker.NewManual(0)
	tr := newCountingTracker(t, 3, tick)

	tr.RecordAccess("x")
	tr.RecordAccess("x")
	tick.Advance(1)
	tr.RecordAccess("y")

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(tr, "")))

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string][]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			byName[mf.GetName()] = append(byName[mf.GetName()], m.GetGauge().GetValue())
		}
	}

	// age ordering follows GetRotatedAccessCounts: current bucket first.
	assert.Equal(t, []float64{1, 2, 0}, byName["accesstrack_bucket_accesses"])
	assert.Equal(t, []float64{1, 1, 0}, byName["accesstrack_bucket_distinct_keys"])
	require.Len(t, byName["accesstrack_tracker_bytes"], 1)
	assert.Greater(t, byName["accesstrack_tracker_bytes"][0], 0.0)
}

func TestCollector_CustomNamespace(t *testing.T) {
	tr := newCountingTracker(t, 2, ticker.NewManual(0))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(tr, "cachesvc")))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "cachesvc_bucket_accesses")
	assert.Contains(t, names, "cachesvc_tracker_bytes")
}
