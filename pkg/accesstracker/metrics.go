package accesstracker

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes tracker diagnostics as prometheus metrics. Buckets are
// labeled by age in bucket-widths; age="0" is the current bucket. Collect
// uses only the diagnostic read API, so scraping never touches the key
// hashing or recording paths.
type Collector struct {
	tracker *Tracker

	accesses *prometheus.Desc
	distinct *prometheus.Desc
	bytes    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a prometheus collector over t. An empty namespace
// defaults to "accesstrack".
func NewCollector(t *Tracker, namespace string) *Collector {
	if namespace == "" {
		namespace = "accesstrack"
	}
	return &Collector{
		tracker: t,
		accesses: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "bucket_accesses"),
			"Raw accesses recorded in the bucket, by age in bucket-widths.",
			[]string{"age"}, nil,
		),
		distinct: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "bucket_distinct_keys"),
			"Estimated distinct keys recorded in the bucket, by age in bucket-widths.",
			[]string{"age"}, nil,
		),
		bytes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tracker_bytes"),
			"Memory footprint of the probabilistic bucket state.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.accesses
	ch <- c.distinct
	ch <- c.bytes
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	counts := c.tracker.GetRotatedAccessCounts()
	uniques := c.tracker.EstimateCardinalities()
	for i := range counts {
		age := strconv.Itoa(i)
		ch <- prometheus.MustNewConstMetric(c.accesses, prometheus.GaugeValue, float64(counts[i]), age)
		ch <- prometheus.MustNewConstMetric(c.distinct, prometheus.GaugeValue, float64(uniques[i]), age)
	}
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.GaugeValue, float64(c.tracker.ByteSize()))
}
