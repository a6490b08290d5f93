// Package metrics exposes Prometheus collectors for the translation
// backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector aggregates the backend's Prometheus metrics.
type Collector struct {
	importUnits    *prometheus.CounterVec
	importDuration prometheus.Histogram
	batchFlushes   prometheus.Counter
	httpRequests   *prometheus.CounterVec
}

// NewCollector registers and returns the metric collectors.
func NewCollector() *Collector {
	return &Collector{
		importUnits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "commtrans_import_units_total",
			Help: "Imported translation units by classification outcome.",
		}, []string{"outcome"}),
		importDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "commtrans_import_duration_seconds",
			Help:    "Duration of translation import transactions.",
			Buckets: prometheus.DefBuckets,
		}),
		batchFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commtrans_import_batch_flushes_total",
			Help: "Number of batched insert statements issued.",
		}),
		httpRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "commtrans_http_requests_total",
			Help: "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
	}
}

// RecordImportOutcome counts units that fell into one classification bucket.
func (c *Collector) RecordImportOutcome(outcome string, count int) {
	if count > 0 {
		c.importUnits.WithLabelValues(outcome).Add(float64(count))
	}
}

// RecordImportDuration observes one import transaction duration.
func (c *Collector) RecordImportDuration(d time.Duration) {
	c.importDuration.Observe(d.Seconds())
}

// RecordBatchFlush counts one batched insert statement.
func (c *Collector) RecordBatchFlush() {
	c.batchFlushes.Inc()
}

// RecordHTTPRequest counts one handled HTTP request.
func (c *Collector) RecordHTTPRequest(method, path, status string) {
	c.httpRequests.WithLabelValues(method, path, status).Inc()
}
