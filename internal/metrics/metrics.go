// Package metrics defines the Prometheus instrumentation for the sync core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service exports.
type Metrics struct {
	EventsAppended *prometheus.CounterVec
	EventsEvicted  prometheus.Counter
	Polls          *prometheus.CounterVec
	DeltaSize      prometheus.Histogram

	StorageWriteSeconds prometheus.Histogram
	StorageReadSeconds  prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New registers all collectors on the given registerer. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syncline_events_appended_total",
			Help: "Events appended to the in-memory log, by action.",
		}, []string{"action"}),
		EventsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "syncline_events_evicted_total",
			Help: "Events evicted by the per-resource retention cap.",
		}),
		Polls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syncline_polls_total",
			Help: "Sync polls served, by outcome (baseline, delta, backlog).",
		}, []string{"outcome"}),
		DeltaSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "syncline_poll_delta_size",
			Help:    "Number of events returned per poll.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		StorageWriteSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "syncline_storage_write_seconds",
			Help:    "Latency of archive writes.",
			Buckets: prometheus.DefBuckets,
		}),
		StorageReadSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "syncline_storage_read_seconds",
			Help:    "Latency of archive reads.",
			Buckets: prometheus.DefBuckets,
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "syncline_http_requests_total",
			Help: "HTTP requests served, by method, path and status code.",
		}, []string{"method", "path", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "syncline_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// StorageHook adapts Metrics to the storage layer's observation hook.
type StorageHook struct {
	m *Metrics
}

// Storage returns a hook suitable for pebblestore.Options.Metrics.
func (m *Metrics) Storage() *StorageHook { return &StorageHook{m: m} }

func (h *StorageHook) ObserveWrite(elapsed time.Duration, _ int) {
	h.m.StorageWriteSeconds.Observe(elapsed.Seconds())
}

func (h *StorageHook) ObserveRead(elapsed time.Duration, _ int) {
	h.m.StorageReadSeconds.Observe(elapsed.Seconds())
}
