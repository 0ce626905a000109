package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

var defaultMetrics *metrics

// newMetrics registers the server metrics once; handlers created later reuse
// the same collectors.
func newMetrics() *metrics {
	if defaultMetrics != nil {
		return defaultMetrics
	}
	defaultMetrics = &metrics{
		generations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "cardtrail_generations_total",
			Help: "Board flow generations, labeled by outcome.",
		}, []string{"status"}),
		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardtrail_generation_duration_seconds",
			Help:    "Time spent fetching and tallying one board.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	return defaultMetrics
}

func (m *metrics) observe(status string, d time.Duration) {
	m.generations.WithLabelValues(status).Inc()
	m.duration.Observe(d.Seconds())
}
