package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "devindex",
			Name:      "search_requests_total",
			Help:      "Search requests sent to the engine",
		},
		[]string{"filtered", "status"},
	)

	SearchEngineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "devindex",
			Name:      "search_engine_duration_seconds",
			Help:      "Search engine round-trip duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchEngineDuration)
	})
}
