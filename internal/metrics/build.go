package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Index build Prometheus metrics.
var (
	BuildDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "devindex",
			Name:      "build_documents",
			Help:      "Documents produced by the last build, per category",
		},
		[]string{"category"},
	)

	BuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "devindex",
			Name:      "build_duration_seconds",
			Help:      "Index build duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	BuildFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "devindex",
			Name:      "build_failures_total",
			Help:      "Failed index builds by reason",
		},
		[]string{"reason"}, // "source" / "collision" / "other"
	)

	IngestDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "devindex",
			Name:      "ingest_documents_total",
			Help:      "Documents written to or removed from the search engine",
		},
		[]string{"op"}, // "upsert" / "delete" / "unchanged"
	)
)

var registerBuildOnce sync.Once

// RegisterBuildMetrics registers build and ingest metrics. Safe to call more than once.
func RegisterBuildMetrics() {
	registerBuildOnce.Do(func() {
		prometheus.MustRegister(BuildDocuments)
		prometheus.MustRegister(BuildDuration)
		prometheus.MustRegister(BuildFailuresTotal)
		prometheus.MustRegister(IngestDocumentsTotal)
	})
}
