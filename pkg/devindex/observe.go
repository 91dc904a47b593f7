package devindex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/devindex/internal/domain/search/request"
)

// Selection labels: how many categories a search was restricted to.
const (
	selectionAll    = "all"
	selectionSingle = "single"
	selectionMulti  = "multi"
)

// sdkMetrics holds the search metrics registered for the SDK.
type sdkMetrics struct {
	searches *prometheus.CounterVec
	duration *prometheus.HistogramVec
	hits     prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "devindex",
			Subsystem: "sdk",
			Name:      "searches_total",
			Help:      "SDK searches by category selection and outcome.",
		}, []string{"selection", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "devindex",
			Subsystem: "sdk",
			Name:      "search_duration_seconds",
			Help:      "SDK search round-trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"selection"}),
		hits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "devindex",
			Subsystem: "sdk",
			Name:      "page_hits",
			Help:      "Hits returned per SDK search page.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}),
	}
	if err := registerOrReuse(reg, &m.searches); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.hits); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("devindex: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("devindex: register metric: %w", err)
	}
	return nil
}

// searchEvent is one finished Client.Search call.
type searchEvent struct {
	query      string
	page       int
	categories []string
	// params is zero when planning failed.
	params request.Params
	result Page
	err    error
}

func (e searchEvent) selection() string {
	switch len(e.categories) {
	case 0:
		return selectionAll
	case 1:
		return selectionSingle
	default:
		return selectionMulti
	}
}

// outcome classifies err by the sentinel it wraps.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrQueryService):
		return "service_error"
	default:
		return "error"
	}
}

// observer logs and counts SDK searches. A nil observer does nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observeSearch(start time.Time, e searchEvent) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	sel := e.selection()

	if o.metrics != nil {
		o.metrics.searches.WithLabelValues(sel, outcome(e.err)).Inc()
		o.metrics.duration.WithLabelValues(sel).Observe(dur.Seconds())
		if e.err == nil {
			o.metrics.hits.Observe(float64(len(e.result.Hits)))
		}
	}

	if o.logger == nil {
		return
	}
	args := []any{
		"query", e.query,
		"page", e.page,
		"categories", e.categories,
		"filter", e.params.Filter.String(),
		"duration", dur,
	}
	if e.err != nil {
		o.logger.Warn("search failed", append(args, "outcome", outcome(e.err), "error", e.err)...)
		return
	}
	o.logger.Debug("search completed",
		append(args, "hits", len(e.result.Hits), "total", e.result.Total, "has_more", e.result.HasMore)...)
}
