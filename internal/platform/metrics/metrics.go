package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the chart pipeline.
type Metrics struct {
	// Charts computed by layer type.
	ChartsComputed *prometheus.CounterVec

	// Full pipeline compute latency (cache misses only).
	ComputeDuration prometheus.Histogram

	// Cache outcomes.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Per-body ephemeris failures recovered inside a request.
	BodyFailures prometheus.Counter

	// Iterations the 88-degree converger needed.
	HDIterations prometheus.Histogram
}

// New creates and registers all pipeline metrics.
func New() *Metrics {
	return &Metrics{
		ChartsComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_charts_computed_total",
			Help: "Total feature collections computed, by layer type",
		}, []string{"layer"}),

		ComputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meridian_chart_compute_duration_seconds",
			Help:    "Duration of full chart pipeline computation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meridian_cache_hits_total",
			Help: "Chart cache hits",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meridian_cache_misses_total",
			Help: "Chart cache misses",
		}),

		BodyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meridian_body_failures_total",
			Help: "Per-body ephemeris failures recovered within a request",
		}),

		HDIterations: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "meridian_hd_iterations",
			Help:    "Iterations used by the 88-degree solar-arc converger",
			Buckets: []float64{1, 2, 3, 4, 5, 7, 10, 15, 20},
		}),
	}
}

// IncrementChartsComputed records a computed chart for a layer.
func (m *Metrics) IncrementChartsComputed(layer string) {
	if m != nil {
		m.ChartsComputed.WithLabelValues(layer).Inc()
	}
}

// ObserveComputeDuration records a full pipeline computation.
func (m *Metrics) ObserveComputeDuration(d time.Duration) {
	if m != nil {
		m.ComputeDuration.Observe(d.Seconds())
	}
}

// IncrementCacheHit records a cache hit.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

// IncrementCacheMiss records a cache miss.
func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}

// IncrementBodyFailure records a recovered per-body failure.
func (m *Metrics) IncrementBodyFailure() {
	if m != nil {
		m.BodyFailures.Inc()
	}
}

// ObserveHDIterations records a converger run.
func (m *Metrics) ObserveHDIterations(n int) {
	if m != nil {
		m.HDIterations.Observe(float64(n))
	}
}
