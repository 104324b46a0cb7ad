package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kiteflow"

// Metrics holds the Prometheus collectors for the aggregation pipeline.
type Metrics struct {
	// Upstream metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source, outcome={success,error,circuit_open}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	Fallbacks        *prometheus.CounterVec   // labels: source={weather,tides}

	// Pipeline metrics.
	PipelineRuns     *prometheus.CounterVec // labels: outcome={accepted,superseded,not_found}
	PipelineDuration prometheus.Histogram

	// Geocoding cache.
	GeocodeCache *prometheus.CounterVec // labels: result={hit,miss}
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream API requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Loads served from synthetic data because the live source failed.",
		}, []string{"source"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Aggregation pipeline runs by outcome.",
		}, []string{"outcome"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of a full geocode-fetch-derive run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.Fallbacks,
		m.PipelineRuns,
		m.PipelineDuration,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as many
// as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
