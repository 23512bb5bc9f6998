package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// pipeline.
type Metrics struct {
	FeedFetches   *prometheus.CounterVec // labels: source={quote,news,disasters,vulnerabilities}, status={live,simulated}
	FetchDuration *prometheus.HistogramVec

	DashboardBuilds        prometheus.Counter
	DashboardBuildFailures prometheus.Counter
	DashboardBuildDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedFetches,
		m.FetchDuration,
		m.DashboardBuilds,
		m.DashboardBuildFailures,
		m.DashboardBuildDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default
// registry, avoiding "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schain",
			Name:      "feed_fetches_total",
			Help:      "Feed fetch outcomes by source and resulting data status.",
		}, []string{"source", "status"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schain",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Upstream fetch duration per source, fallback path included.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		DashboardBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schain",
			Name:      "dashboard_builds_total",
			Help:      "Total dashboard assemblies served.",
		}),
		DashboardBuildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "schain",
			Name:      "dashboard_build_failures_total",
			Help:      "Dashboard assemblies that failed in an aggregation stage.",
		}),
		DashboardBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schain",
			Name:      "dashboard_build_duration_seconds",
			Help:      "Duration of a complete fan-out and aggregation cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
	}
}
