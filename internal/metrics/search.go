package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and index Prometheus metrics.
var (
	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of sections returned per query",
			Buckets:   []float64{0, 1, 2, 3},
		},
	)

	SearchRelaxationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_relaxations_total",
			Help:      "Queries where the day constraint was dropped after strict filtering found nothing",
		},
	)

	SearchConstraintsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_constraints_total",
			Help:      "Constraint dimensions extracted from queries",
		},
		[]string{"dimension"}, // "year" / "day" / "subject"
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_documents",
			Help:      "Documents in the published index snapshot",
		},
	)

	IndexBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_build_duration_seconds",
			Help:      "Catalog load and index build duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	IndexBuildsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_builds_total",
			Help:      "Index builds by outcome",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search and index metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(SearchRelaxationsTotal)
	prometheus.MustRegister(SearchConstraintsTotal)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(IndexBuildDuration)
	prometheus.MustRegister(IndexBuildsTotal)
	searchMetricsRegistered = true
}
