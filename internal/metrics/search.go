package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voicecart"

// Search branch labels.
const (
	BranchVector = "vector"
	BranchText   = "text"
)

// Degradation reasons.
const (
	ReasonEmbedding = "embedding"
	ReasonTimeout   = "timeout"
)

// Catalog search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of catalog searches by mode",
		},
		[]string{"mode"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Catalog search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	SearchBranchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_branch_results",
			Help:      "Number of candidates returned per hybrid search branch",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
		[]string{"branch"},
	)

	SearchDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_degraded_total",
			Help:      "Hybrid searches served without one branch",
		},
		[]string{"branch", "reason"},
	)

	OrdersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Total number of placed orders",
		},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers catalog search and order metrics. Safe to call repeatedly.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(
			SearchRequestsTotal,
			SearchDuration,
			SearchBranchResults,
			SearchDegradedTotal,
			OrdersTotal,
		)
	})
}
