package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhi_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zhi_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EdgeWritesTotal counts edge insert/remove attempts by kind and outcome.
	// Outcome is "applied" when the write changed a row and "noop" when the
	// edge already existed or was already absent.
	EdgeWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhi_edge_writes_total",
		Help: "Total edge write attempts by edge kind, operation, and outcome",
	}, []string{"edge", "operation", "outcome"})

	// PostsCreatedTotal counts created posts by kind.
	PostsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhi_posts_created_total",
		Help: "Total posts created by kind",
	}, []string{"kind"})

	// FeedRequestsTotal counts feed page requests by feed type.
	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhi_feed_requests_total",
		Help: "Total feed page requests by feed type",
	}, []string{"feed"})
)

// RecordEdgeWrite increments the edge write counter for an insert or remove.
func RecordEdgeWrite(edge, operation string, applied bool) {
	outcome := "noop"
	if applied {
		outcome = "applied"
	}
	EdgeWritesTotal.WithLabelValues(edge, operation, outcome).Inc()
}
