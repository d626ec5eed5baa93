// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relationship kinds used as metric labels.
const (
	KindLike   = "like"
	KindFollow = "follow"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_lite_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "social_lite_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ToggleTotal counts completed toggles by relationship kind and resulting state.
	ToggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_lite_toggle_total",
		Help: "Completed relationship toggles by kind and resulting state",
	}, []string{"kind", "state"})

	// ToggleRetries counts toggle attempts that lost an insert race and were retried.
	ToggleRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_lite_toggle_retries_total",
		Help: "Toggle attempts retried after a concurrent insert",
	}, []string{"kind"})

	// SessionsRevoked counts logouts that revoked a session token.
	SessionsRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_lite_sessions_revoked_total",
		Help: "Session tokens revoked at logout",
	})
)

// RecordToggle increments the toggle counter for the final state.
func RecordToggle(kind string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	ToggleTotal.WithLabelValues(kind, state).Inc()
}
