// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthRejections counts rejected credentials by pipeline stage. The HTTP
	// response stays uniformly 401; the breakdown exists server-side only.
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_auth_rejections_total",
		Help: "Total number of rejected credentials by validation stage",
	}, []string{"stage"})

	// FollowMutations counts follow-graph mutations by operation and outcome.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_mutations_total",
		Help: "Total number of follow graph mutations",
	}, []string{"operation", "outcome"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
