// Package observability holds Prometheus metrics and OpenTelemetry tracing
// setup for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ModerationActions counts lifecycle transitions applied by moderators.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_moderation_actions_total",
		Help: "Total moderation actions by action type",
	}, []string{"action"})

	// PostViews counts view increments recorded through slug reads.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total post view increments",
	})

	// PostsCreated counts submissions entering the pending queue.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_posts_created_total",
		Help: "Total posts submitted for moderation",
	})
)
