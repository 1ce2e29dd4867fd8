package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts records authentication attempts by result (success|failure).
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// HonorsGranted counts honor grants per honor type name.
	HonorsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_honors_granted_total",
			Help: "Total number of honors granted",
		},
		[]string{"honor_type"},
	)

	// WishesPosted counts wishes appended to honors.
	WishesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_wishes_posted_total",
			Help: "Total number of wishes posted",
		},
	)

	// ChatMessages counts posted chat messages by delivery kind (direct|broadcast).
	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_chat_messages_total",
			Help: "Total number of chat messages persisted",
		},
		[]string{"kind"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
