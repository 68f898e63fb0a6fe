package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psycenter_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "psycenter_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LoginAttempts is labelled by result: success or failure.
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psycenter_admin_login_attempts_total",
			Help: "Admin login attempts.",
		},
		[]string{"result"},
	)

	// NewsletterMessages counts broadcast deliveries, labelled sent or failed.
	NewsletterMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psycenter_newsletter_messages_total",
			Help: "Newsletter messages handed to the SMTP transport.",
		},
		[]string{"result"},
	)
)
