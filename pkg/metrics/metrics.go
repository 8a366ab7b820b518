package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeFailed  = "failed"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RegistrationsTotal counts citizen registrations by outcome
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citizen_registrations_total",
			Help: "Total number of citizen registration attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveRegistration records one registration attempt outcome
func ObserveRegistration(outcome string) {
	RegistrationsTotal.WithLabelValues(outcome).Inc()
}
