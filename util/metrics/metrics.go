// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// HTTPRequestsTotal counts served requests by route template and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "quill",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	// LoginAttempts counts login form submissions by outcome (success, failure).
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "login_attempts_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	PostsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "posts_created_total",
		Help:      "Posts written since start.",
	})

	UsersRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "quill",
		Name:      "users_registered_total",
		Help:      "Accounts created since start.",
	})
)

// NewRegistry returns a registry holding every collector of this package
// plus the Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LoginAttempts,
		PostsCreated,
		UsersRegistered,
	)
	return reg
}
