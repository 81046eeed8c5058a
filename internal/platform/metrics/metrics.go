// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics exposes Prometheus instrumentation for the API.
//
// A [Metrics] value owns its own registry, so tests can create as many as they
// like without colliding on the global default registry. A nil *Metrics is a
// valid no-op recorder.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of the API server.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
	loginAttempts   *prometheus.CounterVec
}

// New creates a Metrics value with a fresh registry including Go and process collectors.
func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taakbeheer_http_requests_total",
			Help: "Total number of HTTP requests by method, route pattern and status",
		}, []string{"method", "route", "status"}),

		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taakbeheer_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taakbeheer_auth_failures_total",
			Help: "Rejected authentications and authorizations by reason",
		}, []string{"reason"}),

		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taakbeheer_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.requestsTotal,
		metrics.requestDuration,
		metrics.authFailures,
		metrics.loginAttempts,
	)
	return metrics
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	if metrics == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (metrics *Metrics) Registry() *prometheus.Registry {
	if metrics == nil {
		return nil
	}
	return metrics.registry
}

// ObserveRequest records one finished HTTP request.
func (metrics *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	metrics.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AuthFailure counts a rejected request. Reasons are a small fixed set
// such as "missing", "invalid", "expired" and "forbidden".
func (metrics *Metrics) AuthFailure(reason string) {
	if metrics == nil {
		return
	}
	metrics.authFailures.WithLabelValues(reason).Inc()
}

// LoginAttempt counts a login by outcome ("success" or "failure").
func (metrics *Metrics) LoginAttempt(outcome string) {
	if metrics == nil {
		return
	}
	metrics.loginAttempts.WithLabelValues(outcome).Inc()
}
