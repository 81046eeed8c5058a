// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, pacing limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Login Pacing: per-IP token bucket and failure tracking windows.
  - Headers: names of the HTTP headers the middleware reads and writes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "taakbeheer-api"
	AppVersion = "0.1.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// It must exceed the login delay ceiling plus password hashing time.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 25 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// DependencyCheckTimeout bounds each readiness probe.
	DependencyCheckTimeout = 2 * time.Second
)

// # Login Pacing

const (
	// AuthPacingRPS is the sustained rate of credential requests per IP.
	AuthPacingRPS = 1.0

	// AuthPacingBurst is the number of credential requests an IP may send without waiting.
	AuthPacingBurst = 5

	// AuthPacingMaxWait caps how long a single request is held back by pacing.
	AuthPacingMaxWait = 5 * time.Second

	// PacingCleanupInterval is how often idle IP entries are removed from memory.
	PacingCleanupInterval = 1 * time.Minute

	// PacingClientTTL is how long a client must be idle before its entry is deleted.
	PacingClientTTL = 3 * time.Minute

	// LoginFailureWindow is how long failed logins for an email are remembered.
	LoginFailureWindow = 15 * time.Minute

	// LoginFailureBaseDelay is the penalty after the first failed login, doubled per further failure.
	LoginFailureBaseDelay = 250 * time.Millisecond
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
)

// # Redis Prefixes

const (
	RedisPrefixLoginFailures = "auth:login_failures:"
)
