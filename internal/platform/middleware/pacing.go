// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

// ContextSleep is the production [Sleeper].
func ContextSleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// # Login Delay

// AuthDelay holds credential requests back for a random duration in [0, maxDelay).
//
// Login and registration responses then take a similar amount of time whether
// the account exists or not. A zero maxDelay disables the delay.
func AuthDelay(maxDelay time.Duration, sleep Sleeper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if maxDelay > 0 {
				sleep(request.Context(), rand.N(maxDelay))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Credential Pacing

type pacingClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Pacer slows down clients sending many credential requests, using one token
// bucket per IP. Unlike a rate limiter it never rejects: a request that would
// exceed the bucket waits, at most maxWait.
type Pacer struct {
	mu      sync.Mutex
	clients map[string]*pacingClient
	limit   rate.Limit
	burst   int
	maxWait time.Duration
	sleep   Sleeper
	now     func() time.Time
}

// NewPacer creates a Pacer and starts its cleanup routine, which stops with ctx.
func NewPacer(ctx context.Context, perSecond float64, burst int, maxWait time.Duration, sleep Sleeper) *Pacer {
	pacer := &Pacer{
		clients: make(map[string]*pacingClient),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		maxWait: maxWait,
		sleep:   sleep,
		now:     time.Now,
	}

	// Start a background cleanup routine that respects context cancellation
	go func() {
		ticker := time.NewTicker(constants.PacingCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				pacer.evictIdle(constants.PacingClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return pacer
}

// Delay reserves a token for ip and returns how long the request must wait.
func (pacer *Pacer) Delay(ip string) time.Duration {
	pacer.mu.Lock()
	defer pacer.mu.Unlock()

	now := pacer.now()
	client, found := pacer.clients[ip]
	if !found {
		client = &pacingClient{limiter: rate.NewLimiter(pacer.limit, pacer.burst)}
		pacer.clients[ip] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return pacer.maxWait
	}

	delay := reservation.DelayFrom(now)
	if delay > pacer.maxWait {
		// Give the token back so a flood does not push later requests further out.
		reservation.CancelAt(now)
		return pacer.maxWait
	}
	return delay
}

// Middleware applies the pacing delay to every request it wraps.
func (pacer *Pacer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		pacer.sleep(request.Context(), pacer.Delay(ClientIP(request)))
		next.ServeHTTP(writer, request)
	})
}

func (pacer *Pacer) evictIdle(ttl time.Duration) {
	pacer.mu.Lock()
	defer pacer.mu.Unlock()

	now := pacer.now()
	for ip, client := range pacer.clients {
		if now.Sub(client.lastSeen) > ttl {
			delete(pacer.clients, ip)
		}
	}
}
