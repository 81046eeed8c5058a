// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve sessions in middleware.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the token
// implementation, allowing tests to inject a resolver over a test secret.
type SessionResolver interface {
	Resolve(header string) (sec.Session, error)
}

// RequireAuth resolves the Authorization header into a [sec.Session].
//
// # Flow
//  1. Hand the raw 'Authorization' header to the [SessionResolver].
//  2. On failure, abort with HTTP 401 and the resolver's message (expired vs invalid).
//  3. On success, inject the [sec.Session] into the request context.
func RequireAuth(resolver SessionResolver, recorder *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			session, err := resolver.Resolve(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				recorder.AuthFailure(failureReason(err))
				respond.Error(writer, request, err)
				return
			}

			if holder := sessionHolderFrom(request.Context()); holder != nil {
				holder.userID = session.UserID()
			}

			ctx := ctxutil.WithSession(request.Context(), session)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests if the session does not hold role.
//
// # Usage
//
// Must be registered in the router AFTER [RequireAuth].
func RequireRole(role sec.Role, recorder *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if err := sec.RequireRole(ctxutil.GetSession(request.Context()), role); err != nil {
				recorder.AuthFailure(failureReason(err))
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Route Gate

// Gate hands the session middleware to domain handlers, which mount it per
// route with chi's With.
type Gate struct {
	resolver SessionResolver
	recorder *metrics.Metrics
}

// NewGate creates a Gate over resolver. recorder may be nil.
func NewGate(resolver SessionResolver, recorder *metrics.Metrics) *Gate {
	return &Gate{resolver: resolver, recorder: recorder}
}

// Authenticated returns [RequireAuth] bound to the gate's resolver.
func (gate *Gate) Authenticated() func(http.Handler) http.Handler {
	return RequireAuth(gate.resolver, gate.recorder)
}

// Role returns [RequireRole] for role. Mount it after Authenticated.
func (gate *Gate) Role(role sec.Role) func(http.Handler) http.Handler {
	return RequireRole(role, gate.recorder)
}

// failureReason maps a guard or resolver error to a metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, sec.ErrMissingCredentials):
		return "missing"
	case errors.Is(err, sec.ErrInvalidScheme):
		return "scheme"
	case errors.Is(err, sec.ErrTokenExpired):
		return "expired"
	case errors.Is(err, sec.ErrTokenInvalid):
		return "invalid"
	default:
		return "forbidden"
	}
}

// # Session Holder
//
// The logger middleware runs before routing, so it cannot see values that
// route-level middleware adds to the context. It plants a holder instead,
// which [RequireAuth] fills in.

type sessionHolder struct {
	userID int64
}

type holderKey struct{}

func withSessionHolder(ctx context.Context, holder *sessionHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, holder)
}

func sessionHolderFrom(ctx context.Context) *sessionHolder {
	holder, _ := ctx.Value(holderKey{}).(*sessionHolder)
	return holder
}
