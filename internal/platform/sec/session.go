// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"strings"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
)

// # Session

// Session is the per-request identity derived from a verified token.
//
// Its fields are unexported: the only way to obtain a non-zero Session is
// [SessionResolver.Resolve]. The zero value means "not authenticated".
type Session struct {
	userID int64
	role   Role
}

// UserID returns the numeric subject of the token.
func (s Session) UserID() int64 { return s.userID }

// Role returns the role claimed by the token.
func (s Session) Role() Role { return s.role }

// IsZero reports whether s is the unauthenticated zero value.
func (s Session) IsZero() bool { return s.userID == 0 }

// IsAdmin is shorthand for s.Role() == RoleAdmin.
func (s Session) IsAdmin() bool { return !s.IsZero() && s.role == RoleAdmin }

// # Resolver

// Messages returned to clients for authentication failures.
const (
	MsgSignInRequired = "You need to be signed in"
	MsgInvalidToken   = "Invalid authentication token"
	MsgTokenExpired   = "The token has expired"
)

var (
	// ErrMissingCredentials is the cause recorded when no Authorization header was sent.
	ErrMissingCredentials = errors.New("sec: missing credentials")

	// ErrInvalidScheme is the cause recorded when the header is not "Bearer <token>".
	ErrInvalidScheme = errors.New("sec: invalid authorization scheme")
)

// TokenVerifier defines the contract for verifying session tokens.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// SessionResolver turns an Authorization header value into a [Session].
type SessionResolver struct {
	verifier TokenVerifier
}

// NewSessionResolver creates a resolver delegating token checks to verifier.
func NewSessionResolver(verifier TokenVerifier) *SessionResolver {
	return &SessionResolver{verifier: verifier}
}

// Resolve parses header and verifies the bearer token it carries.
//
// Every failure is an Unauthorized [apperr.AppError] whose cause is one of
// [ErrMissingCredentials], [ErrInvalidScheme], [ErrTokenExpired] or [ErrTokenInvalid].
func (resolver *SessionResolver) Resolve(header string) (Session, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Session{}, apperr.UnauthorizedCause(MsgSignInRequired, ErrMissingCredentials)
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || scheme != "Bearer" || token == "" {
		return Session{}, apperr.UnauthorizedCause(MsgInvalidToken, ErrInvalidScheme)
	}

	identity, err := resolver.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return Session{}, apperr.UnauthorizedCause(MsgTokenExpired, ErrTokenExpired)
		}
		return Session{}, apperr.UnauthorizedCause(MsgInvalidToken, err)
	}

	if identity.UserID <= 0 || !identity.Role.Valid() {
		return Session{}, apperr.UnauthorizedCause(MsgInvalidToken, ErrTokenInvalid)
	}

	return Session{userID: identity.UserID, role: identity.Role}, nil
}
