// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, session tokens and authorization guards.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing, access
// decisions) from the domain logic. Services receive the concrete types at
// construction time. Nothing in here reads configuration from the environment.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Errors

var (
	// ErrTokenExpired is returned for a well-formed, correctly signed token past its expiry.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers malformed tokens, bad signatures and claim mismatches.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// # Claims

// sessionClaims is the payload embedded inside a session token.
//
// The subject carries the numeric user id as a decimal string. The role is
// trusted for the lifetime of the token, so the database is not queried on
// every request.
type sessionClaims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

// Identity is the verified content of a session token.
type Identity struct {
	UserID    int64
	Role      Role
	ExpiresAt time.Time
}

// TokenConfig configures a [TokenService].
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration

	// Now overrides the clock, mainly for expiry tests.
	Now func() time.Time
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("sec: token secret is empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenService{
		secret:   secret,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
		now:      cfg.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(cfg.Now),
		),
	}, nil
}

// Issue creates a signed token for the given user and role.
func (service *TokenService) Issue(userID int64, role Role) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("sec: cannot issue token for user id %d", userID)
	}
	if !role.Valid() {
		return "", fmt.Errorf("sec: cannot issue token for role %q", role)
	}

	issuedAt := service.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.ttl)),
		},
		Role: string(role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, audience and expiry.
//
// It returns [ErrTokenExpired] only when expiry is the sole problem of the
// token. Every other failure wraps [ErrTokenInvalid].
func (service *TokenService) Verify(token string) (Identity, error) {
	claims := &sessionClaims{}
	_, err := service.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return service.secret, nil
	})
	if err != nil {
		return Identity{}, mapJWTError(err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, fmt.Errorf("%w: subject is not a user id", ErrTokenInvalid)
	}

	role, ok := ParseRole(claims.Role)
	if !ok {
		return Identity{}, fmt.Errorf("%w: unknown role", ErrTokenInvalid)
	}

	return Identity{UserID: userID, Role: role, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// mapJWTError translates jwt library errors into the two token failure classes.
func mapJWTError(err error) error {
	invalid := []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenInvalidIssuer,
		jwt.ErrTokenInvalidAudience,
		jwt.ErrTokenUsedBeforeIssued,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenRequiredClaimMissing,
	}
	for _, target := range invalid {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
		}
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
}
