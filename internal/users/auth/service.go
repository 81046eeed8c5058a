// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
)

// # Contracts & Types

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int64, role sec.Role) (string, error)
}

// PasswordHasher derives and checks password records.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, record string) bool
	NeedsRehash(record string) bool
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

// Options tunes the failed-login penalty.
type Options struct {
	// BaseDelay is the penalty after the first failure, doubled per further failure.
	BaseDelay time.Duration

	// MaxDelay caps the penalty. Zero disables it.
	MaxDelay time.Duration

	Sleep    Sleeper
	Recorder *metrics.Metrics
}

// Service implements the sign-in and registration use cases.
//
// # Review Process
//
// This service is critical for security. Unknown emails and wrong passwords
// must stay indistinguishable, in the response and in the time it takes.
type Service struct {
	users     UserRepository
	failures  FailureTracker
	hasher    PasswordHasher
	tokens    TokenIssuer
	options   Options
	dummyHash string
}

// NewService constructs a new [Service].
//
// It hashes a throwaway password once, so that logins for unknown emails can
// spend the same time verifying as logins for known ones.
func NewService(users UserRepository, failures FailureTracker, hasher PasswordHasher, tokens TokenIssuer, options Options) (*Service, error) {
	dummyHash, err := hasher.Hash("taakbeheer-dummy-password")
	if err != nil {
		return nil, oops.Code("DUMMY_HASH_FAILED").Wrap(err)
	}
	if options.Sleep == nil {
		options.Sleep = func(context.Context, time.Duration) {}
	}

	return &Service{
		users:     users,
		failures:  failures,
		hasher:    hasher,
		tokens:    tokens,
		options:   options,
		dummyHash: dummyHash,
	}, nil
}

// # Authentication Flow

/*
Login validates credentials and issues a session token.

Description: Looks the account up by email, verifies the password in
constant time, and resets the failure counter on success. Records hashed
with outdated cost parameters are upgraded in place.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - string: Signed session token
  - error: Unauthorized with [MsgLoginFailed], or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (string, error) {
	logger := ctxutil.GetLogger(context)
	key := failureKey(email)

	failures, err := service.failures.Count(context, key)
	if err != nil {
		logger.WarnContext(context, "login_failures_unavailable", slog.Any("error", err))
		failures = 0
	}

	user, err := service.users.FindByEmail(context, email)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindNotFound) {
			return "", err
		}
		// Burn the same argon2 time as a real verification.
		service.hasher.Verify(password, service.dummyHash)
		return "", service.reject(context, key, failures)
	}

	if !service.hasher.Verify(password, user.PasswordHash) {
		return "", service.reject(context, key, failures)
	}

	if failures > 0 {
		if err := service.failures.Reset(context, key); err != nil {
			logger.WarnContext(context, "login_failures_reset_failed", slog.Any("error", err))
		}
	}

	service.upgradeHash(context, user, password)

	token, err := service.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", apperr.Internal(oops.Code("TOKEN_ISSUE_FAILED").With("user_id", user.ID).Wrap(err))
	}

	service.options.Recorder.LoginAttempt("success")
	return token, nil
}

// reject records the failure, holds the caller back and returns the uniform error.
func (service *Service) reject(context context.Context, key string, previous int64) error {
	count, err := service.failures.Increment(context, key)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "login_failures_record_failed", slog.Any("error", err))
		count = previous + 1
	}

	service.options.Sleep(context, service.penalty(count))
	service.options.Recorder.LoginAttempt("failure")
	return apperr.Unauthorized(MsgLoginFailed)
}

// penalty doubles BaseDelay for every failure after the first, capped at MaxDelay.
func (service *Service) penalty(failures int64) time.Duration {
	if failures <= 0 || service.options.MaxDelay <= 0 || service.options.BaseDelay <= 0 {
		return 0
	}

	delay := service.options.BaseDelay
	for i := int64(1); i < failures; i++ {
		delay *= 2
		if delay >= service.options.MaxDelay {
			return service.options.MaxDelay
		}
	}
	return min(delay, service.options.MaxDelay)
}

// upgradeHash re-hashes the password when the record uses outdated parameters.
// A failure is logged and the login still succeeds.
func (service *Service) upgradeHash(context context.Context, user *User, password string) {
	if !service.hasher.NeedsRehash(user.PasswordHash) {
		return
	}

	logger := ctxutil.GetLogger(context)
	hash, err := service.hasher.Hash(password)
	if err != nil {
		logger.WarnContext(context, "password_rehash_failed", slog.Any("error", err))
		return
	}
	if err := service.users.UpdatePasswordHash(context, user.ID, hash); err != nil {
		logger.WarnContext(context, "password_rehash_store_failed", slog.Any("error", err))
		return
	}
	logger.InfoContext(context, "password_rehashed", slog.Int64("user_id", user.ID))
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register creates a regular user account and signs it in.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - string: Signed session token for the new account
  - error: Conflict with [MsgEmailTaken], or internal failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (string, error) {
	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return "", apperr.Internal(oops.Code("PASSWORD_HASH_FAILED").Wrap(err))
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         sec.RoleUser,
	}
	if err := service.users.Create(context, user); err != nil {
		return "", err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_registered", slog.Int64("user_id", user.ID))

	token, err := service.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", apperr.Internal(oops.Code("TOKEN_ISSUE_FAILED").With("user_id", user.ID).Wrap(err))
	}
	return token, nil
}
