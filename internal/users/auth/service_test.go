// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/memstore"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

var weakParams = sec.HashParams{KeyLength: 16, TimeCost: 1, MemoryCost: 1 << 10, Parallelism: 1}

var testParams = sec.HashParams{KeyLength: 16, TimeCost: 2, MemoryCost: 1 << 12, Parallelism: 1}

type fixture struct {
	service *auth.Service
	users   *memstore.UserStore
	tokens  *sec.TokenService
	hasher  *sec.PasswordHasher
	slept   []time.Duration
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hasher, err := sec.NewPasswordHasher(testParams)
	require.NoError(t, err)
	tokens, err := sec.NewTokenService(sec.TokenConfig{Secret: []byte("auth-test-secret"), Issuer: "test", Audience: "test", TTL: time.Hour})
	require.NoError(t, err)

	f := &fixture{users: memstore.New().Users(), tokens: tokens, hasher: hasher}
	f.service, err = auth.NewService(f.users, auth.NewMemoryFailureTracker(time.Minute), hasher, tokens, auth.Options{
		BaseDelay: 100 * time.Millisecond,
		MaxDelay:  time.Second,
		Sleep:     func(_ context.Context, d time.Duration) { f.slept = append(f.slept, d) },
		Recorder:  metrics.New(),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) register(t *testing.T, email, password string) int64 {
	t.Helper()
	token, err := f.service.Register(context.Background(), auth.RegisterInput{Username: "ana", Email: email, Password: password})
	require.NoError(t, err)

	identity, err := f.tokens.Verify(token)
	require.NoError(t, err)
	return identity.UserID
}

/*
TestService_Login verifies a valid login yields a token for the account and role.
*/
func TestService_Login(t *testing.T) {
	f := newFixture(t)
	id := f.register(t, "ana@example.com", "correct horse battery")

	token, err := f.service.Login(context.Background(), "ana@example.com", "correct horse battery")
	require.NoError(t, err)

	identity, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, identity.UserID)
	assert.Equal(t, sec.RoleUser, identity.Role)
	assert.Empty(t, f.slept)
}

/*
TestService_Login_Rejections verifies unknown email and wrong password are indistinguishable.
*/
func TestService_Login_Rejections(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com", "correct horse battery")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "ana@example.com", "wrong horse battery"},
		{"unknown email", "nobody@example.com", "correct horse battery"},
		{"empty password", "ana@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := f.service.Login(context.Background(), tt.email, tt.password)
			assert.Empty(t, token)

			appError, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindUnauthorized, appError.Kind)
			assert.Equal(t, auth.MsgLoginFailed, appError.Message)
		})
	}
}

/*
TestService_Login_Penalty verifies the doubling delay, its ceiling and the reset on success.
*/
func TestService_Login_Penalty(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com", "correct horse battery")
	ctx := context.Background()

	for range 6 {
		_, err := f.service.Login(ctx, "Ana@Example.com", "wrong")
		require.Error(t, err)
	}
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
		time.Second,
	}, f.slept)

	_, err := f.service.Login(ctx, "ana@example.com", "correct horse battery")
	require.NoError(t, err)

	f.slept = nil
	_, err = f.service.Login(ctx, "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, f.slept)
}

/*
TestService_Login_Rehash verifies records with outdated parameters are upgraded on login.
*/
func TestService_Login_Rehash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	weak, err := sec.NewPasswordHasher(weakParams)
	require.NoError(t, err)
	record, err := weak.Hash("correct horse battery")
	require.NoError(t, err)

	user := &auth.User{Username: "old", Email: "old@example.com", PasswordHash: record, Role: sec.RoleAdmin}
	require.NoError(t, f.users.Create(ctx, user))
	require.True(t, f.hasher.NeedsRehash(record))

	token, err := f.service.Login(ctx, "old@example.com", "correct horse battery")
	require.NoError(t, err)

	identity, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, identity.Role)

	stored, err := f.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, record, stored.PasswordHash)
	assert.False(t, f.hasher.NeedsRehash(stored.PasswordHash))
	assert.True(t, f.hasher.Verify("correct horse battery", stored.PasswordHash))
}

/*
TestService_Register verifies new accounts get the user role and emails stay unique.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.register(t, "ana@example.com", "correct horse battery")

	stored, err := f.users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, stored.Role)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)

	_, err = f.service.Register(ctx, auth.RegisterInput{Username: "other", Email: "ana@example.com", Password: "another password"})
	appError, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appError.Kind)
	assert.Equal(t, auth.MsgEmailTaken, appError.Message)
}
