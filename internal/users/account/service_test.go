// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/memstore"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/account"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

type fixture struct {
	users    *memstore.UserStore
	service  *account.Service
	tokens   *sec.TokenService
	resolver *sec.SessionResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{Secret: []byte("account-test-secret"), Issuer: "test", Audience: "test", TTL: time.Hour})
	require.NoError(t, err)

	users := memstore.New().Users()
	return &fixture{
		users:    users,
		service:  account.NewService(users, plainHasher{}),
		tokens:   tokens,
		resolver: sec.NewSessionResolver(tokens),
	}
}

func (f *fixture) user(t *testing.T, email string, role sec.Role) (*auth.User, sec.Session) {
	t.Helper()
	user := &auth.User{Username: "name", Email: email, PasswordHash: "hashed:old", Role: role}
	require.NoError(t, f.users.Create(context.Background(), user))

	token, err := f.tokens.Issue(user.ID, role)
	require.NoError(t, err)
	session, err := f.resolver.Resolve("Bearer " + token)
	require.NoError(t, err)
	return user, session
}

func kindOf(err error) apperr.Kind {
	if appError, ok := apperr.As(err); ok {
		return appError.Kind
	}
	return 0
}

/*
TestService_Get verifies owners and administrators may read an account, others may not.
*/
func TestService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana, anaSession := f.user(t, "ana@example.com", sec.RoleUser)
	bob, bobSession := f.user(t, "bob@example.com", sec.RoleUser)
	_, adminSession := f.user(t, "admin@example.com", sec.RoleAdmin)

	got, err := f.service.Get(ctx, anaSession, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = f.service.Get(ctx, bobSession, ana.ID)
	assert.Equal(t, apperr.KindForbidden, kindOf(err))

	got, err = f.service.Get(ctx, adminSession, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = f.service.Get(ctx, adminSession, 9999)
	assert.Equal(t, apperr.KindNotFound, kindOf(err))

	// A regular user probing an unknown id learns nothing about it.
	_, err = f.service.Get(ctx, anaSession, 9999)
	assert.Equal(t, apperr.KindForbidden, kindOf(err))
}

/*
TestService_List verifies that only administrators list accounts.
*/
func TestService_List(t *testing.T) {
	f := newFixture(t)
	_, userSession := f.user(t, "ana@example.com", sec.RoleUser)
	_, adminSession := f.user(t, "admin@example.com", sec.RoleAdmin)

	_, err := f.service.List(context.Background(), userSession)
	assert.Equal(t, apperr.KindForbidden, kindOf(err))

	users, err := f.service.List(context.Background(), adminSession)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

/*
TestService_Update verifies field changes, password hashing and the role restriction.
*/
func TestService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana, anaSession := f.user(t, "ana@example.com", sec.RoleUser)
	_, adminSession := f.user(t, "admin@example.com", sec.RoleAdmin)

	username, password := "ana2", "a brand new password"
	updated, err := f.service.Update(ctx, anaSession, ana.ID, account.UpdateInput{Username: &username, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "ana2", updated.Username)
	assert.Equal(t, "hashed:a brand new password", updated.PasswordHash)

	admin := sec.RoleAdmin
	_, err = f.service.Update(ctx, anaSession, ana.ID, account.UpdateInput{Role: &admin})
	appError, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindForbidden, appError.Kind)
	assert.Equal(t, account.MsgRoleChangeForbidden, appError.Message)

	updated, err = f.service.Update(ctx, adminSession, ana.ID, account.UpdateInput{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)

	taken := "admin@example.com"
	_, err = f.service.Update(ctx, anaSession, ana.ID, account.UpdateInput{Email: &taken})
	assert.Equal(t, apperr.KindConflict, kindOf(err))
}

/*
TestService_Delete verifies self-deletion and the refusal for other accounts.
*/
func TestService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana, anaSession := f.user(t, "ana@example.com", sec.RoleUser)
	bob, _ := f.user(t, "bob@example.com", sec.RoleUser)

	assert.Equal(t, apperr.KindForbidden, kindOf(f.service.Delete(ctx, anaSession, bob.ID)))
	require.NoError(t, f.service.Delete(ctx, anaSession, ana.ID))

	_, err := f.users.FindByID(ctx, ana.ID)
	assert.Equal(t, apperr.KindNotFound, kindOf(err))
}
