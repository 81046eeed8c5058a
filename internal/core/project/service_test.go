// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/core/project"
	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/memstore"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

func newSessions(t *testing.T, db *memstore.DB, roles ...sec.Role) []sec.Session {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{Secret: []byte("project-test-secret"), Issuer: "test", Audience: "test", TTL: time.Hour})
	require.NoError(t, err)
	resolver := sec.NewSessionResolver(tokens)

	sessions := make([]sec.Session, 0, len(roles))
	for index, role := range roles {
		user := &auth.User{Username: "u", Email: string(rune('a'+index)) + "@example.com", PasswordHash: "x", Role: role}
		require.NoError(t, db.Users().Create(context.Background(), user))

		token, err := tokens.Issue(user.ID, role)
		require.NoError(t, err)
		session, err := resolver.Resolve("Bearer " + token)
		require.NoError(t, err)
		sessions = append(sessions, session)
	}
	return sessions
}

func kindOf(err error) apperr.Kind {
	if appError, ok := apperr.As(err); ok {
		return appError.Kind
	}
	return 0
}

/*
TestService_Ownership verifies that only the owner and administrators reach a project.
*/
func TestService_Ownership(t *testing.T) {
	db := memstore.New()
	service := project.NewService(db.Projects())
	ctx := context.Background()
	sessions := newSessions(t, db, sec.RoleUser, sec.RoleUser, sec.RoleAdmin)
	owner, stranger, admin := sessions[0], sessions[1], sessions[2]

	description := "   "
	created, err := service.Create(ctx, owner, project.CreateInput{Name: "home", Description: &description})
	require.NoError(t, err)
	assert.Equal(t, owner.UserID(), created.OwnerID)
	assert.Nil(t, created.Description)

	_, err = service.Get(ctx, stranger, created.ID)
	assert.Equal(t, apperr.KindForbidden, kindOf(err))

	_, err = service.Get(ctx, admin, created.ID)
	require.NoError(t, err)

	_, err = service.Get(ctx, owner, 9999)
	assert.Equal(t, apperr.KindNotFound, kindOf(err))

	assert.Equal(t, apperr.KindForbidden, kindOf(service.Delete(ctx, stranger, created.ID)))
}

/*
TestService_List verifies users see their own projects and administrators see all.
*/
func TestService_List(t *testing.T) {
	db := memstore.New()
	service := project.NewService(db.Projects())
	ctx := context.Background()
	sessions := newSessions(t, db, sec.RoleUser, sec.RoleUser, sec.RoleAdmin)

	for _, session := range sessions[:2] {
		_, err := service.Create(ctx, session, project.CreateInput{Name: "mine"})
		require.NoError(t, err)
	}

	own, err := service.List(ctx, sessions[0])
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, sessions[0].UserID(), own[0].OwnerID)

	all, err := service.List(ctx, sessions[2])
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = service.List(ctx, sec.Session{})
	assert.Equal(t, apperr.KindUnauthorized, kindOf(err))
}

/*
TestService_Update verifies renaming and clearing the description.
*/
func TestService_Update(t *testing.T) {
	db := memstore.New()
	service := project.NewService(db.Projects())
	ctx := context.Background()
	owner := newSessions(t, db, sec.RoleUser)[0]

	description := "chores"
	created, err := service.Create(ctx, owner, project.CreateInput{Name: "home", Description: &description})
	require.NoError(t, err)

	name := "house"
	updated, err := service.Update(ctx, owner, created.ID, project.UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "house", updated.Name)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "chores", *updated.Description)

	updated, err = service.Update(ctx, owner, created.ID, project.UpdateInput{SetDescription: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
}
