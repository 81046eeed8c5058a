// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

var userRowColumns = []string{"id", "username", "email", "password_hash", "role"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

/*
TestPostgresUserRepository_FindByEmail verifies scanning and the NotFound mapping.
*/
func TestPostgresUserRepository_FindByEmail(t *testing.T) {
	mock := newMock(t)
	repository := auth.NewUserRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, role FROM users WHERE email`).
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(int64(4), "ana", "ana@example.com", "$argon2id$x", "admin"))

	user, err := repository.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), user.ID)
	assert.Equal(t, sec.RoleAdmin, user.Role)

	mock.ExpectQuery(`FROM users WHERE email`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err = repository.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

/*
TestPostgresUserRepository_Create verifies the returned id and the duplicate email message.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repository := auth.NewUserRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ana", "ana@example.com", "hash", "user").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))

	user := &auth.User{Username: "ana", Email: "ana@example.com", PasswordHash: "hash", Role: sec.RoleUser}
	require.NoError(t, repository.Create(ctx, user))
	assert.Equal(t, int64(9), user.ID)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ana", "ana@example.com", "hash", "user").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: auth.ConstraintUserEmail})

	err := repository.Create(ctx, &auth.User{Username: "ana", Email: "ana@example.com", PasswordHash: "hash", Role: sec.RoleUser})
	appError, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindConflict, appError.Kind)
	assert.Equal(t, auth.MsgEmailTaken, appError.Message)
}

/*
TestPostgresUserRepository_Delete verifies that deleting a missing row is a NotFound.
*/
func TestPostgresUserRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repository := auth.NewUserRepository(mock)

	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(4)).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repository.Delete(context.Background(), 3))
	err := repository.Delete(context.Background(), 4)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
