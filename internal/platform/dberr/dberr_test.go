// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
)

var userOptions = dberr.Options{
	Resource:    "User",
	Constraints: map[string]string{"users_email_key": "There is already a user with this email address"},
}

/*
TestWrap covers the classification of storage errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    apperr.Kind
		message string
	}{
		{"no rows", pgx.ErrNoRows, apperr.KindNotFound, "No user with this id exists"},
		{"neutral no rows", fmt.Errorf("get: %w", dberr.ErrNoRows), apperr.KindNotFound, "No user with this id exists"},
		{"unique with message", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"},
			apperr.KindConflict, "There is already a user with this email address"},
		{"unique without message", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "other_key"},
			apperr.KindConflict, dberr.MsgDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "tasks_project_id_fkey"},
			apperr.KindConflict, dberr.MsgReferenceFailed},
		{"neutral unique", &dberr.ConstraintError{Constraint: "users_email_key"},
			apperr.KindConflict, "There is already a user with this email address"},
		{"neutral reference", &dberr.ConstraintError{Constraint: "x_fkey", Reference: true},
			apperr.KindConflict, dberr.MsgReferenceFailed},
		{"syntax error", &pgconn.PgError{Code: pgerrcode.SyntaxError, Message: "syntax error"}, apperr.KindInternal, ""},
		{"connection refused", errors.New("connection refused"), apperr.KindInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dberr.Wrap(tt.err, "get user", userOptions)

			appError, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, appError.Kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, appError.Message)
			}
		})
	}
}

/*
TestWrap_InternalCarriesContext verifies that internal errors keep the action for logging.
*/
func TestWrap_InternalCarriesContext(t *testing.T) {
	err := dberr.Wrap(errors.New("connection reset"), "list projects", dberr.Options{})

	oopsError, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, "list projects", oopsError.Context()["action"])
	assert.ErrorContains(t, err, "connection reset")
}

/*
TestWrap_PassThrough verifies nil and already classified errors are untouched.
*/
func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop", dberr.Options{}))

	forbidden := apperr.Forbidden("no")
	assert.Same(t, forbidden, dberr.Wrap(forbidden, "noop", dberr.Options{}))
}
