// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
)

/*
TestKind_Codes verifies that unknown kinds fall back to the internal mapping.
*/
func TestKind_Codes(t *testing.T) {
	assert.Equal(t, 409, apperr.KindConflict.Status())
	assert.Equal(t, "CONFLICT", apperr.KindConflict.Code())
	assert.Equal(t, 500, apperr.Kind(99).Status())
	assert.Equal(t, "INTERNAL_SERVER_ERROR", apperr.Kind(99).Code())
}

/*
TestAppError_Chain verifies errors.Is and errors.As through wrapped app errors.
*/
func TestAppError_Chain(t *testing.T) {
	sentinel := errors.New("token expired")
	err := fmt.Errorf("resolve: %w", apperr.UnauthorizedCause("The token has expired", sentinel))

	appError, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUnauthorized, appError.Kind)
	assert.ErrorIs(t, err, sentinel)
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	assert.False(t, apperr.IsKind(errors.New("plain"), apperr.KindUnauthorized))
}

/*
TestAppError_Stack verifies that the constructor call site is recorded.
*/
func TestAppError_Stack(t *testing.T) {
	stack := apperr.Conflict("duplicate").Stack()

	assert.Contains(t, stack, "CONFLICT: duplicate")
	assert.Contains(t, stack, "apperr_test.TestAppError_Stack")
	assert.NotContains(t, stack, "apperr.newError")
}

/*
TestNotFound_Message verifies the resource message format.
*/
func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "No user with this id exists", apperr.NotFound("User").Error())
}
