// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
)

/*
TestMap_KindTable verifies the fixed status and code of every kind.
*/
func TestMap_KindTable(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.ValidationFailed("bad", nil), http.StatusBadRequest, "VALIDATION_FAILED"},
		{apperr.Unauthorized("who"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperr.Forbidden("no"), http.StatusForbidden, "FORBIDDEN"},
		{apperr.NotFound("Project"), http.StatusNotFound, "NOT_FOUND"},
		{apperr.Conflict("dup"), http.StatusConflict, "CONFLICT"},
		{apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{errors.New("plain"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{fmt.Errorf("wrapped: %w", apperr.Forbidden("no")), http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, body := respond.Map(tt.err, false)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

/*
TestMap_Production verifies that production responses hide stacks and internal messages.
*/
func TestMap_Production(t *testing.T) {
	_, body := respond.Map(apperr.Internal(errors.New("pq: relation users does not exist")), false)
	assert.Equal(t, respond.MsgInternalProduction, body.Message)
	assert.Empty(t, body.Stack)

	_, body = respond.Map(apperr.NotFound("Task"), false)
	assert.Equal(t, "No task with this id exists", body.Message)
	assert.Empty(t, body.Stack)
}

/*
TestMap_Verbose verifies that development responses carry the cause and a stack.
*/
func TestMap_Verbose(t *testing.T) {
	_, body := respond.Map(apperr.Internal(errors.New("disk on fire")), true)
	assert.Equal(t, "disk on fire", body.Message)
	assert.Contains(t, body.Stack, "respond_test")

	_, body = respond.Map(apperr.Internal(oops.Code("STORE_FAILED").Errorf("query failed")), true)
	assert.NotEmpty(t, body.Stack)

	_, body = respond.Map(apperr.Forbidden("nope"), true)
	assert.Equal(t, "nope", body.Message)
	assert.NotEmpty(t, body.Stack)
}

/*
TestError_WritesBody verifies the wire format produced for a validation failure.
*/
func TestError_WritesBody(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	recorder := httptest.NewRecorder()

	details := map[string]any{"body": map[string]any{"name": []any{map[string]any{"type": "any.required", "message": `"name" is required`}}}}
	respond.Error(recorder, request, apperr.ValidationFailed(`"name" is required`, details))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body["code"])
	assert.Equal(t, `"name" is required`, body["message"])
	assert.Contains(t, body, "details")
	assert.NotContains(t, body, "stack")
}

/*
TestError_VerboseContext verifies that the request context decides stack exposure.
*/
func TestError_VerboseContext(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithVerboseErrors(request.Context(), true))
	recorder := httptest.NewRecorder()

	respond.Error(recorder, request, errors.New("unexpected"))

	var body respond.ErrorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.Equal(t, "unexpected", body.Message)
}

/*
TestList_EmptyItems verifies that an empty collection encodes as an empty array.
*/
func TestList_EmptyItems(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.List[string](recorder, nil)

	assert.JSONEq(t, `{"items":[]}`, recorder.Body.String())
}
