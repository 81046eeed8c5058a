// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Session verifies that a bare context carries the unauthenticated session.
*/
func TestContext_Session(t *testing.T) {
	assert.True(t, ctxutil.GetSession(context.Background()).IsZero())
}

/*
TestContext_Input verifies that validated input round-trips through the context.
*/
func TestContext_Input(t *testing.T) {
	input := validate.Input{Params: validate.Values{"id": int64(4)}}

	ctx := ctxutil.WithInput(context.Background(), input)
	assert.Equal(t, int64(4), ctxutil.GetInput(ctx).Params.Int("id"))
	assert.Nil(t, ctxutil.GetInput(context.Background()).Body)
}

/*
TestContext_VerboseErrors verifies the default is the production-safe setting.
*/
func TestContext_VerboseErrors(t *testing.T) {
	assert.False(t, ctxutil.VerboseErrors(context.Background()))
	assert.True(t, ctxutil.VerboseErrors(ctxutil.WithVerboseErrors(context.Background(), true)))
}
