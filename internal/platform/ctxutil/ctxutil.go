// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/taakbeheer/internal/platform/ctxkey"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithSession returns a new context with the verified session attached.
func WithSession(ctx context.Context, session sec.Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, session)
}

// GetSession retrieves the [sec.Session] from the context.
// The zero Session is returned for unauthenticated requests.
func GetSession(ctx context.Context) sec.Session {
	session, _ := ctx.Value(ctxkey.KeySession).(sec.Session)
	return session
}

// # Validated Input

// WithInput returns a new context carrying the normalized request input.
func WithInput(ctx context.Context, input validate.Input) context.Context {
	return context.WithValue(ctx, ctxkey.KeyInput, input)
}

// GetInput retrieves the normalized request input.
func GetInput(ctx context.Context) validate.Input {
	input, _ := ctx.Value(ctxkey.KeyInput).(validate.Input)
	return input
}

// # Error Presentation

// WithVerboseErrors marks whether error responses may include stacks and internal messages.
func WithVerboseErrors(ctx context.Context, verbose bool) context.Context {
	return context.WithValue(ctx, ctxkey.KeyVerboseErrors, verbose)
}

// VerboseErrors reports whether error responses may include stacks and internal messages.
func VerboseErrors(ctx context.Context) bool {
	verbose, _ := ctx.Value(ctxkey.KeyVerboseErrors).(bool)
	return verbose
}
