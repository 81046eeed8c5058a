// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the closed error taxonomy of the Taakbeheer API.

Every failure that crosses a service boundary is expressed as an [AppError]
carrying exactly one [Kind]. The kind alone decides the HTTP status and the
machine-readable code written by the respond package.

Architecture:

  - Kind: one of ValidationFailed, Unauthorized, Forbidden, NotFound, Conflict, Internal.
  - AppError: kind, client-safe message, optional structured details and a server-side cause.
  - Stack: the call site is captured at construction and only rendered outside production.

Storage and transport errors must be translated into an [AppError] by the code
that owns them (see the dberr package) before they reach the response layer.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Kind is the category of an [AppError].
type Kind uint8

const (
	KindValidationFailed Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// kindMapping is the single table translating a kind into its wire representation.
var kindMapping = map[Kind]struct {
	status int
	code   string
}{
	KindValidationFailed: {http.StatusBadRequest, "VALIDATION_FAILED"},
	KindUnauthorized:     {http.StatusUnauthorized, "UNAUTHORIZED"},
	KindForbidden:        {http.StatusForbidden, "FORBIDDEN"},
	KindNotFound:         {http.StatusNotFound, "NOT_FOUND"},
	KindConflict:         {http.StatusConflict, "CONFLICT"},
	KindInternal:         {http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
}

// Status returns the HTTP status code of the kind. Unknown kinds map to 500.
func (kind Kind) Status() int {
	if mapping, ok := kindMapping[kind]; ok {
		return mapping.status
	}
	return http.StatusInternalServerError
}

// Code returns the stable machine-readable code of the kind.
func (kind Kind) Code() string {
	if mapping, ok := kindMapping[kind]; ok {
		return mapping.code
	}
	return kindMapping[KindInternal].code
}

func (kind Kind) String() string { return kind.Code() }

// AppError is the canonical error type for the Taakbeheer API.
//
// # Security
//
// Cause is for server-side logging only and is never sent to clients.
type AppError struct {
	// Kind selects status and code.
	Kind Kind
	// Message is a human-readable description safe to return to the client.
	Message string
	// Details holds structured context, e.g. the per-section validation report.
	Details any
	// Cause is the underlying error.
	Cause error

	callers []uintptr
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Stack renders the call stack recorded when the error was created.
func (e *AppError) Stack() string {
	if len(e.callers) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(e.Kind.Code() + ": " + e.Message)

	frames := runtime.CallersFrames(e.callers)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&builder, "\n    at %s (%s:%d)", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return builder.String()
}

func newError(kind Kind, message string, cause error) *AppError {
	callers := make([]uintptr, 32)
	// Skip runtime.Callers, newError and the exported constructor.
	count := runtime.Callers(3, callers)

	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
		callers: callers[:count],
	}
}

// # Client Errors (4xx)

// ValidationFailed creates a 400 [AppError] carrying the validation report.
func ValidationFailed(msg string, details any) *AppError {
	err := newError(KindValidationFailed, msg, nil)
	err.Details = details
	return err
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newError(KindUnauthorized, msg, nil)
}

// UnauthorizedCause creates a 401 [AppError] that remembers why authentication failed.
func UnauthorizedCause(msg string, cause error) *AppError {
	return newError(KindUnauthorized, msg, cause)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return newError(KindForbidden, msg, nil)
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Project") // Returns "No project with this id exists"
func NotFound(resource string) *AppError {
	return newError(KindNotFound, fmt.Sprintf("No %s with this id exists", strings.ToLower(resource)), nil)
}

// NotFoundf creates a 404 [AppError] with a free-form message.
func NotFoundf(format string, args ...any) *AppError {
	return newError(KindNotFound, fmt.Sprintf(format, args...), nil)
}

// Conflict creates a 409 [AppError] for duplicate or referential violations.
func Conflict(msg string) *AppError {
	return newError(KindConflict, msg, nil)
}

// ConflictCause creates a 409 [AppError] keeping the storage cause for logging.
func ConflictCause(msg string, cause error) *AppError {
	return newError(KindConflict, msg, cause)
}

// # Server Errors (5xx)

// Internal wraps an unexpected error as a 500 [AppError].
//
// The cause is logged server-side. Clients in production only see a generic message.
func Internal(cause error) *AppError {
	message := "Internal server error"
	if cause != nil {
		message = cause.Error()
	}
	return newError(KindInternal, message, cause)
}

// # Helpers

// As extracts an [AppError] from err's chain.
func As(err error) (*AppError, bool) {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError, true
	}
	return nil, false
}

// IsKind reports whether err carries an [AppError] of the given kind.
func IsKind(err error, kind Kind) bool {
	appError, ok := As(err)
	return ok && appError.Kind == kind
}
