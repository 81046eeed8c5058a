// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses. Every
// error leaves the API through [Error], which is the only place where an
// [apperr.Kind] becomes a status code and a wire code.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
)

// MsgInternalProduction replaces internal error messages when verbose errors are off.
const MsgInternalProduction = "Unexpected error occurred. Please try again later."

// ListEnvelope is the JSON envelope for collection responses.
type ListEnvelope struct {
	Items any `json:"items"`
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data as the body.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with data as the body.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// List writes a 200 OK response wrapping items in the collection envelope.
func List[T any](writer http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(writer, http.StatusOK, ListEnvelope{Items: items})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Map converts err into a status code and error body.
//
// Errors that are not an [apperr.AppError] are treated as Internal. When
// verbose is false, stacks are omitted and Internal messages are replaced by
// [MsgInternalProduction].
func Map(err error, verbose bool) (int, ErrorBody) {
	appError, ok := apperr.As(err)
	if !ok {
		appError = &apperr.AppError{Kind: apperr.KindInternal, Message: err.Error(), Cause: err}
	}

	body := ErrorBody{
		Code:    appError.Kind.Code(),
		Message: appError.Message,
		Details: appError.Details,
	}

	if appError.Kind == apperr.KindInternal && !verbose {
		body.Message = MsgInternalProduction
		body.Details = nil
	}

	if verbose {
		body.Stack = stackOf(appError)
	}

	return appError.Kind.Status(), body
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	status, body := Map(err, ctxutil.VerboseErrors(ctx))

	logger := ctxutil.GetLogger(ctx)
	attrs := []any{
		slog.String("code", body.Code),
		slog.Int("status", status),
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
		slog.String("error", err.Error()),
	}
	if oopsError, ok := oops.AsOops(err); ok {
		attrs = append(attrs, slog.Any("context", oopsError.Context()))
	}

	// Always log 5xx errors as they indicate server-side issues.
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error", attrs...)
	} else {
		logger.DebugContext(ctx, "api_client_error", attrs...)
	}

	JSON(writer, status, body)
}

// stackOf prefers the stack of a wrapped oops error, which points at the failing
// call, over the stack recorded when the AppError was built.
func stackOf(appError *apperr.AppError) string {
	if appError.Cause != nil {
		if oopsError, ok := oops.AsOops(appError.Cause); ok {
			if stack := oopsError.Stacktrace(); stack != "" {
				return stack
			}
		}
	}
	return appError.Stack()
}
