// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/platform/validate"
)

// maxBodyBytes bounds the JSON body read by [Validate].
const maxBodyBytes = 1 << 20

// Validate checks path params, query and body against schema before the handler runs.
//
// # Usage
//
// Mount it inline with chi's With so that URL params are already resolved:
//
//	router.With(middleware.Validate(createSchema)).Post("/", handler.create)
//
// The normalized values are available through ctxutil.GetInput.
func Validate(schema validate.Schema) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			raw := validate.Raw{
				Params: pathParams(request),
				Query:  queryParams(request),
			}

			if schema.Body != nil {
				body, problem, err := decodeBody(writer, request)
				if err != nil {
					respond.Error(writer, request, err)
					return
				}
				if problem != "" {
					respond.Error(writer, request, unreadableBody(schema, raw, problem))
					return
				}
				raw.Body = body
			}

			input, err := schema.Validate(raw)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithInput(request.Context(), input)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func pathParams(request *http.Request) map[string]any {
	params := map[string]any{}
	routeContext := chi.RouteContext(request.Context())
	if routeContext == nil {
		return params
	}
	for index, key := range routeContext.URLParams.Keys {
		// chi registers "*" for wildcard routes; it is not a declared param.
		if key == "*" || index >= len(routeContext.URLParams.Values) {
			continue
		}
		params[key] = routeContext.URLParams.Values[index]
	}
	return params
}

func queryParams(request *http.Request) map[string]any {
	query := map[string]any{}
	for key, values := range request.URL.Query() {
		if len(values) == 1 {
			query[key] = values[0]
			continue
		}
		list := make([]any, len(values))
		for index, value := range values {
			list[index] = value
		}
		query[key] = list
	}
	return query
}

// decodeBody reads a JSON object. An empty body counts as an empty object.
// A body that is not a JSON object is reported through problem.
func decodeBody(writer http.ResponseWriter, request *http.Request) (body map[string]any, problem string, err error) {
	payload, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "Request body is too large", nil
		}
		return nil, "", apperr.Internal(err)
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return map[string]any{}, "", nil
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil || decoder.More() {
		return nil, "Request body must be valid JSON", nil
	}

	object, ok := value.(map[string]any)
	if !ok {
		return nil, `"value" must be of type object`, nil
	}
	return object, "", nil
}

// unreadableBody still validates params and query so the response reports every section.
func unreadableBody(schema validate.Schema, raw validate.Raw, problem string) error {
	report := validate.ObjectIssue()
	report[validate.SectionBody]["value"][0].Message = problem

	withoutBody := schema
	withoutBody.Body = nil

	message := problem
	if _, err := withoutBody.Validate(raw); err != nil {
		if appError, ok := apperr.As(err); ok {
			if other, ok := appError.Details.(validate.Report); ok {
				for section, fields := range other {
					report[section] = fields
				}
				message = appError.Message
			}
		}
	}
	return apperr.ValidationFailed(message, report)
}
