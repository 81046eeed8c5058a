// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/constants"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the ready probe.
// A nil checker is skipped.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(context context.Context) error

	// CheckCache pings the Redis client.
	CheckCache func(context context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	environment  string
	logger       *slog.Logger
}

// newHealthHandler creates the handler behind /api/health.
func newHealthHandler(deps HealthDependencies, environment string, logger *slog.Logger) *healthHandler {
	return &healthHandler{dependencies: deps, environment: environment, logger: logger}
}

// routes mounts the probes.
//
// # Endpoints
//   - GET /ping    : Liveness.
//   - GET /version : Build and environment.
//   - GET /ready   : Readiness of Postgres and Redis.
func (handler *healthHandler) routes(router chi.Router) {
	router.Get("/ping", handler.ping)
	router.Get("/version", handler.version)
	router.Get("/ready", handler.ready)
}

func (handler *healthHandler) ping(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"message": "pong"})
}

func (handler *healthHandler) version(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		"env":     handler.environment,
		"version": constants.AppVersion,
		"name":    constants.AppName,
	})
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ready reports 503 when any configured dependency fails its ping.
func (handler *healthHandler) ready(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}
		result := checkResult{Name: dependency.name, IsOK: true}
		if err := dependency.check(request.Context()); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.ErrorContext(request.Context(), "readiness_check_failed",
				slog.String("dependency", dependency.name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	responseStatus, httpStatus := "ready", http.StatusOK
	if !isSystemReady {
		responseStatus, httpStatus = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		"status": responseStatus,
		"checks": results,
	})
}
