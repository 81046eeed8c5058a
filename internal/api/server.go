// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/taakbeheer/internal/core/project"
	"github.com/taibuivan/taakbeheer/internal/core/tag"
	"github.com/taibuivan/taakbeheer/internal/core/task"
	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/config"
	"github.com/taibuivan/taakbeheer/internal/platform/constants"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	"github.com/taibuivan/taakbeheer/internal/platform/respond"
	"github.com/taibuivan/taakbeheer/internal/users/account"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Service Registry

// Services groups the domain services the routes are built on.
type Services struct {
	Auth     *auth.Service
	Accounts *account.Service
	Projects *project.Service
	Tasks    *task.Service
	Tags     *tag.Service
}

// Dependencies are the cross-cutting collaborators of the router.
type Dependencies struct {
	Resolver middleware.SessionResolver
	Metrics  *metrics.Metrics
	Health   HealthDependencies

	// Sleep waits in the credential throttle. Nil means [middleware.ContextSleep].
	Sleep middleware.Sleeper
}

// # Server Initialization

// NewServer builds the router and the [http.Server] around it. The pacer's
// cleanup routine stops with context.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, services Services) *Server {
	router := NewRouter(context, cfg, log, deps, services)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Pipeline
//
// Every protected route runs session resolution, then the role check, then
// validation, then the handler, whose service applies ownership guards.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, services Services) *chi.Mux {
	sleep := deps.Sleep
	if sleep == nil {
		sleep = middleware.ContextSleep
	}

	gate := middleware.NewGate(deps.Resolver, deps.Metrics)
	pacer := middleware.NewPacer(context, constants.AuthPacingRPS, constants.AuthPacingBurst, constants.AuthPacingMaxWait, sleep)
	throttle := []func(http.Handler) http.Handler{
		pacer.Middleware,
		middleware.AuthDelay(cfg.LoginMaxDelay(), sleep),
	}

	authHandler := auth.NewHandler(services.Auth, throttle...)
	accountHandler := account.NewHandler(services.Accounts, gate)
	projectHandler := project.NewHandler(services.Projects, gate)
	taskHandler := task.NewHandler(services.Tasks, gate)
	tagHandler := tag.NewHandler(services.Tags, gate)
	health := newHealthHandler(deps.Health, cfg.Environment, log)

	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, deps.Metrics))
	r.Use(middleware.ErrorVerbosity(!cfg.IsProduction()))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(middleware.CORSConfig{Origins: cfg.CORSOrigins, MaxAge: cfg.CORSMaxAge}))
	r.Use(chimw.CleanPath)

	// Unmatched paths and methods answer with the same error body as everything else.
	r.NotFound(unknownResource)
	r.MethodNotAllowed(unknownResource)

	// # Infrastructure Endpoints
	r.Handle("/metrics", deps.Metrics.Handler())

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Route("/health", health.routes)
		api.Route("/sessions", authHandler.RegisterSessionRoutes)
		api.Route("/users", func(users chi.Router) {
			authHandler.RegisterSignupRoutes(users)
			accountHandler.RegisterRoutes(users)
		})
		api.Route("/projects", projectHandler.RegisterRoutes)
		api.Route("/tasks", taskHandler.RegisterRoutes)
		api.Route("/tags", tagHandler.RegisterRoutes)
	})

	return r
}

func unknownResource(writer http.ResponseWriter, request *http.Request) {
	respond.Error(writer, request, apperr.NotFoundf("Unknown resource: %s", request.URL.Path))
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
