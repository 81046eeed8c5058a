// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Taakbeheer HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from environment variables.
//  2. Initialize structured logger.
//  3. Connect to PostgreSQL (pgxpool) and run migrations, or fall back to memory.
//  4. Connect to Redis when configured.
//  5. Wire services and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/taakbeheer/internal/api"
	"github.com/taibuivan/taakbeheer/internal/core/project"
	"github.com/taibuivan/taakbeheer/internal/core/tag"
	"github.com/taibuivan/taakbeheer/internal/core/task"
	"github.com/taibuivan/taakbeheer/internal/platform/config"
	"github.com/taibuivan/taakbeheer/internal/platform/constants"
	"github.com/taibuivan/taakbeheer/internal/platform/logging"
	"github.com/taibuivan/taakbeheer/internal/platform/memstore"
	"github.com/taibuivan/taakbeheer/internal/platform/metrics"
	"github.com/taibuivan/taakbeheer/internal/platform/middleware"
	"github.com/taibuivan/taakbeheer/internal/platform/migration"
	pgstore "github.com/taibuivan/taakbeheer/internal/platform/postgres"
	redisstore "github.com/taibuivan/taakbeheer/internal/platform/redis"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/account"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

// repositories is the storage selected at startup.
type repositories struct {
	users    auth.UserRepository
	projects project.Repository
	tasks    task.Repository
	tags     tag.Repository
}

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	// Parsed before the logger, whose level it carries.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	level, err := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(os.Stdout, level)
	slog.SetDefault(log)
	if err != nil {
		log.Warn("log_level_invalid", slog.String("value", cfg.LogLevel))
	}

	log.Info("configuration_loaded", slog.Any("config", cfg))

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var health api.HealthDependencies

	// ── 3. Storage ────────────────────────────────────────────────────────
	var repos repositories
	if cfg.DatabaseURL != "" {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.DBMaxConns, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		if cfg.RunMigration {
			must(log, migration.RunUp(cfg.MigrationPath, cfg.DatabaseURL, log), "run migrations")
		}

		health.CheckDatabase = func(context context.Context) error { return pgstore.Ping(context, pool) }
		repos = repositories{
			users:    auth.NewUserRepository(pool),
			projects: project.NewPostgresRepository(pool),
			tasks:    task.NewPostgresRepository(pool),
			tags:     tag.NewPostgresRepository(pool),
		}
	} else {
		log.Warn("database_url_missing_using_memory_store")
		db := memstore.New()
		repos = repositories{users: db.Users(), projects: db.Projects(), tasks: db.Tasks(), tags: db.Tags()}
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var failures auth.FailureTracker = auth.NewMemoryFailureTracker(constants.LoginFailureWindow)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		health.CheckCache = func(context context.Context) error { return redisstore.Ping(context, rdb) }
		failures = auth.NewRedisFailureTracker(rdb, constants.LoginFailureWindow)
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.Token())
	must(log, err, "initialize token service")
	hasher, err := sec.NewPasswordHasher(cfg.Hash())
	must(log, err, "initialize password hasher")
	recorder := metrics.New()

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService, err := auth.NewService(repos.users, failures, hasher, tokens, auth.Options{
		BaseDelay: constants.LoginFailureBaseDelay,
		MaxDelay:  cfg.LoginMaxDelay(),
		Sleep:     middleware.ContextSleep,
		Recorder:  recorder,
	})
	must(log, err, "initialize auth service")

	projectService := project.NewService(repos.projects)
	services := api.Services{
		Auth:     authService,
		Accounts: account.NewService(repos.users, hasher),
		Projects: projectService,
		Tasks:    task.NewService(repos.tasks, projectService, repos.tags, repos.users),
		Tags:     tag.NewService(repos.tags, log),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Dependencies{
		Resolver: sec.NewSessionResolver(tokens),
		Metrics:  recorder,
		Health:   health,
	}, services)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
