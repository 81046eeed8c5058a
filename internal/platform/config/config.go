// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (hasher, token service, stores) via constructors.
  - Environment Profiles: argon2 cost and login delay defaults depend on APP_ENV.

The JWT secret never leaves this package in log output, see [Config.LogValue].
*/
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/taakbeheer/internal/platform/sec"
)

// Environment names accepted in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// minProductionSecretLength is the smallest HS256 secret accepted in production.
const minProductionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the Taakbeheer API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"9000"`
	Environment string `env:"APP_ENV"      envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`

	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	// Enable it only behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// Relational Database (PostgreSQL). Empty selects the in-memory store outside production.
	DatabaseURL  string `env:"DATABASE_URL"`
	DBMaxConns   int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	RunMigration bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// MigrationPath is the golang-migrate source URL of the SQL migrations.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"file://data/migrations"`

	// Key-Value Cache (Redis). Optional, login failures are tracked in memory without it.
	RedisURL string `env:"REDIS_URL"`

	// Authentication
	Auth AuthConfig `envPrefix:"AUTH_"`

	// Cross-Origin Resource Sharing
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
	CORSMaxAge  int      `env:"CORS_MAX_AGE" envDefault:"10800"`
}

// AuthConfig groups token signing, password hashing and login pacing settings.
type AuthConfig struct {
	JWTSecret     string `env:"JWT_SECRET,required"`
	JWTIssuer     string `env:"JWT_ISSUER"     envDefault:"taakbeheer.hogent.be"`
	JWTAudience   string `env:"JWT_AUDIENCE"   envDefault:"taakbeheer.hogent.be"`
	JWTExpiration int    `env:"JWT_EXPIRATION" envDefault:"3600"`

	// Zero means "use the environment profile".
	ArgonHashLength uint32 `env:"ARGON_HASH_LENGTH"`
	ArgonTimeCost   uint32 `env:"ARGON_TIME_COST"`
	ArgonMemoryCost uint32 `env:"ARGON_MEMORY_COST"`
	ArgonThreads    uint8  `env:"ARGON_THREADS" envDefault:"4"`

	// MaxDelay is the login delay ceiling in milliseconds. Nil means "use the environment profile".
	MaxDelay *int `env:"MAX_DELAY"`
}

// profile holds the environment dependent defaults.
type profile struct {
	hashLength uint32
	timeCost   uint32
	memoryCost uint32
	maxDelay   int
}

var profiles = map[string]profile{
	EnvDevelopment: {hashLength: 32, timeCost: 6, memoryCost: 1 << 17, maxDelay: 10000},
	EnvProduction:  {hashLength: 32, timeCost: 6, memoryCost: 1 << 17, maxDelay: 5000},
	EnvTesting:     {hashLength: 16, timeCost: 2, memoryCost: 1 << 12, maxDelay: 0},
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// finalize applies the environment profile and validates cross-field rules.
func (c *Config) finalize() error {
	defaults, ok := profiles[c.Environment]
	if !ok {
		return fmt.Errorf("config: unknown APP_ENV %q", c.Environment)
	}

	if c.Auth.ArgonHashLength == 0 {
		c.Auth.ArgonHashLength = defaults.hashLength
	}
	if c.Auth.ArgonTimeCost == 0 {
		c.Auth.ArgonTimeCost = defaults.timeCost
	}
	if c.Auth.ArgonMemoryCost == 0 {
		c.Auth.ArgonMemoryCost = defaults.memoryCost
	}
	if c.Auth.ArgonThreads == 0 {
		c.Auth.ArgonThreads = 1
	}
	if c.Auth.MaxDelay == nil {
		delay := defaults.maxDelay
		c.Auth.MaxDelay = &delay
	}

	if c.Auth.JWTExpiration <= 0 {
		return errors.New("config: AUTH_JWT_EXPIRATION must be a positive number of seconds")
	}
	if *c.Auth.MaxDelay < 0 {
		return errors.New("config: AUTH_MAX_DELAY must not be negative")
	}

	if c.IsProduction() {
		if len(c.Auth.JWTSecret) < minProductionSecretLength {
			return fmt.Errorf("config: AUTH_JWT_SECRET must be at least %d bytes in production", minProductionSecretLength)
		}
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required in production")
		}
	}

	return nil
}

// # Accessors

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsTesting reports whether the server is running with the testing profile.
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// TokenTTL returns the lifetime of issued session tokens.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.JWTExpiration) * time.Second
}

// LoginMaxDelay returns the ceiling of the artificial login delay.
func (c *Config) LoginMaxDelay() time.Duration {
	if c.Auth.MaxDelay == nil {
		return 0
	}
	return time.Duration(*c.Auth.MaxDelay) * time.Millisecond
}

// Token projects the token service settings.
func (c *Config) Token() sec.TokenConfig {
	return sec.TokenConfig{
		Secret:   []byte(c.Auth.JWTSecret),
		Issuer:   c.Auth.JWTIssuer,
		Audience: c.Auth.JWTAudience,
		TTL:      c.TokenTTL(),
	}
}

// Hash projects the argon2id cost parameters.
func (c *Config) Hash() sec.HashParams {
	return sec.HashParams{
		KeyLength:   c.Auth.ArgonHashLength,
		TimeCost:    c.Auth.ArgonTimeCost,
		MemoryCost:  c.Auth.ArgonMemoryCost,
		Parallelism: c.Auth.ArgonThreads,
	}
}

// LogValue implements [slog.LogValuer]. Secrets and DSNs are never rendered.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("env", c.Environment),
		slog.String("port", c.ServerPort),
		slog.Bool("postgres", c.DatabaseURL != ""),
		slog.Bool("redis", c.RedisURL != ""),
		slog.Bool("trust_proxy", c.TrustProxy),
		slog.String("jwt_issuer", c.Auth.JWTIssuer),
		slog.String("jwt_audience", c.Auth.JWTAudience),
		slog.Int("jwt_expiration", c.Auth.JWTExpiration),
		slog.Any("argon", map[string]any{
			"hash_length": c.Auth.ArgonHashLength,
			"time_cost":   c.Auth.ArgonTimeCost,
			"memory_cost": c.Auth.ArgonMemoryCost,
			"threads":     c.Auth.ArgonThreads,
		}),
		slog.Duration("login_max_delay", c.LoginMaxDelay()),
	)
}
