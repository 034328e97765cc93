// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

package config

import (
	"time"
)

// RunMode selects the deployment profile of the supervised server. It is
// fixed for the lifetime of the bootstrap process.
type RunMode string

const (
	// Development enables auto-reload and verbose logging on the server.
	Development RunMode = "development"

	// Production enables a fixed worker count and proxy header trust, with
	// a less verbose log level.
	Production RunMode = "production"
)

// MigrationPolicy selects what happens when the schema migration still fails
// after its retry. The choice is explicit configuration, never inferred.
type MigrationPolicy string

const (
	// MigrationStrict aborts the bootstrap on migration failure; the server
	// is never launched against an unmigrated schema.
	MigrationStrict MigrationPolicy = "strict"

	// MigrationLenient logs the failure and launches the server anyway.
	MigrationLenient MigrationPolicy = "lenient"
)

// StructuredConfig is the top-level configuration container for the bootstrap
// orchestrator. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and built-in
// defaults.
//
// Struct tags:
//   - env — direct environment variable name for scalar fields. The names
//     under [Database] and [Runtime] are an external contract shared with the
//     compose topology and must not change.
type StructuredConfig struct {
	// Database holds the connection string and discrete overrides from
	// which the connection descriptor is resolved.
	Database Database

	// Runtime holds the deployment profile and log verbosity.
	Runtime Runtime

	// Server holds the launch command and supervision settings for the
	// primary backend process.
	Server Server

	// Migrations holds the schema migration retry and failure policy.
	Migrations Migrations

	// Readiness holds the retry budget for the data store probe.
	Readiness Readiness

	// Seed holds the bootstrap administrative account settings.
	Seed Seed
}

// Database holds the raw connection inputs. Resolution into a
// [ConnectionDescriptor] happens once, via [StructuredConfig.ResolveDatabase].
type Database struct {
	// URL is the PostgreSQL connection string in URL form
	// (e.g. "postgres://user:pass@db:5432/app").
	// Env: DATABASE_URL
	URL string `env:"DATABASE_URL"`

	// Host overrides the host parsed from URL.
	// Env: POSTGRES_HOST
	Host string `env:"POSTGRES_HOST"`

	// Port overrides the port parsed from URL.
	// Env: POSTGRES_PORT
	Port string `env:"POSTGRES_PORT"`

	// User overrides the user parsed from URL.
	// Env: POSTGRES_USER
	User string `env:"POSTGRES_USER"`

	// Password overrides the secret parsed from URL.
	// Env: POSTGRES_PASSWORD
	Password string `env:"POSTGRES_PASSWORD"`

	// Name overrides the database name parsed from URL.
	// Env: POSTGRES_DB
	Name string `env:"POSTGRES_DB"`
}

// Runtime holds profile and verbosity settings shared by the orchestrator
// and the launch command of the supervised server.
type Runtime struct {
	// Mode is the deployment profile, "development" or "production".
	// Env: ENVIRONMENT
	Mode RunMode `env:"ENVIRONMENT"`

	// LogLevel is passed through to the server launch command and also
	// controls the orchestrator's own verbosity. When empty it follows the
	// mode: debug in development, info in production.
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds launch and supervision settings for the primary process.
type Server struct {
	// Command is the server executable (e.g. "uvicorn").
	// Env: SERVER_COMMAND
	Command string `env:"SERVER_COMMAND"`

	// App is the application target passed to the command
	// (e.g. "app.main:app").
	// Env: SERVER_APP
	App string `env:"SERVER_APP"`

	// Host is the bind address handed to the server.
	// Env: SERVER_HOST
	Host string `env:"SERVER_HOST"`

	// Port is the TCP port the server listens on.
	// Env: SERVER_PORT
	Port int `env:"SERVER_PORT"`

	// Workers is the worker process count used in production mode.
	// Env: SERVER_WORKERS
	Workers int `env:"SERVER_WORKERS"`

	// Foreground selects the launch discipline: when true the orchestrator
	// replaces itself with the server process and no further bootstrap work
	// (seeding, supervision) is possible.
	// Env: SERVER_FOREGROUND
	Foreground bool `env:"SERVER_FOREGROUND"`

	// HealthPath is the server endpoint probed before seeding.
	// Env: SERVER_HEALTH_PATH
	HealthPath string `env:"SERVER_HEALTH_PATH"`

	// HealthAttempts and HealthInterval bound the server readiness probe
	// that gates seeding.
	// Env: SERVER_HEALTH_ATTEMPTS, SERVER_HEALTH_INTERVAL
	HealthAttempts int           `env:"SERVER_HEALTH_ATTEMPTS"`
	HealthInterval time.Duration `env:"SERVER_HEALTH_INTERVAL"`
}

// Migrations holds the schema migration retry and failure policy settings.
type Migrations struct {
	// Policy decides whether a migration failure after retry aborts the
	// bootstrap ("strict") or is logged and ignored ("lenient").
	// Env: MIGRATION_POLICY
	Policy MigrationPolicy `env:"MIGRATION_POLICY"`

	// RetryDelay is the pause before the single migration retry.
	// Env: MIGRATION_RETRY_DELAY
	RetryDelay time.Duration `env:"MIGRATION_RETRY_DELAY"`
}

// Readiness bounds the data store poll performed before migrations.
type Readiness struct {
	// MaxAttempts is the total probe budget.
	// Env: DB_WAIT_ATTEMPTS
	MaxAttempts int `env:"DB_WAIT_ATTEMPTS"`

	// Interval is the constant pause between probes.
	// Env: DB_WAIT_INTERVAL
	Interval time.Duration `env:"DB_WAIT_INTERVAL"`
}

// Seed holds the optional bootstrap administrative account settings.
type Seed struct {
	// Enabled toggles the one-shot admin account creation after launch.
	// Env: SEED_ADMIN
	Enabled bool `env:"SEED_ADMIN"`

	// AdminEmail is the login of the seeded account.
	// Env: ADMIN_EMAIL
	AdminEmail string `env:"ADMIN_EMAIL"`

	// AdminPassword is the plaintext password; it is bcrypt-hashed before
	// it ever reaches the database.
	// Env: ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// AdminFullName is the display name of the seeded account.
	// Env: ADMIN_FULL_NAME
	AdminFullName string `env:"ADMIN_FULL_NAME"`
}

// ResolveDatabase resolves the immutable connection descriptor from the raw
// database inputs. See [Resolve] for the precedence rules.
func (cfg *StructuredConfig) ResolveDatabase() (ConnectionDescriptor, error) {
	return Resolve(cfg.Database.URL, Overrides{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Secret:   cfg.Database.Password,
		Database: cfg.Database.Name,
	})
}

// EffectiveLogLevel returns the configured log level, defaulting by run mode
// when LOG_LEVEL is unset.
func (cfg *StructuredConfig) EffectiveLogLevel() string {
	if cfg.Runtime.LogLevel != "" {
		return cfg.Runtime.LogLevel
	}
	if cfg.Runtime.Mode == Development {
		return "debug"
	}

	return "info"
}

// GetStructuredConfig loads, merges, and validates the orchestrator
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withDefaults().
		build()
}
