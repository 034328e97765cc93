// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// orchestrator invariants before any stage runs.
//
// The database inputs are deliberately not validated here: resolution of the
// connection descriptor has its own fail-closed error path in [Resolve].
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Runtime.Mode != Development && cfg.Runtime.Mode != Production {
		return fmt.Errorf("%w: %q", ErrInvalidRunMode, cfg.Runtime.Mode)
	}

	if cfg.Migrations.Policy != MigrationStrict && cfg.Migrations.Policy != MigrationLenient {
		return fmt.Errorf("%w: %q", ErrInvalidMigrationPolicy, cfg.Migrations.Policy)
	}
	if cfg.Migrations.RetryDelay < 0 {
		return fmt.Errorf("%w: negative migration retry delay", ErrInvalidRetryConfigs)
	}

	if cfg.Readiness.MaxAttempts < 1 {
		return fmt.Errorf("%w: readiness attempts must be at least 1", ErrInvalidRetryConfigs)
	}
	if cfg.Readiness.Interval < 0 {
		return fmt.Errorf("%w: negative readiness interval", ErrInvalidRetryConfigs)
	}

	if cfg.Server.Command == "" {
		return fmt.Errorf("%w: empty server command", ErrInvalidServerConfigs)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidServerConfigs, cfg.Server.Port)
	}
	if cfg.Runtime.Mode == Production && cfg.Server.Workers < 1 {
		return fmt.Errorf("%w: production mode requires at least 1 worker", ErrInvalidServerConfigs)
	}

	if cfg.Seed.Enabled {
		if cfg.Server.Foreground {
			return ErrSeedRequiresBackground
		}
		if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
			return fmt.Errorf("%w: seeding requires admin email and password", ErrInvalidServerConfigs)
		}
		if cfg.Server.HealthAttempts < 1 || cfg.Server.HealthInterval < 0 {
			return fmt.Errorf("%w: invalid server health probe budget", ErrInvalidRetryConfigs)
		}
	}

	return nil
}
