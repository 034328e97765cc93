// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

// Package migrate drives schema migration during bootstrap: one apply, one
// retry after a fixed delay, and an explicit failure policy deciding whether
// a persistent failure stops the server from launching.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/migrations"
)

// ErrMigrationFailed indicates that the schema could not be applied even
// after the retry. Under the strict policy it is fatal and the server must
// never be launched.
var ErrMigrationFailed = errors.New("schema migration failed")

// applyFunc matches migrations.Migrate; injectable for tests.
type applyFunc func(db *sql.DB) error

// Runner applies schema migrations with a single bounded retry.
type Runner struct {
	db         *sql.DB
	policy     config.MigrationPolicy
	retryDelay time.Duration
	logger     *logger.Logger
	apply      applyFunc
}

func NewRunner(db *sql.DB, cfg config.Migrations, log *logger.Logger) *Runner {
	return &Runner{
		db:         db,
		policy:     cfg.Policy,
		retryDelay: cfg.RetryDelay,
		logger:     log,
		apply:      migrations.Migrate,
	}
}

// Run applies all pending migrations. On failure it waits the configured
// delay and retries exactly once. When the retry fails too, the configured
// policy decides: strict returns [ErrMigrationFailed], lenient logs the
// failure and reports success so the server can start against a possibly
// unmigrated schema.
func (r *Runner) Run(ctx context.Context) error {
	err := r.apply(r.db)
	if err == nil {
		r.logger.Info().Msg("schema migrations applied")
		return nil
	}

	r.logger.Warn().
		Err(err).
		Dur("retry_delay", r.retryDelay).
		Msg("migration failed, retrying once")

	select {
	case <-time.After(r.retryDelay):
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrMigrationFailed, ctx.Err())
	}

	err = r.apply(r.db)
	if err == nil {
		r.logger.Info().Msg("schema migrations applied on retry")
		return nil
	}

	if r.policy == config.MigrationLenient {
		r.logger.Error().
			Err(err).
			Msg("migration failed after retry, lenient policy: starting the server anyway")
		return nil
	}

	r.logger.Error().Err(err).Msg("migration failed after retry, aborting")
	return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
}
