// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

// Package orchestrator sequences the container bootstrap: resolve the
// connection descriptor, wait for PostgreSQL, apply migrations, launch the
// backend server, optionally seed the admin account, and supervise the
// server so the container's exit status is the server's.
//
// The bootstrap phase is strictly sequential; the only concurrency is the
// fork point at the server launch, after which the server runs alongside the
// remaining bootstrap work.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/migrate"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/readiness"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/seed"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/store"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/supervisor"
)

// Exit statuses of the bootstrap process. When the server is supervised to
// completion, its own exit code replaces these.
const (
	ExitSuccess        = 0
	ExitBootstrapError = 1
)

type waiter interface {
	Wait(ctx context.Context) error
}

type migrator interface {
	Run(ctx context.Context) error
}

type seeder interface {
	Run(ctx context.Context) error
}

// launcher is the supervisor surface the orchestrator drives.
type launcher interface {
	Start(command string, args []string, env []string) error
	Exec(command string, args []string, env []string) error
	BeginSeeding() error
	BeginSupervising() error
	Signal(sig os.Signal) error
	Wait() (int, error)
}

// stages bundles everything built around one resolved connection descriptor.
type stages struct {
	db         io.Closer
	dbWaiter   waiter
	migrator   migrator
	supervisor launcher
	seeder     seeder // nil when seeding is disabled
}

// Orchestrator runs the bootstrap sequence for one container start.
type Orchestrator struct {
	cfg    *config.StructuredConfig
	logger *logger.Logger

	environ   func() []string
	newStages func(d config.ConnectionDescriptor) (*stages, error)
}

func New(cfg *config.StructuredConfig, log *logger.Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:     cfg,
		logger:  log,
		environ: os.Environ,
	}
	o.newStages = o.buildStages

	return o
}

func (o *Orchestrator) buildStages(d config.ConnectionDescriptor) (*stages, error) {
	db, err := store.NewConnectPostgres(d, o.logger)
	if err != nil {
		return nil, err
	}

	st := &stages{
		db: db,
		dbWaiter: readiness.NewWaiter(
			"postgres",
			readiness.DatabasePing(db),
			readiness.RetryPolicy{
				MaxAttempts: o.cfg.Readiness.MaxAttempts,
				Interval:    o.cfg.Readiness.Interval,
			},
			o.logger,
		),
		migrator:   migrate.NewRunner(db.DB, o.cfg.Migrations, o.logger),
		supervisor: supervisor.New(o.logger),
	}

	if o.cfg.Seed.Enabled {
		client := readiness.NewHealthClient(
			fmt.Sprintf("http://127.0.0.1:%d", o.cfg.Server.Port),
			o.cfg.Server.HealthInterval,
		)
		serverWaiter := readiness.NewWaiter(
			"server",
			readiness.ServerHealth(client, o.cfg.Server.HealthPath),
			readiness.RetryPolicy{
				MaxAttempts: o.cfg.Server.HealthAttempts,
				Interval:    o.cfg.Server.HealthInterval,
			},
			o.logger,
		)
		st.seeder = seed.NewSeeder(
			store.NewUserRepository(db, o.logger),
			serverWaiter,
			o.cfg.Seed,
			o.logger,
		)
	}

	return st, nil
}

// Run executes the bootstrap sequence and returns the process exit status.
// All fatal conditions have been logged with the failing stage by the time
// Run returns.
func (o *Orchestrator) Run(ctx context.Context) int {
	descriptor, err := o.cfg.ResolveDatabase()
	if err != nil {
		return o.fail("config", err)
	}

	o.logger.Info().
		Str("host", descriptor.Host).
		Uint16("port", descriptor.Port).
		Str("database", descriptor.DatabaseName).
		Msg("connection descriptor resolved")

	st, err := o.newStages(descriptor)
	if err != nil {
		return o.fail("config", err)
	}

	if err := st.dbWaiter.Wait(ctx); err != nil {
		return o.fail("readiness", err)
	}

	if err := st.migrator.Run(ctx); err != nil {
		return o.fail("migration", err)
	}

	command := o.cfg.Server.Command
	args := supervisor.LaunchArgs(o.cfg.Server, o.cfg.Runtime.Mode, o.cfg.EffectiveLogLevel())
	env := o.environ()

	if o.cfg.Server.Foreground {
		// the image replacement leaves nobody behind to close the handle
		_ = st.db.Close()
		if err := st.supervisor.Exec(command, args, env); err != nil {
			return o.fail("launch", err)
		}
		return ExitSuccess // unreachable when Exec succeeds
	}

	if err := st.supervisor.Start(command, args, env); err != nil {
		_ = st.db.Close()
		return o.fail("launch", err)
	}

	if st.seeder != nil {
		if err := st.supervisor.BeginSeeding(); err != nil {
			return o.fail("seeding", err)
		}
		if err := st.seeder.Run(ctx); err != nil {
			// take the server down with us instead of leaving an orphan
			_ = st.supervisor.Signal(syscall.SIGTERM)
			_ = st.supervisor.BeginSupervising()
			_, _ = st.supervisor.Wait()
			_ = st.db.Close()
			return o.fail("seeding", err)
		}
	}

	// bootstrap is done with the database, only the wait remains
	_ = st.db.Close()

	if err := st.supervisor.BeginSupervising(); err != nil {
		return o.fail("supervision", err)
	}

	code, err := st.supervisor.Wait()
	if err != nil {
		return o.fail("supervision", err)
	}

	o.logger.Info().Int("exit_code", code).Msg("bootstrap finished, adopting server exit status")

	return code
}

// fail logs the final diagnostic naming the failed stage and returns the
// bootstrap error status.
func (o *Orchestrator) fail(stage string, err error) int {
	o.logger.Error().
		Err(err).
		Str("stage", stage).
		Msg("bootstrap failed")

	return ExitBootstrapError
}
