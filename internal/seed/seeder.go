// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

// Package seed creates the bootstrap administrative account after the server
// is up. Seeding is idempotent: finding the account already present is a
// success, and re-running the container never fails on it.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/config"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/store"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrSeedFailed indicates a genuine seeding failure: the server never became
// ready, or the insert failed for a reason other than "already exists".
var ErrSeedFailed = errors.New("bootstrap account seeding failed")

// the annual allowance granted to the seeded administrator
const adminVacationDays = 30

// UserCreator is the slice of the user repository the seeder needs.
type UserCreator interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
}

// ServerWaiter gates seeding on the server actually answering its health
// endpoint, instead of sleeping a fixed amount and hoping.
type ServerWaiter interface {
	Wait(ctx context.Context) error
}

// Seeder performs the one-shot administrative account creation.
type Seeder struct {
	users  UserCreator
	server ServerWaiter
	cfg    config.Seed
	logger *logger.Logger
}

func NewSeeder(users UserCreator, server ServerWaiter, cfg config.Seed, log *logger.Logger) *Seeder {
	return &Seeder{
		users:  users,
		server: server,
		cfg:    cfg,
		logger: log,
	}
}

// Run waits for the server's health surface, then inserts the administrative
// account with a bcrypt-hashed password. An existing account is reported and
// treated as success.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.server.Wait(ctx); err != nil {
		s.logger.Error().Err(err).Msg("server never became ready, skipping seeding")
		return fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: error hashing admin password: %w", ErrSeedFailed, err)
	}

	admin := models.User{
		Email:             s.cfg.AdminEmail,
		Password:          string(hash),
		FullName:          s.cfg.AdminFullName,
		Role:              models.RoleAdmin,
		TotalVacationDays: adminVacationDays,
		IsActive:          true,
		IsSuperuser:       true,
	}

	created, err := s.users.CreateUser(ctx, admin)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			s.logger.Info().
				Str("email", admin.Email).
				Msg("admin account already exists, nothing to seed")
			return nil
		}

		s.logger.Error().Err(err).Msg("error creating admin account")
		return fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}

	s.logger.Info().
		Int64("user_id", created.UserID).
		Str("email", created.Email).
		Msg("admin account seeded")

	return nil
}
