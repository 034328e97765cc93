// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

// Package readiness implements the bounded polling used to gate bootstrap
// stages on external dependencies: the data store before migrations and the
// launched server before seeding.
//
// The poll is deliberately simple: a constant interval, no backoff. Container
// startup ordering is the only thing being absorbed here, and a fixed small
// interval reaches readiness as fast as any schedule while keeping the worst
// case (budget exhausted) easy to reason about.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
)

// ErrNotReady indicates that the probed dependency never became reachable
// within the attempt budget. It is always fatal to the bootstrap.
var ErrNotReady = errors.New("dependency not ready")

// Probe is a single trivial round trip against a dependency. A nil return
// means the dependency is reachable; any error counts as a failed attempt.
type Probe func(ctx context.Context) error

// RetryPolicy bounds a poll: at most MaxAttempts probes with a constant
// Interval pause between consecutive attempts.
type RetryPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

// Waiter polls one dependency until it answers or the budget runs out.
// Readiness is a boolean gate: on success Wait returns no value, and the
// downstream stages establish their own connections.
type Waiter struct {
	name   string
	probe  Probe
	policy RetryPolicy
	logger *logger.Logger
}

func NewWaiter(name string, probe Probe, policy RetryPolicy, log *logger.Logger) *Waiter {
	return &Waiter{
		name:   name,
		probe:  probe,
		policy: policy,
		logger: log,
	}
}

// Wait runs probes until one succeeds. Exactly k probes are issued when
// attempt k succeeds; exactly MaxAttempts are issued before giving up with
// [ErrNotReady]. Cancelling ctx aborts the pause between attempts
// immediately and returns the context's error.
func (w *Waiter) Wait(ctx context.Context) error {
	for attempt := 1; attempt <= w.policy.MaxAttempts; attempt++ {
		err := w.probe(ctx)
		if err == nil {
			w.logger.Info().
				Str("dependency", w.name).
				Int("attempt", attempt).
				Msg("dependency is ready")
			return nil
		}

		w.logger.Warn().
			Err(err).
			Str("dependency", w.name).
			Int("attempt", attempt).
			Int("max_attempts", w.policy.MaxAttempts).
			Msg("dependency not ready yet")

		// no pause after the final attempt
		if attempt == w.policy.MaxAttempts {
			break
		}

		select {
		case <-time.After(w.policy.Interval):
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", w.name, ctx.Err())
		}
	}

	return fmt.Errorf("%w: %s did not answer within %d attempts", ErrNotReady, w.name, w.policy.MaxAttempts)
}
