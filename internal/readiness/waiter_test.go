// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

package readiness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProbe fails until succeedOn (0 means never) and records the number
// of calls.
type countingProbe struct {
	calls     int
	succeedOn int
}

func (p *countingProbe) probe(ctx context.Context) error {
	p.calls++
	if p.succeedOn != 0 && p.calls >= p.succeedOn {
		return nil
	}
	return errors.New("connection refused")
}

func TestWait_SucceedsFirstAttempt(t *testing.T) {
	p := &countingProbe{succeedOn: 1}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 5, Interval: time.Hour}, logger.Nop())

	// An hour-long interval proves no sleep happens before the first probe
	// and none after a success.
	err := w.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
}

func TestWait_SucceedsOnAttemptK(t *testing.T) {
	p := &countingProbe{succeedOn: 3}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 5, Interval: time.Millisecond}, logger.Nop())

	err := w.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, p.calls, "exactly k probes when attempt k succeeds")
}

func TestWait_ExhaustsBudget(t *testing.T) {
	p := &countingProbe{}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 4, Interval: time.Millisecond}, logger.Nop())

	err := w.Wait(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 4, p.calls, "exactly MaxAttempts probes, never more, never fewer")
}

func TestWait_SingleAttemptBudget(t *testing.T) {
	p := &countingProbe{}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 1, Interval: time.Hour}, logger.Nop())

	start := time.Now()
	err := w.Wait(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 1, p.calls)
	// no pause after the final attempt
	assert.Less(t, time.Since(start), time.Second)
}

func TestWait_ConstantInterval(t *testing.T) {
	p := &countingProbe{}
	interval := 20 * time.Millisecond
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 3, Interval: interval}, logger.Nop())

	start := time.Now()
	err := w.Wait(context.Background())
	elapsed := time.Since(start)

	require.Error(t, err)
	// 3 attempts mean exactly 2 pauses between them
	assert.GreaterOrEqual(t, elapsed, 2*interval)
}

func TestWait_ContextCancelledDuringPause(t *testing.T) {
	p := &countingProbe{}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 10, Interval: time.Hour}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := w.Wait(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, p.calls)
	assert.Less(t, time.Since(start), time.Second, "cancellation must abort the pause immediately")
}

func TestWait_ZeroInterval(t *testing.T) {
	p := &countingProbe{succeedOn: 5}
	w := NewWaiter("postgres", p.probe, RetryPolicy{MaxAttempts: 10, Interval: 0}, logger.Nop())

	err := w.Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, p.calls)
}
