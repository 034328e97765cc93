// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Nicolas Hurtado

// Package supervisor starts and supervises the primary server process so the
// container's lifetime tracks the server's lifetime.
//
// Two launch disciplines are supported. The foreground discipline replaces
// the orchestrator's process image with the server, making the server the
// terminal process. The background discipline keeps the orchestrator alive:
// it starts the server asynchronously, allows further bootstrap work
// (seeding), forwards termination signals to the child, and finally blocks
// until the child exits, adopting its exit code.
package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
)

var (
	// ErrIllegalTransition indicates a lifecycle method was called out of
	// order (e.g. Wait before Start).
	ErrIllegalTransition = errors.New("illegal supervisor state transition")

	// ErrNotStarted indicates an operation that needs a running child.
	ErrNotStarted = errors.New("server process not started")
)

// Supervisor owns the handle of the primary server process. The handle is
// used only for signalling and waiting, never for two-way communication.
type Supervisor struct {
	mu       sync.Mutex
	cmd      *exec.Cmd
	state    State
	exitCode int
	logger   *logger.Logger

	sigCh   chan os.Signal
	sigDone chan struct{}
}

func New(log *logger.Logger) *Supervisor {
	return &Supervisor{
		state:  StateNotStarted,
		logger: log,
	}
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ExitCode returns the child's exit code; meaningful only in [StateExited].
func (s *Supervisor) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode
}

// Start launches the server in the background discipline. The child inherits
// the orchestrator's stdout/stderr and receives env as its environment
// snapshot; nothing is shared with it afterwards. Termination signals
// delivered to the orchestrator are forwarded to the child from this point
// on, so stopping the orchestrator stops the server too.
func (s *Supervisor) Start(command string, args []string, env []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transition(StateLaunched); err != nil {
		return err
	}

	cmd := exec.Command(command, args...)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	s.logger.Info().
		Str("command", command).
		Strs("args", args).
		Msg("launching server process")

	if err := cmd.Start(); err != nil {
		s.state = StateNotStarted
		return fmt.Errorf("error starting server process: %w", err)
	}

	s.cmd = cmd
	s.forwardSignals()

	s.logger.Info().Int("pid", cmd.Process.Pid).Msg("server process launched")

	return nil
}

// Exec launches the server in the foreground discipline, replacing the
// orchestrator's process image. On success it never returns; the server is
// the terminal process and no further orchestration is possible.
func (s *Supervisor) Exec(command string, args []string, env []string) error {
	path, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("error resolving server command: %w", err)
	}

	s.mu.Lock()
	if err := s.transition(StateLaunched); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.logger.Info().
		Str("command", path).
		Strs("args", args).
		Msg("replacing orchestrator with server process")

	argv := append([]string{command}, args...)
	if err := syscall.Exec(path, argv, env); err != nil {
		s.mu.Lock()
		s.state = StateNotStarted
		s.mu.Unlock()
		return fmt.Errorf("error replacing process image: %w", err)
	}

	return nil
}

// BeginSeeding marks the start of the one-shot seeding task.
func (s *Supervisor) BeginSeeding() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition(StateSeeding)
}

// BeginSupervising marks the end of bootstrap work; the only thing left is
// waiting for the child.
func (s *Supervisor) BeginSupervising() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition(StateSupervising)
}

// Signal relays sig to the child process.
func (s *Supervisor) Signal(sig os.Signal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil || s.cmd.Process == nil {
		return ErrNotStarted
	}

	s.logger.Info().
		Str("signal", sig.String()).
		Int("pid", s.cmd.Process.Pid).
		Msg("relaying signal to server process")

	return s.cmd.Process.Signal(sig)
}

// Wait blocks until the child exits and returns its exit code. There is no
// timeout: the orchestrator's lifetime is the server's lifetime. A child
// killed by a signal is reported with the conventional 128+signal code.
func (s *Supervisor) Wait() (int, error) {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()

	if cmd == nil {
		return 0, ErrNotStarted
	}

	err := cmd.Wait()
	code := exitCodeOf(cmd, err)

	s.mu.Lock()
	s.stopForwarding()
	s.exitCode = code
	s.state = StateExited
	s.mu.Unlock()

	s.logger.Info().Int("exit_code", code).Msg("server process exited")

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// a non-zero exit is a status, not a supervisor failure
			return code, nil
		}
		return code, fmt.Errorf("error waiting for server process: %w", err)
	}

	return code, nil
}

// forwardSignals relays termination signals to the child until Wait returns.
// Must be called with s.mu held and s.cmd set.
func (s *Supervisor) forwardSignals() {
	s.sigCh = make(chan os.Signal, 1)
	s.sigDone = make(chan struct{})
	signal.Notify(s.sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func(proc *os.Process, ch chan os.Signal, done chan struct{}) {
		for {
			select {
			case sig := <-ch:
				s.logger.Info().Str("signal", sig.String()).Msg("forwarding signal to server process")
				_ = proc.Signal(sig)
			case <-done:
				return
			}
		}
	}(s.cmd.Process, s.sigCh, s.sigDone)
}

// stopForwarding tears down the relay. Must be called with s.mu held.
func (s *Supervisor) stopForwarding() {
	if s.sigCh != nil {
		signal.Stop(s.sigCh)
		close(s.sigDone)
		s.sigCh = nil
		s.sigDone = nil
	}
}

func exitCodeOf(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}

	return 1
}
