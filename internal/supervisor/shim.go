package supervisor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charliek/procshim/internal/constants"
	"github.com/charliek/procshim/internal/domain"
)

// ShimConfig holds configuration for the shim
type ShimConfig struct {
	// StopTimeout is how long to wait after SIGTERM before sending SIGKILL.
	// Zero waits for the child indefinitely.
	StopTimeout time.Duration
	// Signals replaces the OS signal subscription when non-nil
	Signals <-chan os.Signal
	Logger  *slog.Logger
}

// DefaultShimConfig returns default configuration
func DefaultShimConfig() ShimConfig {
	return ShimConfig{
		StopTimeout: constants.DefaultStopTimeout,
	}
}

// Result describes how a shim run ended
type Result struct {
	State domain.ProcessState
	PID   int
	// ChildCode is the child's return code, negative when it died from a signal
	ChildCode int
	// ExitCode is the status the shim itself should exit with
	ExitCode int
	// Signal is the signal that triggered shutdown, if any
	Signal os.Signal
	// Killed reports whether SIGKILL was needed
	Killed bool
}

// Shim runs exactly one child process and mirrors its lifecycle.
// There is no restart and no retry: every outcome is terminal.
type Shim struct {
	process domain.ProcessConfig
	runner  ProcessRunner
	cfg     ShimConfig
	logger  *slog.Logger
}

// New creates a new shim for the given process
func New(process domain.ProcessConfig, runner ProcessRunner, cfg ShimConfig) *Shim {
	if runner == nil {
		runner = NewExecRunner(os.Stdout, os.Stderr)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Shim{
		process: process,
		runner:  runner,
		cfg:     cfg,
		logger:  logger.With("process", process.Name),
	}
}

// Run starts the child and blocks until it is gone.
//
// If the child exits on its own, the result carries its exit code. If a
// forwarded signal arrives or ctx is cancelled, the child is sent SIGTERM, the
// shim waits for it and the exit code is 0. A child that cannot be started
// yields an error wrapping domain.ErrSpawnFailed and exit code 1.
func (s *Shim) Run(ctx context.Context) (Result, error) {
	// Subscribe before spawning so an early signal is buffered rather than lost
	signals := s.cfg.Signals
	if signals == nil {
		ch, stop := Subscribe()
		defer stop()
		signals = ch
	}

	s.logger.Debug("spawning child", "argv", s.process.Argv(), "dir", s.process.Dir)

	proc, err := s.runner.Start(ctx, s.process)
	if err != nil {
		return Result{
			State:    domain.ProcessStateFailed,
			ExitCode: constants.ExitSpawnFailure,
		}, fmt.Errorf("%w %s: %v", domain.ErrSpawnFailed, s.process.CommandLine(), err)
	}

	pid := proc.PID()
	s.logger.Info("starting child", "pid", pid, "cmd", s.process.CommandLine(), "dir", s.process.Dir)

	done := make(chan error, 1)
	go func() {
		done <- proc.Wait()
	}()

	for {
		select {
		case err := <-done:
			rc := ExitCode(err)
			s.logger.Debug("child exited", "pid", pid, "rc", rc)
			return Result{
				State:     domain.ProcessStateExited,
				PID:       pid,
				ChildCode: rc,
				ExitCode:  ProcessExitCode(rc),
			}, nil
		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			s.logger.Info("received signal, stopping child", "signal", sig.String(), "pid", pid)
			result := s.stop(proc, done, signals)
			result.Signal = sig
			return result, nil
		case <-ctx.Done():
			s.logger.Info("context done, stopping child", "pid", pid, "err", ctx.Err())
			return s.stop(proc, done, signals), nil
		}
	}
}

// stop sends SIGTERM and waits for the child, escalating to SIGKILL after StopTimeout
func (s *Shim) stop(proc Process, done <-chan error, signals <-chan os.Signal) Result {
	pid := proc.PID()

	if err := proc.Signal(sigterm); err != nil {
		s.logger.Debug("SIGTERM failed (process may have already exited)", "pid", pid, "err", err)
	}

	var timeout <-chan time.Time
	if s.cfg.StopTimeout > 0 {
		timer := time.NewTimer(s.cfg.StopTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	killed := false
	for {
		select {
		case err := <-done:
			rc := ExitCode(err)
			s.logger.Info("child stopped", "pid", pid, "rc", rc)
			return Result{
				State:     domain.ProcessStateStopped,
				PID:       pid,
				ChildCode: rc,
				ExitCode:  constants.ExitSignaled,
				Killed:    killed,
			}
		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			s.logger.Debug("already stopping, ignoring signal", "signal", sig.String())
		case <-timeout:
			s.logger.Warn("sending SIGKILL (graceful shutdown timed out)", "pid", pid, "timeout", s.cfg.StopTimeout)
			if err := proc.Signal(sigkill); err != nil {
				s.logger.Warn("SIGKILL failed", "pid", pid, "err", err)
			}
			killed = true
			timeout = nil
		}
	}
}
