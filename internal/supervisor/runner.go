// Package supervisor runs the single child process of the shim, forwards
// termination signals to it and reports how it exited.
//
// # Security Model
//
// String commands are executed via "sh -c" to support shell features like
// pipes, redirects, and variable expansion. Configuration files have the same
// trust level as a Procfile: they can execute arbitrary code.
package supervisor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charliek/procshim/internal/domain"
)

// ProcessRunner creates and starts processes
type ProcessRunner interface {
	Start(ctx context.Context, config domain.ProcessConfig) (Process, error)
}

// Process represents a running process
type Process interface {
	PID() int
	Wait() error
	Signal(sig os.Signal) error
}

// ExecRunner implements ProcessRunner using os/exec.
// The child writes directly to Stdout and Stderr; nothing is captured.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a new ExecRunner writing to the given streams
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdout: stdout, Stderr: stderr}
}

// Start starts a new process. The context only guards the start itself:
// cancelling it later does not kill the child, Signal does.
func (r *ExecRunner) Start(ctx context.Context, config domain.ProcessConfig) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	argv := config.Argv()
	if len(argv) == 0 {
		return nil, fmt.Errorf("no command configured")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = config.Dir

	// Inherit the environment, overrides last so they win
	cmd.Env = append(os.Environ(), config.EnvList()...)

	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	configureSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting process: %w", err)
	}

	return &execProcess{cmd: cmd}, nil
}

// execProcess wraps exec.Cmd to implement Process interface
type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) PID() int {
	if p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}

func (p *execProcess) Signal(sig os.Signal) error {
	if p.cmd.Process == nil {
		return domain.ErrProcessNotRunning
	}

	// Signal the whole process group so shell wrappers don't orphan their children
	if err := signalGroup(p.cmd.Process.Pid, sig); err != nil {
		// Fall back to signalling just the process
		return p.cmd.Process.Signal(sig)
	}
	return nil
}
