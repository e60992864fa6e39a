package supervisor

import (
	"errors"
	"os/exec"
	"syscall"

	"github.com/charliek/procshim/internal/constants"
)

// ExitCode extracts the child's return code from a Wait error.
// For signal termination it is the negative signal number (e.g., -15 for SIGTERM).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return constants.ExitUnknown
	}

	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		if status.Signaled() {
			return -int(status.Signal())
		}
		return status.ExitStatus()
	}
	return exitErr.ExitCode()
}

// ProcessExitCode converts a return code from ExitCode into a process exit status.
// Signal deaths map to 128+N like a shell reports them.
func ProcessExitCode(rc int) int {
	if rc < 0 {
		return constants.SignalExitBase - rc
	}
	return rc
}
