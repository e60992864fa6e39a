//go:build !linux && !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr puts the child in its own process group. There is no
// Pdeathsig outside Linux, so a SIGKILLed shim leaves the child running.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
