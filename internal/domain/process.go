package domain

import (
	"sort"
	"strings"

	"github.com/charliek/procshim/internal/constants"
)

// ProcessState is the final state of the supervised child.
type ProcessState string

const (
	// ProcessStateExited indicates the child exited on its own
	ProcessStateExited ProcessState = "exited"
	// ProcessStateStopped indicates the child exited after being asked to terminate
	ProcessStateStopped ProcessState = "stopped"
	// ProcessStateFailed indicates the child could not be started
	ProcessStateFailed ProcessState = "failed"
)

// String returns the string representation of ProcessState
func (s ProcessState) String() string {
	return string(s)
}

// ProcessConfig defines the single child the shim runs.
// Exactly one of Shell and Args is set.
type ProcessConfig struct {
	Name    string
	Dir     string
	Shell   string
	Args    []string
	Env     map[string]string
	EnvFile string
}

// Argv returns the concrete argument vector used to spawn the child.
// Shell commands run through "sh -c".
func (c ProcessConfig) Argv() []string {
	if c.Shell != "" {
		return []string{constants.Shell, constants.ShellFlag, c.Shell}
	}
	argv := make([]string, len(c.Args))
	copy(argv, c.Args)
	return argv
}

// CommandLine returns a printable form of the command
func (c ProcessConfig) CommandLine() string {
	if c.Shell != "" {
		return c.Shell
	}
	return strings.Join(c.Args, " ")
}

// EnvList renders Env as sorted KEY=VALUE pairs
func (c ProcessConfig) EnvList() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+c.Env[k])
	}
	return list
}
