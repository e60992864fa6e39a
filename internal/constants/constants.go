// Package constants provides shared configuration values used across the procshim application.
package constants

import "time"

// Configuration file defaults
const (
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "procshim.yaml"

	// DefaultProcessName is the name used in log output when none is configured
	DefaultProcessName = "backend"

	// DefaultWorkDir is the directory the child is started in
	DefaultWorkDir = "/app/backend"
)

// DefaultArgs is the argv of the child when no command is configured
var DefaultArgs = []string{"node", "server.js"}

// Timeout and duration defaults
const (
	// DefaultStopTimeout is how long to wait after SIGTERM before sending SIGKILL.
	// Zero never escalates and waits for the child to exit.
	DefaultStopTimeout time.Duration = 0
)

// Exit codes
const (
	// ExitSignaled is returned after a forwarded termination signal
	ExitSignaled = 0

	// ExitSpawnFailure is returned when the child could not be started
	ExitSpawnFailure = 1

	// ExitUnknown is returned when the child's status cannot be determined
	ExitUnknown = 1

	// SignalExitBase is added to a signal number when the child died from a signal
	SignalExitBase = 128
)

// Shell used for string commands
const (
	Shell     = "sh"
	ShellFlag = "-c"
)
