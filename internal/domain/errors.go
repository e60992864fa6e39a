package domain

import "errors"

// Domain errors
var (
	ErrSpawnFailed       = errors.New("failed to start process")
	ErrProcessNotRunning = errors.New("process not running")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrEnvFileNotFound   = errors.New("env file not found")
)
