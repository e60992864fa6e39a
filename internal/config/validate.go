package config

import (
	"fmt"
	"strings"

	"github.com/charliek/procshim/internal/domain"
)

// Validate checks the configuration for errors
func Validate(config *Config) error {
	var errs []string

	if config.Dir == "" {
		errs = append(errs, "dir: working directory is required")
	}

	switch {
	case config.Shell != "" && len(config.Args) > 0:
		errs = append(errs, "cmd: shell command and argv are mutually exclusive")
	case config.Shell != "" && strings.TrimSpace(config.Shell) == "":
		errs = append(errs, "cmd: shell command cannot be empty")
	case config.Shell == "" && len(config.Args) == 0:
		errs = append(errs, "cmd: command is required")
	case config.Shell == "" && strings.TrimSpace(config.Args[0]) == "":
		errs = append(errs, "cmd: program name cannot be empty")
	}

	if config.StopTimeout < 0 {
		errs = append(errs, fmt.Sprintf("stop_timeout: must be non-negative, got %s", config.StopTimeout))
	}

	for k := range config.Env {
		if k == "" || strings.ContainsAny(k, "=\x00") {
			errs = append(errs, fmt.Sprintf("env.%q: invalid variable name", k))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}
