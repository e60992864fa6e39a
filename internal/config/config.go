package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charliek/procshim/internal/constants"
	"github.com/charliek/procshim/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config represents the procshim configuration
type Config struct {
	Name        string
	Dir         string
	Shell       string
	Args        []string
	Env         map[string]string
	EnvFile     string
	StopTimeout time.Duration
}

// rawConfig is used for initial YAML parsing to handle the flexible cmd format
type rawConfig struct {
	Name        string            `yaml:"name"`
	Dir         string            `yaml:"dir"`
	Cmd         interface{}       `yaml:"cmd"`
	Env         map[string]string `yaml:"env"`
	EnvFile     string            `yaml:"env_file"`
	StopTimeout string            `yaml:"stop_timeout"`
}

// Default returns the built-in configuration: node server.js in /app/backend
func Default() *Config {
	args := make([]string, len(constants.DefaultArgs))
	copy(args, constants.DefaultArgs)

	return &Config{
		Name:        constants.DefaultProcessName,
		Dir:         constants.DefaultWorkDir,
		Args:        args,
		Env:         make(map[string]string),
		StopTimeout: constants.DefaultStopTimeout,
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	// First check if file exists
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	// Check file permissions for security
	if err := CheckFilePermissions(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and the caller did not ask for it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, domain.ErrConfigNotFound) {
		return Default(), nil
	}
	return nil, err
}

// Parse parses configuration from YAML bytes. Unset fields keep their defaults.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	config := Default()
	if raw.Name != "" {
		config.Name = raw.Name
	}
	if raw.Dir != "" {
		config.Dir = raw.Dir
	}
	if raw.EnvFile != "" {
		config.EnvFile = raw.EnvFile
	}
	for k, v := range raw.Env {
		config.Env[k] = v
	}

	if raw.Cmd != nil {
		if err := parseCommand(config, raw.Cmd); err != nil {
			return nil, fmt.Errorf("%w: cmd: %v", domain.ErrInvalidConfig, err)
		}
	}

	if raw.StopTimeout != "" {
		d, err := time.ParseDuration(raw.StopTimeout)
		if err != nil {
			return nil, fmt.Errorf("%w: stop_timeout: %v", domain.ErrInvalidConfig, err)
		}
		config.StopTimeout = d
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// parseCommand handles both the string and the list form of cmd
func parseCommand(config *Config, value interface{}) error {
	switch v := value.(type) {
	case string:
		// Simple form: cmd: node server.js
		config.UseShell(v)
		return nil
	case []interface{}:
		// List form: cmd: [node, server.js]
		args := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("element %d: expected string, got %T", i, item)
			}
			args = append(args, s)
		}
		config.UseArgs(args)
		return nil
	default:
		return fmt.Errorf("invalid command type: %T", value)
	}
}

// UseShell sets a command line that runs through sh -c
func (c *Config) UseShell(line string) {
	c.Shell = line
	c.Args = nil
}

// UseArgs sets an argv that runs directly
func (c *Config) UseArgs(args []string) {
	c.Args = args
	c.Shell = ""
}

// ProcessEnv loads env_file relative to configDir and merges env on top of it
func (c *Config) ProcessEnv(configDir string) (map[string]string, error) {
	return LoadProcessEnv(c.EnvFile, c.Env, configDir)
}

// ToDomainProcess converts the config to the domain ProcessConfig with env resolved.
// A relative dir is resolved against configDir, like env_file.
func (c *Config) ToDomainProcess(configDir string) (domain.ProcessConfig, error) {
	env, err := c.ProcessEnv(configDir)
	if err != nil {
		return domain.ProcessConfig{}, err
	}

	return domain.ProcessConfig{
		Name:    c.Name,
		Dir:     resolvePath(c.Dir, configDir),
		Shell:   c.Shell,
		Args:    c.Args,
		Env:     env,
		EnvFile: c.EnvFile,
	}, nil
}
