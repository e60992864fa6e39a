package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charliek/procshim/internal/domain"
	"github.com/joho/godotenv"
)

// LoadEnvFile reads a .env file and returns the variables as a map
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", domain.ErrEnvFileNotFound, path)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	return env, nil
}

// MergeEnv merges multiple environment maps in order, with later maps taking precedence
func MergeEnv(envMaps ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, env := range envMaps {
		for k, v := range env {
			result[k] = v
		}
	}
	return result
}

// LoadProcessEnv loads and merges the variables layered on top of the inherited environment.
// Priority (lowest to highest):
// 1. env_file
// 2. env variables
func LoadProcessEnv(envFile string, env map[string]string, configDir string) (map[string]string, error) {
	var fileEnv map[string]string
	var err error

	if envFile != "" {
		fileEnv, err = LoadEnvFile(resolvePath(envFile, configDir))
		if err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	}

	return MergeEnv(fileEnv, env), nil
}

// resolvePath resolves a potentially relative path against a base directory
func resolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ConfigDir returns the absolute directory containing path, used to resolve dir and env_file
func ConfigDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(abs)
}

// CheckFilePermissions checks if a file has secure permissions.
// On Unix-like systems, it verifies the file is not world-writable.
func CheckFilePermissions(path string) error {
	// Skip permission check on Windows
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking file permissions: %w", err)
	}

	// World-writable = others have write (0002)
	if info.Mode().Perm()&0002 != 0 {
		return fmt.Errorf("%w: config file %s is world-writable, run: chmod o-w %s", domain.ErrInvalidConfig, path, path)
	}

	return nil
}
