package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charliek/procshim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	t.Run("empty path returns nil", func(t *testing.T) {
		env, err := LoadEnvFile("")
		assert.NoError(t, err)
		assert.Nil(t, env)
	})

	t.Run("loads env file", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		err := os.WriteFile(envPath, []byte("FOO=bar\nBAZ=qux"), 0644)
		require.NoError(t, err)

		env, err := LoadEnvFile(envPath)
		require.NoError(t, err)
		assert.Equal(t, "bar", env["FOO"])
		assert.Equal(t, "qux", env["BAZ"])
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadEnvFile("nonexistent.env")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEnvFileNotFound)
	})
}

func TestMergeEnv(t *testing.T) {
	t.Run("merges multiple maps", func(t *testing.T) {
		env1 := map[string]string{"A": "1", "B": "2"}
		env2 := map[string]string{"B": "3", "C": "4"}

		result := MergeEnv(env1, env2)
		assert.Equal(t, "1", result["A"])
		assert.Equal(t, "3", result["B"]) // env2 overrides
		assert.Equal(t, "4", result["C"])
	})

	t.Run("handles nil maps", func(t *testing.T) {
		env1 := map[string]string{"A": "1"}
		result := MergeEnv(nil, env1, nil)
		assert.Equal(t, "1", result["A"])
	})
}

func TestLoadProcessEnv(t *testing.T) {
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	err := os.WriteFile(envFile, []byte("FROM_FILE=1\nSHARED=file"), 0644)
	require.NoError(t, err)

	t.Run("inline env wins over env file", func(t *testing.T) {
		env, err := LoadProcessEnv(".env", map[string]string{
			"INLINE": "2",
			"SHARED": "inline",
		}, dir)
		require.NoError(t, err)

		assert.Equal(t, "1", env["FROM_FILE"])
		assert.Equal(t, "2", env["INLINE"])
		assert.Equal(t, "inline", env["SHARED"])
	})

	t.Run("absolute env file ignores config dir", func(t *testing.T) {
		env, err := LoadProcessEnv(envFile, nil, "/does/not/matter")
		require.NoError(t, err)
		assert.Equal(t, "file", env["SHARED"])
	})

	t.Run("no env file", func(t *testing.T) {
		env, err := LoadProcessEnv("", map[string]string{"A": "1"}, dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1"}, env)
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := LoadProcessEnv("nonexistent.env", nil, dir)
		require.Error(t, err)
	})
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, ConfigDir(filepath.Join(dir, "procshim.yaml")))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, ConfigDir("procshim.yaml"))
}
