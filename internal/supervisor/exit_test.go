package supervisor

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	run := func(script string) error {
		return exec.Command("sh", "-c", script).Run()
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"exit 0", run("exit 0"), 0},
		{"exit 7", run("exit 7"), 7},
		{"exit 255", run("exit 255"), 255},
		{"killed by SIGTERM", run("kill -TERM $$"), -15},
		{"killed by SIGKILL", run("kill -KILL $$"), -9},
		{"non-exit error", errors.New("wait: broken"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestProcessExitCode(t *testing.T) {
	assert.Equal(t, 0, ProcessExitCode(0))
	assert.Equal(t, 7, ProcessExitCode(7))
	assert.Equal(t, 143, ProcessExitCode(-15))
	assert.Equal(t, 137, ProcessExitCode(-9))
}
