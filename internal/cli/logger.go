package cli

import (
	"io"
	"log/slog"
)

// newLogger returns the shim's logger. It writes to stderr because stdout belongs to the child.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("component", "procshim")
}
