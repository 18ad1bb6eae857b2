// Package logx sets up the stderr structured logger shared by every
// component. Debug output is gated behind --debug; user-facing success and
// warning lines are written directly by the cli/pipeline packages instead.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to w at Warn level, or at Debug level
// when debug is true.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Default is the package-level logger used by components that don't have
// one threaded through explicitly. It is never reassigned; the cli package
// builds its own logger with New at startup.
var Default = New(os.Stderr, false)
