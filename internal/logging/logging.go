// Package logging sets up the charmbracelet/log logger shared by the app.
// The TUI owns the terminal, so logs go to a file under the state
// directory rather than stderr.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DebugEnv turns on debug-level logging when set to any value.
const DebugEnv = "DOCKYARD_DEBUG"

// New creates a logger with timestamps that writes to w at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// Level picks debug when requested by flag or environment, info otherwise.
func Level(debug bool) log.Level {
	if debug || os.Getenv(DebugEnv) != "" {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// OpenFile creates dir if needed and returns a logger appending to
// dir/dockyard.log. Close the returned file on exit.
func OpenFile(dir string, level log.Level) (*log.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "dockyard.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context with l attached.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx, or log.Default() if none is
// attached.
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
