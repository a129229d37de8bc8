// Package logging routes application logs to a file through log/slog.
//
// The terminal belongs to the list and timer screens while tempus runs, so
// nothing here ever writes to stdout. Until Setup is called every record is
// discarded.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DebugEnabled returns true if debug mode is enabled via TEMPUS_DEBUG
func DebugEnabled() bool {
	return os.Getenv("TEMPUS_DEBUG") != ""
}

// ParseLevel converts a level name into a slog level; unknown names map to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup opens (or creates) the log file and installs it as the package logger.
// The returned closer must be closed on exit.
func Setup(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f, level)
	return f, nil
}

// SetOutput installs a text handler writing to w
func SetOutput(w io.Writer, level slog.Level) {
	if DebugEnabled() {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the package logger
func Logger() *slog.Logger {
	return logger
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// Debugln logs its arguments at debug level, space separated
func Debugln(args ...interface{}) {
	logger.Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Error logs a failed operation with its cause
func Error(msg string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.Error(msg, args...)
}
