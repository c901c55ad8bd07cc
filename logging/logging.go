// Package logging provides structured JSON logging for clark.
// The terminal belongs to the UI and stdout to marks and ffmpeg, so logs are
// written to a file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// NewLogger creates a new structured JSON logger writing to w.
// Supported levels: debug, info, warn, error
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
		// Add source location for debug level
		AddSource: lvl == slog.LevelDebug,
	}

	return slog.New(slog.NewJSONHandler(w, opts))
}

// Open returns a logger appending to path and a func that closes the file.
// When the file cannot be opened, logs are discarded.
func Open(level, path string) (*slog.Logger, func() error) {
	if path == "" {
		return NewLogger(level, io.Discard), func() error { return nil }
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewLogger(level, io.Discard), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return NewLogger(level, io.Discard), func() error { return nil }
	}
	return NewLogger(level, f), f.Close
}

// WithComponent returns a logger with component attribute
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// SanitizePath masks sensitive parts of a file path.
// Replaces home directory with ~ for privacy.
func SanitizePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
