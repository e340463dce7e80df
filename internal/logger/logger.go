// Package logger builds the structured loggers used by csvq.
//
// It wraps log/slog. Output goes to stderr by default so that stdout only
// carries query results.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Supported handler formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the logger configuration
type Config struct {
	Level     slog.Level
	Format    string    // "text" or "json"
	AddSource bool      // Whether to add source code information
	Writer    io.Writer // Custom writer for output, stderr when nil
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Format: FormatText,
		Writer: os.Stderr,
	}
}

// New creates a new logger with the given configuration
func New(config Config) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default: // text
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a level name (debug, info, warn, error; any case) or
// an integer into a slog.Level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return slog.Level(n), nil
	}
	return 0, fmt.Errorf("unknown log level %q (supported levels: debug, info, warn, error)", s)
}

// ValidFormat reports whether format names a supported handler
func ValidFormat(format string) bool {
	return format == FormatText || format == FormatJSON
}

// WithRun returns a logger tagged with a fresh run_id, and the id
func WithRun(l *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return l.With("run_id", id), id
}
