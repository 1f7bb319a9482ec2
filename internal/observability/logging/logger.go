// Package logging configures the structured loggers used by the digest
// binaries. Output is JSON on stdout so that container log collectors can
// parse entries without extra configuration.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// parseLevel maps a LOG_LEVEL value to a slog level. Unrecognized values,
// including the empty string, fall back to info.
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

// NewLogger builds the process-wide JSON logger. The minimum level comes
// from the LOG_LEVEL environment variable (debug, info, warn, error).
// Source locations are attached only at debug level to keep routine
// digest-run output compact.
func NewLogger() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	return slog.New(handler)
}

// WithRunID returns a logger that tags every entry with the digest run ID,
// so one run's load, filter, and delivery entries can be correlated.
// An empty run ID returns the logger unchanged.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	if runID == "" {
		return logger
	}
	return logger.With("run_id", runID)
}
