package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/tasks-api/internal/config"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger writing to stdout,
// installs it as the slog default and returns it.
func Setup(cfg config.ServerConfig) *slog.Logger {
	logger := New(cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// New creates a JSON logger writing to w at the given level.
// An unrecognized level falls back to info with a warning on stderr, so the
// JSON stream in w stays machine-readable.
func New(level string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level, os.Stderr),
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a configured level name (case-insensitive) to a slog.Level.
// Unknown names yield slog.LevelInfo; a text warning is written to warn when
// warn is non-nil.
func ParseLevel(level string, warn io.Writer) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		if warn != nil {
			slog.New(slog.NewTextHandler(warn, nil)).Warn("invalid log level configured, using default level",
				"configured_level", level,
				"default_level", "info")
		}
		return slog.LevelInfo
	}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		// ALLOW-PANIC: storing a nil logger is a programming error
		panic("logger cannot be nil")
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback if none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}
