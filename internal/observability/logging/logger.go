// Package logging builds the application's slog loggers and propagates
// them, together with the request ID, through context.
package logging

import (
	"context"
	"log/slog"
	"os"

	"bookmap/internal/handler/http/requestid"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// levelFromEnv maps LOG_LEVEL to a slog level. Only "debug" changes
// anything; everything else means info.
func levelFromEnv() slog.Level {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// NewLogger returns the production logger: JSON on stdout, level taken
// from LOG_LEVEL. Source locations are attached when the level is warn
// or lower so error lines point at code.
func NewLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

// NewTextLogger is the human-readable variant for local development.
func NewTextLogger() *slog.Logger {
	level := levelFromEnv()
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

// WithRequestID attaches the request ID from ctx, if any, so every log
// line from one request can be grouped.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if reqID := requestid.FromContext(ctx); reqID != "" {
		return logger.With("request_id", reqID)
	}
	return logger
}

// WithFields returns logger extended with the given key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// WithLogger stores logger in ctx for retrieval with FromContext.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext returns the logger carried by ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
