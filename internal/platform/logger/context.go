package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type for context keys defined by this package.
type contextKey struct{}

// loggerKey is the context key under which a request-scoped logger is stored.
var loggerKey = contextKey{}

// WithLogger returns a new context carrying the given logger.
// Passing a nil logger panics: a context must never hold a nil logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContextOrDefault retrieves the logger from the context, falling back
// to the provided default when the context carries none. If the default is
// also nil, slog.Default() is returned.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
