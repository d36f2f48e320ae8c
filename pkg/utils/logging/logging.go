package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/clog"
)

type ctxKey struct{}

var defaultLogger = slog.New(clog.New(
	clog.WithWriter(os.Stdout),
	clog.WithLevel(slog.LevelInfo),
))

// Default returns the process-wide logger.
func Default() *slog.Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger. It is intended to be called
// once at startup from the CLI layer.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
}

// With embeds the logger into the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts a logger from the context, falling back to the default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return defaultLogger
}
