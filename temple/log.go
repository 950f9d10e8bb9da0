package temple

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var slogCtxKey = ctxKey{}

// Logger returns the *slog.Logger stored in ctx by LoggingContext. When there
// is none, it returns a logger that discards everything.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(slogCtxKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// LoggingContext returns a copy of ctx carrying logger, for Render and the
// build to log through.
func LoggingContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, slogCtxKey, logger)
}
