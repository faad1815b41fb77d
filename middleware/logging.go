package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs handler start and completion.
// The name identifies the handler in log output. Ambient state lands on
// the records automatically when the logger uses a slogx.Handler.
func Logging(logger *slog.Logger, name string) Middleware {
	return func(ctx context.Context, next Handler) error {
		logger.InfoContext(ctx, "handler started",
			slog.String("handler", name),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "handler failed",
				slog.String("handler", name),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.InfoContext(ctx, "handler completed",
				slog.String("handler", name),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
