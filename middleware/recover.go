package middleware

import (
	"context"
	"log/slog"

	"github.com/archnae/ambient/errutil"
)

// Recover returns middleware that recovers from panics in the handler
// chain. Panics are converted to *errutil.PanicError and logged with the
// captured stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, next Handler) error {
		err := errutil.Safely(func() error { return next(ctx) })
		if pe, ok := errutil.AsPanic(err); ok {
			logger.Error("handler panicked",
				slog.Any("panic", pe.Value),
				slog.String("stack", string(pe.Stack)),
			)
		}
		return err
	}
}
