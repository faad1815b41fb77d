package middleware

import (
	"context"

	"github.com/archnae/ambient"
)

// Scoped returns middleware that enters an ambient scope of the given
// kind around the handler and closes it on every exit path. The value
// function runs per invocation, so it can derive the scope value from
// the incoming context.
//
// A close failure means the handler leaked an inner scope of the same
// kind; it is reported instead of the handler's nil error so the nesting
// bug cannot pass silently.
func Scoped[T any](kind *ambient.Kind[T], value func(ctx context.Context) T) Middleware {
	return func(ctx context.Context, next Handler) (retErr error) {
		scopedCtx, sc := kind.Enter(ctx, value(ctx))
		defer func() {
			if cerr := sc.Close(); cerr != nil && retErr == nil {
				retErr = cerr
			}
		}()
		return next(scopedCtx)
	}
}
