// Package middleware provides composable middleware for context-aware
// handlers. Middleware wraps handler calls synchronously and can modify
// execution (recover from panics, establish ambient scopes, log, enforce
// deadlines, etc.).
package middleware

import "context"

// Handler is the terminal function that executes the wrapped logic.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context and the next handler to call. Middleware MUST call
// next to continue the chain (unless short-circuiting on error).
type Middleware func(ctx context.Context, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, scoped) executes as:
//
//	logging → recover → scoped → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, next Handler) error {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, prev)
			}
		}
		return h(ctx)
	}
}
