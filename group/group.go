// Package group spawns goroutines that inherit ambient state.
//
// A bare `go` statement hands the child the parent's context value as-is,
// which for ambient stacks would mean a shared mutable stack and a
// cross-flow data race waiting to happen. Group does the handoff right:
// every task gets a copy-on-fork snapshot of the parent's ambient stacks,
// taken when Go is called, so parent and children push and pop freely
// without observing each other.
//
//	g := group.New(ctx, group.WithLimit(8))
//	for _, item := range items {
//	    g.Go(func(ctx context.Context) error {
//	        return process(ctx, item) // sees the parent's ambient state
//	    })
//	}
//	err := g.Wait()
//
// The first task error cancels the group's context; Wait returns it.
package group

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/archnae/ambient"
)

// Group runs tasks on child flows. Create one with New.
type Group struct {
	eg      *errgroup.Group
	ctx     context.Context
	limiter *rate.Limiter
}

// Option configures a Group.
type Option func(*Group)

// WithLimit caps the number of tasks running concurrently. Go blocks
// when the limit is reached until a running task finishes.
func WithLimit(n int) Option {
	return func(g *Group) { g.eg.SetLimit(n) }
}

// WithRate limits task starts to perSec sustained starts per second with
// the given burst. Tasks past the budget wait for a token, respecting
// cancellation while they wait.
func WithRate(perSec float64, burst int) Option {
	return func(g *Group) {
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
}

// New creates a Group. The group's context is cancelled when any task
// returns an error or when ctx is cancelled.
func New(ctx context.Context, opts ...Option) *Group {
	eg, egctx := errgroup.WithContext(ctx)
	g := &Group{eg: eg, ctx: egctx}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Go spawns fn as a task. The task's context carries a snapshot of the
// parent's ambient state as of this call plus the group's cancellation.
func (g *Group) Go(fn func(ctx context.Context) error) {
	ctx := ambient.Fork(g.ctx)
	g.eg.Go(func() error {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		return fn(ctx)
	})
}

// Wait blocks until all tasks finish and returns the first error.
func (g *Group) Wait() error {
	return g.eg.Wait()
}
