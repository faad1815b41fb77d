package ambient

import "context"

// carrierKey is the single context key under which all ambient state for
// a flow travels. One key for everything keeps Fork able to enumerate the
// kinds attached to a flow without a global registry.
type carrierKey struct{}

// forkable is the type-erased view of a per-kind stack, so the carrier
// can snapshot stacks without knowing their value types.
type forkable interface {
	fork() forkable
}

// carrier maps each attached Kind to its per-flow stack. The map is
// treated as immutable: attaching a new kind builds a new carrier on a
// derived context, so sibling contexts never observe the attachment.
// The stacks themselves are mutable and shared along the flow.
type carrier struct {
	stacks map[any]forkable
}

// carrierFrom returns the flow's carrier, or nil when the flow has never
// entered a scope of any kind.
func carrierFrom(ctx context.Context) *carrier {
	c, _ := ctx.Value(carrierKey{}).(*carrier)
	return c
}

// with returns a new carrier that maps k to st and keeps every other
// binding. Safe on a nil receiver.
func (c *carrier) with(k, st any) *carrier {
	nc := &carrier{stacks: make(map[any]forkable, 4)}
	if c != nil {
		for key, s := range c.stacks {
			nc.stacks[key] = s
		}
	}
	nc.stacks[k] = st.(forkable)
	return nc
}

// Fork returns a context carrying a snapshot of every ambient stack open
// on the calling flow. Hand the result to a child goroutine: the child
// sees the parent's state as of the fork, and pushes or pops on either
// side afterwards stay invisible to the other.
//
// A context with no ambient state is returned unchanged.
func Fork(ctx context.Context) context.Context {
	c := carrierFrom(ctx)
	if c == nil || len(c.stacks) == 0 {
		return ctx
	}
	nc := &carrier{stacks: make(map[any]forkable, len(c.stacks))}
	for key, st := range c.stacks {
		nc.stacks[key] = st.fork()
	}
	return context.WithValue(ctx, carrierKey{}, nc)
}
