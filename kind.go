package ambient

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/archnae/ambient/guard"
)

// Kind is one independently keyed kind of ambient context. Each Kind owns
// a per-flow stack of open scopes; distinct Kinds never share state, even
// when they carry the same value type, because the *Kind pointer itself is
// the lookup key.
//
// Create Kinds once, typically as package-level variables:
//
//	var Tx = ambient.NewKind[*sql.Tx]("tx")
type Kind[T any] struct {
	name string
}

// NewKind creates a Kind with the given name. The name appears in error
// messages and log attributes; it does not need to be globally unique.
func NewKind[T any](name string) *Kind[T] {
	guard.NotEmpty("name", name)
	return &Kind[T]{name: name}
}

// Name returns the name the Kind was created with.
func (k *Kind[T]) Name() string { return k.name }

// ──────────────────────────────────────────────────
// Stack access
// ──────────────────────────────────────────────────

// stackFor returns this kind's stack on the calling flow, or nil if the
// flow has never entered a scope of this kind. A nil stack behaves as an
// empty one for all read paths; the real stack is created lazily by Enter.
func (k *Kind[T]) stackFor(ctx context.Context) *stack[T] {
	c := carrierFrom(ctx)
	if c == nil {
		return nil
	}
	st, _ := c.stacks[k].(*stack[T])
	return st
}

// Enter pushes a new scope holding v onto the calling flow's stack and
// returns the context to use for the enclosed region plus the scope
// handle. The scope is current from the moment Enter returns; close it
// with Scope.Close on every exit path:
//
//	ctx, sc := Tenant.Enter(ctx, "acme")
//	defer sc.Close()
//
// Enter returns a derived context the first time a flow uses this kind
// and the same context on nested entries. Registration is the final step,
// so a scope is never observable half-constructed.
//
// Enter panics with a guard violation if v is a nil pointer, interface,
// map, slice, channel, or function. That is a programming error in the
// caller, not a runtime condition.
func (k *Kind[T]) Enter(ctx context.Context, v T) (context.Context, *Scope[T]) {
	guard.NotNil("value", v)

	st := k.stackFor(ctx)
	if st == nil {
		st = &stack[T]{}
		ctx = context.WithValue(ctx, carrierKey{}, carrierFrom(ctx).with(k, st))
	}

	sc := &Scope[T]{kind: k, st: st, value: v, id: newScopeID()}
	st.frames = append(st.frames, sc)
	return ctx, sc
}

// Current returns the value of the innermost open scope on the calling
// flow. When the flow has no open scope of this kind it returns an error
// wrapping ErrNoScope; use Has to probe without risking the error.
func (k *Kind[T]) Current(ctx context.Context) (T, error) {
	sc, err := k.CurrentScope(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return sc.value, nil
}

// MustCurrent is like Current but panics when no scope is open. Use in
// code paths where an enclosing scope is an established precondition.
func (k *Kind[T]) MustCurrent(ctx context.Context) T {
	v, err := k.Current(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// CurrentScope returns the innermost open scope handle on the calling
// flow, or an error wrapping ErrNoScope when the stack is empty.
func (k *Kind[T]) CurrentScope(ctx context.Context) (*Scope[T], error) {
	st := k.stackFor(ctx)
	if st == nil || len(st.frames) == 0 {
		return nil, fmt.Errorf("%w: kind %q", ErrNoScope, k.name)
	}
	return st.frames[len(st.frames)-1], nil
}

// Has reports whether the calling flow has an open scope of this kind.
// It never fails: a flow that has entered nothing reports false.
func (k *Kind[T]) Has(ctx context.Context) bool {
	st := k.stackFor(ctx)
	return st != nil && len(st.frames) > 0
}

// Depth returns the number of open scopes of this kind on the calling
// flow. Zero on a flow that has entered nothing.
func (k *Kind[T]) Depth(ctx context.Context) int {
	st := k.stackFor(ctx)
	if st == nil {
		return 0
	}
	return len(st.frames)
}

// ──────────────────────────────────────────────────
// Forking and integration
// ──────────────────────────────────────────────────

// Fork returns a context whose stack for this kind is a snapshot of the
// calling flow's stack. Pushes and pops on either side after the fork are
// invisible to the other. Other kinds keep sharing the original stacks;
// use the package-level Fork to snapshot every kind at once.
func (k *Kind[T]) Fork(ctx context.Context) context.Context {
	st := k.stackFor(ctx)
	if st == nil {
		return ctx
	}
	return context.WithValue(ctx, carrierKey{}, carrierFrom(ctx).with(k, st.fork()))
}

// ContextAttr returns the current value as a log attribute named after
// the kind, and false when the flow has no open scope. It satisfies the
// slogx.Source interface so handlers can stamp records with ambient state.
func (k *Kind[T]) ContextAttr(ctx context.Context) (slog.Attr, bool) {
	v, err := k.Current(ctx)
	if err != nil {
		return slog.Attr{}, false
	}
	return slog.Any(k.name, v), true
}
