// Package ambient provides flow-scoped context stacks for Go.
//
// An ambient value is "the current X" (the current tenant, the current
// transaction, the current request): established by some enclosing block
// and visible to everything called from within it, without threading the
// value through every parameter list. Scopes nest: an inner scope shadows
// the outer one and restores it on exit, in strict LIFO order.
//
// The logical flow carrier is context.Context, so ambient state follows
// asynchronous work wherever the context goes: across goroutine handoffs,
// channel sends, and resumption on different workers.
//
// # Quick Start
//
//	var Tenant = ambient.NewKind[string]("tenant")
//
//	func handle(ctx context.Context) error {
//	    ctx, sc := Tenant.Enter(ctx, "acme")
//	    defer sc.Close()
//
//	    return process(ctx) // anything below sees Tenant.Current(ctx) == "acme"
//	}
//
// # Kinds
//
// Each [Kind] owns an independent stack. Two kinds never interact, even
// when they carry the same value type. Create one per distinct ambient
// concept, typically as a package-level variable.
//
// # Discipline
//
// Scopes close in reverse creation order. Closing a scope that is not the
// innermost open scope of its kind is a bug in the caller and fails loudly
// with [ErrScopeMismatch]; the stack is left untouched so the error is
// diagnosable. Closing the same scope twice is a safe no-op.
//
// # Concurrency
//
// A flow's stack has exactly one writer: the flow itself. To hand ambient
// state to a child goroutine, snapshot it with [Fork] (or use the
// ambient/group package, which forks automatically). The child sees the
// parent's stacks as of the fork; later pushes and pops on either side
// are invisible to the other.
package ambient
