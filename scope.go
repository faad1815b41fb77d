package ambient

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// scopeIDPrefix is the TypeID prefix for scope identifiers.
const scopeIDPrefix = "scope"

// newScopeID generates a unique identifier for a scope. It panics only if
// the prefix constant is invalid, which is a programming error.
func newScopeID() string {
	tid, err := typeid.Generate(scopeIDPrefix)
	if err != nil {
		panic(fmt.Sprintf("ambient: invalid scope id prefix %q: %v", scopeIDPrefix, err))
	}
	return tid.String()
}

// stack is the lazily created per-flow frame stack for one kind. Only the
// owning flow pushes and pops, so no locking is needed.
type stack[T any] struct {
	frames []*Scope[T]
}

// fork returns an independent snapshot sharing the scope handles but not
// the frame slice, so push/pop on either copy stays local to it.
func (s *stack[T]) fork() forkable {
	frames := make([]*Scope[T], len(s.frames))
	copy(frames, s.frames)
	return &stack[T]{frames: frames}
}

// Scope is one open entry on a kind's per-flow stack, returned by
// Kind.Enter. Close it on every exit path, normally with defer. A scope
// belongs to the flow that entered it and must be closed on that flow.
type Scope[T any] struct {
	kind   *Kind[T]
	st     *stack[T]
	value  T
	id     string
	closed bool
}

// Value returns the value the scope was entered with.
func (s *Scope[T]) Value() T { return s.value }

// ID returns the scope's unique identifier (TypeID, prefix "scope").
// IDs appear in mismatch errors to make nesting bugs traceable.
func (s *Scope[T]) ID() string { return s.id }

// Kind returns the kind this scope belongs to.
func (s *Scope[T]) Kind() *Kind[T] { return s.kind }

// Closed reports whether Close has already succeeded for this scope.
func (s *Scope[T]) Closed() bool { return s.closed }

// Close pops the scope off its flow's stack, restoring the previous scope
// as current. Closing an already closed scope is a no-op.
//
// Close fails with an error wrapping ErrScopeMismatch when the scope is
// not the innermost open scope of its kind: the caller is disposing
// nested scopes out of order. The stack is left untouched in that case,
// because silently popping a different scope would corrupt the LIFO
// discipline for everything that runs afterwards on the flow.
func (s *Scope[T]) Close() error {
	if s.closed {
		return nil
	}
	n := len(s.st.frames)
	if n == 0 {
		return fmt.Errorf("%w: kind %q stack is empty, cannot pop scope %s",
			ErrScopeMismatch, s.kind.name, s.id)
	}
	if top := s.st.frames[n-1]; top != s {
		return fmt.Errorf("%w: kind %q top is scope %s, cannot pop scope %s",
			ErrScopeMismatch, s.kind.name, top.id, s.id)
	}
	s.st.frames[n-1] = nil
	s.st.frames = s.st.frames[:n-1]
	s.closed = true
	return nil
}

// MustClose is like Close but panics on a mismatch. Use where out-of-order
// disposal should take the process down rather than surface as an error.
func (s *Scope[T]) MustClose() {
	if err := s.Close(); err != nil {
		panic(err)
	}
}
