package ambient

import "errors"

var (
	// ErrNoScope is returned by Current when the calling flow has no open
	// scope of the requested kind. Probe with Has first to avoid it.
	ErrNoScope = errors.New("ambient: no scope registered on this flow")

	// ErrScopeMismatch is returned by Close when the scope is not the
	// innermost open scope of its kind, meaning the caller is tearing
	// down nested scopes out of order.
	ErrScopeMismatch = errors.New("ambient: scope is not the innermost open scope")
)
