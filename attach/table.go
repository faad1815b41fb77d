// Package attach associates extension values with host objects whose
// types you do not control and cannot modify.
//
// A Table keys entries by weak pointer, so holding a value for a host
// never keeps the host alive: when the host is collected, its entry is
// purged by a runtime cleanup. This is the Go shape of a conditional
// weak table.
//
//	var meta = attach.NewTable[http.Request, RequestMeta]()
//
//	meta.Set(req, RequestMeta{Start: time.Now()})
//	m, ok := meta.Get(req)
package attach

import (
	"runtime"
	"sync"
	"weak"

	"github.com/archnae/ambient/guard"
)

// Table maps host objects of type *H to attached values of type V.
// Safe for concurrent use.
type Table[H any, V any] struct {
	mu      sync.Mutex
	entries map[weak.Pointer[H]]V
}

// NewTable creates an empty Table.
func NewTable[H any, V any]() *Table[H, V] {
	return &Table[H, V]{entries: make(map[weak.Pointer[H]]V)}
}

// Set attaches v to host, replacing any previous attachment. The table
// does not keep host alive; the entry disappears when host is collected.
func (t *Table[H, V]) Set(host *H, v V) {
	guard.NotNil("host", host)
	wp := weak.Make(host)

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[wp]; !ok {
		// First attachment for this host: purge the entry when the host
		// is collected. The cleanup closes over the weak pointer only,
		// never the host itself.
		runtime.AddCleanup(host, func(wp weak.Pointer[H]) {
			t.mu.Lock()
			delete(t.entries, wp)
			t.mu.Unlock()
		}, wp)
	}
	t.entries[wp] = v
}

// Get returns the value attached to host. Reports false when host has no
// attachment.
func (t *Table[H, V]) Get(host *H) (V, bool) {
	guard.NotNil("host", host)
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.entries[weak.Make(host)]
	return v, ok
}

// Delete removes the attachment for host, if any.
func (t *Table[H, V]) Delete(host *H) {
	guard.NotNil("host", host)
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, weak.Make(host))
}

// Len returns the number of live attachments.
func (t *Table[H, V]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
