// Package conc provides small concurrency-safe containers.
//
// List is a mutex-guarded slice for the common case of a shared,
// occasionally mutated collection. Reads take a shared lock; Snapshot
// and Range work on a copy so callers can iterate without holding any
// lock. For single-flow queues use ambient/deque instead.
package conc

import "sync"

// List is a concurrency-safe ordered list of T.
// The zero value is an empty list ready to use.
type List[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewList creates a List seeded with the given items.
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{}
	if len(items) > 0 {
		l.items = make([]T, len(items))
		copy(l.items, items)
	}
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Append adds items at the end.
func (l *List[T]) Append(items ...T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, items...)
}

// Insert places v at index i, shifting later items right. Reports false
// when i is outside [0, Len].
func (l *List[T]) Insert(i int, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i > len(l.items) {
		return false
	}
	var zero T
	l.items = append(l.items, zero)
	copy(l.items[i+1:], l.items[i:])
	l.items[i] = v
	return true
}

// Get returns the item at index i. Reports false when i is out of range.
func (l *List[T]) Get(i int) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Set replaces the item at index i. Reports false when i is out of range.
func (l *List[T]) Set(i int, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items[i] = v
	return true
}

// RemoveAt removes and returns the item at index i, shifting later items
// left. Reports false when i is out of range.
func (l *List[T]) RemoveAt(i int) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	v := l.items[i]
	var zero T
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// Snapshot returns a copy of the current content.
func (l *List[T]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Range calls fn for each item of a snapshot, stopping when fn returns
// false. fn runs without the list lock held, so it may call back into
// the list.
func (l *List[T]) Range(fn func(i int, v T) bool) {
	for i, v := range l.Snapshot() {
		if !fn(i, v) {
			return
		}
	}
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
