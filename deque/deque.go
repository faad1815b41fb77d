// Package deque provides a growable double-ended queue.
//
// The deque is backed by a power-of-two ring buffer, so pushes and pops
// at both ends are amortized O(1) and indexed access is O(1). The zero
// value is ready to use. A Deque is not safe for concurrent use; guard
// it externally or use the ambient/conc package for shared collections.
package deque

import "github.com/archnae/ambient/guard"

// minCapacity is the smallest backing buffer allocated. Must be a power
// of two so index arithmetic can use masking.
const minCapacity = 8

// Deque is a double-ended queue of T. The zero value is an empty deque.
type Deque[T any] struct {
	buf   []T
	head  int
	count int
}

// New creates a Deque. An optional capacity hint pre-sizes the buffer to
// hold at least that many elements before the first grow.
func New[T any](capacity ...int) *Deque[T] {
	d := &Deque[T]{}
	if len(capacity) > 0 && capacity[0] > 0 {
		c := minCapacity
		for c < capacity[0] {
			c <<= 1
		}
		d.buf = make([]T, c)
	}
	return d
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int { return d.count }

// PushBack appends v at the back.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[(d.head+d.count)&(len(d.buf)-1)] = v
	d.count++
}

// PushFront prepends v at the front.
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head = (d.head - 1) & (len(d.buf) - 1)
	d.buf[d.head] = v
	d.count++
}

// PopFront removes and returns the front element. Reports false on an
// empty deque.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) & (len(d.buf) - 1)
	d.count--
	d.shrink()
	return v, true
}

// PopBack removes and returns the back element. Reports false on an
// empty deque.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	i := (d.head + d.count - 1) & (len(d.buf) - 1)
	v := d.buf[i]
	d.buf[i] = zero
	d.count--
	d.shrink()
	return v, true
}

// Front returns the front element without removing it. Reports false on
// an empty deque.
func (d *Deque[T]) Front() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	return d.buf[d.head], true
}

// Back returns the back element without removing it. Reports false on an
// empty deque.
func (d *Deque[T]) Back() (T, bool) {
	var zero T
	if d.count == 0 {
		return zero, false
	}
	return d.buf[(d.head+d.count-1)&(len(d.buf)-1)], true
}

// At returns the element i positions from the front. It panics with a
// guard violation when i is out of range; use Len to bound the index.
func (d *Deque[T]) At(i int) T {
	guard.InRange("index", i, d.count)
	return d.buf[(d.head+i)&(len(d.buf)-1)]
}

// Clear removes all elements, releasing the backing buffer.
func (d *Deque[T]) Clear() {
	d.buf = nil
	d.head = 0
	d.count = 0
}

// grow doubles the buffer when full, and allocates it on first use.
func (d *Deque[T]) grow() {
	if d.buf == nil {
		d.buf = make([]T, minCapacity)
		return
	}
	if d.count == len(d.buf) {
		d.resize(len(d.buf) << 1)
	}
}

// shrink halves the buffer when it is at most a quarter full, keeping
// memory proportional to the content.
func (d *Deque[T]) shrink() {
	if len(d.buf) > minCapacity && d.count<<2 <= len(d.buf) {
		d.resize(len(d.buf) >> 1)
	}
}

// resize moves the content into a fresh buffer of size n, rotating the
// ring so head starts at zero.
func (d *Deque[T]) resize(n int) {
	buf := make([]T, n)
	if d.head+d.count <= len(d.buf) {
		copy(buf, d.buf[d.head:d.head+d.count])
	} else {
		k := copy(buf, d.buf[d.head:])
		copy(buf[k:], d.buf[:d.count-k])
	}
	d.buf = buf
	d.head = 0
}
