package grip

import "sync/atomic"

// Lazy is a one-time initialization cell: a pointer that is published at
// most once and read many times. The zero value is an empty cell.
type Lazy[T any] struct {
	ptr atomic.Pointer[T]
}

// Get returns the cell's value, initializing it with init if it is still
// empty. Under a race several callers may each run init; one result wins
// the publication and the rest are discarded, so init must be safe to run
// more than once and should not have side effects that may not be thrown
// away. Every caller gets the same pointer back, and the winning value is
// fully visible before the pointer is.
func (l *Lazy[T]) Get(init func() T) *T {
	if p := l.ptr.Load(); p != nil {
		return p
	}
	v := init()
	if l.ptr.CompareAndSwap(nil, &v) {
		return &v
	}
	return l.ptr.Load()
}

// Loaded returns the cell's value, or nil if nothing has been published.
func (l *Lazy[T]) Loaded() *T {
	return l.ptr.Load()
}
