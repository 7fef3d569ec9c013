package grip

// Weak is a non-owning handle: it observes a payload without keeping it
// alive, though it does keep the control block allocated. It grants no
// access itself; Upgrade it to a Shared handle first. Like every handle in
// this package it must be Released exactly once.
type Weak[T any] struct {
	c *control[T]
}

// Upgrade attempts to turn the Weak handle into a Shared one. It fails
// exactly when the payload is already gone, reported by a strong count of
// zero. The count can never leave zero again, so the CAS loop only has to
// outrace other increments, not a revival.
func (w Weak[T]) Upgrade() (Shared[T], bool) {
	for {
		n := w.c.strong.Load()
		if n == 0 {
			return Shared[T]{}, false
		}
		if n > refLimit {
			overflowAbort()
		}
		if w.c.strong.CompareAndSwap(n, n+1) {
			return Shared[T]{c: w.c}, true
		}
	}
}

// Clone returns another Weak handle to the same block. No sentinel check is
// needed: a live Weak means the alloc counter is at least 2, so Exclusive
// cannot have parked its sentinel there.
func (w Weak[T]) Clone() Weak[T] {
	if w.c.alloc.Add(1)-1 > refLimit {
		overflowAbort()
	}
	return Weak[T]{c: w.c}
}

// Release invalidates the handle and must be called exactly once. Releasing
// the last reference to the block retires it.
func (w Weak[T]) Release() {
	releaseAlloc(w.c)
}
