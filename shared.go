package grip

import (
	"runtime"
	"sync/atomic"
)

// allocLocked is the sentinel Exclusive parks in the alloc counter while it
// checks uniqueness. Downgrade must not create a Weak while it is in place.
const allocLocked = ^uint64(0)

// control is the heap record a group of handles shares. It has no behavior
// of its own; every mutation goes through the atomic counters.
type control[T any] struct {
	// strong is the number of live Shared handles. When it reaches zero the
	// payload is destroyed, exactly once, by the releaser that observed it.
	strong atomic.Uint64

	// alloc is the number of live Weak handles, plus one while any Shared
	// handle exists: the Shared group collectively holds a single implicit
	// weak reference. When alloc reaches zero the block is unreachable and
	// the collector reclaims it; no handle may touch it after that.
	alloc atomic.Uint64

	// drop, if set, runs with the payload when the last Shared handle is
	// released, before the value slot is cleared.
	drop func(T)

	value T
}

// Shared is an owning handle: the payload stays alive as long as at least
// one Shared exists, on any goroutine. It must be Released exactly once.
// Make more handles with Clone; copying the struct any other way does not
// count a reference and is a caller error.
type Shared[T any] struct {
	c *control[T]
}

// New allocates a control block holding value with one strong reference.
func New[T any](value T) Shared[T] {
	return NewWithDrop(value, nil)
}

// NewWithDrop is like New but runs drop with the payload when the last
// Shared handle is released. The drop runs exactly once, on whichever
// goroutine released last, after every other holder's writes are visible.
func NewWithDrop[T any](value T, drop func(T)) Shared[T] {
	c := &control[T]{drop: drop, value: value}
	c.strong.Store(1)
	c.alloc.Store(1)
	return Shared[T]{c: c}
}

// Clone returns a new Shared handle to the same payload. A plain increment
// suffices: holding a Shared already proves the payload is alive, and no
// other memory needs ordering against the count bump.
func (s Shared[T]) Clone() Shared[T] {
	if s.c.strong.Add(1)-1 > refLimit {
		overflowAbort()
	}
	return Shared[T]{c: s.c}
}

// Get returns the payload. The pointer is valid until this handle is
// Released. Mutating through it requires either Exclusive or an external
// lock; concurrent plain reads are fine.
func (s Shared[T]) Get() *T {
	return &s.c.value
}

// Downgrade returns a Weak handle to the same block. It retries while
// Exclusive has the alloc counter parked on its sentinel, so a Weak can
// never spring into existence in the middle of a uniqueness check.
func (s Shared[T]) Downgrade() Weak[T] {
	n := s.c.alloc.Load()
	for {
		if n == allocLocked {
			runtime.Gosched()
			n = s.c.alloc.Load()
			continue
		}
		if n > refLimit {
			overflowAbort()
		}
		// Synchronizes with the restoring store in Exclusive, so this
		// handle's existence is visible to the next uniqueness check.
		if s.c.alloc.CompareAndSwap(n, n+1) {
			return Weak[T]{c: s.c}
		}
		n = s.c.alloc.Load()
	}
}

// Exclusive returns a pointer the caller may mutate through, but only if
// this is the sole Shared handle and no Weak handles exist. The pointer is
// valid only until any other handle is created or this one is Released.
//
// Parking the sentinel in alloc first shuts out concurrent Downgrade; with
// that door closed, strong == 1 means no other handle of either kind can
// appear, because only an existing handle can create one.
func (s Shared[T]) Exclusive() (*T, bool) {
	if !s.c.alloc.CompareAndSwap(1, allocLocked) {
		return nil, false
	}
	unique := s.c.strong.Load() == 1
	s.c.alloc.Store(1)
	if !unique {
		return nil, false
	}
	// All prior releases have published; their writes are visible here.
	return &s.c.value, true
}

// StrongCount reports the number of live Shared handles. Advisory: it can
// be stale by the time the caller looks at it.
func (s Shared[T]) StrongCount() uint64 {
	return s.c.strong.Load()
}

// WeakCount reports the alloc counter: live Weak handles plus the one
// implicit reference the Shared group holds. Advisory, like StrongCount.
func (s Shared[T]) WeakCount() uint64 {
	return s.c.alloc.Load()
}

// Release invalidates the handle and must be called exactly once. The
// caller that releases the last Shared handle destroys the payload: the
// drop hook runs, the slot is cleared, and then the group's implicit weak
// reference is released, which may in turn retire the whole block.
func (s Shared[T]) Release() {
	// The decrement publishes this holder's writes; observing it hit zero
	// acquires every other holder's, so destruction happens-after all use.
	if s.c.strong.Add(^uint64(0)) == 0 {
		if s.c.drop != nil {
			s.c.drop(s.c.value)
		}
		var zero T
		s.c.value = zero
		releaseAlloc(s.c)
	}
}

// releaseAlloc drops one reference to the block itself, from a Weak handle
// or from the Shared group's implicit one. The releaser that observes zero
// retires the block: nothing points at it anymore, so the collector takes
// it, and any handle touching it afterwards is already broken.
func releaseAlloc[T any](c *control[T]) {
	c.alloc.Add(^uint64(0))
}
