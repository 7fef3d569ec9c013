package grip

import (
	"runtime"
	"sync/atomic"

	"github.com/valyala/fastrand"
)

// goschedEvery is roughly how many failed lock attempts a goroutine makes
// before yielding to the scheduler. The exact count is jittered per waiter
// so contenders drift out of lockstep instead of retrying in a convoy.
const goschedEvery = 64

// SpinLock is mutual exclusion over a single value via a busy-wait flag.
// There is no queue and no fairness: a waiter can in principle starve under
// adversarial scheduling, in exchange for the cheapest possible uncontended
// path. Use it for critical sections of a few operations; anything that can
// block belongs under a real mutex instead. The zero value is an unlocked
// lock over the zero T.
type SpinLock[T any] struct {
	locked atomic.Bool
	value  T
}

// NewSpinLock returns an unlocked SpinLock protecting value.
func NewSpinLock[T any](value T) *SpinLock[T] {
	return &SpinLock[T]{value: value}
}

// Lock busy-waits until it owns the flag and returns the Guard. The winning
// swap orders the critical section after the previous holder's Release, so
// every write made under the previous Guard is visible under this one.
func (l *SpinLock[T]) Lock() Guard[T] {
	var spins uint32
	for l.locked.Swap(true) {
		spins++
		if spins >= goschedEvery+fastrand.Uint32n(goschedEvery) {
			spins = 0
			runtime.Gosched()
		}
	}
	return Guard[T]{lock: l}
}

// TryLock attempts a single claim of the flag without waiting. It reports
// whether it succeeded; the Guard is only valid on success.
func (l *SpinLock[T]) TryLock() (Guard[T], bool) {
	if l.locked.CompareAndSwap(false, true) {
		return Guard[T]{lock: l}, true
	}
	return Guard[T]{}, false
}

// Guard is an exclusive scoped borrow of the locked value. At most one
// Guard exists per SpinLock at any instant, guaranteed by the swap on the
// flag alone. It must be Released exactly once, after which the Guard and
// any pointer obtained from it are invalid.
type Guard[T any] struct {
	lock *SpinLock[T]
}

// Value returns the protected value. The pointer is valid only until the
// Guard is Released.
func (g Guard[T]) Value() *T {
	return &g.lock.value
}

// Release unlocks the lock, publishing every write made through the Guard
// to the next Lock winner.
func (g Guard[T]) Release() {
	g.lock.locked.Store(false)
}
