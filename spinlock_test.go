package grip

import (
	"sync"
	"testing"

	"github.com/zeebo/assert"
)

func TestSpinLockCounter(t *testing.T) {
	const (
		goroutines = 10
		increments = 100
	)

	l := NewSpinLock(0)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				g := l.Lock()
				*g.Value()++
				g.Release()
			}
		}()
	}
	wg.Wait()

	g := l.Lock()
	assert.Equal(t, *g.Value(), goroutines*increments)
	g.Release()
}

func TestSpinLockGuardWrites(t *testing.T) {
	l := NewSpinLock([]int(nil))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		g := l.Lock()
		*g.Value() = append(*g.Value(), 1)
		g.Release()
	}()
	go func() {
		defer wg.Done()
		g := l.Lock()
		*g.Value() = append(*g.Value(), 2, 3)
		g.Release()
	}()
	wg.Wait()

	g := l.Lock()
	got := *g.Value()
	g.Release()

	assert.Equal(t, len(got), 3)
	ok := got[0] == 1 && got[1] == 2 && got[2] == 3 ||
		got[0] == 2 && got[1] == 3 && got[2] == 1
	assert.That(t, ok)
}

func TestSpinLockTryLock(t *testing.T) {
	l := NewSpinLock("value")

	g, ok := l.TryLock()
	assert.That(t, ok)
	assert.Equal(t, *g.Value(), "value")

	// the lock is held, so a second claim must fail without waiting.
	_, ok = l.TryLock()
	assert.That(t, !ok)

	g.Release()

	g, ok = l.TryLock()
	assert.That(t, ok)
	g.Release()
}

func TestSpinLockZeroValue(t *testing.T) {
	var l SpinLock[int]

	g := l.Lock()
	*g.Value() = 7
	g.Release()

	g = l.Lock()
	assert.Equal(t, *g.Value(), 7)
	g.Release()
}
