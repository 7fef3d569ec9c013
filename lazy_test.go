package grip

import (
	"runtime"
	"sync"
	"testing"

	"github.com/zeebo/assert"
)

func TestLazyGet(t *testing.T) {
	var l Lazy[string]

	assert.Nil(t, l.Loaded())

	p := l.Get(func() string { return "hello" })
	assert.Equal(t, *p, "hello")

	// later inits are ignored; the published pointer is stable.
	q := l.Get(func() string { return "other" })
	assert.That(t, p == q)
	assert.Equal(t, *q, "hello")
	assert.That(t, l.Loaded() == p)
}

func TestLazyRace(t *testing.T) {
	var l Lazy[int]

	np := runtime.GOMAXPROCS(-1)
	ptrs := make([]*int, np)

	var wg sync.WaitGroup
	wg.Add(np)
	for i := 0; i < np; i++ {
		i := i
		go func() {
			defer wg.Done()
			ptrs[i] = l.Get(func() int { return 42 })
		}()
	}
	wg.Wait()

	// losers of the publication race are discarded: everyone observes the
	// same pointer and the same value.
	for i := 0; i < np; i++ {
		assert.That(t, ptrs[i] == ptrs[0])
		assert.Equal(t, *ptrs[i], 42)
	}
}
