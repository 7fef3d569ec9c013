// package grip provides shared-ownership handles, a spin lock, and one-shot
// message handoff, all built directly on atomic operations.
//
// Go's collector decides when memory goes away, but it says nothing about
// when a resource is done being used. Consider a payload wrapping something
// that must be torn down exactly once, after the last user is finished, with
// users coming and going on many goroutines:
//
//	conn := dial()
//	s := grip.NewWithDrop(conn, func(c Conn) { c.Shutdown() })
//
//	for i := 0; i < workers; i++ {
//		c := s.Clone()
//		go func() {
//			defer c.Release()
//			c.Get().Do(work)
//		}()
//	}
//
//	s.Release()
//
// Whichever goroutine releases the last handle runs the shutdown, and every
// write the other goroutines made through the payload is visible to it. A
// Weak handle observes the payload without keeping it alive:
//
//	w := s.Downgrade()
//	if c, ok := w.Upgrade(); ok {
//		c.Get().Do(work)
//		c.Release()
//	}
//
// The SpinLock and Chan types are independent of the handles. SpinLock
// guards a single value with a busy-wait flag and a scoped Guard, for
// critical sections too short to justify a real mutex. Chan hands one
// message from a Sender to a Receiver with a single publish, and can be
// Split again for another round.
//
// Every handle in this package (Shared, Weak, Guard, Sender, Receiver) is
// safe to move to another goroutine, and must be released or consumed
// exactly once. None of the primitives block in the runtime: waiting is
// built from atomic retries and scheduler yields only, so callers that want
// to sleep must layer that on top themselves.
package grip
