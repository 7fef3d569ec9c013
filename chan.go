package grip

import "sync/atomic"

// Chan hands exactly one message from a Sender to a Receiver per
// generation. The slot starts empty, Send fills it and publishes it with
// one store of the ready flag, and Receive consumes it by swapping the flag
// back. Nothing ever blocks: Receive on an empty channel is a
// ProtocolError, and a caller that wants to wait polls Ready itself.
//
// The zero value is an unsplit channel; call Split to get the first
// Sender/Receiver pair, and again to start a fresh generation.
type Chan[T any] struct {
	msg   T
	ready atomic.Bool
	inUse atomic.Bool
}

// Sender is the sending half of a channel generation. Send consumes it:
// a Sender whose Send returned is spent, and a second call on the same
// generation reports ErrAlreadySent.
type Sender[T any] struct {
	c *Chan[T]
}

// Receiver is the receiving half of a channel generation.
type Receiver[T any] struct {
	c *Chan[T]
}

// OneShot allocates a channel and returns its first Sender/Receiver pair.
func OneShot[T any]() (Sender[T], Receiver[T]) {
	return new(Chan[T]).Split()
}

// Split reinitializes the channel in place and returns a connected pair for
// the new generation, discarding any message the old generation never
// received. The caller must guarantee nothing else is using the channel:
// handles from earlier generations become invalid, and using one afterwards
// is a caller error the channel does not detect.
func (c *Chan[T]) Split() (Sender[T], Receiver[T]) {
	var zero T
	c.msg = zero
	c.ready.Store(false)
	c.inUse.Store(false)
	return Sender[T]{c: c}, Receiver[T]{c: c}
}

// Close discards a message that was sent but never received, so whatever it
// references is collectable immediately. The channel must not be used again
// except through Split.
func (c *Chan[T]) Close() {
	if c.ready.Swap(false) {
		var zero T
		c.msg = zero
	}
}

// Send writes the message and publishes it to the Receiver. It returns
// ErrAlreadySent if this generation already carried a message; the guard
// flag is what enforces the exactly-once contract, since the language
// cannot consume the Sender for us.
func (s Sender[T]) Send(msg T) error {
	if s.c.inUse.Swap(true) {
		return ErrAlreadySent
	}
	// The slot write is safe: the guard flag made us the only writer, and
	// no reader looks at the slot until the ready store below.
	s.c.msg = msg
	s.c.ready.Store(true)
	return nil
}

// Ready reports whether a message is waiting. Advisory only: it never
// consumes the message, and a concurrent Receive may still consume it
// before this goroutine's own Receive gets there.
func (r Receiver[T]) Ready() bool {
	return r.c.ready.Load()
}

// Receive takes the message out of the channel. The swap on the ready flag
// both claims the message against concurrent receivers and orders the slot
// read after the sender's write. If no message is available it returns
// ErrNoMessage.
func (r Receiver[T]) Receive() (T, error) {
	var zero T
	if !r.c.ready.Swap(false) {
		return zero, ErrNoMessage
	}
	msg := r.c.msg
	r.c.msg = zero
	return msg, nil
}
