package grip

import "os"

// ProtocolError reports misuse of a one-shot handoff: a second send on the
// same generation, or a receive when no message is available. It indicates a
// defect in the calling code, never a transient condition, so it is returned
// from the offending call rather than retried or swallowed.
type ProtocolError string

func (e ProtocolError) Error() string { return string(e) }

const (
	// ErrAlreadySent is returned by Send when the channel's current
	// generation has already carried a message.
	ErrAlreadySent = ProtocolError("grip: message already sent")

	// ErrNoMessage is returned by Receive when no message has been sent,
	// or the message was already received.
	ErrNoMessage = ProtocolError("grip: no message available")
)

// refLimit is half the counter range. A reference count can only get near it
// through runaway cloning, and aborting at the halfway mark leaves far more
// increments of margin than there can be concurrent cloners.
const refLimit = ^uint64(0) >> 1

// overflowAbort terminates the process. A counter past refLimit is headed
// for wraparound, and wraparound means frees while handles are still live,
// so there is nothing safe left to do. This is deliberately not a panic:
// a recover must not be able to keep the process running.
func overflowAbort() {
	os.Stderr.WriteString("grip: reference counter overflow\n")
	os.Exit(2)
}
