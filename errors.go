package reactor

import (
	"errors"
	"fmt"
)

// Recoverable error taxonomy. These are returned to callers before the
// runtime is running; none of them are raised from the hot path.
var (
	// ErrInvalidMask is returned by [ParseCoreMask] and [New] when a core
	// mask string fails to parse as hex, overflows 64 bits, or omits the
	// master core bit.
	ErrInvalidMask = errors.New("reactor: invalid core mask")

	// ErrIllegalLifecycle is returned when an operation is attempted in a
	// state that does not permit it, e.g. calling Start twice, or Fini
	// before Start has returned. The size options also return it for a
	// non-positive size.
	ErrIllegalLifecycle = errors.New("reactor: illegal lifecycle transition")

	// ErrQueueFull is returned by the event queue's fallible enqueue
	// primitive when the target core's ring is saturated. The primitive
	// reports it rather than aborting, and CallEvent returns it (wrapped)
	// to its caller; the runtime's own completion posting treats it as
	// fatal (see fatal).
	ErrQueueFull = errors.New("reactor: event queue full")

	// ErrUnknownCore is returned when an operation names a core id that is
	// not present in the configured core mask.
	ErrUnknownCore = errors.New("reactor: core not in mask")

	// ErrNotRunning is returned when an operation requires a running
	// runtime (e.g. posting an event) but the runtime has not been started.
	ErrNotRunning = errors.New("reactor: runtime not running")
)

// WrapError wraps err with a contextual message, preserving it for
// errors.Is/errors.As via %w.
func WrapError(message string, err error) error {
	return fmt.Errorf("%s: %w", message, err)
}

// fatalFunc aborts the process. Overridable in tests so that the
// CapacityExhausted / impossible-ring-failure paths can be exercised
// without killing the test binary.
var fatalFunc = func(format string, args ...any) {
	logFatalAndExit(fmt.Sprintf(format, args...))
}

// fatal reports a capacity/sizing bug the design treats as unrecoverable:
// event pool exhaustion, or a ring-enqueue failure on a path the design
// treats as infallible (re-enqueueing a poller after advance, or an event
// queue assumed large enough by its caller). Per spec §9 these all share
// one uniform policy: log at error level, then terminate the process.
func fatal(format string, args ...any) {
	fatalFunc(format, args...)
}
