package reactor

// EventFn is an event callback. It receives the full event record so it
// may read Arg1, Arg2, and Next. It must not call Release itself — the
// reactor that invokes the callback releases the record immediately after
// the callback returns.
type EventFn func(e *Event)

// Event is a one-shot work item: a callback plus two opaque argument
// slots, targeted at a specific core, with an optional chained completion
// event. Records are owned by the EventPool between Allocate and Release.
type Event struct {
	Core int
	Fn   EventFn
	Arg1 any
	Arg2 any
	Next *Event

	handle uintptr // this event's own slab index, for Release
}
