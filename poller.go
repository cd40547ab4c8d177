package reactor

// PollerFn is a poller callback. Must be non-blocking — it runs to
// completion once per round-robin turn, cooperatively sharing the core
// with every other poller and with event callbacks.
type PollerFn func(arg any)

// Poller is a long-lived callback repeatedly invoked on a specific core in
// round-robin with the core's other pollers (spec §3 "Poller").
//
// Lifecycle: created externally, ownership handed to a reactor on
// register, returned to the caller on unregister. At any instant a poller
// is either unregistered, or present in exactly one core's poller ring,
// with lcore equal to that core — see [Runtime.RegisterPoller].
type Poller struct {
	Fn    PollerFn
	Arg   any
	lcore int32 // current owning core; -1 if not registered

	handle uintptr // not assigned by this package; rings carry *Poller directly
}

// NewPoller constructs an unregistered poller wrapping fn and arg. Pass
// the result to [Runtime.RegisterPoller] to hand it to a core.
func NewPoller(fn PollerFn, arg any) *Poller {
	return &Poller{Fn: fn, Arg: arg, lcore: unregisteredCore}
}

// Core returns the core this poller is currently registered on, or -1 if
// it is not registered with any reactor.
func (p *Poller) Core() int {
	return int(p.lcore)
}
