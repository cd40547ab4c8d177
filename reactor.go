package reactor

// TickFn is an optional per-iteration hook invoked once per reactor
// iteration, before any poller is advanced — the runtime's equivalent of
// SPDK's periodic timer check. Supplied via [WithTickFn]; nil by default.
type TickFn func(core int)

// Reactor is the per-core worker state: its event queue (C2), its poller
// ring (C3), and the pool it uses to release events after invoking them.
// A Reactor is only ever touched by the single goroutine pinned to its
// core — see spec §3's single-threaded run-to-completion model.
type Reactor struct {
	core    int
	events  *eventQueue
	pollers *pollerRing
	pool    *EventPool
	tick    TickFn
	state   *globalState
	name    string
}

func newReactor(core int, eventQueueCap, pollerRingCap int, pool *EventPool, tick TickFn, state *globalState) *Reactor {
	return &Reactor{
		core:    core,
		events:  newEventQueue(eventQueueCap),
		pollers: newPollerRing(pollerRingCap),
		pool:    pool,
		tick:    tick,
		state:   state,
		name:    reactorThreadName(core),
	}
}

// post enqueues an already-allocated event onto this reactor's queue.
// Callable from any goroutine (C2 is MPSC).
func (r *Reactor) post(e *Event) error {
	return r.events.enqueue(e.handle)
}

// run is the reactor's main loop: drain the event queue, tick, advance one
// poller, repeat until the global state leaves StateRunning. It returns
// as soon as it observes StateExiting (or later) at the top of an
// iteration; events still queued at that point are not run.
//
// This is spec §4's core loop: "drain events -> tick -> advance one
// poller -> check state", executed forever while RUNNING.
func (r *Reactor) run() {
	currentLogger().Info().Str("name", r.name).Log("reactor started")
	for r.state.Load() == StateRunning {
		r.iterate()
	}
	currentLogger().Info().Str("name", r.name).Log("reactor stopped")
}

// iterate runs exactly one pass: drain, tick, advance. Exposed
// independently of run so tests can single-step a reactor without a
// background goroutine.
func (r *Reactor) iterate() {
	r.drainEvents()
	if r.tick != nil {
		r.tick(r.core)
	}
	r.pollers.advance()
}

// drainEvents snapshots the queue length once and dequeues exactly that
// many events, invoking each callback and releasing its record — matching
// spec §4.2's "count once, then loop" drain discipline rather than
// looping until the queue reports empty.
func (r *Reactor) drainEvents() {
	n := r.events.snapshotLength()
	for i := 0; i < n; i++ {
		h, ok := r.events.dequeue()
		if !ok {
			return
		}
		e := &r.pool.slab[h].ev
		if e.Fn != nil {
			e.Fn(e)
		}
		r.pool.Release(e)
	}
}
