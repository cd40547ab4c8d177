package reactor

import "errors"

// Control protocol (spec §4.5 / C5): register, unregister, and migrate
// are never applied directly — each marshals the state change into an
// event targeted at the reactor that owns the affected poller ring, so
// that ring is mutated only by its owning core. An optional completion
// event is chained via the event's Next field and posted once the
// change is visible on the target core.

const unregisteredCore = -1

// RegisterPoller hands P to core N's poller ring. If completion is
// non-nil it is posted after P has been enqueued on N's ring.
func (rt *Runtime) RegisterPoller(p *Poller, core int, completion *Event) error {
	e, err := rt.AllocateEvent(core, rt.onAddPoller(p), nil, nil, completion)
	if err != nil {
		return err
	}
	return rt.CallEvent(e)
}

// onAddPoller implements spec §4.5's on_add_poller: set P.lcore, enqueue
// on the owning ring, then chain the completion event if one was given.
func (rt *Runtime) onAddPoller(p *Poller) EventFn {
	return func(e *Event) {
		r := rt.reactors[e.Core]
		p.lcore = int32(e.Core)
		if err := r.pollers.push(p); err != nil {
			fatal("poller ring full on register: core=%d err=%v", e.Core, err)
			return
		}
		rt.postCompletion(e.Next)
	}
}

// UnregisterPoller removes P from its current ring. If completion is
// non-nil it is posted after the removal is visible on P's owning core.
// If P is not currently registered, this is a no-op that still chains
// completion immediately — per spec §9's open question, unregistering an
// absent poller is treated as benign rather than an error (see
// pollerRing.remove).
func (rt *Runtime) UnregisterPoller(p *Poller, completion *Event) error {
	core := int(p.lcore)
	if core == unregisteredCore {
		rt.postCompletion(completion)
		return nil
	}
	e, err := rt.AllocateEvent(core, rt.onRemovePoller(p), nil, nil, completion)
	if err != nil {
		return err
	}
	return rt.CallEvent(e)
}

// onRemovePoller implements spec §4.5's on_remove_poller.
func (rt *Runtime) onRemovePoller(p *Poller) EventFn {
	return func(e *Event) {
		r := rt.reactors[e.Core]
		r.pollers.remove(p)
		p.lcore = unregisteredCore
		rt.postCompletion(e.Next)
	}
}

// MigratePoller moves P from its current core to newCore. It composes
// from Unregister and Register exactly as spec §4.5 describes: the
// migrate completion event E1 is allocated on newCore first, then
// Unregister(P, completion=E1) is invoked on the old core; when E1 runs
// it re-registers P on newCore (reading the core it is executing on from
// the event itself, never from a stored field — see SPEC_FULL.md §4) and
// chains the caller's completion.
func (rt *Runtime) MigratePoller(p *Poller, newCore int, completion *Event) error {
	e1, err := rt.AllocateEvent(newCore, rt.onMigrate(p), nil, nil, completion)
	if err != nil {
		return err
	}
	return rt.UnregisterPoller(p, e1)
}

// onMigrate implements spec §4.5's on_migrate: re-register P on the core
// this event is executing on (which is, by construction, newCore),
// chaining whatever completion E1 itself carries.
func (rt *Runtime) onMigrate(p *Poller) EventFn {
	return func(e *Event) {
		if err := rt.RegisterPoller(p, e.Core, e.Next); err != nil {
			fatal("posting register event failed on migrate: core=%d err=%v", e.Core, err)
		}
	}
}

// postCompletion posts c if non-nil. A full target queue is fatal (the
// completion path assumes the queue is large enough); any other error is
// ignored: an unknown core cannot occur, since the caller validated the
// core when it allocated the event, and once the runtime has left
// StateRunning the completion is dropped.
func (rt *Runtime) postCompletion(c *Event) {
	if c == nil {
		return
	}
	if err := rt.CallEvent(c); errors.Is(err, ErrQueueFull) {
		fatal("event queue full posting completion: core=%d err=%v", c.Core, err)
	}
}
