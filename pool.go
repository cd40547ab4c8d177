package reactor

import (
	"code.hybscloud.com/lfq"
)

// EventPool is the fixed-capacity pool of event records described in
// spec §4.1 (C1). Acquire and release are safe from any goroutine; the
// free list is an MPMC queue of slab indices (lfq.MPMCIndirect), so
// acquiring never allocates in steady state and releasing never blocks.
//
// Invariant: the number of records outside the pool never exceeds its
// capacity. Allocating from an exhausted pool is a fatal programming
// error — capacity sizing is a deployment concern, not something the
// pool can recover from (spec §3, §7 CapacityExhausted).
type EventPool struct {
	slab []eventSlot
	free *lfq.MPMCIndirect
	cap  int
}

// eventSlot holds one Event. Only one party ever references a given slot
// at a time — exclusive ownership is the free list's job — so no
// additional synchronization is needed on the slot itself.
type eventSlot struct {
	ev Event
}

// NewEventPool constructs a pool with the given capacity, pre-seeding the
// free list with every slab index. capacity is raised to the free list's
// minimum of 2 if smaller — lfq's indirect queues reject capacity < 2.
func NewEventPool(capacity int) *EventPool {
	if capacity < 2 {
		capacity = 2
	}
	p := &EventPool{
		slab: make([]eventSlot, capacity),
		free: lfq.NewMPMCIndirect(capacity),
		cap:  capacity,
	}
	for i := range p.slab {
		p.slab[i].ev.handle = uintptr(i)
		if err := p.free.Enqueue(uintptr(i)); err != nil {
			// capacity just allocated for exactly this many entries
			panic("reactor: event pool free-list initialization failed: " + err.Error())
		}
	}
	return p
}

// Cap returns the pool's configured capacity.
func (p *EventPool) Cap() int { return p.cap }

// Allocate takes one record from the pool and fills in its fields. If the
// pool is empty this is a fatal condition: it represents a sizing bug
// upstream, not a recoverable error (spec §4.1, §7).
func (p *EventPool) Allocate(core int, fn EventFn, arg1, arg2 any, next *Event) *Event {
	h, err := p.free.Dequeue()
	if err != nil {
		fatal("event pool exhausted: capacity=%d", p.cap)
		return nil // unreachable unless fatalFunc is overridden in tests
	}

	slot := &p.slab[h]
	slot.ev.Core = core
	slot.ev.Fn = fn
	slot.ev.Arg1 = arg1
	slot.ev.Arg2 = arg2
	slot.ev.Next = next

	return &slot.ev
}

// Release returns a record to the pool. The caller (the reactor that
// invoked the event's callback) must have exclusive access — no other
// party may reference the event after this call.
func (p *EventPool) Release(e *Event) {
	h := e.handle
	slot := &p.slab[h]
	slot.ev.Fn = nil
	slot.ev.Arg1 = nil
	slot.ev.Arg2 = nil
	slot.ev.Next = nil

	if err := p.free.Enqueue(h); err != nil {
		// The free list was sized to exactly p.cap entries and every
		// Allocate is paired with exactly one Release, so this can only
		// happen if a caller double-released a handle.
		fatal("event pool free-list enqueue failed on release: %v", err)
	}
}
