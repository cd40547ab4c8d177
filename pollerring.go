package reactor

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/lfq"
)

// pollerRing is the per-core poller ring described in spec §4.3 (C3): a
// bounded, single-producer single-consumer ring of pollers, rotated
// round-robin. Both producer and consumer are the owning reactor — a
// poller ring is never touched from another core; cross-core mutation is
// mediated by control events (control.go).
//
// Entries are stored as *Poller via lfq.SPSCPtr, which transfers the
// pointer itself rather than an index, keeping the object GC-reachable
// for the ring's lifetime without a separate handle registry.
type pollerRing struct {
	ring   *lfq.SPSCPtr
	length atomic.Int64
}

// newPollerRing builds a ring that holds capacity pollers. The backing
// lfq.SPSCPtr is sized to capacity+1: registering a poller at exactly
// capacity would otherwise land on lfq's own full-vs-empty boundary and
// trip the fatal re-enqueue path in onAddPoller, so one spare slot keeps
// "capacity" an honest usable count rather than an off-by-one trap. It
// is also raised to lfq's minimum of 2 if smaller.
func newPollerRing(capacity int) *pollerRing {
	backing := capacity + 1
	if backing < 2 {
		backing = 2
	}
	return &pollerRing{ring: lfq.NewSPSCPtr(backing)}
}

func (r *pollerRing) push(p *Poller) error {
	if err := r.ring.Enqueue(unsafe.Pointer(p)); err != nil {
		return err
	}
	r.length.Add(1)
	return nil
}

func (r *pollerRing) pop() (*Poller, bool) {
	ptr, err := r.ring.Dequeue()
	if err != nil {
		return nil, false
	}
	r.length.Add(-1)
	return (*Poller)(ptr), true
}

// snapshotLength returns the ring's current length, sampled once. Used by
// remove, which must walk exactly this many
// entries so that a poller arriving concurrently via a later control event
// is not scanned in this pass (spec §4.3).
func (r *pollerRing) snapshotLength() int {
	n := r.length.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// advance dequeues one poller, invokes its callback, then re-enqueues it
// at the tail. If none was available, advance is a no-op. Re-enqueue
// failure is fatal — ring capacity must be sized to hold every poller
// registered on the core, so this represents a sizing bug (spec §4.3,
// §7 CapacityExhausted).
func (r *pollerRing) advance() {
	p, ok := r.pop()
	if !ok {
		return
	}
	p.Fn(p.Arg)
	if err := r.push(p); err != nil {
		fatal("poller ring full on re-enqueue after advance: %v", err)
	}
}

// remove walks the ring by dequeueing exactly the sampled length, re-
// enqueueing every entry that is not target, and dropping target. This
// preserves the relative order of the surviving pollers (spec §4.3).
// If target is not currently in the ring, remove is a silent no-op — per
// spec §9's open question, we follow the original's behavior rather than
// surfacing an error, since a poller that raced its own unregister against
// a migrate is an expected, benign occurrence, not a caller bug.
func (r *pollerRing) remove(target *Poller) {
	n := r.snapshotLength()
	for i := 0; i < n; i++ {
		p, ok := r.pop()
		if !ok {
			break
		}
		if p == target {
			continue
		}
		if err := r.push(p); err != nil {
			fatal("poller ring full on re-enqueue during remove: %v", err)
		}
	}
}
