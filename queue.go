package reactor

import (
	"sync/atomic"

	"code.hybscloud.com/lfq"
)

// eventQueue is the per-core event queue described in spec §4.2 (C2): a
// bounded, multi-producer single-consumer FIFO of event handles, backed by
// lfq.MPSCIndirect. Only the owning reactor ever dequeues.
//
// lfq deliberately omits a length query (accurate counts need expensive
// cross-core synchronization, see lfq's doc.go), but spec §4.2's Drain
// needs to snapshot "how many events are here right now" once before
// looping — so we track an approximate length ourselves: producers
// increment after a successful Enqueue, the single consumer decrements
// after each successful Dequeue. This is exact from the consumer's point
// of view (it's the only reader/writer of the decrement side) and can only
// ever undercount a concurrent burst, never overcount — which is exactly
// the "don't let a late arrival extend this drain pass" property spec §4.2
// asks for.
type eventQueue struct {
	ring   *lfq.MPSCIndirect
	length atomic.Int64
}

// newEventQueue builds a queue with the given capacity, raised to lfq's
// minimum of 2 if smaller.
func newEventQueue(capacity int) *eventQueue {
	if capacity < 2 {
		capacity = 2
	}
	return &eventQueue{ring: lfq.NewMPSCIndirect(capacity)}
}

// enqueue posts an event handle to this queue. Callable from any
// goroutine. Returns ErrQueueFull if the ring is saturated.
func (q *eventQueue) enqueue(handle uintptr) error {
	if err := q.ring.Enqueue(handle); err != nil {
		return WrapError("event queue enqueue", ErrQueueFull)
	}
	q.length.Add(1)
	return nil
}

// snapshotLength returns the queue's current length snapshot, for use by the
// owning reactor's per-tick drain loop (spec §4.2).
func (q *eventQueue) snapshotLength() int {
	n := q.length.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// dequeue removes one event handle. Consumer-side only (the owning
// reactor). Returns ok=false if the queue is empty.
func (q *eventQueue) dequeue() (uintptr, bool) {
	h, err := q.ring.Dequeue()
	if err != nil {
		return 0, false
	}
	q.length.Add(-1)
	return h, true
}
