// Package reactor implements a per-core event reactor for a storage
// performance framework: one worker pinned to each enabled CPU core,
// interleaving short cross-posted events with long-lived cooperative
// pollers registered to run repeatedly on a specific core.
//
// # Architecture
//
// A [Runtime] owns one [Reactor] per core named in its core mask, a fixed
// capacity [EventPool], and the global lifecycle state machine. Every
// reactor drains its own MPSC event queue, ticks an external timer hook,
// and advances at most one poller from its own SPSC poller ring per
// iteration — see [Runtime.Start].
//
// Cross-core poller mutation (register, unregister, migrate) is never done
// directly: it is always encoded as a self-posted [Event] so that a
// poller ring is mutated only by the reactor that owns it. See
// [Runtime.RegisterPoller], [Runtime.UnregisterPoller], and
// [Runtime.MigratePoller].
//
// # Concurrency model
//
// Within a core, execution is strictly single-threaded and run-to-completion:
// exactly one event callback or poller callback runs at a time, and
// callbacks must not block. There is no preemption and no suspension point
// inside the reactor loop.
//
// # Platform support
//
// Core pinning uses sched_setaffinity on Linux ([spawnPinnedWorker], with
// the platform code in worker_linux.go); on other platforms the worker
// runs unpinned (worker_other.go).
//
// # Usage
//
//	rt, err := reactor.New(reactor.WithCoreMask("0x3"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	go func() {
//	    if err := rt.Start(); err != nil {
//	        log.Fatal(err)
//	    }
//	}()
//
//	// CallEvent returns ErrNotRunning until Start has entered StateRunning.
//	for rt.State() != reactor.StateRunning {
//	    time.Sleep(time.Millisecond)
//	}
//
//	ev, err := rt.AllocateEvent(1, func(e *reactor.Event) {
//	    fmt.Println("hello from core 1")
//	}, nil, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.CallEvent(ev); err != nil {
//	    log.Fatal(err)
//	}
//
//	rt.Stop()
package reactor
