package reactor

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// ParseCoreMask parses a hex-encoded 64-bit core mask (spec §4.6
// parse_mask), clears bits for cores the host does not report as
// enabled, and requires the master core's bit to be set. An optional
// "0x"/"0X" prefix is accepted.
func ParseCoreMask(hex string) (uint64, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if s == "" {
		return 0, WrapError("empty core mask", ErrInvalidMask)
	}
	mask, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, WrapError("parsing core mask "+strconv.Quote(hex), ErrInvalidMask)
	}

	mask &= hostEnabledMask()

	if mask&(1<<uint(defaultMasterCore)) == 0 {
		return 0, WrapError("core mask missing master core bit", ErrInvalidMask)
	}
	return mask, nil
}

// hostEnabledMask reports the cores the host makes available, as a
// bitmap of the low runtime.NumCPU() bits. Cores named in a caller's
// mask beyond this set are silently cleared, per spec §3 "Core mask".
func hostEnabledMask() uint64 {
	n := runtime.NumCPU()
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}

// Runtime owns the global reactor table, the shared event pool, and the
// lifecycle state machine described in spec §3/§4.6. It is the single
// explicit handle Design Notes §9 asks for in place of the original's
// process-wide mutable globals.
type Runtime struct {
	cfg        *config
	mask       uint64
	masterCore int
	pool       *EventPool
	reactors   [64]*Reactor
	state      *globalState
	logger     *Logger
	wg         sync.WaitGroup
}

// New parses cfg.coreMask, constructs the per-core queues, poller rings,
// and the shared event pool, and transitions the runtime to
// StateInitialized. This is spec §4.6's reactors_init.
func New(opts ...Option) (*Runtime, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	mask, err := ParseCoreMask(cfg.coreMask)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		logger = currentLogger()
	}

	rt := &Runtime{
		cfg:        cfg,
		mask:       mask,
		masterCore: defaultMasterCore,
		pool:       NewEventPool(cfg.eventPoolSize),
		state:      newGlobalState(),
		logger:     logger,
	}

	for core := 0; core < 64; core++ {
		if mask&(1<<uint(core)) == 0 {
			continue
		}
		rt.reactors[core] = newReactor(core, cfg.eventQueueCap, cfg.pollerRingCap, rt.pool, cfg.tick, rt.state)
	}

	rt.state.Store(StateInitialized)
	rt.logger.Info().Str("mask", strconv.FormatUint(mask, 16)).Log("reactor runtime initialized")
	return rt, nil
}

// GetCoreMask returns the effective (post-host-filtering) core mask this
// runtime was constructed with.
func (rt *Runtime) GetCoreMask() uint64 { return rt.mask }

// GetCoreCount returns the number of cores named in the effective mask.
func (rt *Runtime) GetCoreCount() int {
	n := 0
	for core := 0; core < 64; core++ {
		if rt.mask&(1<<uint(core)) != 0 {
			n++
		}
	}
	return n
}

// reactorFor returns the reactor owning core, or nil if core is not in
// the configured mask.
func (rt *Runtime) reactorFor(core int) *Reactor {
	if core < 0 || core >= 64 || rt.mask&(1<<uint(core)) == 0 {
		return nil
	}
	return rt.reactors[core]
}

// Start transitions the runtime to StateRunning, launches every slave
// core's worker pinned to its core, then runs the master core's reactor
// loop in the calling goroutine. It blocks until every worker has
// stopped, then transitions to StateShutdown and returns.
//
// Start must only be called once; it must be called from the goroutine
// intended to serve as the master core (spec §4.6 reactors_start).
func (rt *Runtime) Start() error {
	if !rt.state.CompareAndSwap(StateInitialized, StateRunning) {
		return WrapError("start requires StateInitialized", ErrIllegalLifecycle)
	}

	for core := 0; core < 64; core++ {
		r := rt.reactors[core]
		if r == nil || core == rt.masterCore {
			continue
		}
		rt.wg.Add(1)
		spawnPinnedWorker(core, func() {
			defer rt.wg.Done()
			r.run()
		})
	}

	if master := rt.reactors[rt.masterCore]; master != nil {
		master.run()
	}

	rt.wg.Wait()
	rt.state.Store(StateShutdown)
	rt.logger.Info().Log("reactor runtime shut down")
	return nil
}

// Stop requests shutdown: transitions StateRunning to StateExiting.
// Idempotent — calling Stop when not running is a no-op (spec §4.6
// reactors_stop).
func (rt *Runtime) Stop() {
	rt.state.CompareAndSwap(StateRunning, StateExiting)
}

// State returns the runtime's current lifecycle state.
func (rt *Runtime) State() State { return rt.state.Load() }

// Fini releases the runtime's pool and per-core structures. Call only
// after Start has returned (spec §4.6 reactors_fini).
func (rt *Runtime) Fini() error {
	if rt.state.Load() != StateShutdown {
		return WrapError("fini requires StateShutdown", ErrIllegalLifecycle)
	}
	for core := range rt.reactors {
		rt.reactors[core] = nil
	}
	rt.pool = nil
	return nil
}

// AllocateEvent acquires an event record from the pool, targeted at
// core, per spec §4.1's allocate / §6's event_allocate.
func (rt *Runtime) AllocateEvent(core int, fn EventFn, arg1, arg2 any, next *Event) (*Event, error) {
	if rt.reactorFor(core) == nil {
		return nil, WrapError("allocate event", ErrUnknownCore)
	}
	return rt.pool.Allocate(core, fn, arg1, arg2, next), nil
}

// CallEvent posts e to its target core's event queue. Callable from any
// goroutine (spec §6 event_call). The runtime must be running — nothing
// will ever drain the queue otherwise — so this returns ErrNotRunning
// before Start or after shutdown.
func (rt *Runtime) CallEvent(e *Event) error {
	if rt.state.Load() != StateRunning {
		return WrapError("call event", ErrNotRunning)
	}
	r := rt.reactorFor(e.Core)
	if r == nil {
		return WrapError("call event", ErrUnknownCore)
	}
	if err := r.post(e); err != nil {
		return err
	}
	return nil
}
