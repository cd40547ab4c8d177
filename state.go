package reactor

import "sync/atomic"

// State is the global reactor lifecycle state, per spec §3 "Global state
// machine". Every reactor polls this on every tick to decide whether to
// exit its loop; it is written only by the Runtime's lifecycle methods
// (New, Start, Stop), and Stop may be called from any goroutine.
type State uint32

const (
	// StateInvalid is the zero value: no runtime has been constructed yet.
	StateInvalid State = iota
	// StateInitialized means New succeeded; reactors exist but none are running.
	StateInitialized
	// StateRunning means Start has been called; it is entered before Start
	// launches the workers.
	StateRunning
	// StateExiting means Stop has been requested; workers exit at the top
	// of their next iteration.
	StateExiting
	// StateShutdown means every worker has joined.
	StateShutdown
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateExiting:
		return "exiting"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// globalState is a cache-line padded atomic holder for State, read on
// every reactor tick and written only by the Runtime's lifecycle methods.
type globalState struct {
	_ [cacheLineSize]byte
	v atomic.Uint32
	_ [cacheLineSize - 4]byte
}

func newGlobalState() *globalState {
	s := &globalState{}
	s.v.Store(uint32(StateInvalid))
	return s
}

func (s *globalState) Load() State { return State(s.v.Load()) }

func (s *globalState) Store(v State) { s.v.Store(uint32(v)) }

func (s *globalState) CompareAndSwap(from, to State) bool {
	return s.v.CompareAndSwap(uint32(from), uint32(to))
}
