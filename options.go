package reactor

// Reference capacities from spec §6: used as defaults, but treated as
// tunables (Design Notes §9 open question) rather than contractual
// constants — override via WithEventPoolSize / WithEventQueueSize /
// WithPollerRingSize.
const (
	defaultEventPoolSize  = 262144
	defaultEventQueueSize = 65536
	defaultPollerRingSize = 4096
	defaultMasterCore     = 0
)

// config holds resolved construction options, mirroring the teacher's
// loopOptions/resolveLoopOptions split between the options types and the
// function that applies them.
type config struct {
	coreMask      string
	eventPoolSize int
	eventQueueCap int
	pollerRingCap int
	tick          TickFn
	logger        *Logger
}

// Option configures a Runtime at construction time.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) apply(cfg *config) error { return f(cfg) }

// WithCoreMask sets the hex-encoded core mask (spec §4.6 parse_mask).
// Required — New returns ErrInvalidMask if no mask was supplied.
func WithCoreMask(hex string) Option {
	return optionFunc(func(cfg *config) error {
		cfg.coreMask = hex
		return nil
	})
}

// WithEventPoolSize overrides the event pool capacity (default 262144).
// A non-positive size returns ErrIllegalLifecycle; a size of 1 is accepted
// here but raised to the underlying free list's minimum of 2 by
// NewEventPool.
func WithEventPoolSize(n int) Option {
	return optionFunc(func(cfg *config) error {
		if n <= 0 {
			return WrapError("event pool size", ErrIllegalLifecycle)
		}
		cfg.eventPoolSize = n
		return nil
	})
}

// WithEventQueueSize overrides the per-core event queue capacity
// (default 65536). A non-positive size returns ErrIllegalLifecycle; a
// size of 1 is accepted here but raised to the underlying ring's minimum
// of 2 by newEventQueue.
func WithEventQueueSize(n int) Option {
	return optionFunc(func(cfg *config) error {
		if n <= 0 {
			return WrapError("event queue size", ErrIllegalLifecycle)
		}
		cfg.eventQueueCap = n
		return nil
	})
}

// WithPollerRingSize overrides the per-core poller ring capacity
// (default 4096). The backing ring is sized to one more than this, per
// newPollerRing's doc comment.
func WithPollerRingSize(n int) Option {
	return optionFunc(func(cfg *config) error {
		if n <= 0 {
			return WrapError("poller ring size", ErrIllegalLifecycle)
		}
		cfg.pollerRingCap = n
		return nil
	})
}

// WithTickFn installs the external timer-tick hook invoked once per
// reactor iteration, on every core, before the poller is advanced.
func WithTickFn(fn TickFn) Option {
	return optionFunc(func(cfg *config) error {
		cfg.tick = fn
		return nil
	})
}

// WithLogger installs a structured logger for this runtime's
// initialization and shutdown log lines, overriding the package default.
// Per-core start/stop, worker pinning and fatal-condition lines still go
// to the package-level logger (see SetLogger).
func WithLogger(l *Logger) Option {
	return optionFunc(func(cfg *config) error {
		cfg.logger = l
		return nil
	})
}

func resolveOptions(opts []Option) (*config, error) {
	cfg := &config{
		eventPoolSize: defaultEventPoolSize,
		eventQueueCap: defaultEventQueueSize,
		pollerRingCap: defaultPollerRingSize,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
