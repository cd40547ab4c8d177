package reactor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// drainUntil pumps every reactor in rt round-robin until cond reports
// true or the iteration budget is exhausted, for stepping event chains
// that hop across cores (register/migrate completions) without a
// background worker.
func drainUntil(t *testing.T, rt *Runtime, cond func() bool) {
	t.Helper()
	for i := 0; i < 64; i++ {
		if cond() {
			return
		}
		for core := 0; core < 64; core++ {
			if r := rt.reactorFor(core); r != nil {
				r.iterate()
			}
		}
	}
	t.Fatal("drainUntil: condition never became true")
}

func TestRegisterUnregisterRoundTrip(t *testing.T) {
	rt, err := New(WithCoreMask("0x1"))
	require.NoError(t, err)
	rt.state.Store(StateRunning) // CallEvent requires a running runtime; driven manually via drainUntil below

	p := NewPoller(func(any) {}, nil)
	require.NoError(t, rt.RegisterPoller(p, 0, nil))
	drainUntil(t, rt, func() bool { return p.Core() == 0 })
	require.Equal(t, 1, rt.reactorFor(0).pollers.snapshotLength())

	var unregistered bool
	comp, err := rt.AllocateEvent(0, func(*Event) { unregistered = true }, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, rt.UnregisterPoller(p, comp))
	drainUntil(t, rt, func() bool { return unregistered })

	require.Equal(t, unregisteredCore, p.Core())
	require.Equal(t, 0, rt.reactorFor(0).pollers.snapshotLength())
}

func TestMigratePoller(t *testing.T) {
	rt, err := New(WithCoreMask("0x3"))
	require.NoError(t, err)
	rt.state.Store(StateRunning)

	p := NewPoller(func(any) {}, nil)
	require.NoError(t, rt.RegisterPoller(p, 0, nil))
	drainUntil(t, rt, func() bool { return p.Core() == 0 })

	var migrated bool
	comp, err := rt.AllocateEvent(1, func(*Event) { migrated = true }, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, rt.MigratePoller(p, 1, comp))
	drainUntil(t, rt, func() bool { return migrated })

	require.Equal(t, 1, p.Core())
	require.Equal(t, 0, rt.reactorFor(0).pollers.snapshotLength())
	require.Equal(t, 1, rt.reactorFor(1).pollers.snapshotLength())
}

func TestUnregisterAbsentPollerIsBenign(t *testing.T) {
	rt, err := New(WithCoreMask("0x1"))
	require.NoError(t, err)
	rt.state.Store(StateRunning)

	p := NewPoller(func(any) {}, nil)
	var ran bool
	comp, err := rt.AllocateEvent(0, func(*Event) { ran = true }, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, rt.UnregisterPoller(p, comp))
	drainUntil(t, rt, func() bool { return ran })
}
