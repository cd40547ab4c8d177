package reactor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollerRingRoundRobin(t *testing.T) {
	ring := newPollerRing(8)

	var log []string
	mk := func(name string) *Poller {
		return NewPoller(func(any) { log = append(log, name) }, nil)
	}
	a, b, c := mk("A"), mk("B"), mk("C")
	require.NoError(t, ring.push(a))
	require.NoError(t, ring.push(b))
	require.NoError(t, ring.push(c))

	const n = 7
	for i := 0; i < n; i++ {
		ring.advance()
	}

	want := "ABCABCA"
	got := ""
	for _, name := range log {
		got += name
	}
	require.Equal(t, want, got)
}

func TestPollerRingRemovePreservesOrder(t *testing.T) {
	ring := newPollerRing(8)

	mk := func() *Poller { return NewPoller(func(any) {}, nil) }
	a, b, c, d := mk(), mk(), mk(), mk()
	require.NoError(t, ring.push(a))
	require.NoError(t, ring.push(b))
	require.NoError(t, ring.push(c))
	require.NoError(t, ring.push(d))

	ring.remove(b)

	require.Equal(t, 3, ring.snapshotLength())
	var order []*Poller
	for i := 0; i < 3; i++ {
		p, ok := ring.pop()
		require.True(t, ok)
		order = append(order, p)
	}
	require.Equal(t, []*Poller{a, c, d}, order)
}

func TestPollerRingRemoveAbsentIsNoOp(t *testing.T) {
	ring := newPollerRing(4)
	a := NewPoller(func(any) {}, nil)
	require.NoError(t, ring.push(a))

	stray := NewPoller(func(any) {}, nil)
	ring.remove(stray)

	require.Equal(t, 1, ring.snapshotLength())
}
