package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventPoolAllocateRelease(t *testing.T) {
	p := NewEventPool(2)

	e1 := p.Allocate(0, func(*Event) {}, "a", nil, nil)
	require.NotNil(t, e1)
	e2 := p.Allocate(0, func(*Event) {}, "b", nil, nil)
	require.NotNil(t, e2)
	require.NotSame(t, e1, e2)

	p.Release(e1)
	e3 := p.Allocate(0, func(*Event) {}, "c", nil, nil)
	require.Same(t, e1, e3)
	require.Equal(t, "c", e3.Arg1)
}

func TestEventPoolExhaustionIsFatal(t *testing.T) {
	p := NewEventPool(2)
	p.Allocate(0, func(*Event) {}, nil, nil, nil)
	p.Allocate(0, func(*Event) {}, nil, nil, nil)

	var reported string
	prev := fatalFunc
	fatalFunc = func(format string, args ...any) { reported = fmt.Sprintf(format, args...) }
	defer func() { fatalFunc = prev }()

	got := p.Allocate(0, func(*Event) {}, nil, nil, nil)
	require.Nil(t, got)
	require.Contains(t, reported, "event pool exhausted")
}
