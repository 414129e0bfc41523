package strtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternAssignsStableIDs(t *testing.T) {
	tab := New(4)
	a := tab.Intern("hello")
	b := tab.Intern("world")
	aAgain := tab.Intern("hello")

	require.Equal(t, uint32(0), a)
	require.Equal(t, uint32(1), b)
	require.Equal(t, a, aAgain)
	require.Equal(t, 2, tab.Len())
}

func TestLookupRoundTrips(t *testing.T) {
	tab := New(1)
	id := tab.Intern("objective text")

	s, ok := tab.Lookup(id)
	require.True(t, ok)
	require.Equal(t, "objective text", s)

	_, ok = tab.Lookup(id + 1)
	require.False(t, ok)
}

func TestStringsPreservesFirstSeenOrder(t *testing.T) {
	tab := New(1)
	tab.Intern("c")
	tab.Intern("a")
	tab.Intern("c")
	tab.Intern("b")

	require.Equal(t, []string{"c", "a", "b"}, tab.Strings())
}
