package regmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildDefaultPoolIsSortedAndRepeated(t *testing.T) {
	m, warning := Build(nil)
	require.Empty(t, warning)
	require.True(t, m.Len() >= MinCells)

	first, err := m.Lookup(0)
	require.NoError(t, err)
	require.Equal(t, Def{PlayerID: 0, UnitType: unusedUnitTypes[0]}, first)

	// the pool repeats once per player, in the same unit order each time.
	perPlayer := len(unusedUnitTypes)
	second, err := m.Lookup(perPlayer)
	require.NoError(t, err)
	require.Equal(t, Def{PlayerID: 1, UnitType: unusedUnitTypes[0]}, second)
}

func TestBuildCustomMapWarnsWhenSmall(t *testing.T) {
	m, warning := Build([]Def{{PlayerID: 0, UnitType: 5}})
	require.Equal(t, 1, m.Len())
	require.NotEmpty(t, warning)
}

func TestLookupOutOfRegisters(t *testing.T) {
	m, _ := Build([]Def{{PlayerID: 0, UnitType: 5}})
	_, err := m.Lookup(1)
	require.Error(t, err)
}

func TestResolveStackTop(t *testing.T) {
	require.Equal(t, 10, Resolve(StackTop, 9))
	require.Equal(t, 11, Resolve(StackTop+1, 9))
	require.Equal(t, 3, Resolve(3, 9))
}

func TestParseCustomMap(t *testing.T) {
	defs, err := ParseCustomMap("Player 1, Terran Marine\n\nPlayer 7, Terran Marine\n")
	require.NoError(t, err)
	require.Equal(t, []Def{
		{PlayerID: 0, UnitType: 0},
		{PlayerID: 6, UnitType: 0},
	}, defs)
}

func TestParseCustomMapRejectsMalformedLine(t *testing.T) {
	_, err := ParseCustomMap("not a valid line")
	require.Error(t, err)
}

func TestParseCustomMapRejectsUnknownNames(t *testing.T) {
	_, err := ParseCustomMap("Nobody, Terran Marine")
	require.Error(t, err)

	_, err = ParseCustomMap("Player 1, Nothing")
	require.Error(t, err)
}
