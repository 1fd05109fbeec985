package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGraphMap(t *testing.T) {
	t.Run("making borders bidirectional", func(t *testing.T) {
		m := lineMap(t)

		require.True(t, m.AreAdjacent("a", "b"))
		require.True(t, m.AreAdjacent("b", "a"))
		require.False(t, m.AreAdjacent("a", "c"))
		require.Equal(t, []TerritoryID{"b", "d"}, m.Neighbors("c"))
		require.Equal(t, 4, m.Len())
	})

	t.Run("rejecting unknown borders", func(t *testing.T) {
		_, err := NewGraphMap("bad", "", []Territory{{ID: "a", AdjacentIDs: []TerritoryID{"x"}}}, nil)

		require.ErrorContains(t, err, "unknown territory")
	})

	t.Run("rejecting duplicates and self borders", func(t *testing.T) {
		_, err := NewGraphMap("bad", "", []Territory{{ID: "a"}, {ID: "a"}}, nil)
		require.ErrorContains(t, err, "duplicate")

		_, err = NewGraphMap("bad", "", []Territory{{ID: "a", AdjacentIDs: []TerritoryID{"a"}}}, nil)
		require.ErrorContains(t, err, "borders itself")
	})

	t.Run("rejecting continents with unknown territories", func(t *testing.T) {
		_, err := NewGraphMap("bad", "", []Territory{{ID: "a"}}, []Continent{{ID: "c", Territories: []TerritoryID{"z"}}})

		require.ErrorContains(t, err, "continent")
	})
}

func TestGraphMapCopies(t *testing.T) {
	t.Run("neighbors", func(t *testing.T) {
		m := lineMap(t)

		n := m.Neighbors("a")
		n[0] = "c"

		require.Equal(t, []TerritoryID{"b"}, m.Neighbors("a"))
		for _, adj := range m.Neighbors("a") {
			require.True(t, m.AreAdjacent("a", adj))
		}
		require.False(t, m.AreAdjacent("a", "c"))
	})

	t.Run("continents", func(t *testing.T) {
		m := lineMap(t)

		cs := m.Continents()
		cs[0].Territories[0] = "d"
		cs[1].Bonus = 10

		require.Equal(t, []TerritoryID{"a", "b"}, m.Continents()[0].Territories)
		require.Equal(t, 1, m.Continents()[1].Bonus)
	})
}

func TestReachable(t *testing.T) {
	m := lineMap(t)
	all := func(TerritoryID) bool { return true }
	none := func(TerritoryID) bool { return false }

	require.True(t, m.Reachable("a", "d", all))
	require.True(t, m.Reachable("a", "b", none), "Endpoints are not filtered")
	require.False(t, m.Reachable("a", "c", none))
	require.False(t, m.Reachable("a", "d", func(id TerritoryID) bool { return id != "c" }))
}

func TestSwissMap(t *testing.T) {
	m := SwissMap()

	require.Equal(t, 26, m.Len())
	covered := map[TerritoryID]bool{}
	for _, c := range m.Continents() {
		for _, id := range c.Territories {
			require.False(t, covered[id], "%s is in two regions", id)
			covered[id] = true
		}
	}
	require.Len(t, covered, 26, "Every canton belongs to a region")
	for _, id := range m.TerritoryIDs() {
		require.True(t, m.Reachable(id, "GE", func(TerritoryID) bool { return true }), "%s is connected", id)
	}
}
