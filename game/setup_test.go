package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	setup := func(seed string) Setup {
		return Setup{
			Players: []PlayerSetup{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
			Map:     SwissMap(),
			Ruleset: ClassicRuleset(),
			Seed:    seed,
		}
	}

	t.Run("dealing every territory evenly", func(t *testing.T) {
		gs, err := NewGame(setup("deal"))
		require.NoError(t, err)

		require.Len(t, gs.Territories, 26)
		counts := map[PlayerID]int{}
		for _, terr := range gs.Territories {
			require.Equal(t, 3, terr.Armies)
			counts[terr.OwnerID]++
		}
		require.ElementsMatch(t, []int{9, 9, 8}, []int{counts["p1"], counts["p2"], counts["p3"]})
	})

	t.Run("building a deck of territory and wild cards", func(t *testing.T) {
		gs, err := NewGame(setup("deck"))
		require.NoError(t, err)

		require.Len(t, gs.CardsByID, 26+2)
		require.Len(t, gs.Deck.Draw, 28)
		require.Empty(t, gs.Deck.Discard)
		require.Equal(t, Card{Kind: CardWild}, gs.CardsByID["wild-1"])
		require.Equal(t, TerritoryID("AG"), gs.CardsByID["card-AG"].TerritoryID)
	})

	t.Run("opening the first turn", func(t *testing.T) {
		gs, err := NewGame(setup("turn"))
		require.NoError(t, err)

		require.Equal(t, Turn{CurrentPlayerID: "p1", Phase: ReinforcementPhase, Round: 1}, gs.Turn)
		require.GreaterOrEqual(t, gs.Remaining(), MinReinforcements)
		require.Equal(t, "classic@1", gs.RulesetVersion)
		require.Zero(t, gs.StateVersion)
	})

	t.Run("same seed, same game", func(t *testing.T) {
		first, err := NewGame(setup("same"))
		require.NoError(t, err)
		second, err := NewGame(setup("same"))
		require.NoError(t, err)
		other, err := NewGame(setup("other"))
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.NotEqual(t, first.Hash(), other.Hash())
	})

	t.Run("rejecting bad setups", func(t *testing.T) {
		s := setup("bad")
		s.Players = s.Players[:1]
		_, err := NewGame(s)
		require.ErrorContains(t, err, "at least two players")

		s = setup("bad")
		s.Players = []PlayerSetup{{ID: "p1"}, {ID: "p1"}}
		_, err = NewGame(s)
		require.ErrorContains(t, err, "duplicate")

		s = setup("bad")
		s.Players = []PlayerSetup{{ID: "p1"}, {ID: Neutral}}
		_, err = NewGame(s)
		require.ErrorContains(t, err, "invalid player")

		s = setup("bad")
		s.Map = nil
		_, err = NewGame(s)
		require.ErrorContains(t, err, "map")
	})
}

func TestStandardReinforcements(t *testing.T) {
	m := lineMap(t)

	t.Run("granting the minimum", func(t *testing.T) {
		require.Equal(t, MinReinforcements, StandardReinforcements(newTestState(), "p1", nil))
	})

	t.Run("adding continent bonuses", func(t *testing.T) {
		require.Equal(t, 3+2, StandardReinforcements(newTestState(), "p1", m))
		require.Equal(t, 3+1, StandardReinforcements(newTestState(), "p2", m))
	})

	t.Run("scaling with territories", func(t *testing.T) {
		gs := newTestState()
		for i := 0; i < 12; i++ {
			gs.Territories[TerritoryID(fmt.Sprintf("t%d", i))] = TerritoryState{OwnerID: "p1", Armies: 1}
		}

		require.Equal(t, 14/3, StandardReinforcements(gs, "p1", nil))
	})

	t.Run("continent owner", func(t *testing.T) {
		owner, ok := ContinentOwner(newTestState(), m.Continents()[0])
		require.True(t, ok)
		require.Equal(t, PlayerID("p1"), owner)

		gs := newTestState()
		gs.Territories["a"] = TerritoryState{OwnerID: Neutral, Armies: 1}
		gs.Territories["b"] = TerritoryState{OwnerID: Neutral, Armies: 1}
		_, ok = ContinentOwner(gs, m.Continents()[0])
		require.False(t, ok, "Neutral never owns a continent")
	})
}
