package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// lineMap is a - b - c - d, with {a, b} and {c, d} as continents.
func lineMap(t *testing.T) *GraphMap {
	t.Helper()
	m, err := NewGraphMap("line", "Line", []Territory{
		{ID: "a", AdjacentIDs: []TerritoryID{"b"}},
		{ID: "b", AdjacentIDs: []TerritoryID{"c"}},
		{ID: "c", AdjacentIDs: []TerritoryID{"d"}},
		{ID: "d"},
	}, []Continent{
		{ID: "west", Territories: []TerritoryID{"a", "b"}, Bonus: 2},
		{ID: "east", Territories: []TerritoryID{"c", "d"}, Bonus: 1},
	})
	require.NoError(t, err)
	return m
}

// newTestState returns p1 to move in the Reinforcement phase with 5 armies
// to place. p1 holds a and b, p2 holds c and d.
func newTestState() *GameState {
	return &GameState{
		Players: map[PlayerID]Player{
			"p1": {Status: Alive},
			"p2": {Status: Alive},
		},
		TurnOrder: []PlayerID{"p1", "p2"},
		Territories: map[TerritoryID]TerritoryState{
			"a": {OwnerID: "p1", Armies: 3},
			"b": {OwnerID: "p1", Armies: 3},
			"c": {OwnerID: "p2", Armies: 4},
			"d": {OwnerID: "p2", Armies: 2},
		},
		Turn:           Turn{CurrentPlayerID: "p1", Phase: ReinforcementPhase, Round: 1},
		Reinforcements: &Reinforcements{Remaining: 5},
		Deck:           Deck{Draw: []CardID{}, Discard: []CardID{}},
		CardsByID:      map[CardID]Card{},
		Hands:          map[PlayerID][]CardID{"p1": {}, "p2": {}},
		RNG:            RNGState{Seed: "test"},
	}
}

func inPhase(gs *GameState, phase Phase) *GameState {
	gs.Turn.Phase = phase
	if phase != ReinforcementPhase {
		gs.Reinforcements = nil
	}
	return gs
}

func withArmies(gs *GameState, owner PlayerID, armies map[TerritoryID]int) *GameState {
	for id, n := range armies {
		gs.Territories[id] = TerritoryState{OwnerID: owner, Armies: n}
	}
	return gs
}

// requireRejected asserts an *ActionError whose message contains msg.
func requireRejected(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	require.Contains(t, actionErr.Message, msg)
}

// captureAttack retries an attack over RNG positions until it captures.
func captureAttack(t *testing.T, gs *GameState, actor PlayerID, a Attack, opts ...Option) (*GameState, []Event) {
	t.Helper()
	for i := 0; i < 200; i++ {
		base := gs.Clone()
		base.RNG.Index = i
		next, events, err := ApplyAction(base, actor, a, opts...)
		require.NoError(t, err)
		if next.Pending != nil {
			return next, events
		}
	}
	t.Fatal("attack never captured")
	return nil, nil
}

func eventsOfType[T Event](events []Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
