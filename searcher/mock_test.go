package searcher

import (
	"fmt"
	"slices"

	"conquest/game"
)

// place and attack build distinguishable deterministic and stochastic moves.
func place(id int) game.Action {
	return game.PlaceReinforcements{TerritoryID: "t", Count: id + 1}
}

func attack(id int) game.Action {
	return game.Attack{From: "t", To: game.TerritoryID(fmt.Sprintf("t%d", id))}
}

type mockState struct {
	player  game.PlayerID
	hash    game.StateHash
	moves   []game.Action
	played  []game.Action
	winners []game.PlayerID
	score   float64
}

func (s mockState) Player() game.PlayerID {
	return s.player
}

func (s mockState) LegalMoves() []game.Action {
	return s.moves
}

func (s mockState) Play(move game.Action) State {
	s.played = append(slices.Clone(s.played), move)
	return s
}

func (s mockState) Hash() game.StateHash {
	return s.hash
}

func (s mockState) Winners() []game.PlayerID {
	return s.winners
}

func (s mockState) Score(game.Evaluate) float64 {
	return s.score
}
