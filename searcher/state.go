package searcher

import (
	"fmt"
	"strconv"

	"conquest/game"

	"golang.org/x/exp/rand"
)

// State is the view of a game the search runs on.
type State interface {
	Player() game.PlayerID
	LegalMoves() []game.Action
	Play(move game.Action) State
	// Hash identifies a position regardless of its dice, so the outcomes of a
	// stochastic move can be told apart in a chance node.
	Hash() game.StateHash
	// Winners is nil until the game is over.
	Winners() []game.PlayerID
	// Score evaluates the position from the perspective of the player to move.
	Score(evaluate game.Evaluate) float64
}

type position struct {
	state *game.GameState
	rules game.Rules
}

// NewPosition wraps a game state and the rules it is played under.
func NewPosition(state *game.GameState, rules game.Rules) State {
	return position{state: state, rules: rules}
}

func (p position) Player() game.PlayerID {
	return p.state.Turn.CurrentPlayerID
}

func (p position) LegalMoves() []game.Action {
	return game.LegalActions(p.state, p.rules)
}

// Play applies a move. Stochastic moves are rolled with a fresh seed: the
// real dice of the game must stay unknown to the search.
func (p position) Play(move game.Action) State {
	base := p.state
	if game.IsStochastic(move) {
		reseeded := *base
		reseeded.RNG = game.RNGState{Seed: strconv.FormatUint(rand.Uint64(), 36)}
		base = &reseeded
	}

	next, _, err := game.ApplyAction(base, p.Player(), move, p.rules.Options()...)
	if err != nil {
		panic(fmt.Sprintf("searcher: legal move %s rejected: %v", move.Type(), err))
	}
	return position{state: next, rules: p.rules}
}

func (p position) Hash() game.StateHash {
	blind := *p.state
	blind.RNG = game.RNGState{}
	return blind.Hash()
}

func (p position) Winners() []game.PlayerID {
	if p.state.Turn.Phase != game.GameOverPhase {
		return nil
	}
	return p.state.Winners
}

func (p position) Score(evaluate game.Evaluate) float64 {
	return evaluate(p.state, p.Player(), p.rules.Map)
}
