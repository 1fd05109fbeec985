package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
)

// Update is a move played in the game together with the state it produced.
type Update struct {
	Actor  game.PlayerID
	Action game.Action
	State  *game.GameState
}

type Agent interface {
	// FindMove chooses an action for the current player of state. updates
	// lists the moves played since the agent was last asked, oldest first.
	FindMove(state *game.GameState, updates []Update) (game.Action, metrics.SearchMetric)
}

// fallback returns the first legal action, or nil when there is none.
func fallback(state *game.GameState, rules game.Rules) game.Action {
	legal := game.LegalActions(state, rules)
	if len(legal) == 0 {
		return nil
	}
	return legal[0]
}
