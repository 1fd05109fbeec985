package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
)

type searchAgent struct {
	rules game.Rules
	mcts  *searcher.MCTS
}

// NewSearch returns an agent playing the most visited root move of an MCTS.
// The search tree is carried over between calls.
func NewSearch(rules game.Rules, mcts *searcher.MCTS) Agent {
	return &searchAgent{rules: rules, mcts: mcts}
}

func (a *searchAgent) FindMove(state *game.GameState, updates []Update) (game.Action, metrics.SearchMetric) {
	segments := make([]searcher.Segment, len(updates))
	for i, u := range updates {
		segments[i] = searcher.NewSegment(u.Action, searcher.NewPosition(u.State, a.rules))
	}

	policy, metric := a.mcts.Simulate(searcher.NewPosition(state, a.rules), segments)
	if move := policy.Best(); move != nil {
		return move, metric
	}
	return fallback(state, a.rules), metric
}
