package agent

import (
	"conquest/experiments/metrics"
	"conquest/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rules game.Rules
	rng   *rand.Rand
}

// NewRandom returns an agent playing uniformly among the legal actions.
func NewRandom(rules game.Rules, seed uint64) Agent {
	return &randomAgent{rules: rules, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state *game.GameState, _ []Update) (game.Action, metrics.SearchMetric) {
	legal := game.LegalActions(state, a.rules)
	if len(legal) == 0 {
		return nil, metrics.SearchMetric{}
	}
	return legal[a.rng.Intn(len(legal))], metrics.SearchMetric{}
}
