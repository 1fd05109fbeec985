package agent

import (
	"math"
	"slices"
	"strconv"

	"conquest/experiments/metrics"
	"conquest/game"

	"golang.org/x/exp/rand"
)

// GreedySamples is the number of dice rolls averaged per stochastic action.
const GreedySamples = 8

type greedyAgent struct {
	rules    game.Rules
	evaluate game.Evaluate
	rng      *rand.Rand
}

// NewGreedy returns an agent that plays the action with the best evaluation
// one move ahead. Stochastic actions are scored by their mean over sampled
// rolls, never by the dice of the real game.
func NewGreedy(rules game.Rules, evaluate game.Evaluate, seed uint64) Agent {
	if evaluate == nil {
		evaluate = game.EvaluateResources
	}
	return &greedyAgent{rules: rules, evaluate: evaluate, rng: rand.New(rand.NewSource(seed))}
}

func (a *greedyAgent) FindMove(state *game.GameState, _ []Update) (game.Action, metrics.SearchMetric) {
	player := state.Turn.CurrentPlayerID
	var best game.Action
	bestScore := math.Inf(-1)
	for _, action := range game.LegalActions(state, a.rules) {
		if score := a.score(state, player, action); score > bestScore {
			best, bestScore = action, score
		}
	}
	return best, metrics.SearchMetric{}
}

func (a *greedyAgent) score(state *game.GameState, player game.PlayerID, action game.Action) float64 {
	samples := 1
	if game.IsStochastic(action) {
		samples = GreedySamples
	}

	total := 0.0
	for i := 0; i < samples; i++ {
		base := *state
		base.RNG = game.RNGState{Seed: strconv.FormatUint(a.rng.Uint64(), 36)}
		next, _, err := game.ApplyAction(&base, player, action, a.rules.Options()...)
		if err != nil {
			return math.Inf(-1)
		}
		if next.Turn.Phase == game.GameOverPhase {
			if slices.Contains(next.Winners, player) {
				return math.Inf(1)
			}
			return math.Inf(-1)
		}
		total += a.evaluate(next, player, a.rules.Map)
	}
	return total / float64(samples)
}
