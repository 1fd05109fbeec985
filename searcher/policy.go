package searcher

import (
	"math"

	"conquest/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// Candidate is a root move with its share of the root visits.
type Candidate struct {
	Move   game.Action
	Weight float64
}

// Policy is the move distribution found by a search, in legal move order.
type Policy []Candidate

// Best returns the most visited move, or nil for an empty policy.
func (p Policy) Best() game.Action {
	var best game.Action
	maxWeight := -1.0
	for _, c := range p {
		if c.Weight > maxWeight {
			maxWeight = c.Weight
			best = c.Move
		}
	}
	return best
}
