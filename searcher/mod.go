package searcher

import "conquest/game"

// Node is a vertex of the search tree. Decision nodes choose a move, chance
// nodes branch on the outcomes of a stochastic move.
type Node interface {
	// SelectOrExpand descends one level. selected reports whether the
	// returned child was already in the tree and the descent should go on.
	SelectOrExpand(state State) (child Node, childState State, selected bool)
	// Backup records a simulation result and returns the parent.
	Backup(reward Reward) Node
	applyLoss()
	stats() (rewards float64, visits float64)
}

// Reward scores a simulation result from a player's perspective.
type Reward func(player game.PlayerID) float64

// victory rewards the winners of a finished game.
func victory(winners []game.PlayerID) Reward {
	return func(player game.PlayerID) float64 {
		for _, w := range winners {
			if w == player {
				return Win
			}
		}
		return Loss
	}
}

// estimate rewards an evaluation score of player, negated for everyone else.
func estimate(player game.PlayerID, score float64) Reward {
	return func(p game.PlayerID) float64 {
		if p == player {
			return score
		}
		return -score
	}
}
