package engine

import (
	"conquest/experiments/metrics"
	"conquest/game"
)

// MaxMoves caps a simulated game when no other limit is given.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached.
	// Winners is empty when the game was cut off.
	Run() (winners []game.PlayerID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
