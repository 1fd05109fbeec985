// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines to use.
const GO_ROUTINES = 8

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 150

// WITH_CUTOFF defines the cutoff value for MCTS.
const WITH_CUTOFF = 100

// MAX_MOVES caps a simulated game.
const MAX_MOVES = 3000

// ARMIES_PER_TERRITORY is placed on every dealt territory of a new game.
const ARMIES_PER_TERRITORY = 3
