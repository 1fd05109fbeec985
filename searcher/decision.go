package searcher

import (
	"math"
	"slices"
	"sync"

	"conquest/game"
)

type decision struct {
	sync.Mutex
	parent Node
	// actor made the move leading here; rewards are from their perspective
	actor      game.PlayerID
	player     game.PlayerID
	hash       game.StateHash
	unexplored []game.Action
	explored   []game.Action
	children   []Node
	rewards    float64
	visits     float64
}

func newDecision(parent Node, actor game.PlayerID, state State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		actor:      actor,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Action, 0, len(moves)),
		children:   make([]Node, 0, len(moves)),
	}
}

func (d *decision) SelectOrExpand(state State) (Node, State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.explored) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.expand(state)
		child.applyLoss()
		return child, childState, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) expand(state State) (Node, State) {
	move := d.unexplored[0]
	d.unexplored = d.unexplored[1:]
	d.explored = append(d.explored, move)

	childState := state.Play(move)
	var child Node
	if game.IsStochastic(move) {
		child = newChance(d)
	} else {
		child = newDecision(d, d.player, childState)
	}
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) pickChild() int {
	total := 0.0
	for _, child := range d.children {
		_, visits := child.stats()
		total += visits
	}
	policy := newUCT(CSquared, math.Max(total, 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		rewards, visits := child.stats()
		if visits == 0 {
			return i
		}
		if score := policy.evaluate(rewards, visits); score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Backup(reward Reward) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.actor)
	d.visits++

	return d.parent
}

func (d *decision) stats() (float64, float64) {
	d.Lock()
	defer d.Unlock()

	return d.rewards, d.visits
}

// Policy returns the visit share of every explored root move.
func (d *decision) Policy() Policy {
	d.Lock()
	moves := slices.Clone(d.explored)
	children := slices.Clone(d.children)
	d.Unlock()

	total := 0.0
	visits := make([]float64, len(children))
	for i, child := range children {
		_, visits[i] = child.stats()
		total += visits[i]
	}

	policy := make(Policy, len(moves))
	for i, move := range moves {
		policy[i] = Candidate{Move: move}
		if total > 0 {
			policy[i].Weight = visits[i] / total
		}
	}
	return policy
}
