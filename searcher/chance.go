package searcher

import (
	"sync"

	"conquest/game"
)

type chance struct {
	sync.Mutex
	parent   Node
	actor    game.PlayerID
	children []*decision
	rewards  float64
	visits   float64
}

func newChance(parent *decision) *chance {
	return &chance{
		parent: parent,
		actor:  parent.player,
	}
}

// SelectOrExpand expects the state after the stochastic move was rolled.
func (c *chance) SelectOrExpand(state State) (Node, State, bool) {
	c.Lock()
	defer c.Unlock()

	// Select if explored outcome
	selected := true
	child := c.selects(state.Hash())
	// Expand if unexplored outcome
	if child == nil {
		child = newDecision(c, c.actor, state)
		c.children = append(c.children, child)
		selected = false
	}

	child.applyLoss()
	return child, state, selected
}

func (c *chance) selects(hash game.StateHash) *decision {
	for _, child := range c.children {
		if child.hash == hash {
			return child
		}
	}
	return nil
}

func (c *chance) applyLoss() {
	c.Lock()
	defer c.Unlock()

	c.rewards += Loss
	c.visits++
}

func (c *chance) reverseLoss() {
	c.rewards -= Loss
	c.visits--
}

func (c *chance) Backup(reward Reward) Node {
	c.Lock()
	defer c.Unlock()

	c.reverseLoss()

	c.rewards += reward(c.actor)
	c.visits++

	return c.parent
}

func (c *chance) stats() (float64, float64) {
	c.Lock()
	defer c.Unlock()

	return c.rewards, c.visits
}
