package searcher

import (
	"sync"
	"testing"

	"conquest/game"

	"github.com/stretchr/testify/require"
)

/**
Tests parallel MCTS (tree parallelization with virtual loss) on decision nodes
sequential:
- selection:
	- happy path: fully expanded node -> max UCT child + loss, child state
	- edge case: terminal node -> same node, same state
- expansion:
	- happy path: expandable node -> new added child + loss, child state
	- stochastic move -> chance child
- backup:
	- reverse loss, visits++, reward from the perspective of the node's actor
concurrent: 3 race conditions
- shared expansion
- shared backup
- shared selection + backup
*/

func TestDecisionSelectOrExpand(t *testing.T) {
	t.Run("selecting fully expanded node (all deterministic moves explored)", func(t *testing.T) {
		maxMove := place(1)
		maxChild := &decision{rewards: 1, visits: 1}
		otherChild := &decision{rewards: 0, visits: 1}
		node := &decision{
			unexplored: []game.Action{},
			explored:   []game.Action{place(0), maxMove},
			children:   []Node{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, maxChild, gotChild, "Node should select child with max policy value")
		require.IsType(t, &decision{}, gotChild, "Child should be a decision node")
		require.Equal(t, 1+Loss, gotChild.(*decision).rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.(*decision).visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Action{maxMove}, gotState.(mockState).played, "State should update by the move to the max policy child")
		require.True(t, gotSelected, "Node should perform selection")
		require.Equal(t, 1.0, node.rewards, "Node stats should not change")
		require.Equal(t, 2.0, node.visits, "Node stats should not change")
	})

	t.Run("selecting fully expanded node (all stochastic moves explored)", func(t *testing.T) {
		maxMove := attack(1)
		maxChild := &chance{rewards: 1, visits: 1}
		otherChild := &chance{rewards: 0, visits: 1}
		node := &decision{
			unexplored: []game.Action{},
			explored:   []game.Action{attack(0), maxMove},
			children:   []Node{otherChild, maxChild},
			rewards:    1,
			visits:     2,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, maxChild, gotChild, "Node should select child with max policy value")
		require.IsType(t, &chance{}, gotChild, "Child should be a chance node")
		require.Equal(t, 1+Loss, gotChild.(*chance).rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, gotChild.(*chance).visits, "Child should apply a temporary loss")
		require.Equal(t, []game.Action{maxMove}, gotState.(mockState).played, "State should update by the move to the max policy child")
		require.True(t, gotSelected, "Node should perform selection")
	})

	t.Run("selecting an unvisited child first", func(t *testing.T) {
		fresh := &decision{}
		node := &decision{
			explored: []game.Action{place(0), place(1)},
			children: []Node{&decision{rewards: 1, visits: 1}, fresh},
			visits:   1,
		}

		gotChild, _, gotSelected := node.SelectOrExpand(mockState{})

		require.Equal(t, fresh, gotChild, "Node should select the child without visits")
		require.True(t, gotSelected)
	})

	t.Run("expanding node with unexplored deterministic moves", func(t *testing.T) {
		unexploredMove := place(1)
		node := &decision{
			player:     "p1",
			unexplored: []game.Action{unexploredMove},
			explored:   []game.Action{place(0)},
			children:   []Node{&decision{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{player: "p1", hash: 7}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.IsType(t, &decision{}, gotChild, "Child should be a decision node")
		child := gotChild.(*decision)
		require.Equal(t, Loss, child.rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, child.visits, "Child should apply a temporary loss")
		require.Equal(t, game.PlayerID("p1"), child.actor, "Child should be owned by the player who moved")
		require.Equal(t, game.StateHash(7), child.hash)
		require.Equal(t, 2, len(node.children), "Node should add a new child")
		require.Empty(t, node.unexplored)
		require.Equal(t, []game.Action{unexploredMove}, gotState.(mockState).played, "State should update by the move to the unexplored child")
		require.False(t, gotSelected, "Node should perform expansion")
	})

	t.Run("expanding node with unexplored stochastic moves", func(t *testing.T) {
		unexploredMove := attack(1)
		node := &decision{
			player:     "p1",
			unexplored: []game.Action{unexploredMove},
			explored:   []game.Action{attack(0)},
			children:   []Node{&chance{rewards: 1, visits: 1}},
			visits:     1,
		}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.IsType(t, &chance{}, gotChild, "Child should be a chance node")
		require.Equal(t, Loss, gotChild.(*chance).rewards, "Child should apply a temporary loss")
		require.Equal(t, 1.0, gotChild.(*chance).visits, "Child should apply a temporary loss")
		require.Equal(t, game.PlayerID("p1"), gotChild.(*chance).actor)
		require.Equal(t, []game.Action{unexploredMove}, gotState.(mockState).played, "State should update by the move to the unexplored child")
		require.False(t, gotSelected, "Node should perform expansion")
		require.Equal(t, 2, len(node.children), "Node should add a new child")
	})

	t.Run("stagnating on terminal node", func(t *testing.T) {
		node := &decision{}
		state := mockState{}

		gotChild, gotState, gotSelected := node.SelectOrExpand(state)

		require.Equal(t, node, gotChild, "Should return the same node")
		require.Equal(t, mockState{}, gotState, "Should return the same state")
		require.False(t, gotSelected, "Should not select any child or expand")
	})
}

func TestDecisionBackup(t *testing.T) {
	t.Run("recording win on root node", func(t *testing.T) {
		node := &decision{actor: "p1"}

		got := node.Backup(victory([]game.PlayerID{"p1"}))

		require.Nil(t, got, "Should return no parent")
		require.Equal(t, Win, node.rewards, "Should apply a win reward")
		require.Equal(t, 1.0, node.visits, "Should add a visit")
	})

	t.Run("recording win on deterministic outcome node", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent,
			actor:   "p1",
			rewards: Loss,
			visits:  1,
		}

		got := node.Backup(victory([]game.PlayerID{"p1"}))

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Win, node.rewards, "Should reverse virtual loss and add a win")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording loss on stochastic outcome node", func(t *testing.T) {
		parent := &chance{}
		node := &decision{
			parent:  parent,
			actor:   "p1",
			rewards: Loss,
			visits:  1,
		}

		got := node.Backup(victory([]game.PlayerID{"p2"}))

		require.Equal(t, parent, got, "Should return the parent node")
		require.Equal(t, Loss, node.rewards, "Should reverse virtual loss and add a loss")
		require.Equal(t, 1.0, node.visits, "Should reverse virtual loss and add a visit")
	})

	t.Run("recording an estimate for the opponent", func(t *testing.T) {
		node := &decision{
			parent:  &decision{},
			actor:   "p1",
			rewards: Loss,
			visits:  1,
		}

		node.Backup(estimate("p2", 0.25))

		require.Equal(t, -0.25, node.rewards, "Should negate the opponent's estimate")
	})

	t.Run("sharing a team victory", func(t *testing.T) {
		node := &decision{actor: "p3"}

		node.Backup(victory([]game.PlayerID{"p1", "p3"}))

		require.Equal(t, Win, node.rewards)
	})
}

func TestDecisionPolicy(t *testing.T) {
	node := &decision{
		explored: []game.Action{place(0), place(1)},
		children: []Node{&decision{visits: 1}, &decision{visits: 3}},
	}

	policy := node.Policy()

	require.Equal(t, Policy{{Move: place(0), Weight: 0.25}, {Move: place(1), Weight: 0.75}}, policy)
	require.Equal(t, place(1), policy.Best())
}

func TestDecisionRaceConditions(t *testing.T) {
	t.Run("concurrent expansion", func(t *testing.T) {
		// Setup a node with 2 unexplored moves
		node := &decision{
			unexplored: []game.Action{place(0), place(1)},
			explored:   []game.Action{},
			children:   []Node{},
		}

		var wg sync.WaitGroup
		type result struct {
			child    Node
			state    mockState
			selected bool
		}
		var got [2]result

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				gotChild, gotState, gotSelected := node.SelectOrExpand(mockState{})
				got[i] = result{gotChild, gotState.(mockState), gotSelected}
			}()
		}
		wg.Wait()

		require.Equal(t, 2, len(node.children), "Node should have two children")
		for i := 0; i < 2; i++ {
			require.IsType(t, &decision{}, got[i].child, "Child should be a decision node")
			require.Equal(t, Loss, got[i].child.(*decision).rewards, "Child should apply a temporary loss")
			require.Equal(t, 1.0, got[i].child.(*decision).visits, "Child should apply a temporary loss")
			require.False(t, got[i].selected, "Node should be expanded")
			require.Contains(t, []game.Action{place(0), place(1)}, got[i].state.played[0], "Node should expand with a legal move")
		}
		require.NotEqual(t, got[0].state.played[0], got[1].state.played[0], "Node should expand with different moves")
	})

	t.Run("concurrent backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent, // Non-root
			actor:   "p1",
			rewards: Loss * 2, // 2 virtual losses
			visits:  2,        // 2 virtual losses
		}

		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got := node.Backup(victory([]game.PlayerID{"p1"}))
				require.Equal(t, parent, got, "Should return the parent node")
			}()
		}
		wg.Wait()

		require.Equal(t, Win*2, node.rewards, "Node should reverse virtual losses and add two wins")
		require.Equal(t, 2.0, node.visits, "Node should reverse virtual losses and add two visits")
	})

	t.Run("concurrent selection and backup", func(t *testing.T) {
		parent := &decision{}
		node := &decision{
			parent:  parent, // Non-root
			actor:   "p1",
			rewards: Loss, // Virtual loss
			visits:  3,
		}
		child := &decision{parent: node, visits: 1}
		move := place(0)
		node.explored = []game.Action{move}
		node.children = []Node{child}

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			gotChild, gotState, gotSelected := node.SelectOrExpand(mockState{})
			require.Equal(t, child, gotChild, "Node should select the child")
			require.Equal(t, move, gotState.(mockState).played[0], "State should update by the move to the child")
			require.True(t, gotSelected, "Node should perform selection")
		}()

		go func() {
			defer wg.Done()
			got := node.Backup(victory([]game.PlayerID{"p1"}))
			require.Equal(t, parent, got, "Node should return its parent")
		}()

		wg.Wait()

		require.Equal(t, Loss, child.rewards, "Child should apply a temporary loss")
		require.Equal(t, 2.0, child.visits, "Child should apply a temporary loss")
		require.Equal(t, Win, node.rewards, "Node should reverse virtual loss and add a win")
		require.Equal(t, 3.0, node.visits, "Node should reverse virtual loss and add a visit")
	})
}
