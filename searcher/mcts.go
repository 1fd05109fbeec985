package searcher

import (
	"sync"
	"time"

	"conquest/experiments/metrics"
	"conquest/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MaxCutoff bounds the rollout depth when no cutoff is given.
const MaxCutoff = 10000

type Option func(mcts *MCTS)

// Segment is a move played in the real game together with the position it
// led to, as seen by the search.
type Segment struct {
	Move      game.Action
	StateHash game.StateHash
}

// NewSegment records move and the state it produced.
func NewSegment(move game.Action, after State) Segment {
	return Segment{Move: move, StateHash: after.Hash()}
}

type MCTS struct {
	mu         sync.Mutex
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateResources,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit distribution over its
// legal moves. lineage lists the moves played since the previous call, so the
// subtree already built for the current position can be reused.
func (m *MCTS) Simulate(state State, lineage []Segment) (Policy, metrics.SearchMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	return m.root.Policy(), metric
}

func (m *MCTS) iterate(state State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) findRoot(path []Segment, state State) {
	root := traverse(m.root, path)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, "", state)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, path []Segment) *decision {
	if root == nil || len(path) == 0 {
		return nil
	}

	node := root
	for _, segment := range path {
		ith := -1
		for i, move := range node.explored {
			if game.ActionsEqual(move, segment.Move) {
				ith = i
				break
			}
		}
		if ith < 0 { // Node has not expanded this move
			return nil
		}

		switch child := node.children[ith].(type) {
		case *decision:
			if child.hash != segment.StateHash {
				log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
				return nil
			}
			node = child
		case *chance:
			grandChild := child.selects(segment.StateHash)
			if grandChild == nil {
				return nil
			}
			node = grandChild
		default:
			panic("Unexpected node type")
		}
	}
	return node
}

func (m *MCTS) simulate(state State) {
	newNode, newState := selectThenExpand(m.root, state)
	reward := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, reward)
}

func selectThenExpand(root Node, state State) (Node, State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector) Reward {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return victory(state.Winners())
	}

	// At cutoff state, score from the perspective of the player to move
	return estimate(state.Player(), state.Score(evaluate))
}

func backup(newNode Node, reward Reward) {
	node := newNode
	for node != nil {
		node = node.Backup(reward)
	}
}
