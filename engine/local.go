package engine

import (
	"fmt"
	"time"

	"conquest/agent"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/gamemaster"

	"github.com/rs/zerolog/log"
)

type Option func(e *localEngine)

// WithMaxMoves overrides MaxMoves.
func WithMaxMoves(n int) Option {
	return func(e *localEngine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

type localEngine struct {
	host     *gamemaster.Host
	agents   map[game.PlayerID]agent.Agent
	updates  map[game.PlayerID]gamemaster.UpdateGetter
	maxMoves int
}

// LocalEngine drives agents against each other through host, one agent per
// player of the game.
func LocalEngine(host *gamemaster.Host, agents map[game.PlayerID]agent.Agent, options ...Option) (Engine, error) {
	state := host.State()
	if len(state.TurnOrder) < 2 {
		return nil, fmt.Errorf("need at least two players")
	}
	e := &localEngine{
		host:     host,
		agents:   agents,
		updates:  make(map[game.PlayerID]gamemaster.UpdateGetter, len(agents)),
		maxMoves: MaxMoves,
	}
	for _, p := range state.TurnOrder {
		if agents[p] == nil {
			return nil, fmt.Errorf("no agent for player %s", p)
		}
		e.updates[p] = host.Updates()
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

func (e *localEngine) Run() ([]game.PlayerID, metrics.GameMetric, []metrics.MoveMetric) {
	state := e.host.State()
	gameMetric := metrics.GameMetric{
		StartingPlayer: state.Turn.CurrentPlayerID,
		Seed:           state.RNG.Seed,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}

	logger := log.With().Str("game", e.host.ID()).Logger()
	logger.Info().Msgf("player %s is starting", state.Turn.CurrentPlayerID)

	// Loop until the game is over
	for step := 1; state.Turn.Phase != game.GameOverPhase && step <= e.maxMoves; step++ {
		player := state.Turn.CurrentPlayerID

		move, searchMetric := e.agents[player].FindMove(state, e.drain(player))
		if !e.submit(player, move, state) {
			logger.Warn().Str("player", string(player)).Msg("agent chose an illegal move, playing the first legal one")
			move = firstLegal(state, e.host.Rules())
			if !e.submit(player, move, state) {
				logger.Error().Str("player", string(player)).Msg("no legal move, stopping")
				break
			}
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       string(move.Type()),
			SearchMetric: searchMetric,
		})

		state = e.host.State()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Rounds = state.Turn.Round

	if state.Turn.Phase == game.GameOverPhase {
		gameMetric.Winners = state.Winners
		logger.Info().Interface("winners", state.Winners).Int("moves", gameMetric.TotalMoves).Msg("game ended with a winner")
	} else {
		logger.Info().Int("moves", gameMetric.TotalMoves).Msg("game stopped without a winner")
	}
	return gameMetric.Winners, gameMetric, moveMetrics
}

// drain collects the updates a player has not seen yet.
func (e *localEngine) drain(player game.PlayerID) []agent.Update {
	var updates []agent.Update
	for u, ok := e.updates[player](); ok; u, ok = e.updates[player]() {
		updates = append(updates, agent.Update{Actor: u.Actor, Action: u.Action, State: u.State})
	}
	return updates
}

func (e *localEngine) submit(player game.PlayerID, move game.Action, seen *game.GameState) bool {
	if move == nil {
		return false
	}
	_, err := e.host.Submit(player, move, seen.StateVersion)
	return err == nil
}

func firstLegal(state *game.GameState, rules game.Rules) game.Action {
	legal := game.LegalActions(state, rules)
	if len(legal) == 0 {
		return nil
	}
	return legal[0]
}
