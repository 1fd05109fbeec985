package gamemaster

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"conquest/game"
	"conquest/logger"

	"github.com/rs/zerolog"
)

var (
	ErrVersionConflict = errors.New("state version conflict")
	ErrGameOver        = errors.New("game is over")
)

// Record is an accepted action and what it produced.
type Record struct {
	Version int // State version after the action
	Actor   game.PlayerID
	Action  game.Action
	Events  []game.Event
}

// Update is a record together with the resulting state.
type Update struct {
	Record
	State *game.GameState
}

// UpdateGetter returns the next unseen update, or false when there is none yet.
type UpdateGetter func() (Update, bool)

// Host is an in-memory authority for one game. Submissions are serialized;
// every accepted action is appended to the history.
type Host struct {
	mu      sync.Mutex
	id      string
	rules   game.Rules
	initial *game.GameState
	state   *game.GameState
	history []Record
	states  []*game.GameState
	log     zerolog.Logger
}

func NewHost(id string, initial *game.GameState, rules game.Rules) *Host {
	return &Host{
		id:      id,
		rules:   rules,
		initial: initial,
		state:   initial,
		log:     logger.ForGame(id),
	}
}

func (h *Host) ID() string {
	return h.id
}

func (h *Host) Rules() game.Rules {
	return h.rules
}

// State returns the current state. It must not be modified.
func (h *Host) State() *game.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.state
}

// Submit applies action for actor if the caller saw the current version.
func (h *Host) Submit(actor game.PlayerID, action game.Action, expectedVersion int) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if expectedVersion != h.state.StateVersion {
		return Record{}, fmt.Errorf("%w: expected %d, current %d", ErrVersionConflict, expectedVersion, h.state.StateVersion)
	}
	return h.apply(actor, action)
}

// Play applies action for actor against whatever the current state is.
func (h *Host) Play(actor game.PlayerID, action game.Action) (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.apply(actor, action)
}

func (h *Host) apply(actor game.PlayerID, action game.Action) (Record, error) {
	if h.state.Turn.Phase == game.GameOverPhase {
		return Record{}, ErrGameOver
	}
	if action == nil {
		return Record{}, fmt.Errorf("nil action from %s", actor)
	}

	next, events, err := game.ApplyAction(h.state, actor, action, h.rules.Options()...)
	if err != nil {
		h.log.Debug().Err(err).Str("actor", string(actor)).Str("action", string(action.Type())).Msg("action rejected")
		return Record{}, err
	}

	record := Record{Version: next.StateVersion, Actor: actor, Action: action, Events: events}
	h.state = next
	h.history = append(h.history, record)
	h.states = append(h.states, next)

	h.log.Debug().
		Str("actor", string(actor)).
		Str("action", string(action.Type())).
		Int("version", next.StateVersion).
		Int("events", len(events)).
		Msg("action applied")
	if next.Turn.Phase == game.GameOverPhase {
		h.log.Info().Interface("winners", next.Winners).Int("version", next.StateVersion).Msg("game over")
	}
	return record, nil
}

// History returns a copy of the accepted records, oldest first.
func (h *Host) History() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]Record(nil), h.history...)
}

// Updates returns a getter that walks the history from the first record on.
// Each getter keeps its own position.
func (h *Host) Updates() UpdateGetter {
	next := 0
	return func() (Update, bool) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if next >= len(h.history) {
			return Update{}, false
		}
		u := Update{Record: h.history[next], State: h.states[next]}
		next++
		return u, true
	}
}

// Verify replays the history from the initial state and checks it reproduces
// the current state.
func (h *Host) Verify() error {
	h.mu.Lock()
	initial, history, current := h.initial, append([]Record(nil), h.history...), h.state
	h.mu.Unlock()

	final, err := Replay(initial, h.rules, history)
	if err != nil {
		return err
	}
	if final.Hash() != current.Hash() {
		return fmt.Errorf("replay: final state hash %d differs from %d", final.Hash(), current.Hash())
	}
	return nil
}

// Replay re-applies a history from initial and checks every record yields
// the same version and events.
func Replay(initial *game.GameState, rules game.Rules, history []Record) (*game.GameState, error) {
	state := initial
	for i, record := range history {
		next, events, err := game.ApplyAction(state, record.Actor, record.Action, rules.Options()...)
		if err != nil {
			return nil, fmt.Errorf("replay: record %d: %w", i, err)
		}
		if next.StateVersion != record.Version {
			return nil, fmt.Errorf("replay: record %d: version %d, recorded %d", i, next.StateVersion, record.Version)
		}
		if !reflect.DeepEqual(events, record.Events) {
			return nil, fmt.Errorf("replay: record %d: events differ", i)
		}
		state = next
	}
	return state, nil
}
