package game

import (
	"encoding/binary"
	"hash/fnv"
	"maps"
	"slices"
)

type PlayerID string

// Neutral owns territories that belong to no player.
const Neutral PlayerID = "neutral"

type Phase string

const (
	SetupPhase         Phase = "Setup"
	ReinforcementPhase Phase = "Reinforcement"
	AttackPhase        Phase = "Attack"
	OccupyPhase        Phase = "Occupy"
	FortifyPhase       Phase = "Fortify"
	GameOverPhase      Phase = "GameOver"
)

type PlayerStatus string

const (
	Alive    PlayerStatus = "alive"
	Defeated PlayerStatus = "defeated"
)

type Player struct {
	Status PlayerStatus `json:"status"`
	TeamID string       `json:"teamId,omitempty"`
}

type TerritoryState struct {
	OwnerID PlayerID `json:"ownerId"`
	Armies  int      `json:"armies"`
}

type Turn struct {
	CurrentPlayerID PlayerID `json:"currentPlayerId"`
	Phase           Phase    `json:"phase"`
	Round           int      `json:"round"`
}

type Reinforcements struct {
	Remaining int `json:"remaining"`
}

type PendingType string

const PendingOccupy PendingType = "Occupy"

// Pending is an unresolved decision; Occupy is the only variant.
type Pending struct {
	Type    PendingType `json:"type"`
	From    TerritoryID `json:"from"`
	To      TerritoryID `json:"to"`
	MinMove int         `json:"minMove"`
	MaxMove int         `json:"maxMove"`
}

type Deck struct {
	Draw    []CardID `json:"draw"`
	Discard []CardID `json:"discard"`
}

// GameState is the whole game at one point in time. The reducer never
// mutates a GameState; it derives a new one sharing untouched substructures,
// so callers must treat every field as read-only.
type GameState struct {
	Players               map[PlayerID]Player            `json:"players"`
	TurnOrder             []PlayerID                     `json:"turnOrder"`
	Territories           map[TerritoryID]TerritoryState `json:"territories"`
	Turn                  Turn                           `json:"turn"`
	Reinforcements        *Reinforcements                `json:"reinforcements,omitempty"`
	Pending               *Pending                       `json:"pending,omitempty"`
	Deck                  Deck                           `json:"deck"`
	CardsByID             map[CardID]Card                `json:"cardsById"`
	Hands                 map[PlayerID][]CardID          `json:"hands"`
	TradesCompleted       int                            `json:"tradesCompleted"`
	FortifiesUsedThisTurn int                            `json:"fortifiesUsedThisTurn,omitempty"`
	CapturedThisTurn      bool                           `json:"capturedThisTurn"`
	RNG                   RNGState                       `json:"rng"`
	StateVersion          int                            `json:"stateVersion"`
	RulesetVersion        string                         `json:"rulesetVersion"`
	Winners               []PlayerID                     `json:"winners,omitempty"`
}

// Clone returns a deep copy of the state.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Players = maps.Clone(gs.Players)
	c.TurnOrder = slices.Clone(gs.TurnOrder)
	c.Territories = maps.Clone(gs.Territories)
	if gs.Reinforcements != nil {
		r := *gs.Reinforcements
		c.Reinforcements = &r
	}
	if gs.Pending != nil {
		p := *gs.Pending
		c.Pending = &p
	}
	c.Deck = Deck{Draw: slices.Clone(gs.Deck.Draw), Discard: slices.Clone(gs.Deck.Discard)}
	c.CardsByID = maps.Clone(gs.CardsByID)
	c.Hands = make(map[PlayerID][]CardID, len(gs.Hands))
	for id, hand := range gs.Hands {
		c.Hands[id] = slices.Clone(hand)
	}
	c.Winners = slices.Clone(gs.Winners)
	return &c
}

// TeamOf returns the team of a player, or "" when it has none.
func (gs *GameState) TeamOf(id PlayerID) string {
	return gs.Players[id].TeamID
}

// IsAlive reports whether id is a player that has not been defeated.
func (gs *GameState) IsAlive(id PlayerID) bool {
	p, ok := gs.Players[id]
	return ok && p.Status == Alive
}

// OwnedBy returns the territories owned by a player, sorted by ID.
func (gs *GameState) OwnedBy(id PlayerID) []TerritoryID {
	var owned []TerritoryID
	for tid, t := range gs.Territories {
		if t.OwnerID == id {
			owned = append(owned, tid)
		}
	}
	slices.Sort(owned)
	return owned
}

// Remaining returns the reinforcements left to place; a missing
// Reinforcements value counts as zero.
func (gs *GameState) Remaining() int {
	if gs.Reinforcements == nil {
		return 0
	}
	return gs.Reinforcements.Remaining
}

// TotalArmies sums armies over all territories.
func (gs *GameState) TotalArmies() int {
	total := 0
	for _, t := range gs.Territories {
		total += t.Armies
	}
	return total
}

// territoryOrder lists territory IDs in map order when a map is known,
// otherwise sorted, so enumeration is deterministic.
func (gs *GameState) territoryOrder(m *GraphMap) []TerritoryID {
	if m != nil {
		return m.TerritoryIDs()
	}
	ids := slices.Collect(maps.Keys(gs.Territories))
	slices.Sort(ids)
	return ids
}

type StateHash uint64

// Hash digests the canonical form of the state.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	writeString := func(s string) {
		hasher.Write([]byte(s))
		hasher.Write([]byte{0})
	}
	writeInt := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	for _, id := range gs.TurnOrder {
		writeString(string(id))
		writeString(string(gs.Players[id].Status))
		writeString(gs.Players[id].TeamID)
		for _, card := range gs.Hands[id] {
			writeString(string(card))
		}
		writeString("|")
	}

	for _, id := range gs.territoryOrder(nil) {
		t := gs.Territories[id]
		writeString(string(id))
		writeString(string(t.OwnerID))
		writeInt(t.Armies)
	}

	writeString(string(gs.Turn.CurrentPlayerID))
	writeString(string(gs.Turn.Phase))
	writeInt(gs.Turn.Round)
	writeInt(gs.Remaining())
	if gs.Pending != nil {
		writeString(string(gs.Pending.From))
		writeString(string(gs.Pending.To))
		writeInt(gs.Pending.MinMove)
		writeInt(gs.Pending.MaxMove)
	}
	for _, card := range gs.Deck.Draw {
		writeString(string(card))
	}
	writeString("|")
	for _, card := range gs.Deck.Discard {
		writeString(string(card))
	}
	writeInt(gs.TradesCompleted)
	writeInt(gs.FortifiesUsedThisTurn)
	if gs.CapturedThisTurn {
		writeInt(1)
	}
	writeString(gs.RNG.Seed)
	writeInt(gs.RNG.Index)
	writeInt(gs.StateVersion)

	return StateHash(hasher.Sum64())
}
