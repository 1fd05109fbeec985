package game

import (
	"fmt"
	"slices"
)

type PlayerSetup struct {
	ID     PlayerID
	TeamID string
}

// Setup describes a new game.
type Setup struct {
	Players []PlayerSetup
	Map     *GraphMap
	Ruleset Ruleset
	Seed    string
	// ArmiesPerTerritory is placed on every dealt territory (default 3).
	ArmiesPerTerritory int
	Reinforcements     ReinforcementFunc
}

// NewGame deals territories round-robin after a seeded shuffle, builds and
// shuffles the deck, and opens the first player's Reinforcement phase.
func NewGame(s Setup) (*GameState, error) {
	if s.Map == nil || s.Map.Len() == 0 {
		return nil, fmt.Errorf("new game: a non-empty map is required")
	}
	if len(s.Players) < 2 {
		return nil, fmt.Errorf("new game: need at least two players, got %d", len(s.Players))
	}
	armies := s.ArmiesPerTerritory
	if armies <= 0 {
		armies = 3
	}
	reinforcements := s.Reinforcements
	if reinforcements == nil {
		reinforcements = StandardReinforcements
	}

	gs := &GameState{
		Players:        make(map[PlayerID]Player, len(s.Players)),
		Territories:    make(map[TerritoryID]TerritoryState, s.Map.Len()),
		Hands:          make(map[PlayerID][]CardID, len(s.Players)),
		CardsByID:      map[CardID]Card{},
		RNG:            RNGState{Seed: s.Seed},
		RulesetVersion: rulesetVersion(s.Ruleset),
	}
	for _, p := range s.Players {
		if p.ID == "" || p.ID == Neutral {
			return nil, fmt.Errorf("new game: invalid player id %q", p.ID)
		}
		if _, ok := gs.Players[p.ID]; ok {
			return nil, fmt.Errorf("new game: duplicate player %q", p.ID)
		}
		gs.Players[p.ID] = Player{Status: Alive, TeamID: p.TeamID}
		gs.TurnOrder = append(gs.TurnOrder, p.ID)
		gs.Hands[p.ID] = []CardID{}
	}

	var dealt []TerritoryID
	dealt, gs.RNG = Shuffle(gs.RNG, s.Map.TerritoryIDs())
	for i, id := range dealt {
		gs.Territories[id] = TerritoryState{
			OwnerID: gs.TurnOrder[i%len(gs.TurnOrder)],
			Armies:  armies,
		}
	}

	deck := buildDeck(s.Map, s.Ruleset.Cards.WildCards, gs.CardsByID)
	gs.Deck.Draw, gs.RNG = Shuffle(gs.RNG, deck)
	gs.Deck.Discard = []CardID{}

	first := gs.TurnOrder[0]
	gs.Turn = Turn{CurrentPlayerID: first, Phase: ReinforcementPhase, Round: 1}
	gs.Reinforcements = &Reinforcements{Remaining: max(reinforcements(gs, first, s.Map), 1)}
	return gs, nil
}

// buildDeck creates one card per territory with kinds cycling A, B, C,
// followed by the wild cards.
func buildDeck(m *GraphMap, wilds int, byID map[CardID]Card) []CardID {
	kinds := []CardKind{CardA, CardB, CardC}
	var deck []CardID
	for i, id := range m.TerritoryIDs() {
		cid := CardID("card-" + string(id))
		byID[cid] = Card{Kind: kinds[i%len(kinds)], TerritoryID: id}
		deck = append(deck, cid)
	}
	for i := 1; i <= wilds; i++ {
		cid := CardID(fmt.Sprintf("wild-%d", i))
		byID[cid] = Card{Kind: CardWild}
		deck = append(deck, cid)
	}
	return slices.Clip(deck)
}

func rulesetVersion(rs Ruleset) string {
	if rs.Name == "" {
		return rs.Version
	}
	return rs.Name + "@" + rs.Version
}
