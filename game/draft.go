package game

import "maps"

// draft is the copy-on-write view of the next state. It starts as a shallow
// copy of the base state and clones a map the first time it writes to it.
// Slices are never written in place; replacements are freshly allocated.
type draft struct {
	gs     *GameState
	events []Event

	territoriesCloned bool
	playersCloned     bool
	handsCloned       bool
}

func newDraft(base *GameState) *draft {
	next := *base
	return &draft{gs: &next}
}

func (d *draft) emit(e Event) {
	d.events = append(d.events, e)
}

func (d *draft) setTerritory(id TerritoryID, t TerritoryState) {
	if !d.territoriesCloned {
		d.gs.Territories = maps.Clone(d.gs.Territories)
		if d.gs.Territories == nil {
			d.gs.Territories = map[TerritoryID]TerritoryState{}
		}
		d.territoriesCloned = true
	}
	d.gs.Territories[id] = t
}

func (d *draft) setPlayer(id PlayerID, p Player) {
	if !d.playersCloned {
		d.gs.Players = maps.Clone(d.gs.Players)
		if d.gs.Players == nil {
			d.gs.Players = map[PlayerID]Player{}
		}
		d.playersCloned = true
	}
	d.gs.Players[id] = p
}

// setHand stores a hand. The slice must not alias any slice of the base state.
func (d *draft) setHand(id PlayerID, hand []CardID) {
	if !d.handsCloned {
		d.gs.Hands = maps.Clone(d.gs.Hands)
		if d.gs.Hands == nil {
			d.gs.Hands = map[PlayerID][]CardID{}
		}
		d.handsCloned = true
	}
	d.gs.Hands[id] = hand
}
