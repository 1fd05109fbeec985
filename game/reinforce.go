package game

// MinReinforcements is the floor of the standard reinforcement grant.
const MinReinforcements = 3

// StandardReinforcements grants max(3, owned/3) armies plus the bonus of
// every continent the player owns entirely.
func StandardReinforcements(gs *GameState, player PlayerID, m *GraphMap) int {
	owned := 0
	for _, t := range gs.Territories {
		if t.OwnerID == player {
			owned++
		}
	}
	troops := max(MinReinforcements, owned/3)

	if m == nil {
		return troops
	}
	for _, c := range m.Continents() {
		if owner, ok := ContinentOwner(gs, c); ok && owner == player {
			troops += c.Bonus
		}
	}
	return troops
}

// ContinentOwner returns the player owning every territory of a continent.
func ContinentOwner(gs *GameState, c Continent) (PlayerID, bool) {
	if len(c.Territories) == 0 {
		return "", false
	}
	owner := gs.Territories[c.Territories[0]].OwnerID
	if owner == "" || owner == Neutral {
		return "", false
	}
	for _, id := range c.Territories[1:] {
		if gs.Territories[id].OwnerID != owner {
			return "", false
		}
	}
	return owner, true
}
