package game

import "math"

// Evaluate scores a state between -1 and 1 from a player's perspective.
type Evaluate func(gs *GameState, player PlayerID, m *GraphMap) float64

// EvaluateResources tallies territories, armies and continent bonuses of the
// player against everyone else.
func EvaluateResources(gs *GameState, player PlayerID, m *GraphMap) float64 {
	territoryScore, troopScore := resourceScores(gs, player)
	bonusScore := bonusScore(gs, player, m)

	return (territoryScore + troopScore + bonusScore) / 3.0
}

// EvaluateBorderStrength adds border pressure to the resource tally.
func EvaluateBorderStrength(gs *GameState, player PlayerID, m *GraphMap) float64 {
	territoryScore, troopScore := resourceScores(gs, player)
	bonusScore := bonusScore(gs, player, m)
	borderScore := borderScore(gs, player, m)

	return (territoryScore + troopScore + bonusScore + borderScore) / 4
}

func resourceScores(gs *GameState, player PlayerID) (territoryScore, troopScore float64) {
	var territories, troops, otherTerritories, otherTroops float64

	for _, t := range gs.Territories {
		switch {
		case t.OwnerID == player:
			territories++
			troops += float64(t.Armies)
		case t.OwnerID != Neutral:
			otherTerritories++
			otherTroops += float64(t.Armies)
		}
	}
	return normalize(territories, otherTerritories), normalize(troops, otherTroops)
}

func bonusScore(gs *GameState, player PlayerID, m *GraphMap) float64 {
	if m == nil {
		return 0
	}
	var mine, others float64

	// Tally fully controlled continents weighted by bonus values
	for _, c := range m.Continents() {
		owner, ok := ContinentOwner(gs, c)
		if !ok {
			continue
		}
		if owner == player {
			mine += float64(c.Bonus)
		} else {
			others += float64(c.Bonus)
		}
	}
	return normalize(mine, others)
}

func borderScore(gs *GameState, player PlayerID, m *GraphMap) float64 {
	if m == nil {
		return 0
	}
	var mine, others float64

	for id, t := range gs.Territories {
		if t.OwnerID == Neutral {
			continue
		}
		enemyBorders := 0
		troopDiff := 0.0
		for _, n := range m.Neighbors(id) {
			if gs.Territories[n].OwnerID != t.OwnerID {
				enemyBorders++
				troopDiff += float64(t.Armies - gs.Territories[n].Armies)
			}
		}
		if enemyBorders == 0 {
			continue
		}
		// Scale by square root so several fronts count, but not linearly
		strength := troopDiff / math.Sqrt(float64(enemyBorders))
		if t.OwnerID == player {
			mine += strength
		} else {
			others += strength
		}
	}
	return normalize(mine, others)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
