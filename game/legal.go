package game

// LegalActions returns every action the current player may take that
// ApplyAction would accept with the same rules. It shares the permission
// predicates and the fortify topology rule with the reducer.
func LegalActions(state *GameState, rules Rules) []Action {
	if state == nil {
		return nil
	}
	r := rules.resolve()
	actor := state.Turn.CurrentPlayerID

	switch state.Turn.Phase {
	case SetupPhase, GameOverPhase:
		return nil
	}
	if state.Pending != nil {
		return occupyActions(state.Pending)
	}

	switch state.Turn.Phase {
	case ReinforcementPhase:
		return reinforcementActions(state, actor, r)
	case AttackPhase:
		return attackActions(state, actor, r)
	case FortifyPhase:
		return fortifyActions(state, actor, r)
	default:
		return nil
	}
}

func occupyActions(p *Pending) []Action {
	var actions []Action
	for n := p.MinMove; n <= p.MaxMove; n++ {
		actions = append(actions, Occupy{MoveArmies: n})
	}
	return actions
}

func reinforcementActions(gs *GameState, actor PlayerID, r resolved) []Action {
	var actions []Action
	if r.cards != nil {
		for _, combo := range tradeCombinations(gs, gs.Hands[actor], r.cards.TradeSets) {
			actions = append(actions, TradeCards{CardIDs: combo})
		}
		if mustTrade(gs, actor, r.cards) {
			return actions
		}
	}

	remaining := gs.Remaining()
	if remaining <= 0 {
		return actions
	}
	for _, id := range gs.territoryOrder(r.m) {
		if canPlace(gs, actor, id, r.teams) {
			actions = append(actions, PlaceReinforcements{TerritoryID: id, Count: remaining})
		}
	}
	return actions
}

func attackActions(gs *GameState, actor PlayerID, r resolved) []Action {
	var actions []Action
	if r.m != nil && r.combat != nil {
		for _, from := range r.m.TerritoryIDs() {
			source, ok := gs.Territories[from]
			if !ok || source.OwnerID != actor || source.Armies < 2 {
				continue
			}
			limit := AttackDiceLimit(source.Armies, *r.combat)
			for _, to := range r.m.Neighbors(from) {
				if !canAttack(gs, actor, from, to, r.teams) {
					continue
				}
				if !r.combat.AllowAttackerDiceChoice {
					actions = append(actions, Attack{From: from, To: to})
					continue
				}
				for n := 1; n <= limit; n++ {
					actions = append(actions, Attack{From: from, To: to, AttackerDice: Dice(n)})
				}
			}
		}
	}
	return append(actions, EndAttackPhase{})
}

func fortifyActions(gs *GameState, actor PlayerID, r resolved) []Action {
	var actions []Action
	if r.m != nil && fortifiesLeft(gs, r.fortify) {
		ids := r.m.TerritoryIDs()
		for _, from := range ids {
			source, ok := gs.Territories[from]
			if !ok || !canFortifyFrom(gs, actor, from) || source.Armies < 2 {
				continue
			}
			for _, to := range ids {
				if to == from || !canFortifyTo(gs, actor, to, r.teams) {
					continue
				}
				if !fortifyReachable(gs, actor, from, to, r.m, r) {
					continue
				}
				actions = append(actions, Fortify{From: from, To: to, Count: source.Armies - 1})
			}
		}
	}
	return append(actions, EndTurn{})
}
