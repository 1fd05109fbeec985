package game

// The predicates below are the only place that decides whose territory an
// actor may act on. ApplyAction and LegalActions both go through them.

func (gs *GameState) teammates(a, b PlayerID, teams TeamsConfig) bool {
	if !teams.Enabled || a == b || a == Neutral || b == Neutral {
		return false
	}
	team := gs.TeamOf(a)
	return team != "" && team == gs.TeamOf(b)
}

func (gs *GameState) ownerOf(id TerritoryID) (PlayerID, bool) {
	t, ok := gs.Territories[id]
	return t.OwnerID, ok
}

// canPlace reports whether actor may put reinforcements on a territory.
func canPlace(gs *GameState, actor PlayerID, id TerritoryID, teams TeamsConfig) bool {
	owner, ok := gs.ownerOf(id)
	if !ok {
		return false
	}
	return owner == actor || (teams.AllowPlaceOnTeammates && gs.teammates(actor, owner, teams))
}

// canAttack reports whether actor may attack `to` from `from`, ignoring
// adjacency and army counts.
func canAttack(gs *GameState, actor PlayerID, from, to TerritoryID, teams TeamsConfig) bool {
	if owner, ok := gs.ownerOf(from); !ok || owner != actor {
		return false
	}
	target, ok := gs.ownerOf(to)
	if !ok || target == actor {
		return false
	}
	return !(teams.PreventAttackingTeammates && gs.teammates(actor, target, teams))
}

func canFortifyFrom(gs *GameState, actor PlayerID, id TerritoryID) bool {
	owner, ok := gs.ownerOf(id)
	return ok && owner == actor
}

func canFortifyTo(gs *GameState, actor PlayerID, id TerritoryID, teams TeamsConfig) bool {
	owner, ok := gs.ownerOf(id)
	if !ok {
		return false
	}
	return owner == actor || (teams.AllowFortifyToTeammates && gs.teammates(actor, owner, teams))
}

// canTraverse reports whether a connected-mode fortify path may pass through id.
func canTraverse(gs *GameState, actor PlayerID, id TerritoryID, teams TeamsConfig) bool {
	owner, ok := gs.ownerOf(id)
	if !ok {
		return false
	}
	return owner == actor || (teams.AllowFortifyThroughTeams && gs.teammates(actor, owner, teams))
}

// fortifyReachable applies the topology rule of the fortify mode.
func fortifyReachable(gs *GameState, actor PlayerID, from, to TerritoryID, m *GraphMap, rules resolved) bool {
	if rules.fortify.FortifyMode == FortifyAdjacent {
		return m.AreAdjacent(from, to)
	}
	return m.Reachable(from, to, func(id TerritoryID) bool {
		return canTraverse(gs, actor, id, rules.teams)
	})
}

// fortifiesLeft reports whether the per-turn fortify cap still allows a move.
func fortifiesLeft(gs *GameState, fortify FortifyConfig) bool {
	return fortify.MaxFortifiesPerTurn <= 0 || gs.FortifiesUsedThisTurn < fortify.MaxFortifiesPerTurn
}

// mustTrade reports whether the forced-trade rule blocks everything but
// TradeCards. It only binds in the Reinforcement phase and only when a
// tradeable set exists, so a player is never left without a legal action.
func mustTrade(gs *GameState, actor PlayerID, cards *CardsConfig) bool {
	if cards == nil || cards.ForcedTradeHandSize <= 0 || gs.Turn.Phase != ReinforcementPhase {
		return false
	}
	hand := gs.Hands[actor]
	return len(hand) >= cards.ForcedTradeHandSize && hasTradeableSet(gs, hand, cards.TradeSets)
}
