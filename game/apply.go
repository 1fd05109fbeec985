package game

import "slices"

// ApplyAction validates an action by actor against state and returns the
// next state with the events it produced. state is never modified. A
// rejected action returns an *ActionError; an action whose dependencies were
// not supplied returns a *ConfigError. Either way no state is produced.
func ApplyAction(state *GameState, actor PlayerID, action Action, opts ...Option) (*GameState, []Event, error) {
	rules := NewRules(opts...).resolve()
	if action == nil {
		return nil, nil, rejectf("Unknown action")
	}
	action = deref(action)
	if state == nil {
		return nil, nil, &ConfigError{Action: action.Type(), Missing: "a game state"}
	}
	if err := requireDependencies(action, rules); err != nil {
		return nil, nil, err
	}
	if err := checkPreconditions(state, actor, action, rules); err != nil {
		return nil, nil, err
	}

	d := newDraft(state)
	var err error
	switch a := action.(type) {
	case PlaceReinforcements:
		err = d.placeReinforcements(actor, a, rules)
	case Attack:
		err = d.attack(actor, a, rules)
	case Occupy:
		err = d.occupy(actor, a, rules)
	case EndAttackPhase:
		err = d.endAttackPhase(actor)
	case Fortify:
		err = d.fortify(actor, a, rules)
	case EndTurn:
		err = d.endTurnAction(actor, rules)
	case TradeCards:
		err = d.tradeCards(actor, a, rules)
	default:
		err = rejectf("Unknown action %q", action.Type())
	}
	if err != nil {
		return nil, nil, err
	}

	d.gs.StateVersion = state.StateVersion + 1
	return d.gs, d.events, nil
}

// requireDependencies reports structural dependencies missing for an action.
func requireDependencies(action Action, rules resolved) error {
	switch action.(type) {
	case Attack:
		if rules.m == nil {
			return &ConfigError{Action: AttackAction, Missing: "a map"}
		}
		if rules.combat == nil {
			return &ConfigError{Action: AttackAction, Missing: "a combat config"}
		}
	case Fortify:
		if rules.m == nil {
			return &ConfigError{Action: FortifyAction, Missing: "a map"}
		}
	case TradeCards:
		if rules.cards == nil {
			return &ConfigError{Action: TradeCardsAction, Missing: "a cards config"}
		}
	}
	return nil
}

func checkPreconditions(gs *GameState, actor PlayerID, action Action, rules resolved) error {
	if actor != gs.Turn.CurrentPlayerID {
		return rejectf("Not your turn")
	}
	switch gs.Turn.Phase {
	case GameOverPhase:
		return rejectf("Game is over")
	case SetupPhase:
		return rejectf("Game has not started")
	}
	if gs.Pending != nil && action.Type() != OccupyAction {
		return rejectf("Occupy is pending")
	}
	if action.Type() != TradeCardsAction && mustTrade(gs, actor, rules.cards) {
		return rejectf("Must trade cards before placing reinforcements")
	}
	return nil
}

func (d *draft) territory(id TerritoryID) (TerritoryState, error) {
	t, ok := d.gs.Territories[id]
	if !ok {
		return TerritoryState{}, rejectf("Territory %s does not exist", id)
	}
	return t, nil
}

func (d *draft) placeReinforcements(actor PlayerID, a PlaceReinforcements, rules resolved) error {
	if d.gs.Turn.Phase != ReinforcementPhase {
		return rejectf("Reinforcements can only be placed in the Reinforcement phase")
	}
	if a.Count <= 0 {
		return rejectf("Count must be a positive integer")
	}
	t, err := d.territory(a.TerritoryID)
	if err != nil {
		return err
	}
	if !canPlace(d.gs, actor, a.TerritoryID, rules.teams) {
		return rejectf("Cannot place reinforcements on %s", a.TerritoryID)
	}
	remaining := d.gs.Remaining()
	if a.Count > remaining {
		return rejectf("Not enough reinforcements: %d remaining", remaining)
	}

	t.Armies += a.Count
	d.setTerritory(a.TerritoryID, t)
	remaining -= a.Count
	d.emit(ReinforcementsPlaced{
		PlayerID:    actor,
		TerritoryID: a.TerritoryID,
		Count:       a.Count,
		Remaining:   remaining,
	})

	if remaining == 0 {
		d.gs.Reinforcements = nil
		d.gs.Turn.Phase = AttackPhase
	} else {
		d.gs.Reinforcements = &Reinforcements{Remaining: remaining}
	}
	return nil
}

func (d *draft) attack(actor PlayerID, a Attack, rules resolved) error {
	if d.gs.Turn.Phase != AttackPhase {
		return rejectf("Attacks are only allowed in the Attack phase")
	}
	if !rules.m.Has(a.From) {
		return rejectf("Territory %s does not exist", a.From)
	}
	if !rules.m.Has(a.To) {
		return rejectf("Territory %s does not exist", a.To)
	}
	from, err := d.territory(a.From)
	if err != nil {
		return err
	}
	to, err := d.territory(a.To)
	if err != nil {
		return err
	}
	if from.OwnerID != actor {
		return rejectf("You do not own %s", a.From)
	}
	if to.OwnerID == actor {
		return rejectf("Cannot attack your own territory")
	}
	if !canAttack(d.gs, actor, a.From, a.To, rules.teams) {
		return rejectf("Cannot attack a teammate's territory")
	}
	if !rules.m.AreAdjacent(a.From, a.To) {
		return rejectf("Territories %s and %s are not adjacent", a.From, a.To)
	}
	if from.Armies < 2 {
		return rejectf("Need at least 2 armies in %s to attack", a.From)
	}

	combat := *rules.combat
	limit := AttackDiceLimit(from.Armies, combat)
	dice := limit
	if a.AttackerDice != nil {
		if !combat.AllowAttackerDiceChoice {
			return rejectf("Choosing the number of attack dice is not allowed")
		}
		if *a.AttackerDice < 1 || *a.AttackerDice > limit {
			return rejectf("Attacker dice must be between 1 and %d", limit)
		}
		dice = *a.AttackerDice
	}

	result := ResolveCombat(from.Armies, to.Armies, dice, combat, d.gs.RNG)
	d.gs.RNG = result.RNG

	from.Armies -= result.AttackerLosses
	to.Armies -= result.DefenderLosses
	d.setTerritory(a.From, from)
	d.emit(AttackResolved{
		AttackerID:     actor,
		DefenderID:     to.OwnerID,
		From:           a.From,
		To:             a.To,
		AttackDice:     result.AttackDice,
		DefendDice:     result.DefendDice,
		AttackRolls:    result.AttackRolls,
		DefendRolls:    result.DefendRolls,
		AttackerLosses: result.AttackerLosses,
		DefenderLosses: result.DefenderLosses,
	})

	if to.Armies > 0 {
		d.setTerritory(a.To, to)
		return nil
	}

	defender := to.OwnerID
	d.setTerritory(a.To, TerritoryState{OwnerID: actor, Armies: 0})
	d.gs.CapturedThisTurn = true
	maxMove := from.Armies - 1
	d.gs.Pending = &Pending{
		Type:    PendingOccupy,
		From:    a.From,
		To:      a.To,
		MinMove: min(result.AttackDice, maxMove),
		MaxMove: maxMove,
	}
	d.gs.Turn.Phase = OccupyPhase
	d.emit(TerritoryCaptured{
		From:            a.From,
		To:              a.To,
		NewOwnerID:      actor,
		PreviousOwnerID: defender,
	})
	d.eliminateIfBeaten(defender, actor)
	return nil
}

// eliminateIfBeaten defeats a player left without territories and hands
// their cards to the player who beat them.
func (d *draft) eliminateIfBeaten(loser, by PlayerID) {
	if loser == Neutral || !d.gs.IsAlive(loser) {
		return
	}
	for _, t := range d.gs.Territories {
		if t.OwnerID == loser {
			return
		}
	}

	p := d.gs.Players[loser]
	p.Status = Defeated
	d.setPlayer(loser, p)

	cards := slices.Clone(d.gs.Hands[loser])
	if len(cards) > 0 {
		d.setHand(by, slices.Concat(d.gs.Hands[by], cards))
		d.setHand(loser, []CardID{})
	}
	d.emit(PlayerEliminated{PlayerID: loser, ByPlayerID: by, CardsTransferred: cards})
}

func (d *draft) occupy(actor PlayerID, a Occupy, rules resolved) error {
	p := d.gs.Pending
	if p == nil {
		return rejectf("No occupation is pending")
	}
	if a.MoveArmies < p.MinMove || a.MoveArmies > p.MaxMove {
		return rejectf("Must move between %d and %d armies", p.MinMove, p.MaxMove)
	}
	from, err := d.territory(p.From)
	if err != nil {
		return err
	}
	to, err := d.territory(p.To)
	if err != nil {
		return err
	}

	from.Armies -= a.MoveArmies
	to.Armies += a.MoveArmies
	d.setTerritory(p.From, from)
	d.setTerritory(p.To, to)
	d.gs.Pending = nil
	d.gs.Turn.Phase = AttackPhase
	d.emit(Occupied{PlayerID: actor, From: p.From, To: p.To, Armies: a.MoveArmies})

	if winners := Winners(d.gs, rules.teams); winners != nil {
		d.endGame(winners)
	}
	return nil
}

func (d *draft) endAttackPhase(actor PlayerID) error {
	if d.gs.Turn.Phase != AttackPhase {
		return rejectf("The attack phase can only be ended during the Attack phase")
	}
	d.gs.Turn.Phase = FortifyPhase
	d.emit(AttackPhaseEnded{PlayerID: actor})
	return nil
}

func (d *draft) fortify(actor PlayerID, a Fortify, rules resolved) error {
	if d.gs.Turn.Phase != FortifyPhase {
		return rejectf("Fortify is only allowed in the Fortify phase")
	}
	if !fortifiesLeft(d.gs, rules.fortify) {
		return rejectf("No fortifies remaining this turn")
	}
	if a.Count <= 0 {
		return rejectf("Count must be a positive integer")
	}
	if a.From == a.To {
		return rejectf("Cannot fortify a territory into itself")
	}
	if !rules.m.Has(a.From) {
		return rejectf("Territory %s does not exist", a.From)
	}
	if !rules.m.Has(a.To) {
		return rejectf("Territory %s does not exist", a.To)
	}
	from, err := d.territory(a.From)
	if err != nil {
		return err
	}
	to, err := d.territory(a.To)
	if err != nil {
		return err
	}
	if !canFortifyFrom(d.gs, actor, a.From) {
		return rejectf("You do not own %s", a.From)
	}
	if !canFortifyTo(d.gs, actor, a.To, rules.teams) {
		return rejectf("Cannot fortify into %s", a.To)
	}
	if !fortifyReachable(d.gs, actor, a.From, a.To, rules.m, rules) {
		if rules.fortify.FortifyMode == FortifyAdjacent {
			return rejectf("Territories %s and %s are not adjacent", a.From, a.To)
		}
		return rejectf("Territories %s and %s are not connected", a.From, a.To)
	}
	if a.Count > from.Armies-1 {
		return rejectf("Must leave at least one army in %s", a.From)
	}

	from.Armies -= a.Count
	to.Armies += a.Count
	d.setTerritory(a.From, from)
	d.setTerritory(a.To, to)
	d.gs.FortifiesUsedThisTurn++
	d.emit(Fortified{PlayerID: actor, From: a.From, To: a.To, Count: a.Count})

	if !fortifiesLeft(d.gs, rules.fortify) {
		d.endTurn(actor, rules)
	}
	return nil
}

func (d *draft) endTurnAction(actor PlayerID, rules resolved) error {
	if d.gs.Turn.Phase != FortifyPhase {
		return rejectf("A turn can only be ended during the Fortify phase")
	}
	d.endTurn(actor, rules)
	return nil
}

// endTurn awards the capture card, clears per-turn counters and starts the
// next alive player's Reinforcement phase.
func (d *draft) endTurn(actor PlayerID, rules resolved) {
	if d.gs.CapturedThisTurn && rules.cards != nil && rules.cards.AwardCardOnCapture {
		d.drawCard(actor)
	}
	d.emit(TurnEnded{PlayerID: actor, Round: d.gs.Turn.Round})

	d.gs.FortifiesUsedThisTurn = 0
	d.gs.CapturedThisTurn = false

	next, wrapped := nextAlivePlayer(d.gs, actor)
	round := d.gs.Turn.Round
	if wrapped {
		round++
	}
	grant := max(rules.reinforcements(d.gs, next, rules.m), 1)

	d.gs.Turn = Turn{CurrentPlayerID: next, Phase: ReinforcementPhase, Round: round}
	d.gs.Reinforcements = &Reinforcements{Remaining: grant}
	d.emit(TurnStarted{PlayerID: next, Round: round, Reinforcements: grant})
}

// nextAlivePlayer walks the turn order after current and reports whether
// it wrapped past the end.
func nextAlivePlayer(gs *GameState, current PlayerID) (PlayerID, bool) {
	n := len(gs.TurnOrder)
	idx := slices.Index(gs.TurnOrder, current)
	for i := 1; i <= n; i++ {
		candidate := gs.TurnOrder[(idx+i+n)%n]
		if gs.IsAlive(candidate) {
			return candidate, idx+i >= n
		}
	}
	return current, true
}

// drawCard moves the top card of the draw pile into the player's hand,
// refilling the pile from a shuffled discard pile when it is empty.
func (d *draft) drawCard(player PlayerID) {
	draw := d.gs.Deck.Draw
	discard := d.gs.Deck.Discard
	reshuffled := false
	if len(draw) == 0 {
		if len(discard) == 0 {
			return
		}
		draw, d.gs.RNG = Shuffle(d.gs.RNG, discard)
		discard = []CardID{}
		reshuffled = true
	}

	card := draw[0]
	d.gs.Deck = Deck{Draw: slices.Clone(draw[1:]), Discard: slices.Clone(discard)}
	d.setHand(player, slices.Concat(d.gs.Hands[player], []CardID{card}))
	d.emit(CardDrawn{PlayerID: player, CardID: card, Reshuffled: reshuffled})
}

func (d *draft) tradeCards(actor PlayerID, a TradeCards, rules resolved) error {
	if d.gs.Turn.Phase != ReinforcementPhase {
		return rejectf("Cards can only be traded in the Reinforcement phase")
	}
	if len(a.CardIDs) != 3 {
		return rejectf("Must trade exactly 3 cards")
	}
	hand := d.gs.Hands[actor]
	seen := map[CardID]bool{}
	for _, id := range a.CardIDs {
		if seen[id] {
			return rejectf("Cards must be distinct")
		}
		seen[id] = true
		if _, ok := d.gs.CardsByID[id]; !ok {
			return rejectf("Unknown card %s", id)
		}
		if !slices.Contains(hand, id) {
			return rejectf("Card %s is not in your hand", id)
		}
	}

	result, err := ResolveTrade(d.gs, actor, a.CardIDs, *rules.cards)
	if err != nil {
		return err
	}

	kept := make([]CardID, 0, len(hand))
	for _, id := range hand {
		if !seen[id] {
			kept = append(kept, id)
		}
	}
	traded := slices.Clone(a.CardIDs)
	d.setHand(actor, kept)
	d.gs.Deck = Deck{Draw: d.gs.Deck.Draw, Discard: slices.Concat(d.gs.Deck.Discard, traded)}
	d.gs.TradesCompleted++
	d.gs.Reinforcements = &Reinforcements{Remaining: d.gs.Remaining() + result.Value}
	d.emit(CardsTraded{
		PlayerID:       actor,
		CardIDs:        traded,
		Value:          result.Value,
		TerritoryBonus: result.TerritoryBonus,
		TradeNumber:    d.gs.TradesCompleted,
	})
	return nil
}

// endGame closes the game for the given winners.
func (d *draft) endGame(winners []PlayerID) {
	d.gs.Turn.Phase = GameOverPhase
	d.gs.Pending = nil
	d.gs.Reinforcements = nil
	d.gs.Winners = winners
	d.emit(GameEnded{Winners: slices.Clone(winners)})
}

// Winners returns the players who have won under the win condition, or nil
// while the game goes on.
func Winners(gs *GameState, teams TeamsConfig) []PlayerID {
	var alive []PlayerID
	for _, id := range gs.TurnOrder {
		if gs.IsAlive(id) {
			alive = append(alive, id)
		}
	}
	switch {
	case len(alive) == 0:
		return nil
	case len(alive) == 1:
		return alive
	}
	if !teams.Enabled || teams.WinCondition != WinLastTeamStanding {
		return nil
	}
	team := gs.TeamOf(alive[0])
	if team == "" {
		return nil
	}
	for _, id := range alive[1:] {
		if gs.TeamOf(id) != team {
			return nil
		}
	}
	return alive
}
