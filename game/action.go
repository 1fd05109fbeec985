package game

import "slices"

// ActionType tags an Action variant.
type ActionType string

const (
	PlaceReinforcementsAction ActionType = "PlaceReinforcements"
	AttackAction              ActionType = "Attack"
	OccupyAction              ActionType = "Occupy"
	EndAttackPhaseAction      ActionType = "EndAttackPhase"
	FortifyAction             ActionType = "Fortify"
	EndTurnAction             ActionType = "EndTurn"
	TradeCardsAction          ActionType = "TradeCards"
)

// Action is a player's request. The concrete types below are the only variants.
type Action interface {
	Type() ActionType
}

type PlaceReinforcements struct {
	TerritoryID TerritoryID `json:"territoryId"`
	Count       int         `json:"count"`
}

type Attack struct {
	From TerritoryID `json:"from"`
	To   TerritoryID `json:"to"`
	// AttackerDice is nil for the default (maximum) number of dice.
	AttackerDice *int `json:"attackerDice,omitempty"`
}

type Occupy struct {
	MoveArmies int `json:"moveArmies"`
}

type EndAttackPhase struct{}

type Fortify struct {
	From  TerritoryID `json:"from"`
	To    TerritoryID `json:"to"`
	Count int         `json:"count"`
}

type EndTurn struct{}

type TradeCards struct {
	CardIDs []CardID `json:"cardIds"`
}

func (PlaceReinforcements) Type() ActionType { return PlaceReinforcementsAction }
func (Attack) Type() ActionType              { return AttackAction }
func (Occupy) Type() ActionType              { return OccupyAction }
func (EndAttackPhase) Type() ActionType      { return EndAttackPhaseAction }
func (Fortify) Type() ActionType             { return FortifyAction }
func (EndTurn) Type() ActionType             { return EndTurnAction }
func (TradeCards) Type() ActionType          { return TradeCardsAction }

// IsStochastic reports whether applying the action consumes randomness.
func IsStochastic(a Action) bool {
	switch a.(type) {
	case Attack, *Attack, EndTurn, *EndTurn:
		// EndTurn may reshuffle the discard pile when awarding a card.
		return true
	default:
		return false
	}
}

// Dice returns a pointer to n, for building Attack actions.
func Dice(n int) *int {
	return &n
}

// ActionsEqual compares two actions by value.
func ActionsEqual(a, b Action) bool {
	switch x := deref(a).(type) {
	case Attack:
		y, ok := deref(b).(Attack)
		if !ok || x.From != y.From || x.To != y.To {
			return false
		}
		if x.AttackerDice == nil || y.AttackerDice == nil {
			return x.AttackerDice == nil && y.AttackerDice == nil
		}
		return *x.AttackerDice == *y.AttackerDice
	case TradeCards:
		y, ok := deref(b).(TradeCards)
		return ok && slices.Equal(x.CardIDs, y.CardIDs)
	default:
		return deref(a) == deref(b)
	}
}

// deref normalizes pointer variants to values.
func deref(a Action) Action {
	switch v := a.(type) {
	case *PlaceReinforcements:
		return *v
	case *Attack:
		return *v
	case *Occupy:
		return *v
	case *EndAttackPhase:
		return *v
	case *Fortify:
		return *v
	case *EndTurn:
		return *v
	case *TradeCards:
		return *v
	}
	return a
}
