package game

// EventType tags an Event variant. Names and field tags are a stable
// contract: hosts store and replay them.
type EventType string

const (
	ReinforcementsPlacedEvent EventType = "ReinforcementsPlaced"
	AttackResolvedEvent       EventType = "AttackResolved"
	TerritoryCapturedEvent    EventType = "TerritoryCaptured"
	OccupiedEvent             EventType = "Occupied"
	AttackPhaseEndedEvent     EventType = "AttackPhaseEnded"
	FortifiedEvent            EventType = "Fortified"
	CardsTradedEvent          EventType = "CardsTraded"
	CardDrawnEvent            EventType = "CardDrawn"
	PlayerEliminatedEvent     EventType = "PlayerEliminated"
	TurnEndedEvent            EventType = "TurnEnded"
	TurnStartedEvent          EventType = "TurnStarted"
	GameEndedEvent            EventType = "GameEnded"
)

type Event interface {
	Type() EventType
}

type ReinforcementsPlaced struct {
	PlayerID    PlayerID    `json:"playerId"`
	TerritoryID TerritoryID `json:"territoryId"`
	Count       int         `json:"count"`
	Remaining   int         `json:"remaining"`
}

type AttackResolved struct {
	AttackerID     PlayerID    `json:"attackerId"`
	DefenderID     PlayerID    `json:"defenderId"`
	From           TerritoryID `json:"from"`
	To             TerritoryID `json:"to"`
	AttackDice     int         `json:"attackDice"`
	DefendDice     int         `json:"defendDice"`
	AttackRolls    []int       `json:"attackRolls"`
	DefendRolls    []int       `json:"defendRolls"`
	AttackerLosses int         `json:"attackerLosses"`
	DefenderLosses int         `json:"defenderLosses"`
}

type TerritoryCaptured struct {
	From            TerritoryID `json:"from"`
	To              TerritoryID `json:"to"`
	NewOwnerID      PlayerID    `json:"newOwnerId"`
	PreviousOwnerID PlayerID    `json:"previousOwnerId"`
}

type Occupied struct {
	PlayerID PlayerID    `json:"playerId"`
	From     TerritoryID `json:"from"`
	To       TerritoryID `json:"to"`
	Armies   int         `json:"armies"`
}

type AttackPhaseEnded struct {
	PlayerID PlayerID `json:"playerId"`
}

type Fortified struct {
	PlayerID PlayerID    `json:"playerId"`
	From     TerritoryID `json:"from"`
	To       TerritoryID `json:"to"`
	Count    int         `json:"count"`
}

type CardsTraded struct {
	PlayerID       PlayerID `json:"playerId"`
	CardIDs        []CardID `json:"cardIds"`
	Value          int      `json:"value"`
	TerritoryBonus int      `json:"territoryBonus"`
	TradeNumber    int      `json:"tradeNumber"`
}

type CardDrawn struct {
	PlayerID   PlayerID `json:"playerId"`
	CardID     CardID   `json:"cardId"`
	Reshuffled bool     `json:"reshuffled,omitempty"`
}

type PlayerEliminated struct {
	PlayerID         PlayerID `json:"playerId"`
	ByPlayerID       PlayerID `json:"byPlayerId"`
	CardsTransferred []CardID `json:"cardsTransferred,omitempty"`
}

type TurnEnded struct {
	PlayerID PlayerID `json:"playerId"`
	Round    int      `json:"round"`
}

type TurnStarted struct {
	PlayerID       PlayerID `json:"playerId"`
	Round          int      `json:"round"`
	Reinforcements int      `json:"reinforcements"`
}

type GameEnded struct {
	Winners []PlayerID `json:"winners"`
}

func (ReinforcementsPlaced) Type() EventType { return ReinforcementsPlacedEvent }
func (AttackResolved) Type() EventType       { return AttackResolvedEvent }
func (TerritoryCaptured) Type() EventType    { return TerritoryCapturedEvent }
func (Occupied) Type() EventType             { return OccupiedEvent }
func (AttackPhaseEnded) Type() EventType     { return AttackPhaseEndedEvent }
func (Fortified) Type() EventType            { return FortifiedEvent }
func (CardsTraded) Type() EventType          { return CardsTradedEvent }
func (CardDrawn) Type() EventType            { return CardDrawnEvent }
func (PlayerEliminated) Type() EventType     { return PlayerEliminatedEvent }
func (TurnEnded) Type() EventType            { return TurnEndedEvent }
func (TurnStarted) Type() EventType          { return TurnStartedEvent }
func (GameEnded) Type() EventType            { return GameEndedEvent }
