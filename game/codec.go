package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope prefixes a JSON object with its variant tag.
func envelope(tag string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(head)
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func readTag(data []byte) (string, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", err
	}
	if head.Type == "" {
		return "", fmt.Errorf("missing type tag")
	}
	return head.Type, nil
}

// MarshalAction encodes an action as {"type": ..., fields...}.
func MarshalAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("marshal action: nil action")
	}
	a = deref(a)
	return envelope(string(a.Type()), a)
}

// UnmarshalAction decodes an action produced by MarshalAction.
func UnmarshalAction(data []byte) (Action, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal action: %w", err)
	}

	var target Action
	switch ActionType(tag) {
	case PlaceReinforcementsAction:
		target = &PlaceReinforcements{}
	case AttackAction:
		target = &Attack{}
	case OccupyAction:
		target = &Occupy{}
	case EndAttackPhaseAction:
		target = &EndAttackPhase{}
	case FortifyAction:
		target = &Fortify{}
	case EndTurnAction:
		target = &EndTurn{}
	case TradeCardsAction:
		target = &TradeCards{}
	default:
		return nil, fmt.Errorf("unmarshal action: unknown type %q", tag)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, fmt.Errorf("unmarshal action %s: %w", tag, err)
	}
	return deref(target), nil
}

// MarshalEvent encodes an event as {"type": ..., fields...}.
func MarshalEvent(e Event) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("marshal event: nil event")
	}
	return envelope(string(e.Type()), e)
}

// UnmarshalEvent decodes an event produced by MarshalEvent.
func UnmarshalEvent(data []byte) (Event, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	switch EventType(tag) {
	case ReinforcementsPlacedEvent:
		return decodeEvent[ReinforcementsPlaced](data)
	case AttackResolvedEvent:
		return decodeEvent[AttackResolved](data)
	case TerritoryCapturedEvent:
		return decodeEvent[TerritoryCaptured](data)
	case OccupiedEvent:
		return decodeEvent[Occupied](data)
	case AttackPhaseEndedEvent:
		return decodeEvent[AttackPhaseEnded](data)
	case FortifiedEvent:
		return decodeEvent[Fortified](data)
	case CardsTradedEvent:
		return decodeEvent[CardsTraded](data)
	case CardDrawnEvent:
		return decodeEvent[CardDrawn](data)
	case PlayerEliminatedEvent:
		return decodeEvent[PlayerEliminated](data)
	case TurnEndedEvent:
		return decodeEvent[TurnEnded](data)
	case TurnStartedEvent:
		return decodeEvent[TurnStarted](data)
	case GameEndedEvent:
		return decodeEvent[GameEnded](data)
	default:
		return nil, fmt.Errorf("unmarshal event: unknown type %q", tag)
	}
}

func decodeEvent[T Event](data []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal event %s: %w", e.Type(), err)
	}
	return e, nil
}

// MarshalEvents encodes a list of events as a JSON array of envelopes.
func MarshalEvents(events []Event) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(events))
	for _, e := range events {
		b, err := MarshalEvent(e)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}
