package game

type CardID string

type CardKind string

const (
	CardA    CardKind = "A"
	CardB    CardKind = "B"
	CardC    CardKind = "C"
	CardWild CardKind = "Wild"
)

// Card is a deck card, optionally linked to a territory.
type Card struct {
	Kind        CardKind    `json:"kind"`
	TerritoryID TerritoryID `json:"territoryId,omitempty"`
}

// TradeResult is the value of one accepted trade.
type TradeResult struct {
	BaseValue      int
	TerritoryBonus int
	Value          int
}

// IsValidSet reports whether three cards form a tradeable set. Kinds other
// than A, B, C and Wild never form a set.
func IsValidSet(cards []Card, sets TradeSets) bool {
	if len(cards) != 3 {
		return false
	}
	kinds := map[CardKind]int{}
	wilds := 0
	for _, c := range cards {
		switch c.Kind {
		case CardWild:
			wilds++
		case CardA, CardB, CardC:
			kinds[c.Kind]++
		default:
			return false
		}
	}
	if wilds > 0 && !sets.AllowWild {
		return false
	}

	// Wilds fill whatever is missing, so only the non-wild cards constrain the shape.
	if sets.ThreeOfAKind && len(kinds) <= 1 {
		return true
	}
	if sets.OneOfEach && len(kinds) == 3-wilds {
		return true
	}
	return false
}

// TradeValue returns the armies granted for a trade given the number of
// trades completed before it.
func TradeValue(tradesCompleted int, cfg CardsConfig) int {
	values := cfg.TradeValues
	if len(values) == 0 {
		return 0
	}
	last := len(values) - 1
	if tradesCompleted <= last {
		return values[tradesCompleted]
	}
	if cfg.TradeValueOverflow == OverflowContinueByFive {
		return values[last] + 5*(tradesCompleted-len(values)+1)
	}
	return values[last]
}

// ResolveTrade validates a set and prices it for player. The territory bonus
// applies once per trade, however many cards match.
func ResolveTrade(gs *GameState, player PlayerID, ids []CardID, cfg CardsConfig) (TradeResult, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, gs.CardsByID[id])
	}
	if !IsValidSet(cards, cfg.TradeSets) {
		return TradeResult{}, rejectf("Invalid trade set")
	}

	result := TradeResult{BaseValue: TradeValue(gs.TradesCompleted, cfg)}
	if cfg.TerritoryBonus.Enabled {
		for _, c := range cards {
			if c.TerritoryID == "" {
				continue
			}
			if t, ok := gs.Territories[c.TerritoryID]; ok && t.OwnerID == player {
				result.TerritoryBonus = cfg.TerritoryBonus.BonusArmies
				break
			}
		}
	}
	result.Value = result.BaseValue + result.TerritoryBonus
	return result, nil
}

// tradeCombinations lists every valid 3-card set of a hand, in hand order.
func tradeCombinations(gs *GameState, full []CardID, sets TradeSets) [][]CardID {
	var hand []CardID
	for _, id := range full {
		if _, ok := gs.CardsByID[id]; ok {
			hand = append(hand, id)
		}
	}
	var combos [][]CardID
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				if hand[i] == hand[j] || hand[j] == hand[k] || hand[i] == hand[k] {
					continue
				}
				cards := []Card{gs.CardsByID[hand[i]], gs.CardsByID[hand[j]], gs.CardsByID[hand[k]]}
				if IsValidSet(cards, sets) {
					combos = append(combos, []CardID{hand[i], hand[j], hand[k]})
				}
			}
		}
	}
	return combos
}

// hasTradeableSet reports whether any valid set exists in the hand.
func hasTradeableSet(gs *GameState, hand []CardID, sets TradeSets) bool {
	return len(tradeCombinations(gs, hand, sets)) > 0
}
