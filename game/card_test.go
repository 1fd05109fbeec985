package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidSet(t *testing.T) {
	all := TradeSets{ThreeOfAKind: true, OneOfEach: true, AllowWild: true}
	cards := func(kinds ...CardKind) []Card {
		out := make([]Card, 0, len(kinds))
		for _, k := range kinds {
			out = append(out, Card{Kind: k})
		}
		return out
	}

	tests := []struct {
		name  string
		cards []Card
		sets  TradeSets
		valid bool
	}{
		{"three of a kind", cards(CardA, CardA, CardA), all, true},
		{"one of each", cards(CardA, CardB, CardC), all, true},
		{"wild completes three of a kind", cards(CardB, CardB, CardWild), all, true},
		{"wild completes one of each", cards(CardA, CardC, CardWild), all, true},
		{"two wilds", cards(CardWild, CardWild, CardC), all, true},
		{"pair and a stray", cards(CardA, CardA, CardB), all, false},
		{"wilds disabled", cards(CardA, CardA, CardWild), TradeSets{ThreeOfAKind: true, OneOfEach: true}, false},
		{"three of a kind disabled", cards(CardA, CardA, CardA), TradeSets{OneOfEach: true}, false},
		{"one of each disabled", cards(CardA, CardB, CardC), TradeSets{ThreeOfAKind: true}, false},
		{"too few cards", cards(CardA, CardA), all, false},
		{"unknown kind in one of each", cards(CardA, CardB, "X"), all, false},
		{"unknown kind with a wild", cards(CardA, "X", CardWild), all, false},
		{"empty kinds", cards("", "", ""), all, false},
		{"three wilds", cards(CardWild, CardWild, CardWild), all, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, IsValidSet(tt.cards, tt.sets))
		})
	}
}

func TestTradeValue(t *testing.T) {
	cfg := DefaultCardsConfig()

	t.Run("following the schedule", func(t *testing.T) {
		require.Equal(t, 4, TradeValue(0, cfg))
		require.Equal(t, 15, TradeValue(5, cfg))
	})

	t.Run("continuing by five", func(t *testing.T) {
		require.Equal(t, 20, TradeValue(6, cfg))
		require.Equal(t, 15+5*5, TradeValue(10, cfg))
	})

	t.Run("repeating the last value", func(t *testing.T) {
		cfg.TradeValueOverflow = OverflowRepeatLast

		require.Equal(t, 15, TradeValue(10, cfg))
	})

	t.Run("an empty schedule is worth nothing", func(t *testing.T) {
		require.Zero(t, TradeValue(3, CardsConfig{}))
	})
}
