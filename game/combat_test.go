package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNGState(t *testing.T) {
	t.Run("drawing is a pure function of seed and index", func(t *testing.T) {
		r := RNGState{Seed: "s", Index: 7}

		first, next := r.Intn(100)
		second, _ := r.Intn(100)

		require.Equal(t, first, second)
		require.Equal(t, 8, next.Index)
		require.Equal(t, 7, r.Index, "Receiver is a value and stays put")
	})

	t.Run("rolling dice advances once per die", func(t *testing.T) {
		rolls, next := RNGState{Seed: "dice"}.RollDice(5)

		require.Len(t, rolls, 5)
		for _, v := range rolls {
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, 6)
		}
		require.Equal(t, 5, next.Index)
	})

	t.Run("shuffling keeps every item", func(t *testing.T) {
		items := []string{"a", "b", "c", "d", "e"}

		shuffled, next := Shuffle(RNGState{Seed: "deck"}, items)

		require.ElementsMatch(t, items, shuffled)
		require.Equal(t, []string{"a", "b", "c", "d", "e"}, items, "Input is not modified")
		require.Equal(t, 4, next.Index)
	})

	t.Run("panics on an empty range", func(t *testing.T) {
		require.Panics(t, func() { RNGState{}.Intn(0) })
	})
}

func TestDetermineAttackOutcome(t *testing.T) {
	tests := []struct {
		name           string
		attack, defend []int
		attackerLosses int
		defenderLosses int
	}{
		{"attacker wins both", []int{6, 5, 1}, []int{4, 3}, 0, 2},
		{"ties go to the defender", []int{4, 4}, []int{4, 4}, 2, 0},
		{"split", []int{6, 2}, []int{5, 3}, 1, 1},
		{"single die", []int{3}, []int{6, 1}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attackerLosses, defenderLosses := DetermineAttackOutcome(tt.attack, tt.defend)

			require.Equal(t, tt.attackerLosses, attackerLosses)
			require.Equal(t, tt.defenderLosses, defenderLosses)
		})
	}
}

func TestResolveCombat(t *testing.T) {
	cfg := DefaultCombatConfig()

	t.Run("defaulting to the maximum dice", func(t *testing.T) {
		result := ResolveCombat(3, 4, 0, cfg, RNGState{Seed: "combat"})

		require.Equal(t, 2, result.AttackDice)
		require.Equal(t, 2, result.DefendDice)
		require.Equal(t, 2, result.AttackerLosses+result.DefenderLosses)
		require.Equal(t, 4, result.RNG.Index)
	})

	t.Run("limiting defenders to their armies", func(t *testing.T) {
		result := ResolveCombat(10, 1, 3, cfg, RNGState{Seed: "combat"})

		require.Equal(t, 3, result.AttackDice)
		require.Equal(t, 1, result.DefendDice)
		require.Equal(t, 1, result.AttackerLosses+result.DefenderLosses)
	})

	t.Run("sorting rolls in descending order", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			result := ResolveCombat(4, 2, 3, cfg, RNGState{Seed: "sorted", Index: i})

			require.IsNonIncreasing(t, result.AttackRolls)
			require.IsNonIncreasing(t, result.DefendRolls)
		}
	})

	t.Run("replaying the same position", func(t *testing.T) {
		rng := RNGState{Seed: "replay", Index: 12}

		require.Equal(t, ResolveCombat(6, 3, 0, cfg, rng), ResolveCombat(6, 3, 0, cfg, rng))
	})
}

func TestAttackDiceLimit(t *testing.T) {
	cfg := DefaultCombatConfig()

	require.Equal(t, 1, AttackDiceLimit(2, cfg))
	require.Equal(t, 2, AttackDiceLimit(3, cfg))
	require.Equal(t, 3, AttackDiceLimit(12, cfg))
	require.Equal(t, 2, DefendDice(9, cfg))
	require.Equal(t, 1, DefendDice(1, cfg))
}

func TestSortDescending(t *testing.T) {
	rolls := []int{2, 6, 1, 4}

	require.Equal(t, []int{6, 4, 2, 1}, sortDescending(rolls))
	require.Equal(t, []int{2, 6, 1, 4}, rolls)
}
