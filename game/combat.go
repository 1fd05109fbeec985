package game

import "slices"

// CombatResult is the outcome of one dice exchange.
type CombatResult struct {
	AttackDice     int
	DefendDice     int
	AttackRolls    []int
	DefendRolls    []int
	AttackerLosses int
	DefenderLosses int
	RNG            RNGState
}

// AttackDiceLimit is the largest number of dice an attacker may roll from a
// territory holding attackerArmies.
func AttackDiceLimit(attackerArmies int, cfg CombatConfig) int {
	return min(cfg.MaxAttackDice, attackerArmies-1)
}

// DefendDice returns the number of dice the defender rolls. alwaysMax is the
// only strategy; any other value is treated the same way.
func DefendDice(defenderArmies int, cfg CombatConfig) int {
	return min(cfg.MaxDefendDice, defenderArmies)
}

// ResolveCombat rolls one exchange. attackDice <= 0 selects the maximum.
// Capture is left to the caller.
func ResolveCombat(attackerArmies, defenderArmies, attackDice int, cfg CombatConfig, rng RNGState) CombatResult {
	if attackDice <= 0 {
		attackDice = AttackDiceLimit(attackerArmies, cfg)
	}
	defendDice := DefendDice(defenderArmies, cfg)

	rolls, next := rng.RollDice(attackDice + defendDice)
	attackRolls := sortDescending(rolls[:attackDice])
	defendRolls := sortDescending(rolls[attackDice:])

	attackerLosses, defenderLosses := DetermineAttackOutcome(attackRolls, defendRolls)
	return CombatResult{
		AttackDice:     attackDice,
		DefendDice:     defendDice,
		AttackRolls:    attackRolls,
		DefendRolls:    defendRolls,
		AttackerLosses: attackerLosses,
		DefenderLosses: defenderLosses,
		RNG:            next,
	}
}

// DetermineAttackOutcome compares sorted rolls pairwise; ties go to the defender.
func DetermineAttackOutcome(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	battles := min(len(attackerRolls), len(defenderRolls))
	for i := 0; i < battles; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}

func sortDescending(rolls []int) []int {
	out := slices.Clone(rolls)
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}
