package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller rolls dice for skill checks, hook chances and random picks.
// Tests inject a ManualMockRoller to make outcomes deterministic.
type Roller interface {
	// Roll rolls count dice with the given sides and adds bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Percent rolls 1d100
	Percent() (int, error)

	// Pick returns a uniformly chosen index in [0, n)
	Pick(n int) (int, error)
}

// RollResult is the outcome of a Roll
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

// PercentChance reports whether a 1d100 roll lands at or under chance.
// A chance of 100 or more always succeeds and 0 or less never does.
func PercentChance(r Roller, chance int) bool {
	if chance >= 100 {
		return true
	}
	if chance <= 0 {
		return false
	}
	roll, err := r.Percent()
	if err != nil {
		return false
	}
	return roll <= chance
}
