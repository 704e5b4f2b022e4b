package dice

import (
	"errors"
	"math/rand"
)

type randomRoller struct{}

// NewRandomRoller creates a roller backed by math/rand
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	rolls := make([]int, count)
	raw := 0
	for i := range rolls {
		rolls[i] = rand.Intn(sides) + 1
		raw += rolls[i]
	}

	return &RollResult{
		Total:    raw + bonus,
		Rolls:    rolls,
		Bonus:    bonus,
		Count:    count,
		Sides:    sides,
		RawTotal: raw,
	}, nil
}

// Percent implements Roller.Percent
func (r *randomRoller) Percent() (int, error) {
	return rand.Intn(100) + 1, nil
}

// Pick implements Roller.Pick
func (r *randomRoller) Pick(n int) (int, error) {
	if n < 1 {
		return 0, errors.New("nothing to pick from")
	}
	return rand.Intn(n), nil
}
