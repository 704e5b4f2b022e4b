package testutils

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/domain/overtime"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
)

// CreateTestContinuation creates a running continuation that paid mana and
// consumed one kind of resource
func CreateTestContinuation(actorID string) *overtime.Continuation {
	return &overtime.Continuation{
		ID:       "cont-" + actorID,
		ActorID:  actorID,
		Ability:  42,
		Level:    50,
		Target:   overtime.Target{CharacterID: "victim", TempID: 7},
		PaidCost: 30,
		CostPool: ability.PoolMana,
		Resources: []ability.ResourceCost{
			{Vnum: 100, Amount: 2, TurnsInto: 101},
		},
		State: overtime.StateRunning,
	}
}

// CreateTestCharacter creates a standing character with full pools
func CreateTestCharacter(id, name string, level int) *world.Character {
	ch := world.NewCharacter(id, name, level)
	ch.SetPool(ability.PoolHealth, 500)
	ch.SetPool(ability.PoolMove, 500)
	ch.SetPool(ability.PoolMana, 500)
	return ch
}
