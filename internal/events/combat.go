package events

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// AttackEvent is emitted when a character swings or shoots
type AttackEvent struct {
	BaseEvent
	AttackType int
	Ranged     bool
}

// HitEvent is emitted when an attack connects
type HitEvent struct {
	BaseEvent
	AttackType int
	Ranged     bool
	Amount     int
}

// DamageEvent is emitted after damage is applied
type DamageEvent struct {
	BaseEvent
	DamageType ability.DamageType
	Amount     int
}

// KillEvent is emitted with the killer as actor
type KillEvent struct {
	BaseEvent
}

// DyingEvent is emitted with the dying character as actor and the killer
// as target
type DyingEvent struct {
	BaseEvent
}

// RespawnEvent is emitted when a character returns to life
type RespawnEvent struct {
	BaseEvent
}
