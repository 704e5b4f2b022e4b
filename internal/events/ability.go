package events

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// BeforeAbilityEvent is emitted after validation and before any type runs.
// Cancelling it stops the invocation without charging cost.
type BeforeAbilityEvent struct {
	BaseEvent
	Ability ability.ID
	Level   int
}

// AfterAbilityEvent is emitted when a top-level or hooked invocation ends
type AfterAbilityEvent struct {
	BaseEvent
	Ability ability.ID
	Outcome string
	Cost    int
	Hooked  bool
}

// OverTimeEvent is emitted when a continuation starts, finishes or is cancelled
type OverTimeEvent struct {
	BaseEvent
	Ability ability.ID
	Ticks   int
	Reason  string
}

// EffectWoreOffEvent is emitted when a timed effect expires
type EffectWoreOffEvent struct {
	BaseEvent
	Ability  ability.ID
	EffectID string
}
