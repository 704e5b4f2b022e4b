package effects

import (
	"time"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// EffectSource represents where an effect comes from
type EffectSource string

const (
	SourceAbility EffectSource = "ability"
	SourcePassive EffectSource = "passive"
)

// DurationType represents different duration types
type DurationType string

const (
	DurationPermanent DurationType = "permanent"
	DurationTicks     DurationType = "ticks"
)

// StackingRule defines how effects stack with each other
type StackingRule string

const (
	StackingReplace StackingRule = "replace" // New effect replaces old
	StackingStack   StackingRule = "stack"   // Stack count rises to MaxStacks, duration refreshes
	StackingExtend  StackingRule = "extend"  // Remaining duration adds together
)

// Kind separates effects the engine treats differently on tick
type Kind string

const (
	KindBuff Kind = "buff"
	KindDOT  Kind = "dot"
	KindRoom Kind = "room"
)

// Duration represents how long an effect lasts
type Duration struct {
	Type      DurationType
	Remaining int // ticks left for DurationTicks
}

// Modifier is a flat stat change
type Modifier struct {
	Location ability.ApplyLocation
	Value    int
}

// StatusEffect represents any effect attached to a character or room
type StatusEffect struct {
	ID            string
	Source        EffectSource
	SourceID      ability.ID // ability that created this
	CasterID      string
	Name          string
	Kind          Kind
	Duration      Duration
	Modifiers     []Modifier
	Affects       ability.AffectFlags
	StackingRule  StackingRule
	Stacks        int
	MaxStacks     int
	DamagePerTick int
	DamageType    ability.DamageType
	Hostile       bool
	CreatedAt     time.Time
}

// IsExpired checks if the effect has run out of ticks
func (e *StatusEffect) IsExpired() bool {
	return e.Duration.Type == DurationTicks && e.Duration.Remaining <= 0
}

// TickDamage is the damage a DOT deals this tick, scaled by stacks
func (e *StatusEffect) TickDamage() int {
	if e.Kind != KindDOT {
		return 0
	}
	stacks := e.Stacks
	if stacks < 1 {
		stacks = 1
	}
	return e.DamagePerTick * stacks
}

// sameSlot reports whether two effects compete under stacking rules
func (e *StatusEffect) sameSlot(other *StatusEffect) bool {
	return e.SourceID == other.SourceID && e.CasterID == other.CasterID &&
		e.Name == other.Name && e.Source == other.Source && e.Kind == other.Kind
}
