package effects

import (
	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

// Builder helps create status effects
type Builder struct {
	effect *StatusEffect
}

// NewBuilder creates a new effect builder. Effects are permanent and
// replace their predecessor until told otherwise.
func NewBuilder(name string) *Builder {
	return &Builder{
		effect: &StatusEffect{
			Name:         name,
			Kind:         KindBuff,
			Duration:     Duration{Type: DurationPermanent},
			StackingRule: StackingReplace,
			Modifiers:    []Modifier{},
		},
	}
}

// WithSource sets the ability and caster that created the effect
func (b *Builder) WithSource(source EffectSource, abilityID ability.ID, casterID string) *Builder {
	b.effect.Source = source
	b.effect.SourceID = abilityID
	b.effect.CasterID = casterID
	return b
}

// WithTicks makes the effect last a number of ticks
func (b *Builder) WithTicks(ticks int) *Builder {
	b.effect.Duration = Duration{Type: DurationTicks, Remaining: ticks}
	return b
}

// WithStackingRule sets how this effect stacks
func (b *Builder) WithStackingRule(rule StackingRule) *Builder {
	b.effect.StackingRule = rule
	return b
}

// WithAffects sets the affect bits the effect grants
func (b *Builder) WithAffects(flags ability.AffectFlags) *Builder {
	b.effect.Affects = flags
	return b
}

// AddModifier adds a stat modifier to the effect
func (b *Builder) AddModifier(location ability.ApplyLocation, value int) *Builder {
	if value == 0 {
		return b
	}
	b.effect.Modifiers = append(b.effect.Modifiers, Modifier{
		Location: location,
		Value:    value,
	})
	return b
}

// AsDOT turns the effect into damage over time capped at maxStacks
func (b *Builder) AsDOT(perTick int, damageType ability.DamageType, maxStacks int) *Builder {
	b.effect.Kind = KindDOT
	b.effect.DamagePerTick = perTick
	b.effect.DamageType = damageType
	b.effect.MaxStacks = maxStacks
	b.effect.StackingRule = StackingStack
	b.effect.Hostile = true
	return b
}

// AsRoomEffect marks the effect as attached to a room
func (b *Builder) AsRoomEffect() *Builder {
	b.effect.Kind = KindRoom
	return b
}

// Hostile marks the effect as harmful so dispels can remove it
func (b *Builder) Hostile(hostile bool) *Builder {
	b.effect.Hostile = hostile
	return b
}

// Build returns the constructed effect
func (b *Builder) Build() *StatusEffect {
	return b.effect
}
