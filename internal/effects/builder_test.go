package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
)

func TestBuilder(t *testing.T) {
	t.Run("creates basic effect", func(t *testing.T) {
		effect := NewBuilder("Stoneskin").
			WithSource(SourceAbility, 42, "caster-1").
			WithTicks(5).
			AddModifier(ability.ApplySoak, 3).
			AddModifier(ability.ApplyDodge, 0).
			Build()

		assert.Equal(t, "Stoneskin", effect.Name)
		assert.Equal(t, SourceAbility, effect.Source)
		assert.Equal(t, ability.ID(42), effect.SourceID)
		assert.Equal(t, "caster-1", effect.CasterID)
		assert.Equal(t, DurationTicks, effect.Duration.Type)
		assert.Equal(t, 5, effect.Duration.Remaining)
		assert.Equal(t, KindBuff, effect.Kind)
		assert.Len(t, effect.Modifiers, 1, "zero modifiers are dropped")
		assert.Equal(t, ability.ApplySoak, effect.Modifiers[0].Location)
	})

	t.Run("defaults to permanent replace", func(t *testing.T) {
		effect := NewBuilder("Aura").Build()

		assert.Equal(t, DurationPermanent, effect.Duration.Type)
		assert.Equal(t, StackingReplace, effect.StackingRule)
		assert.False(t, effect.IsExpired())
	})

	t.Run("creates dot", func(t *testing.T) {
		effect := NewBuilder("Venom").
			WithTicks(3).
			AsDOT(5, ability.DamagePoison, 4).
			Build()

		assert.Equal(t, KindDOT, effect.Kind)
		assert.Equal(t, StackingStack, effect.StackingRule)
		assert.Equal(t, 4, effect.MaxStacks)
		assert.True(t, effect.Hostile)
		assert.Equal(t, 5, effect.TickDamage())
	})

	t.Run("room effect", func(t *testing.T) {
		effect := NewBuilder("Fog").AsRoomEffect().WithAffects(ability.AffectBlind).Build()

		assert.Equal(t, KindRoom, effect.Kind)
		assert.Equal(t, 0, effect.TickDamage())
	})
}
