package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	"github.com/KirkDiggler/ability-engine/internal/effects"
)

func damageDef(id ability.ID) *ability.Definition {
	return &ability.Definition{
		ID:                id,
		Name:              "firebolt",
		Types:             []ability.WeightedType{{Type: ability.TypeDamage, Weight: 1}},
		BaseCost:          10,
		CostPerScalePoint: 2,
		CostPool:          ability.PoolMana,
	}
}

func TestCostAtMaxLevel(t *testing.T) {
	def := damageDef(1)
	e, actor := newInternalEngine(t, def)

	points := e.ScalePoints(actor, def, 100, ability.TypeDamage)
	assert.InDelta(t, 50.0, points, 1e-9)
	assert.Equal(t, 110, ComputeCost(def, points, 0, 1))
	assert.Equal(t, 110, e.EstimateCost(actor, def, 100))
}

func TestScalePoints(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(def *ability.Definition)
		level    int
		role     ability.Role
		traits   map[ability.Trait]int
		mastery  bool
		typ      ability.Type
		expected float64
	}{
		{
			name:     "half level",
			level:    50,
			typ:      ability.TypeDamage,
			expected: 25,
		},
		{
			name:     "floored at one",
			level:    1,
			typ:      ability.TypeDamage,
			expected: 1,
		},
		{
			name: "weight share",
			setup: func(def *ability.Definition) {
				def.SetTypes([]ability.WeightedType{
					{Type: ability.TypeDamage, Weight: 3},
					{Type: ability.TypeBuff, Weight: 1},
				})
			},
			level:    100,
			typ:      ability.TypeDamage,
			expected: 37.5,
		},
		{
			name: "unweighted types split evenly",
			setup: func(def *ability.Definition) {
				def.SetTypes([]ability.WeightedType{
					{Type: ability.TypeDamage},
					{Type: ability.TypeBuff},
				})
			},
			level:    100,
			typ:      ability.TypeBuff,
			expected: 25,
		},
		{
			name:     "scale multiplier",
			setup:    func(def *ability.Definition) { def.ScaleMultiplier = 1.5 },
			level:    100,
			typ:      ability.TypeDamage,
			expected: 75,
		},
		{
			name:     "weakest trait",
			setup:    func(def *ability.Definition) { def.LinkedTrait = ability.TraitStrength },
			level:    100,
			traits:   map[ability.Trait]int{ability.TraitStrength: 0},
			typ:      ability.TypeDamage,
			expected: 37.5,
		},
		{
			name:     "strongest trait",
			setup:    func(def *ability.Definition) { def.LinkedTrait = ability.TraitStrength },
			level:    100,
			traits:   map[ability.Trait]int{ability.TraitStrength: 10},
			typ:      ability.TypeDamage,
			expected: 62.5,
		},
		{
			name:     "trait without a maximum counts as full",
			setup:    func(def *ability.Definition) { def.LinkedTrait = ability.TraitGreatness },
			level:    100,
			typ:      ability.TypeDamage,
			expected: 62.5,
		},
		{
			name:     "role ignored up to the level cap",
			setup:    func(def *ability.Definition) { def.RoleRequired = ability.RoleCaster },
			level:    100,
			role:     ability.RoleTank,
			typ:      ability.TypeDamage,
			expected: 50,
		},
		{
			name:     "matching role above the cap",
			setup:    func(def *ability.Definition) { def.RoleRequired = ability.RoleCaster },
			level:    150,
			role:     ability.RoleCaster,
			typ:      ability.TypeDamage,
			expected: 90,
		},
		{
			name:     "wrong role above the cap",
			setup:    func(def *ability.Definition) { def.RoleRequired = ability.RoleCaster },
			level:    150,
			role:     ability.RoleTank,
			typ:      ability.TypeDamage,
			expected: 52.5,
		},
		{
			name:     "mastery owned",
			setup:    func(def *ability.Definition) { def.MasteryAbility = 99 },
			level:    100,
			mastery:  true,
			typ:      ability.TypeDamage,
			expected: 62.5,
		},
		{
			name:     "mastery not owned",
			setup:    func(def *ability.Definition) { def.MasteryAbility = 99 },
			level:    100,
			typ:      ability.TypeDamage,
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := damageDef(1)
			if tt.setup != nil {
				tt.setup(def)
			}
			e, actor := newInternalEngine(t, def)
			actor.Role = tt.role
			for trait, value := range tt.traits {
				actor.Traits[trait] = value
			}
			if tt.mastery {
				actor.Grant(99)
			}

			assert.InDelta(t, tt.expected, e.ScalePoints(actor, def, tt.level, tt.typ), 1e-9)
		})
	}
}

func TestComputeCost(t *testing.T) {
	def := &ability.Definition{
		BaseCost:          5,
		CostPerScalePoint: 0.5,
		CostPerAmount:     0.25,
		CostPerTarget:     3,
	}

	assert.Equal(t, 5+10+5+6, ComputeCost(def, 20, 20, 2))
	assert.Equal(t, 5, ComputeCost(def, 0, 0, 0))
	assert.Equal(t, 0, ComputeCost(&ability.Definition{BaseCost: -4}, 0, 0, 1))
	assert.Equal(t, 3, ComputeCost(&ability.Definition{CostPerScalePoint: 0.5}, 5, 0, 1), "2.5 rounds away from zero")
}

func TestAmountFor(t *testing.T) {
	assert.Equal(t, 1, amountFor(0.2, 1))
	assert.Equal(t, 50, amountFor(50, 1))
	assert.Equal(t, 100, amountFor(50, 2))
}

func TestEffectTicks(t *testing.T) {
	e, actor := newInternalEngine(t)

	tests := []struct {
		name     string
		def      *ability.Definition
		fighting bool
		points   float64
		expected int
	}{
		{
			name:     "long when peaceful",
			def:      &ability.Definition{ShortDuration: 3, LongDuration: 20},
			expected: 20,
		},
		{
			name:     "short when violent",
			def:      &ability.Definition{Flags: ability.FlagViolent, ShortDuration: 3, LongDuration: 20},
			expected: 3,
		},
		{
			name:     "short when the target is fighting",
			def:      &ability.Definition{ShortDuration: 3, LongDuration: 20},
			fighting: true,
			expected: 3,
		},
		{
			name:     "falls back to the other duration",
			def:      &ability.Definition{Flags: ability.FlagViolent, LongDuration: 20},
			expected: 20,
		},
		{
			name:     "derived from points",
			def:      &ability.Definition{},
			points:   9,
			expected: 5,
		},
		{
			name:     "at least one tick",
			def:      &ability.Definition{},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor.Fighting = nil
			if tt.fighting {
				actor.Fighting = actor
			}
			assert.Equal(t, tt.expected, e.effectTicks(tt.def, actor, tt.points))
		})
	}
}

func TestApplyModifiers(t *testing.T) {
	def := &ability.Definition{Applies: []ability.Apply{
		{Location: ability.ApplyStrength, Weight: 3},
		{Location: ability.ApplyDodge, Weight: -1},
		{Location: ability.ApplyToHit, Weight: 0},
	}}

	assert.Equal(t, []effects.Modifier{
		{Location: ability.ApplyStrength, Value: 30},
		{Location: ability.ApplyDodge, Value: -10},
	}, applyModifiers(def, 40))

	assert.Equal(t, []effects.Modifier{
		{Location: ability.ApplyStrength, Value: 1},
		{Location: ability.ApplyDodge, Value: -1},
	}, applyModifiers(def, 0.5), "nonzero weights keep at least one point")

	assert.Nil(t, applyModifiers(&ability.Definition{}, 40))
}
