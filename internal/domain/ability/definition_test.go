package ability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
)

func TestDefinition_TypeFlagsFollowWeightedList(t *testing.T) {
	def := &Definition{ID: 1, Name: "firebolt"}

	def.AddType(TypeDamage, 2)
	def.AddType(TypeDOT, 1)
	assert.True(t, def.HasType(TypeDamage))
	assert.True(t, def.HasType(TypeDOT))
	assert.False(t, def.HasType(TypeBuff))
	assert.Equal(t, TypeDamage.Flag()|TypeDOT.Flag(), def.TypeFlags)

	def.AddType(TypeDamage, 1)
	require.Len(t, def.Types, 2)
	assert.Equal(t, 3, def.Types[0].Weight)

	def.RemoveType(TypeDamage)
	assert.False(t, def.HasType(TypeDamage))
	assert.Equal(t, TypeDOT.Flag(), def.TypeFlags)

	def.SetTypes([]WeightedType{{Type: TypeBuff, Weight: 1}})
	assert.Equal(t, TypeBuff.Flag(), def.TypeFlags)
}

func TestDefinition_TypeWeightShare(t *testing.T) {
	tests := []struct {
		name  string
		types []WeightedType
		check Type
		want  float64
	}{
		{
			name:  "single type gets everything",
			types: []WeightedType{{Type: TypeDamage, Weight: 1}},
			check: TypeDamage,
			want:  1.0,
		},
		{
			name:  "weights split proportionally",
			types: []WeightedType{{Type: TypeDamage, Weight: 3}, {Type: TypeBuff, Weight: 1}},
			check: TypeDamage,
			want:  0.75,
		},
		{
			name:  "unweighted types split evenly",
			types: []WeightedType{{Type: TypeDamage}, {Type: TypeBuff}},
			check: TypeBuff,
			want:  0.5,
		},
		{
			name:  "absent type gets nothing",
			types: []WeightedType{{Type: TypeDamage, Weight: 1}},
			check: TypeRestore,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &Definition{}
			def.SetTypes(tt.types)
			assert.InDelta(t, tt.want, def.TypeWeightShare(tt.check), 0.0001)
		})
	}
}

func TestDefinition_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": 12,
		"name": "healing touch",
		"flags": ["spoken"],
		"types": [{"type": "restore", "weight": 1}, {"type": "buff", "weight": 1}],
		"targets": ["self", "char-room"],
		"difficulty": "medium",
		"cost_pool": "mana",
		"base_cost": 5,
		"cooldown_seconds": 30,
		"data": [{"kind": "superseded-by", "vnum": 13}, {"kind": "restore-pool", "vnum": 0}],
		"hooks": [{"trigger": "dying", "percent": 50, "value": -1}],
		"messages": [{"slot": "to-char", "text": "You glow."}]
	}`

	var def Definition
	require.NoError(t, json.Unmarshal([]byte(raw), &def))

	assert.Equal(t, ID(12), def.ID)
	assert.True(t, def.Flags.Has(FlagSpoken))
	assert.True(t, def.HasType(TypeRestore))
	assert.True(t, def.HasType(TypeBuff))
	assert.True(t, def.Targets.Has(TargetSelf|TargetCharRoom))
	assert.Equal(t, DifficultyMedium, def.Difficulty)
	assert.Equal(t, PoolMana, def.CostPool)
	assert.Equal(t, []ID{13}, def.SupersededBy())
	assert.Equal(t, NoAbility, def.MasteryAbility)
	assert.False(t, def.HasMastery())

	text, ok := def.Message(MsgToChar, 0)
	assert.True(t, ok)
	assert.Equal(t, "You glow.", text)

	require.Len(t, def.Hooks, 1)
	assert.True(t, def.Hooks[0].Matches(HookDying, 7))
	assert.False(t, def.Hooks[0].Matches(HookKill, 7))
}

func TestDefinition_UnmarshalRejectsUnknownNames(t *testing.T) {
	var def Definition
	err := json.Unmarshal([]byte(`{"id": 1, "name": "x", "types": [{"type": "teleportation"}]}`), &def)
	assert.Error(t, err)
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{
			name: "valid",
			def:  Definition{ID: 1, Name: "bash", Types: []WeightedType{{Type: TypeAttack, Weight: 1}}},
		},
		{
			name:    "missing name",
			def:     Definition{ID: 1, Types: []WeightedType{{Type: TypeAttack}}},
			wantErr: true,
		},
		{
			name:    "no types",
			def:     Definition{ID: 1, Name: "bash"},
			wantErr: true,
		},
		{
			name:    "negative weight",
			def:     Definition{ID: 1, Name: "bash", Types: []WeightedType{{Type: TypeAttack, Weight: -1}}},
			wantErr: true,
		},
		{
			name: "hook chance out of range",
			def: Definition{ID: 1, Name: "bash", Types: []WeightedType{{Type: TypeAttack}},
				Hooks: []Hook{{Trigger: HookKill, Percent: 120}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, abilerr.IsValidation(err))
				assert.Equal(t, int(tt.def.ID), abilerr.GetMeta(err)["ability_id"])
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDifficulty_SuccessChance(t *testing.T) {
	assert.Equal(t, 100, DifficultyTrivial.SuccessChance(1))
	assert.Equal(t, 100, DifficultyEasy.SuccessChance(60))
	assert.Equal(t, 75, DifficultyMedium.SuccessChance(50))
	assert.Equal(t, 5, DifficultyRare.SuccessChance(10))
}

func TestParseDirection(t *testing.T) {
	dir, ok := ParseDirection("n")
	assert.True(t, ok)
	assert.Equal(t, DirNorth, dir)

	dir, ok = ParseDirection("down")
	assert.True(t, ok)
	assert.Equal(t, DirDown, dir)
	assert.Equal(t, DirUp, dir.Reverse())

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}

func TestTargetFlags_SelfOnly(t *testing.T) {
	assert.True(t, TargetSelf.SelfOnly())
	assert.False(t, (TargetSelf | TargetCharRoom).SelfOnly())
	assert.False(t, TargetCharRoom.SelfOnly())
}

func TestLimitationType_Groups(t *testing.T) {
	assert.Equal(t, LimitGroupPermission, LimitCanUseAlly.Group())
	assert.Equal(t, LimitGroupWeapon, LimitWieldingWeaponType.Group())
	assert.Equal(t, LimitGroupNone, LimitTargetHuman.Group())
	assert.True(t, LimitHasEmpire.Fatal())
	assert.False(t, LimitTargetHuman.Fatal())
}
