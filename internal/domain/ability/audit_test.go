package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDef(id ID, supersededBy ...ID) *Definition {
	def := &Definition{ID: id, Name: "ability"}
	def.SetTypes([]WeightedType{{Type: TypeDamage, Weight: 1}})
	for _, next := range supersededBy {
		def.Data = append(def.Data, Data{Kind: DataSupersededBy, Vnum: int(next)})
	}
	return def
}

func TestFindSupersedeCycle(t *testing.T) {
	tests := []struct {
		name  string
		defs  []*Definition
		start ID
		want  []ID
	}{
		{
			name:  "acyclic chain",
			defs:  []*Definition{newDef(1, 2), newDef(2, 3), newDef(3)},
			start: 1,
		},
		{
			name:  "self reference",
			defs:  []*Definition{newDef(1, 1)},
			start: 1,
			want:  []ID{1, 1},
		},
		{
			name:  "transitive cycle",
			defs:  []*Definition{newDef(1, 2), newDef(2, 3), newDef(3, 1)},
			start: 1,
			want:  []ID{1, 2, 3, 1},
		},
		{
			name:  "cycle below start",
			defs:  []*Definition{newDef(1, 2), newDef(2, 3), newDef(3, 2)},
			start: 1,
			want:  []ID{2, 3, 2},
		},
		{
			name:  "cycle on a later link",
			defs:  []*Definition{newDef(1, 4, 2), newDef(2, 1), newDef(4)},
			start: 1,
			want:  []ID{1, 2, 1},
		},
		{
			name:  "dangling link",
			defs:  []*Definition{newDef(1, 99)},
			start: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := make(mapLookup)
			for _, def := range tt.defs {
				lookup[def.ID] = def
			}
			assert.Equal(t, tt.want, FindSupersedeCycle(lookup, tt.start))
		})
	}
}

func TestAudit(t *testing.T) {
	cycleA := newDef(1, 2)
	cycleB := newDef(2, 1)
	dangling := newDef(3, 42)

	overTime := newDef(4)
	overTime.Flags = FlagOverTime

	mismatched := newDef(5)
	mismatched.TypeFlags = TypeBuff.Flag()

	findings := Audit([]*Definition{cycleA, cycleB, dangling, overTime, mismatched})
	require.NotEmpty(t, findings)
	assert.True(t, HasErrors(findings))

	var cycles, warnings3, warnings4, errors5 int
	for _, f := range findings {
		switch {
		case f.Severity == SeverityError && (f.Ability == 1 || f.Ability == 2):
			cycles++
		case f.Ability == 3:
			warnings3++
		case f.Ability == 4:
			warnings4++
		case f.Ability == 5 && f.Severity == SeverityError:
			errors5++
		}
	}

	assert.Equal(t, 1, cycles, "a cycle is reported once")
	assert.Equal(t, 1, warnings3)
	assert.Equal(t, 2, warnings4, "missing begin and tick messages")
	assert.Equal(t, 1, errors5)
}

func TestAudit_Clean(t *testing.T) {
	findings := Audit([]*Definition{newDef(1, 2), newDef(2)})
	assert.Empty(t, findings)
	assert.False(t, HasErrors(findings))
}
