package abilities_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/ability-engine/internal/domain/ability"
	abilerr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/repositories/abilities"
)

func def(id ability.ID, name, command string) *ability.Definition {
	return &ability.Definition{
		ID:      id,
		Name:    name,
		Command: command,
		Types:   []ability.WeightedType{{Type: ability.TypeDamage, Weight: 1}},
	}
}

func TestInMemoryRepository(t *testing.T) {
	repo, err := abilities.NewInMemoryRepository(
		def(3, "fireball", "fireball"),
		def(1, "fire shield", "fshield"),
		def(2, "kick", "Kick"),
	)
	require.NoError(t, err)

	t.Run("get by id", func(t *testing.T) {
		got, ok := repo.Get(2)
		require.True(t, ok)
		assert.Equal(t, "kick", got.Name)
		assert.True(t, got.HasType(ability.TypeDamage), "type flags are recomputed on add")

		_, ok = repo.Get(99)
		assert.False(t, ok)
	})

	t.Run("get by name", func(t *testing.T) {
		tests := []struct {
			query    string
			expected ability.ID
			found    bool
		}{
			{query: "fireball", expected: 3, found: true},
			{query: "FIREBALL", expected: 3, found: true},
			{query: "fire", expected: 1, found: true},
			{query: "k", expected: 2, found: true},
			{query: "  kick ", expected: 2, found: true},
			{query: "heal", found: false},
			{query: "", found: false},
		}
		for _, tt := range tests {
			got, ok := repo.GetByName(tt.query)
			require.Equal(t, tt.found, ok, tt.query)
			if tt.found {
				assert.Equal(t, tt.expected, got.ID, tt.query)
			}
		}
	})

	t.Run("get by command", func(t *testing.T) {
		got, ok := repo.GetByCommand("KICK")
		require.True(t, ok)
		assert.Equal(t, ability.ID(2), got.ID)

		_, ok = repo.GetByCommand("fire")
		assert.False(t, ok, "commands are not abbreviated")
	})

	t.Run("list is ordered", func(t *testing.T) {
		var ids []ability.ID
		for _, d := range repo.List() {
			ids = append(ids, d.ID)
		}
		assert.Equal(t, []ability.ID{1, 2, 3}, ids)
	})
}

func TestInMemoryRepositoryRejectsDuplicates(t *testing.T) {
	_, err := abilities.NewInMemoryRepository(def(1, "kick", ""), def(1, "punch", ""))
	require.Error(t, err)
	assert.Equal(t, abilerr.CodeAlreadyExists, abilerr.GetCode(err))

	_, err = abilities.NewInMemoryRepository(def(1, "kick", "hit"), def(2, "punch", "HIT"))
	require.Error(t, err)
	assert.Equal(t, abilerr.CodeAlreadyExists, abilerr.GetCode(err))

	repo, err := abilities.NewInMemoryRepository()
	require.NoError(t, err)
	err = repo.Add(nil)
	assert.True(t, abilerr.IsInvalidArgument(err))
	err = repo.Add(def(ability.NoAbility, "broken", ""))
	assert.True(t, abilerr.IsInvalidArgument(err))
}

func TestLoadEmbedded(t *testing.T) {
	defs, err := abilities.LoadEmbedded(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, defs)

	findings := ability.Audit(defs)
	assert.False(t, ability.HasErrors(findings), "%v", findings)

	repo, err := abilities.NewInMemoryRepository(defs...)
	require.NoError(t, err)

	fireball, ok := repo.GetByCommand("fireball")
	require.True(t, ok)
	assert.Equal(t, ability.DamageFire, fireball.DamageType)
	assert.Equal(t, []ability.ID{12}, fireball.SupersededBy())

	mine, ok := repo.GetByName("mine")
	require.True(t, ok)
	assert.True(t, mine.IsOverTime())
	_, ok = mine.Message(ability.MsgBeginToChar, 0)
	assert.True(t, ok)
}

func TestDecode(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		defs, err := abilities.Decode(strings.NewReader(`{"abilities":[
			{"id": 4, "name": "stone skin", "types": [{"type": "buff", "weight": 1}], "flags": ["cumulative-duration"]}
		]}`), "inline")
		require.NoError(t, err)
		require.Len(t, defs, 1)
		assert.True(t, defs[0].Flags.Has(ability.FlagCumulativeDuration))
		assert.True(t, defs[0].HasType(ability.TypeBuff))
	})

	t.Run("unknown enum name", func(t *testing.T) {
		_, err := abilities.Decode(strings.NewReader(`{"abilities":[
			{"id": 4, "name": "x", "types": [{"type": "sorcery", "weight": 1}]}
		]}`), "bad.json")
		require.Error(t, err)
		assert.True(t, abilerr.IsValidation(err))
		assert.Contains(t, err.Error(), "bad.json")
	})

	t.Run("unknown top level field", func(t *testing.T) {
		_, err := abilities.Decode(strings.NewReader(`{"skills": []}`), "bad.json")
		assert.True(t, abilerr.IsValidation(err))
	})

	t.Run("null entry", func(t *testing.T) {
		_, err := abilities.Decode(strings.NewReader(`{"abilities": [null]}`), "bad.json")
		assert.True(t, abilerr.IsValidation(err))
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"abilities":[{"id": 2, "name": "kick", "types": [{"type": "attack", "weight": 1}]}]}`)
	writeFile(t, dir, "a.json", `{"abilities":[{"id": 1, "name": "bash", "types": [{"type": "attack", "weight": 1}]}]}`)
	writeFile(t, dir, "notes.txt", `not json`)
	extra := writeFile(t, t.TempDir(), "extra.json", `{"abilities":[{"id": 3, "name": "heal", "types": [{"type": "restore", "weight": 1}]}]}`)

	defs, err := abilities.LoadFiles(context.Background(), dir, extra)
	require.NoError(t, err)

	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"bash", "kick", "heal"}, names)

	_, err = abilities.LoadFiles(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = abilities.LoadFiles(context.Background(), t.TempDir())
	assert.True(t, abilerr.IsInvalidArgument(err))
}

func TestLoadAuditsCatalog(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	t.Run("warnings are logged", func(t *testing.T) {
		p := writeFile(t, t.TempDir(), "warn.json", `{"abilities":[
			{"id": 1, "name": "bash", "types": [{"type": "attack", "weight": 1}], "data": [{"kind": "superseded-by", "vnum": 77}]}
		]}`)

		repo, findings, err := abilities.Load(context.Background(), &abilities.Config{Paths: []string{p}, Logger: logger})
		require.NoError(t, err)
		require.NotNil(t, repo)
		require.Len(t, findings, 1)
		assert.Equal(t, ability.SeverityWarning, findings[0].Severity)
		assert.Equal(t, 1, logs.FilterMessage("ability data warning").Len())
	})

	t.Run("cycles fail the load", func(t *testing.T) {
		p := writeFile(t, t.TempDir(), "cycle.json", `{"abilities":[
			{"id": 1, "name": "a", "types": [{"type": "attack", "weight": 1}], "data": [{"kind": "superseded-by", "vnum": 2}]},
			{"id": 2, "name": "b", "types": [{"type": "attack", "weight": 1}], "data": [{"kind": "superseded-by", "vnum": 1}]}
		]}`)

		repo, findings, err := abilities.Load(context.Background(), &abilities.Config{Paths: []string{p}, Logger: logger})
		require.Error(t, err)
		assert.True(t, abilerr.IsValidation(err))
		assert.Nil(t, repo)
		assert.True(t, ability.HasErrors(findings))
	})

	t.Run("embedded set by default", func(t *testing.T) {
		repo, _, err := abilities.Load(context.Background(), &abilities.Config{})
		require.NoError(t, err)
		_, ok := repo.GetByCommand("kick")
		assert.True(t, ok)
	})
}
