package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "abilities.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		strict   bool
		code     int
		contains string
	}{
		{
			name:     "clean",
			data:     `{"abilities":[{"id": 1, "name": "kick", "types": [{"type": "attack", "weight": 1}]}]}`,
			code:     0,
			contains: "1 abilities, 0 errors, 0 warnings",
		},
		{
			name: "warning passes unless strict",
			data: `{"abilities":[{"id": 1, "name": "kick", "types": [{"type": "attack", "weight": 1}],
				"data": [{"kind": "parent", "vnum": 40}]}]}`,
			code:     0,
			contains: "parent ability 40 does not exist",
		},
		{
			name: "strict",
			data: `{"abilities":[{"id": 1, "name": "kick", "types": [{"type": "attack", "weight": 1}],
				"data": [{"kind": "parent", "vnum": 40}]}]}`,
			strict: true,
			code:   1,
		},
		{
			name: "bad expression",
			data: `{"abilities":[{"id": 1, "name": "kick", "types": [{"type": "attack", "weight": 1}],
				"limitations": [{"type": "expression", "expr": "Actor.Nope > 1"}]}]}`,
			code:     1,
			contains: "invalid limitation expression",
		},
		{
			name: "duplicate ids",
			data: `{"abilities":[
				{"id": 1, "name": "kick", "types": [{"type": "attack", "weight": 1}]},
				{"id": 1, "name": "punch", "types": [{"type": "attack", "weight": 1}]}]}`,
			code:     1,
			contains: "defined twice",
		},
		{
			name:     "unreadable",
			data:     `{"abilities": [`,
			code:     1,
			contains: "invalid ability data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(context.Background(), []string{writeData(t, tt.data)}, tt.strict, &out)

			assert.Equal(t, tt.code, code, out.String())
			if tt.contains != "" {
				assert.Contains(t, out.String(), tt.contains)
			}
		})
	}
}

func TestRunEmbedded(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, 0, run(context.Background(), nil, true, &out), out.String())
}

func TestRunMissingPath(t *testing.T) {
	var out bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.json")

	assert.Equal(t, 2, run(context.Background(), []string{missing}, false, &out))
	assert.Contains(t, out.String(), "failed to load")
}
