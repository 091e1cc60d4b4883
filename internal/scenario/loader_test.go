package scenario

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	want := []models.Scenario{
		{ID: "small", SizeMb: 10, Iterations: 100},
		{ID: "large", SizeMb: 256, Iterations: 5},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json array",
			file: "scenarios.json",
			content: `[
	{"id": "small", "sizeMb": 10, "iterations": 100},
	{"id": "large", "sizeMb": 256, "iterations": 5}
]`,
		},
		{
			name:    "json object",
			file:    "scenarios.json",
			content: `{"scenarios": [{"id": "small", "sizeMb": 10, "iterations": 100}, {"id": "large", "sizeMb": 256, "iterations": 5}]}`,
		},
		{
			name: "yaml list",
			file: "scenarios.yaml",
			content: `- id: small
  sizeMb: 10
  iterations: 100
- id: large
  sizeMb: 256
  iterations: 5
`,
		},
		{
			name: "yaml object",
			file: "scenarios.yml",
			content: `scenarios:
  - {id: small, sizeMb: 10, iterations: 100}
  - {id: large, sizeMb: 256, iterations: 5}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		var loadErr *models.ConfigLoadError
		require.True(t, errors.As(err, &loadErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "bad.json", `[{"id": "x", "sizeMb": }]`))
		var loadErr *models.ConfigLoadError
		assert.True(t, errors.As(err, &loadErr))
	})
}

func TestLoaderRecovers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	loader := NewLoader(logger)

	got := loader.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "could not load scenario file")
}

func TestLoaderSkipsInvalidEntries(t *testing.T) {
	path := writeFile(t, "mixed.json", `[
	{"id": "ok", "sizeMb": 1, "iterations": 1},
	{"id": "", "sizeMb": 1, "iterations": 1},
	{"id": "zero", "sizeMb": 0, "iterations": 1},
	{"id": "neg", "sizeMb": 1, "iterations": -2},
	{"id": "huge", "sizeMb": 8796093022208, "iterations": 1}
]`)

	var buf bytes.Buffer
	loader := NewLoader(slog.New(slog.NewTextHandler(&buf, nil)))
	got := loader.Load(path)

	assert.Equal(t, []models.Scenario{{ID: "ok", SizeMb: 1, Iterations: 1}}, got)
	assert.Contains(t, buf.String(), "skipping scenario")
	assert.Contains(t, buf.String(), "scenario huge")
}
