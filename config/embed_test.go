package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	var settings map[string]any
	require.NoError(t, yaml.Unmarshal(DefaultYAML, &settings))
	assert.Equal(t, "config/memory-scenarios.json", settings["scenarios_file"])

	var scenarios []map[string]any
	require.NoError(t, json.Unmarshal(ScenariosJSON, &scenarios))
	assert.NotEmpty(t, scenarios)
	for _, s := range scenarios {
		assert.NotEmpty(t, s["id"])
		assert.Greater(t, s["sizeMb"].(float64), 0.0)
		assert.Greater(t, s["iterations"].(float64), 0.0)
	}
}

func TestFiles(t *testing.T) {
	files := Files()
	assert.Len(t, files, 2)
	assert.Equal(t, DefaultYAML, files[DefaultFileName])
	assert.Equal(t, ScenariosJSON, files[ScenariosFileName])
}
