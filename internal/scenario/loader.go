package scenario

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/util"
	"gopkg.in/yaml.v3"
)

// document is the object form of a scenario file: {"scenarios": [...]}.
type document struct {
	Scenarios []models.Scenario `json:"scenarios" yaml:"scenarios"`
}

// LoadFile reads a scenario file. JSON is the default format; files ending in
// .yaml or .yml are decoded as YAML. Both a bare array and an object with a
// "scenarios" key are accepted.
func LoadFile(path string) ([]models.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.ConfigLoadError{Path: path, Err: err}
	}

	scenarios, err := Decode(data, isYAML(path))
	if err != nil {
		return nil, &models.ConfigLoadError{Path: path, Err: err}
	}
	return scenarios, nil
}

// Decode parses scenario definitions from data.
func Decode(data []byte, asYAML bool) ([]models.Scenario, error) {
	unmarshal := json.Unmarshal
	if asYAML {
		unmarshal = yaml.Unmarshal
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var list []models.Scenario
	listErr := unmarshal(data, &list)
	if listErr == nil {
		return list, nil
	}

	var doc document
	if err := unmarshal(data, &doc); err != nil {
		return nil, listErr
	}
	return doc.Scenarios, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Loader wraps LoadFile with the recovery policy of the benchmark: a missing or
// malformed file yields an empty list and a warning, never an error.
type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

func (l *Loader) Load(path string) []models.Scenario {
	scenarios, err := LoadFile(path)
	if err != nil {
		l.logger.Warn("could not load scenario file", "path", path, "error", err)
		return []models.Scenario{}
	}

	valid := make([]models.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if err := util.ValidateScenario(s); err != nil {
			l.logger.Warn("skipping scenario", "path", path, "error", err)
			continue
		}
		valid = append(valid, s)
	}

	l.logger.Debug("scenarios loaded", "path", path, "count", len(valid))
	return valid
}
