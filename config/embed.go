// Package config holds the default settings and scenario file shipped with
// memprobe. Both are embedded so the binary works outside a checkout.
package config

import _ "embed"

const (
	DefaultFileName   = "default.yaml"
	ScenariosFileName = "memory-scenarios.json"
)

//go:embed default.yaml
var DefaultYAML []byte

//go:embed memory-scenarios.json
var ScenariosJSON []byte

// Files maps each embedded file name to its content.
func Files() map[string][]byte {
	return map[string][]byte{
		DefaultFileName:   DefaultYAML,
		ScenariosFileName: ScenariosJSON,
	}
}
