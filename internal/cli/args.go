// Package cli turns raw command line tokens into the key/value options the
// benchmark consumes.
package cli

import (
	"strings"

	"github.com/genc-murat/memprobe/internal/util"
)

// Recognized option keys.
const (
	KeySizes       = "sizes"
	KeyIterations  = "iterations"
	KeyScenarios   = "scenarios"
	KeyOutput      = "output"
	KeyConfig      = "config"
	KeyEnv         = "env"
	KeyLogLevel    = "log-level"
	KeyNoHistory   = "no-history"
	KeyMetricsFile = "metrics-file"
	KeyPlain       = "plain"
	KeyHelp        = "help"
	KeyScenario    = "scenario"
	KeyLimit       = "limit"
)

// Options maps option keys (without the leading dashes) to their raw values.
type Options map[string]string

// Parse accepts "--key value", "--key=value" and bare "--flag" forms. A bare flag,
// or one followed by another "--" token, maps to "true". Tokens that are not
// consumed as option values are returned as positional arguments in order.
func Parse(args []string) (Options, []string) {
	opts := make(Options)
	var positional []string

	for i := 0; i < len(args); i++ {
		token := args[i]
		if !strings.HasPrefix(token, "--") || token == "--" {
			positional = append(positional, token)
			continue
		}

		body := strings.TrimPrefix(token, "--")
		if key, value, ok := strings.Cut(body, "="); ok {
			opts[key] = value
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
			opts[body] = args[i+1]
			i++
			continue
		}
		opts[body] = "true"
	}

	return opts, positional
}

func (o Options) Get(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Bool reports whether key is present and parses as true. Unparseable values
// count as false.
func (o Options) Bool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	b, err := util.ParseBool(v)
	return err == nil && b
}
