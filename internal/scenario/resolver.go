// Package scenario loads scenario definitions and decides which of them a run
// executes.
package scenario

import (
	"github.com/genc-murat/memprobe/internal/cli"
	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/util"
)

// DefaultIterations applies to ad-hoc sizes when --iterations is absent.
const DefaultIterations = 50

// Resolve returns the scenarios to run, in execution order.
//
// Modes are tried in order and the first applicable one wins:
//   - --sizes builds one ad-hoc scenario per listed size
//   - --scenarios selects configured scenarios by exact id, in the requested order,
//     silently skipping unknown ids
//   - otherwise every configured scenario runs in file order
func Resolve(opts cli.Options, configured []models.Scenario) ([]models.Scenario, error) {
	if raw, ok := opts.Get(cli.KeySizes); ok {
		return resolveSizes(raw, opts)
	}

	if raw, ok := opts.Get(cli.KeyScenarios); ok {
		return selectByID(util.SplitList(raw), configured)
	}

	if len(configured) == 0 {
		return nil, models.ErrNoScenarios
	}
	return append([]models.Scenario(nil), configured...), nil
}

func resolveSizes(raw string, opts cli.Options) ([]models.Scenario, error) {
	iterations := DefaultIterations
	if v, ok := opts.Get(cli.KeyIterations); ok {
		n, err := util.ParsePositiveInt(v)
		if err != nil {
			return nil, &models.InvalidArgumentError{Key: cli.KeyIterations, Value: v, Err: err}
		}
		iterations = n
	}

	tokens := util.SplitList(raw)
	scenarios := make([]models.Scenario, 0, len(tokens))
	for _, token := range tokens {
		sizeMb, err := util.ParsePositiveInt(token)
		if err != nil {
			return nil, &models.InvalidArgumentError{Key: cli.KeySizes, Value: token, Err: err}
		}
		if err := util.CheckSizeMb(sizeMb); err != nil {
			return nil, &models.InvalidArgumentError{Key: cli.KeySizes, Value: token, Err: err}
		}
		scenarios = append(scenarios, models.AdHocScenario(sizeMb, iterations))
	}
	return scenarios, nil
}

func selectByID(ids []string, configured []models.Scenario) ([]models.Scenario, error) {
	selected := make([]models.Scenario, 0, len(ids))
	for _, id := range ids {
		for _, s := range configured {
			if s.ID == id {
				selected = append(selected, s)
				break
			}
		}
	}

	if len(selected) == 0 {
		return nil, &models.ScenarioNotFoundError{Requested: ids}
	}
	return selected, nil
}
