package models

import "fmt"

// Scenario is one named (buffer size, iteration count) benchmark configuration.
type Scenario struct {
	ID         string `json:"id" yaml:"id"`
	SizeMb     int    `json:"sizeMb" yaml:"sizeMb"`
	Iterations int    `json:"iterations" yaml:"iterations"`
}

// AdHocScenario builds the scenario used when sizes come straight from the command line.
func AdHocScenario(sizeMb, iterations int) Scenario {
	return Scenario{
		ID:         fmt.Sprintf("ad-hoc-%dmb", sizeMb),
		SizeMb:     sizeMb,
		Iterations: iterations,
	}
}

func (s Scenario) String() string {
	return fmt.Sprintf("%s (%d MB x %d iterations)", s.ID, s.SizeMb, s.Iterations)
}
