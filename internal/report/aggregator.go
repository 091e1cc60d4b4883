// Package report collects benchmark results, persists them as JSON and renders
// them for the console.
package report

import "github.com/genc-murat/memprobe/internal/core/models"

// Aggregator keeps results in the order their scenarios ran. It performs no
// arithmetic across scenarios.
type Aggregator struct {
	results []models.Result
}

func NewAggregator() *Aggregator {
	return &Aggregator{results: make([]models.Result, 0)}
}

func (a *Aggregator) Add(result models.Result) {
	a.results = append(a.results, result)
}

// Results returns a copy of the collected sequence.
func (a *Aggregator) Results() []models.Result {
	return append([]models.Result{}, a.results...)
}

func (a *Aggregator) Len() int {
	return len(a.results)
}
