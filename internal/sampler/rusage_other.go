//go:build !unix

package sampler

import "github.com/genc-murat/memprobe/internal/core/models"

type rusageCounter struct{}

func newRusageCounter() (rusageCounter, bool) {
	return rusageCounter{}, false
}

func (rusageCounter) Name() string { return "rusage" }

func (rusageCounter) Faults() (minor, major models.Count) {
	return models.Unavailable, models.Unavailable
}
