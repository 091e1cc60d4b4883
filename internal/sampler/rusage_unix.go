//go:build unix

package sampler

import (
	"golang.org/x/sys/unix"

	"github.com/genc-murat/memprobe/internal/core/models"
)

// rusageCounter reads ru_minflt and ru_majflt for the calling process.
type rusageCounter struct{}

func newRusageCounter() (rusageCounter, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return rusageCounter{}, false
	}
	return rusageCounter{}, true
}

func (rusageCounter) Name() string { return "rusage" }

func (rusageCounter) Faults() (minor, major models.Count) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return models.Unavailable, models.Unavailable
	}
	minFlt, majFlt := int64(ru.Minflt), int64(ru.Majflt)
	if minFlt < 0 || majFlt < 0 {
		return models.Unavailable, models.Unavailable
	}
	return models.Known(minFlt), models.Known(majFlt)
}
