package ports

import "github.com/genc-murat/memprobe/internal/core/models"

type Sampler interface {
	Capture() models.ResourceSnapshot
}

// FaultCounter reads cumulative minor and major page faults for the current process.
// Implementations return models.Unavailable for both counters instead of failing.
type FaultCounter interface {
	Name() string
	Faults() (minor, major models.Count)
}
