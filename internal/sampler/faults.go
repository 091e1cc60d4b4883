package sampler

import (
	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/core/ports"
)

// DetectFaultCounter picks the best fault counter the host offers: procfs when
// /proc/self/stat parses, getrusage on other unix systems, and otherwise a
// counter that always reports Unavailable.
func DetectFaultCounter() ports.FaultCounter {
	if pc := NewProcStatCounter(ProcSelfStat); pc.supported() {
		return pc
	}
	if rc, ok := newRusageCounter(); ok {
		return rc
	}
	return UnavailableCounter{}
}

// UnavailableCounter is used on platforms without per-process fault accounting.
type UnavailableCounter struct{}

func (UnavailableCounter) Name() string { return "unavailable" }

func (UnavailableCounter) Faults() (minor, major models.Count) {
	return models.Unavailable, models.Unavailable
}

// ComputePageFaultDelta returns the faults that occurred between two snapshots.
// A decreasing counter yields zero rather than a negative delta. If any counter
// in either snapshot is unavailable, both fields are nil.
func ComputePageFaultDelta(start, end models.ResourceSnapshot) models.PageFaultDelta {
	startMinor, ok1 := start.MinorPageFaults.Value()
	startMajor, ok2 := start.MajorPageFaults.Value()
	endMinor, ok3 := end.MinorPageFaults.Value()
	endMajor, ok4 := end.MajorPageFaults.Value()
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return models.PageFaultDelta{}
	}

	minor := clampedDiff(startMinor, endMinor)
	major := clampedDiff(startMajor, endMajor)
	return models.PageFaultDelta{Minor: &minor, Major: &major}
}

func clampedDiff(start, end int64) int64 {
	if end < start {
		return 0
	}
	return end - start
}
