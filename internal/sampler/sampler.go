// Package sampler captures process and Go runtime resource counters so that a
// benchmark can bracket its work with a before and after snapshot.
package sampler

import (
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/core/ports"
)

// GC cycle counters exposed by the runtime, one per collection trigger kind.
var gcCycleMetrics = []string{
	"/gc/cycles/automatic:gc-cycles",
	"/gc/cycles/forced:gc-cycles",
}

type Sampler struct {
	faults  ports.FaultCounter
	started time.Time
}

type Option func(*Sampler)

// WithFaultCounter overrides the detected fault counter.
func WithFaultCounter(fc ports.FaultCounter) Option {
	return func(s *Sampler) {
		s.faults = fc
	}
}

// New creates a sampler. The fault counter is chosen once here and reused for
// every snapshot.
func New(opts ...Option) *Sampler {
	s := &Sampler{started: time.Now()}
	for _, opt := range opts {
		opt(s)
	}
	if s.faults == nil {
		s.faults = DetectFaultCounter()
	}
	return s
}

// FaultCounterName reports which fault counter backs this sampler.
func (s *Sampler) FaultCounterName() string {
	return s.faults.Name()
}

// Capture never fails; counters the host cannot supply come back unavailable.
func (s *Sampler) Capture() models.ResourceSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := models.ResourceSnapshot{
		CapturedAtNanos:       time.Since(s.started).Nanoseconds(),
		CommittedVirtualBytes: ms.Sys,
		UsedHeapBytes:         ms.HeapAlloc,
		TotalHeapBytes:        ms.HeapSys,
		GCCollections:         gcCollections(uint64(ms.NumGC)),
		GCTimeMillis:          ms.PauseTotalNs / uint64(time.Millisecond),
	}
	if vm, ok := committedVirtualBytes(); ok {
		snap.CommittedVirtualBytes = vm
	}
	snap.MinorPageFaults, snap.MajorPageFaults = s.readFaults()
	return snap
}

func (s *Sampler) readFaults() (minor, major models.Count) {
	defer func() {
		if r := recover(); r != nil {
			minor, major = models.Unavailable, models.Unavailable
		}
	}()
	return s.faults.Faults()
}

// gcCollections sums the cycle counters of every collection kind the runtime
// reports. Unsupported metrics are skipped; if none is supported the MemStats
// count is used.
func gcCollections(fallback uint64) uint64 {
	samples := make([]metrics.Sample, len(gcCycleMetrics))
	for i, name := range gcCycleMetrics {
		samples[i].Name = name
	}
	metrics.Read(samples)

	var total uint64
	seen := false
	for _, sample := range samples {
		if sample.Value.Kind() != metrics.KindUint64 {
			continue
		}
		total += sample.Value.Uint64()
		seen = true
	}
	if !seen {
		return fallback
	}
	return total
}
