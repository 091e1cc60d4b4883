// Package runner executes scenarios one at a time and turns each into a result
// record.
package runner

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/core/ports"
	"github.com/genc-murat/memprobe/internal/measure"
	"github.com/genc-murat/memprobe/internal/sampler"
)

// Runner is not safe for concurrent use. Scenarios must not overlap, otherwise
// a snapshot pair would include another scenario's memory activity.
type Runner struct {
	sampler ports.Sampler
	engine  ports.Engine
	logger  *slog.Logger
	now     func() time.Time
	version string
}

type Option func(*Runner)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func WithRuntimeVersion(version string) Option {
	return func(r *Runner) {
		r.version = version
	}
}

func New(s ports.Sampler, e ports.Engine, opts ...Option) *Runner {
	r := &Runner{
		sampler: s,
		engine:  e,
		logger:  slog.Default(),
		now:     time.Now,
		version: RuntimeVersion(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeVersion describes the Go runtime and platform the benchmark runs on.
func RuntimeVersion() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Run measures one scenario. The four operations always run in the same order:
// allocation, allocate-and-free, writes, reads.
func (r *Runner) Run(s models.Scenario) models.Result {
	sizeBytes := measure.BytesFromMb(s.SizeMb)
	r.logger.Info("running scenario", "scenario", s.ID, "sizeMb", s.SizeMb, "iterations", s.Iterations)

	start := r.sampler.Capture()

	allocation := r.engine.MeasureAllocation(sizeBytes, s.Iterations)
	allocateAndFree := r.engine.MeasureAllocateAndFree(sizeBytes, s.Iterations)
	writes := r.engine.MeasureWrites(sizeBytes, s.Iterations)
	reads := r.engine.MeasureReads(sizeBytes, s.Iterations)

	end := r.sampler.Capture()
	faults := sampler.ComputePageFaultDelta(start, end)

	r.logger.Debug("scenario resources",
		"scenario", s.ID,
		"elapsedNanos", end.CapturedAtNanos-start.CapturedAtNanos,
		"gcCollections", end.GCCollections-min(start.GCCollections, end.GCCollections),
		"committedVirtualBytes", end.CommittedVirtualBytes,
		"usedHeapBytes", end.UsedHeapBytes)

	return models.Result{
		ScenarioID: s.ID,
		SizeMb:     s.SizeMb,
		Iterations: s.Iterations,
		Metrics: models.Metrics{
			AllocationSeconds:      nonNegative(allocation),
			AllocateAndFreeSeconds: nonNegative(allocateAndFree),
			WritesSeconds:          nonNegative(writes),
			ReadsSeconds:           nonNegative(reads),
			PageFaultsMinor:        faults.Minor,
			PageFaultsMajor:        faults.Major,
		},
		Timestamp:      models.FormatTimestamp(r.now()),
		RuntimeVersion: r.version,
	}
}

// RunAll runs scenarios sequentially in the given order. Each result is handed
// to every sink before the next scenario starts.
func (r *Runner) RunAll(scenarios []models.Scenario, sinks ...ports.ResultSink) []models.Result {
	results := make([]models.Result, 0, len(scenarios))
	for _, s := range scenarios {
		result := r.Run(s)
		for _, sink := range sinks {
			sink.Add(result)
		}
		results = append(results, result)
	}
	return results
}

func nonNegative(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	return seconds
}
