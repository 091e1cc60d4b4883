package runner

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/measure"
	"github.com/genc-murat/memprobe/internal/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs every call so tests can check ordering.
type recorder struct {
	calls []string
}

type fakeSampler struct {
	rec       *recorder
	snapshots []models.ResourceSnapshot
}

func (f *fakeSampler) Capture() models.ResourceSnapshot {
	f.rec.calls = append(f.rec.calls, "capture")
	snap := f.snapshots[0]
	f.snapshots = f.snapshots[1:]
	return snap
}

type fakeEngine struct {
	rec     *recorder
	seconds float64
	sizes   []int64
}

func (f *fakeEngine) record(op string, size int64) float64 {
	f.rec.calls = append(f.rec.calls, op)
	f.sizes = append(f.sizes, size)
	return f.seconds
}

func (f *fakeEngine) MeasureAllocation(size int64, _ int) float64 {
	return f.record("allocation", size)
}

func (f *fakeEngine) MeasureAllocateAndFree(size int64, _ int) float64 {
	return f.record("allocateAndFree", size)
}

func (f *fakeEngine) MeasureWrites(size int64, _ int) float64 {
	return f.record("writes", size)
}

func (f *fakeEngine) MeasureReads(size int64, _ int) float64 {
	return f.record("reads", size)
}

type collectSink struct {
	results []models.Result
}

func (c *collectSink) Add(r models.Result) {
	c.results = append(c.results, r)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRunOrdersOperations(t *testing.T) {
	rec := &recorder{}
	s := &fakeSampler{rec: rec, snapshots: []models.ResourceSnapshot{
		{MinorPageFaults: models.Known(100), MajorPageFaults: models.Known(1)},
		{MinorPageFaults: models.Known(160), MajorPageFaults: models.Known(1)},
	}}
	e := &fakeEngine{rec: rec, seconds: 0.25}
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.FixedZone("BRT", -3*3600))

	r := New(s, e, WithLogger(quietLogger()), WithClock(func() time.Time { return fixed }), WithRuntimeVersion("go-test"))
	result := r.Run(models.Scenario{ID: "small", SizeMb: 2, Iterations: 3})

	assert.Equal(t, []string{"capture", "allocation", "allocateAndFree", "writes", "reads", "capture"}, rec.calls)
	for _, size := range e.sizes {
		assert.Equal(t, measure.BytesFromMb(2), size)
	}

	assert.Equal(t, "small", result.ScenarioID)
	assert.Equal(t, 2, result.SizeMb)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, "2025-03-04T08:06:07.891Z", result.Timestamp)
	assert.Equal(t, "go-test", result.RuntimeVersion)
	assert.Equal(t, 0.25, result.Metrics.AllocationSeconds)
	require.NotNil(t, result.Metrics.PageFaultsMinor)
	require.NotNil(t, result.Metrics.PageFaultsMajor)
	assert.Equal(t, int64(60), *result.Metrics.PageFaultsMinor)
	assert.Equal(t, int64(0), *result.Metrics.PageFaultsMajor)
}

func TestRunWithoutFaultCounters(t *testing.T) {
	rec := &recorder{}
	s := &fakeSampler{rec: rec, snapshots: []models.ResourceSnapshot{{}, {}}}
	r := New(s, &fakeEngine{rec: rec, seconds: -1}, WithLogger(quietLogger()))

	result := r.Run(models.Scenario{ID: "x", SizeMb: 1, Iterations: 1})

	assert.Nil(t, result.Metrics.PageFaultsMinor)
	assert.Nil(t, result.Metrics.PageFaultsMajor)
	assert.Equal(t, 0.0, result.Metrics.ReadsSeconds, "timings are clamped at zero")
}

func TestRunAllIsSequentialAndFeedsSinks(t *testing.T) {
	rec := &recorder{}
	snaps := make([]models.ResourceSnapshot, 4)
	s := &fakeSampler{rec: rec, snapshots: snaps}
	r := New(s, &fakeEngine{rec: rec}, WithLogger(quietLogger()))

	scenarios := []models.Scenario{
		{ID: "first", SizeMb: 1, Iterations: 1},
		{ID: "second", SizeMb: 2, Iterations: 1},
	}
	a, b := &collectSink{}, &collectSink{}
	results := r.RunAll(scenarios, a, b)

	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ScenarioID)
	assert.Equal(t, "second", results[1].ScenarioID)
	assert.Equal(t, results, a.results)
	assert.Equal(t, results, b.results)

	// Each scenario is bracketed by its own pair of captures.
	assert.Equal(t, []string{
		"capture", "allocation", "allocateAndFree", "writes", "reads", "capture",
		"capture", "allocation", "allocateAndFree", "writes", "reads", "capture",
	}, rec.calls)
}

func TestRunEndToEnd(t *testing.T) {
	r := New(sampler.New(), measure.NewEngine(), WithLogger(quietLogger()))
	results := r.RunAll([]models.Scenario{{ID: "e2e", SizeMb: 1, Iterations: 2}})

	require.Len(t, results, 1)
	m := results[0].Metrics
	assert.GreaterOrEqual(t, m.AllocationSeconds, 0.0)
	assert.GreaterOrEqual(t, m.AllocateAndFreeSeconds, 0.0)
	assert.GreaterOrEqual(t, m.WritesSeconds, 0.0)
	assert.GreaterOrEqual(t, m.ReadsSeconds, 0.0)

	if m.PageFaultsMinor == nil {
		assert.Nil(t, m.PageFaultsMajor)
	} else {
		require.NotNil(t, m.PageFaultsMajor)
		assert.GreaterOrEqual(t, *m.PageFaultsMinor, int64(0))
		assert.GreaterOrEqual(t, *m.PageFaultsMajor, int64(0))
	}

	_, err := time.Parse(models.TimestampLayout, results[0].Timestamp)
	assert.NoError(t, err)
	assert.Equal(t, RuntimeVersion(), results[0].RuntimeVersion)
}
