package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/core/ports"
)

var _ ports.History = (*History)(nil)

func entry(run, scenario string) models.HistoryEntry {
	minor := int64(12)
	return models.HistoryEntry{
		RunID: run,
		Host:  "bench",
		Result: models.Result{
			ScenarioID: scenario,
			SizeMb:     1,
			Iterations: 2,
			Metrics:    models.Metrics{AllocationSeconds: 0.25, PageFaultsMinor: &minor},
			Timestamp:  "2025-01-01T00:00:00.000Z",
		},
	}
}

func readAll(t *testing.T, h *History) []models.HistoryEntry {
	t.Helper()
	var got []models.HistoryEntry
	require.NoError(t, h.Read(func(e models.HistoryEntry) {
		got = append(got, e)
	}))
	return got
}

func TestHistoryMissingFileIsEmpty(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "history.jsonl"))
	assert.Empty(t, readAll(t, h))
}

func TestHistoryAppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "history.jsonl")
	h := NewHistory(path)

	require.NoError(t, h.Append(entry("run-1", "small"), entry("run-1", "large")))
	require.NoError(t, h.Append())
	require.NoError(t, h.Append(entry("run-2", "small")))

	got := readAll(t, h)
	require.Len(t, got, 3)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.Equal(t, "large", got[1].Result.ScenarioID)
	assert.Equal(t, "run-2", got[2].RunID)
	assert.Equal(t, int64(12), *got[2].Result.Metrics.PageFaultsMinor)
	assert.Nil(t, got[2].Result.Metrics.PageFaultsMajor)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"))
}

func TestHistoryReopenedLogKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, NewHistory(path).Append(entry("a", "x")))
	require.NoError(t, NewHistory(path).Append(entry("b", "y")))

	got := readAll(t, NewHistory(path))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].RunID)
}

func TestHistoryConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, NewHistory(path).Append(entry("run", "s")))
		}()
	}
	wg.Wait()

	assert.Len(t, readAll(t, NewHistory(path)), 8)
}

func TestHistoryCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"runId\":\"ok\"}\nnot json\n"), 0o644))

	var seen int
	err := NewHistory(path).Read(func(models.HistoryEntry) { seen++ })
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":2:")
	assert.Equal(t, 1, seen)
}
