// Package metrics exposes benchmark results as Prometheus series that can be
// written to a node_exporter textfile.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/genc-murat/memprobe/internal/core/models"
)

const namespace = "memprobe"

// Operation label values, one per timed phase.
const (
	OpAllocation      = "allocation"
	OpAllocateAndFree = "allocate_and_free"
	OpWrites          = "writes"
	OpReads           = "reads"
)

// Recorder collects results into its own registry. It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry
	now      func() time.Time

	operationSeconds *prometheus.GaugeVec
	pageFaults       *prometheus.GaugeVec
	scenariosTotal   prometheus.Counter
	lastRun          prometheus.Gauge

	mu       sync.Mutex
	recorded int
}

func NewRecorder() *Recorder {
	return newRecorder(time.Now)
}

func newRecorder(now func() time.Time) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		now:      now,
		operationSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "operation_seconds",
			Help:      "Elapsed seconds spent in a timed operation of the last run of a scenario.",
		}, []string{"scenario", "operation"}),
		pageFaults: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "page_faults",
			Help:      "Page faults observed during the last run of a scenario.",
		}, []string{"scenario", "kind"}),
		scenariosTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_total",
			Help:      "Number of scenarios executed.",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the most recently recorded scenario.",
		}),
	}
}

// Add records one result. Fault series are only set when the platform supplied
// the counters.
func (r *Recorder) Add(result models.Result) {
	m := result.Metrics
	id := result.ScenarioID

	r.operationSeconds.WithLabelValues(id, OpAllocation).Set(m.AllocationSeconds)
	r.operationSeconds.WithLabelValues(id, OpAllocateAndFree).Set(m.AllocateAndFreeSeconds)
	r.operationSeconds.WithLabelValues(id, OpWrites).Set(m.WritesSeconds)
	r.operationSeconds.WithLabelValues(id, OpReads).Set(m.ReadsSeconds)

	if m.PageFaultsMinor != nil {
		r.pageFaults.WithLabelValues(id, "minor").Set(float64(*m.PageFaultsMinor))
	}
	if m.PageFaultsMajor != nil {
		r.pageFaults.WithLabelValues(id, "major").Set(float64(*m.PageFaultsMajor))
	}

	r.scenariosTotal.Inc()
	r.lastRun.Set(float64(r.now().UnixNano()) / float64(time.Second))

	r.mu.Lock()
	r.recorded++
	r.mu.Unlock()
}

func (r *Recorder) Recorded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorded
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the registry in the text exposition format. The file is
// replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return &models.PersistenceError{Path: path, Err: fmt.Errorf("error writing metrics: %w", err)}
	}
	return nil
}
