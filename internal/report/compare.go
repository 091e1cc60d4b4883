package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// TimingMetric names one of the four timed operations in a report.
type TimingMetric struct {
	Key   string
	Label string
}

// TimingMetrics lists the timed operations in execution order.
var TimingMetrics = []TimingMetric{
	{Key: "allocationSeconds", Label: "Allocation"},
	{Key: "allocateAndFreeSeconds", Label: "Allocate + free"},
	{Key: "writesSeconds", Label: "Writes"},
	{Key: "readsSeconds", Label: "Reads"},
}

// Reports written by earlier tools carry the runtime under a different key.
var versionKeys = []string{"runtimeVersion", "javaVersion", "nodeVersion"}

var errNotArray = errors.New("report is not a JSON array")

type MetricComparison struct {
	Metric    TimingMetric
	Baseline  *float64
	Candidate *float64
}

// Speedup is baseline/candidate; ok is false when either side is missing or zero.
func (m MetricComparison) Speedup() (float64, bool) {
	if m.Baseline == nil || m.Candidate == nil || *m.Baseline <= 0 || *m.Candidate <= 0 {
		return 0, false
	}
	return *m.Baseline / *m.Candidate, true
}

// Verdict describes which side was faster and by how much.
func (m MetricComparison) Verdict() string {
	speedup, ok := m.Speedup()
	switch {
	case !ok:
		return "n/a"
	case speedup > 1:
		return fmt.Sprintf("candidate %.2fx faster", speedup)
	case speedup < 1:
		return fmt.Sprintf("baseline %.2fx faster", 1/speedup)
	default:
		return "equal"
	}
}

type ScenarioComparison struct {
	ScenarioID     string
	SizeMb         int64
	Iterations     int64
	Metrics        []MetricComparison
	BaselineMinor  *int64
	BaselineMajor  *int64
	CandidateMinor *int64
	CandidateMajor *int64
}

type Comparison struct {
	BaselineVersion  string
	CandidateVersion string
	Scenarios        []ScenarioComparison
	Averages         []MetricComparison
	BaselineWins     int
	CandidateWins    int
}

// CompareFiles loads two report documents and compares them.
func CompareFiles(baselinePath, candidatePath string) (*Comparison, error) {
	baseline, err := os.ReadFile(baselinePath)
	if err != nil {
		return nil, fmt.Errorf("error reading baseline report: %w", err)
	}
	candidate, err := os.ReadFile(candidatePath)
	if err != nil {
		return nil, fmt.Errorf("error reading candidate report: %w", err)
	}
	return Compare(baseline, candidate)
}

// Compare pairs scenarios by id. When the two reports share no id at all they
// are paired by position instead.
func Compare(baseline, candidate []byte) (*Comparison, error) {
	base, err := parseReport(baseline)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}
	cand, err := parseReport(candidate)
	if err != nil {
		return nil, fmt.Errorf("candidate: %w", err)
	}

	c := &Comparison{
		BaselineVersion:  reportVersion(base),
		CandidateVersion: reportVersion(cand),
	}

	for _, p := range pairResults(base, cand) {
		c.Scenarios = append(c.Scenarios, compareScenario(p[0], p[1]))
	}
	c.summarize()
	return c, nil
}

func parseReport(data []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errNotArray
	}
	return doc.Array(), nil
}

func reportVersion(results []gjson.Result) string {
	if len(results) == 0 {
		return ""
	}
	for _, key := range versionKeys {
		if v := results[0].Get(key); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func pairResults(base, cand []gjson.Result) [][2]gjson.Result {
	byID := make(map[string]gjson.Result, len(cand))
	for _, r := range cand {
		id := r.Get("scenarioId").String()
		if _, dup := byID[id]; !dup {
			byID[id] = r
		}
	}

	var pairs [][2]gjson.Result
	for _, r := range base {
		if match, ok := byID[r.Get("scenarioId").String()]; ok {
			pairs = append(pairs, [2]gjson.Result{r, match})
		}
	}
	if len(pairs) > 0 {
		return pairs
	}

	for i := 0; i < min(len(base), len(cand)); i++ {
		pairs = append(pairs, [2]gjson.Result{base[i], cand[i]})
	}
	return pairs
}

func compareScenario(base, cand gjson.Result) ScenarioComparison {
	sc := ScenarioComparison{
		ScenarioID:     base.Get("scenarioId").String(),
		SizeMb:         base.Get("sizeMb").Int(),
		Iterations:     base.Get("iterations").Int(),
		BaselineMinor:  optionalInt(base.Get("metrics.pageFaultsMinor")),
		BaselineMajor:  optionalInt(base.Get("metrics.pageFaultsMajor")),
		CandidateMinor: optionalInt(cand.Get("metrics.pageFaultsMinor")),
		CandidateMajor: optionalInt(cand.Get("metrics.pageFaultsMajor")),
	}
	for _, m := range TimingMetrics {
		sc.Metrics = append(sc.Metrics, MetricComparison{
			Metric:    m,
			Baseline:  optionalFloat(base.Get("metrics." + m.Key)),
			Candidate: optionalFloat(cand.Get("metrics." + m.Key)),
		})
	}
	return sc
}

// summarize averages each metric over the scenarios that report it and tallies
// which side has the lower average.
func (c *Comparison) summarize() {
	for i, m := range TimingMetrics {
		var baseSum, candSum float64
		var baseN, candN int
		for _, sc := range c.Scenarios {
			if v := sc.Metrics[i].Baseline; v != nil {
				baseSum += *v
				baseN++
			}
			if v := sc.Metrics[i].Candidate; v != nil {
				candSum += *v
				candN++
			}
		}

		avg := MetricComparison{Metric: m}
		if baseN > 0 {
			v := baseSum / float64(baseN)
			avg.Baseline = &v
		}
		if candN > 0 {
			v := candSum / float64(candN)
			avg.Candidate = &v
		}
		c.Averages = append(c.Averages, avg)

		if avg.Baseline == nil || avg.Candidate == nil {
			continue
		}
		switch {
		case *avg.Candidate < *avg.Baseline:
			c.CandidateWins++
		case *avg.Baseline < *avg.Candidate:
			c.BaselineWins++
		}
	}
}

func optionalFloat(r gjson.Result) *float64 {
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Float()
	return &v
}

func optionalInt(r gjson.Result) *int64 {
	if r.Type != gjson.Number {
		return nil
	}
	v := r.Int()
	return &v
}
