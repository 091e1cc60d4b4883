package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/genc-murat/memprobe/internal/core/models"
	util "github.com/genc-murat/memprobe/pkg/utils"
)

var (
	colorTeal   = lipgloss.Color("#20B9B4")
	colorBright = lipgloss.Color("#2CD7C7")
	colorSlate  = lipgloss.Color("#2C4A54")
)

// IsTerminal reports whether f is an interactive terminal, in which case output
// is styled.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Renderer prints results as console tables.
type Renderer struct {
	out    io.Writer
	styled bool
	title  lipgloss.Style
}

func NewRenderer(out io.Writer, styled bool) *Renderer {
	r := &Renderer{out: out, styled: styled, title: lipgloss.NewStyle()}
	if styled {
		r.title = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	}
	return r
}

// Add prints the table of a single finished scenario.
func (r *Renderer) Add(result models.Result) {
	m := result.Metrics
	t := r.newTable().
		Headers("Metric", "Value").
		Row("Allocation", util.FormatSeconds(m.AllocationSeconds)).
		Row("Allocate + free", util.FormatSeconds(m.AllocateAndFreeSeconds)).
		Row("Writes", util.FormatSeconds(m.WritesSeconds)).
		Row("Reads", util.FormatSeconds(m.ReadsSeconds)).
		Row("Page faults (minor)", util.FormatCount(m.PageFaultsMinor)).
		Row("Page faults (major)", util.FormatCount(m.PageFaultsMajor))

	title := fmt.Sprintf("Scenario %s (%d MB x %d iterations)", result.ScenarioID, result.SizeMb, result.Iterations)
	fmt.Fprintln(r.out, r.title.Render(title))
	fmt.Fprintln(r.out, t.Render())
}

// Summary prints one row per result.
func (r *Renderer) Summary(results []models.Result) {
	t := r.newTable().Headers("Scenario", "MB", "Iter", "Alloc", "Alloc+free", "Writes", "Reads", "Minor", "Major")
	for _, res := range results {
		m := res.Metrics
		t.Row(
			res.ScenarioID,
			strconv.Itoa(res.SizeMb),
			strconv.Itoa(res.Iterations),
			util.FormatSeconds(m.AllocationSeconds),
			util.FormatSeconds(m.AllocateAndFreeSeconds),
			util.FormatSeconds(m.WritesSeconds),
			util.FormatSeconds(m.ReadsSeconds),
			util.FormatCount(m.PageFaultsMinor),
			util.FormatCount(m.PageFaultsMajor),
		)
	}
	fmt.Fprintln(r.out, r.title.Render("Summary"))
	fmt.Fprintln(r.out, t.Render())
}

// Comparison prints a per-scenario breakdown followed by the averaged summary.
func (r *Renderer) Comparison(c *Comparison) {
	fmt.Fprintln(r.out, r.title.Render("Versions"))
	fmt.Fprint(r.out, util.FormatKeyValues(map[string]string{
		"baseline":  orNA(c.BaselineVersion),
		"candidate": orNA(c.CandidateVersion),
	}))

	for _, sc := range c.Scenarios {
		t := r.newTable().Headers("Metric", "Baseline", "Candidate", "Comparison")
		for _, mc := range sc.Metrics {
			t.Row(mc.Metric.Label, formatOptionalSeconds(mc.Baseline), formatOptionalSeconds(mc.Candidate), mc.Verdict())
		}
		t.Row("Page faults (minor)", util.FormatCount(sc.BaselineMinor), util.FormatCount(sc.CandidateMinor), "")
		t.Row("Page faults (major)", util.FormatCount(sc.BaselineMajor), util.FormatCount(sc.CandidateMajor), "")

		title := fmt.Sprintf("Scenario %s (%d MB x %d iterations)", sc.ScenarioID, sc.SizeMb, sc.Iterations)
		fmt.Fprintln(r.out, r.title.Render(title))
		fmt.Fprintln(r.out, t.Render())
	}

	t := r.newTable().Headers("Average", "Baseline", "Candidate", "Comparison")
	for _, avg := range c.Averages {
		t.Row(avg.Metric.Label, formatOptionalSeconds(avg.Baseline), formatOptionalSeconds(avg.Candidate), avg.Verdict())
	}
	fmt.Fprintln(r.out, r.title.Render("Performance summary"))
	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintf(r.out, "Score: baseline %d x %d candidate\n", c.BaselineWins, c.CandidateWins)
}

// History prints stored entries oldest first.
func (r *Renderer) History(entries []models.HistoryEntry) {
	t := r.newTable().Headers("Timestamp", "Run", "Host", "Scenario", "Alloc", "Alloc+free", "Writes", "Reads", "Minor", "Major")
	for _, e := range entries {
		m := e.Result.Metrics
		t.Row(
			e.Result.Timestamp,
			shortID(e.RunID),
			e.Host,
			e.Result.ScenarioID,
			util.FormatSeconds(m.AllocationSeconds),
			util.FormatSeconds(m.AllocateAndFreeSeconds),
			util.FormatSeconds(m.WritesSeconds),
			util.FormatSeconds(m.ReadsSeconds),
			util.FormatCount(m.PageFaultsMinor),
			util.FormatCount(m.PageFaultsMajor),
		)
	}
	fmt.Fprintln(r.out, t.Render())
}

func (r *Renderer) newTable() *table.Table {
	t := table.New().Border(lipgloss.NormalBorder())
	if !r.styled {
		return t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(colorTeal).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return t.
		BorderStyle(lipgloss.NewStyle().Foreground(colorSlate)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

func formatOptionalSeconds(v *float64) string {
	if v == nil {
		return util.NotAvailable
	}
	return util.FormatSeconds(*v)
}

func orNA(s string) string {
	if s == "" {
		return util.NotAvailable
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
