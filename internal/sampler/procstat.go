package sampler

import (
	"os"
	"strconv"
	"strings"

	"github.com/genc-murat/memprobe/internal/core/models"
)

// ProcSelfStat is the Linux per-process statistics file.
const ProcSelfStat = "/proc/self/stat"

// Zero-based field positions in /proc/<pid>/stat.
const (
	statFieldMinorFaults = 9
	statFieldMajorFaults = 11
)

// ProcStatCounter reads fault counters from a proc(5) stat file.
type ProcStatCounter struct {
	path string
}

func NewProcStatCounter(path string) *ProcStatCounter {
	return &ProcStatCounter{path: path}
}

func (p *ProcStatCounter) Name() string { return "procstat" }

func (p *ProcStatCounter) Faults() (minor, major models.Count) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return models.Unavailable, models.Unavailable
	}
	return ParseProcStat(string(data))
}

func (p *ProcStatCounter) supported() bool {
	minor, major := p.Faults()
	return minor.Available() && major.Available()
}

// ParseProcStat extracts minflt and majflt from the contents of a stat file.
// The command name is parenthesised and may contain spaces, so fields are
// counted from the closing parenthesis when one is present. Any malformed or
// negative field makes both counters unavailable.
func ParseProcStat(content string) (minor, major models.Count) {
	fields := statFields(content)
	if len(fields) <= statFieldMajorFaults {
		return models.Unavailable, models.Unavailable
	}

	minFlt, err := strconv.ParseInt(fields[statFieldMinorFaults], 10, 64)
	if err != nil || minFlt < 0 {
		return models.Unavailable, models.Unavailable
	}
	majFlt, err := strconv.ParseInt(fields[statFieldMajorFaults], 10, 64)
	if err != nil || majFlt < 0 {
		return models.Unavailable, models.Unavailable
	}
	return models.Known(minFlt), models.Known(majFlt)
}

// statFields splits a stat line so that index i is field i of proc(5).
func statFields(content string) []string {
	end := strings.LastIndexByte(content, ')')
	if end < 0 {
		return strings.Fields(content)
	}
	start := strings.IndexByte(content, '(')
	if start < 0 || start > end {
		return strings.Fields(content)
	}

	head := strings.Fields(content[:start])
	if len(head) != 1 {
		return nil
	}
	fields := []string{head[0], content[start : end+1]}
	return append(fields, strings.Fields(content[end+1:])...)
}
