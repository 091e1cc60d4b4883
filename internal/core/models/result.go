package models

import "time"

// TimestampLayout is the ISO-8601 UTC layout used for result timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type Metrics struct {
	AllocationSeconds      float64 `json:"allocationSeconds"`
	AllocateAndFreeSeconds float64 `json:"allocateAndFreeSeconds"`
	WritesSeconds          float64 `json:"writesSeconds"`
	ReadsSeconds           float64 `json:"readsSeconds"`
	PageFaultsMinor        *int64  `json:"pageFaultsMinor"`
	PageFaultsMajor        *int64  `json:"pageFaultsMajor"`
}

// Result is the record persisted for every executed scenario.
type Result struct {
	ScenarioID     string  `json:"scenarioId"`
	SizeMb         int     `json:"sizeMb"`
	Iterations     int     `json:"iterations"`
	Metrics        Metrics `json:"metrics"`
	Timestamp      string  `json:"timestamp"`
	RuntimeVersion string  `json:"runtimeVersion"`
}

// FormatTimestamp renders t in the result timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// HistoryEntry is one result as stored in the append-only history log.
type HistoryEntry struct {
	RunID  string `json:"runId"`
	Host   string `json:"host,omitempty"`
	Result Result `json:"result"`
}
