package models

import "strconv"

// Count is a counter reading that may be unavailable on the host platform.
// The zero value is Unavailable, which is distinct from a known zero.
type Count struct {
	value int64
	known bool
}

// Unavailable marks a counter the platform cannot supply.
var Unavailable = Count{}

// Known wraps a counter value read from the OS.
func Known(v int64) Count {
	return Count{value: v, known: true}
}

func (c Count) Value() (int64, bool) {
	return c.value, c.known
}

func (c Count) Available() bool {
	return c.known
}

func (c Count) String() string {
	if !c.known {
		return "unavailable"
	}
	return strconv.FormatInt(c.value, 10)
}

// ResourceSnapshot is a point-in-time reading of process and runtime counters.
type ResourceSnapshot struct {
	CapturedAtNanos       int64
	CommittedVirtualBytes uint64
	UsedHeapBytes         uint64
	TotalHeapBytes        uint64
	GCCollections         uint64
	GCTimeMillis          uint64
	MinorPageFaults       Count
	MajorPageFaults       Count
}

// PageFaultDelta is the fault activity between two snapshots.
// Both fields are nil when either snapshot lacked fault counters.
type PageFaultDelta struct {
	Minor *int64
	Major *int64
}
