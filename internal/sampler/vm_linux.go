//go:build linux

package sampler

import (
	"os"
	"strconv"
	"strings"
)

// committedVirtualBytes reads the total program size from /proc/self/statm.
func committedVirtualBytes() (uint64, bool) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, false
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, false
	}
	pages, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return pages * uint64(os.Getpagesize()), true
}
