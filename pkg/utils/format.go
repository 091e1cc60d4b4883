package util

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NotAvailable is printed in place of counters the platform did not supply.
const NotAvailable = "n/a"

// FormatSeconds renders a duration in seconds with four decimals, e.g. "0.0123 s".
func FormatSeconds(seconds float64) string {
	return fmt.Sprintf("%.4f s", seconds)
}

// FormatCount renders an optional counter.
func FormatCount(v *int64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatInt(*v, 10)
}

// FormatKeyValues renders "key: value" lines sorted by key.
func FormatKeyValues(info map[string]string) string {
	var builder strings.Builder
	keys := make([]string, 0, len(info))
	width := 0
	for k := range info {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(":")
		builder.WriteString(strings.Repeat(" ", width-len(k)+1))
		builder.WriteString(info[k])
		builder.WriteString("\n")
	}
	return builder.String()
}
