package util

import (
	"errors"
	"strconv"
	"strings"
)

var errNotPositive = errors.New("must be a positive integer")

// ParsePositiveInt parses a base-10 integer greater than zero.
func ParsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// ParseBool accepts the strconv spellings; bare command line flags arrive as "true".
func ParseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// SplitList splits a comma-separated value and trims every item.
// Empty items are kept so callers can reject them.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
