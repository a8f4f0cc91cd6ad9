// Package formatting converts byte sizes between counts and human-readable
// strings such as "1MB".
package formatting

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

var bytesPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// FormatBytes renders n with the largest base-1024 unit that keeps the value
// at or above one, e.g. 1536 with precision 1 is "1.5 KB". Negative
// precision is treated as zero.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	size := float64(n)
	i := 0
	for (size >= 1024 || size <= -1024) && i < len(units)-1 {
		size /= 1024
		i++
	}

	if i == 0 {
		return strconv.FormatInt(n, 10) + " B"
	}
	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses a size such as "512", "64KB", "1.5 MiB", or "2g" into a
// byte count. Units are base-1024 and case-insensitive; the IEC "iB" form
// and single-letter forms are accepted, and a bare number is bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := normalizeUnit(matches[2])
	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", matches[2])
	}

	for range idx {
		value *= 1024
	}
	return int64(value), nil
}

func normalizeUnit(u string) string {
	u = strings.ToUpper(u)
	switch {
	case u == "":
		return "B"
	case len(u) == 3 && strings.HasSuffix(u, "IB"):
		return u[:1] + "B"
	case len(u) == 1 && u != "B":
		return u + "B"
	default:
		return u
	}
}
