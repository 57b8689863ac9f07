package catalog

import (
	"math"
	"strconv"
	"strings"
)

// ParseSize parses a field size attribute in invariant number format.
// Missing, unparsable and non-finite values yield 0.
func ParseSize(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	// invariant group separator
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
