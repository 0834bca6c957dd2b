package score

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	amountCleanRe = regexp.MustCompile(`[^0-9.MBK]`)
	amountNumRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseAmount parses a free-text money string ("$5M", "$1B", "$500K")
// into millions of USD. It is total: malformed or empty input yields
// 0.0, never an error. The first decimal number in the cleaned string
// wins; unit suffixes B/M/K scale to millions, and a bare number is
// treated as already-millions.
func ParseAmount(raw string) float64 {
	if raw == "" {
		return 0.0
	}

	clean := amountCleanRe.ReplaceAllString(strings.ToUpper(raw), "")
	match := amountNumRe.FindString(clean)
	if match == "" {
		return 0.0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(clean, "B") || strings.Contains(lower, "billion"):
		return value * 1000
	case strings.Contains(clean, "M") || strings.Contains(lower, "million"):
		return value
	case strings.Contains(clean, "K") || strings.Contains(lower, "thousand"):
		return value / 1000
	default:
		// No unit: assume millions.
		return value
	}
}
