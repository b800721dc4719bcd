package utils

import (
	"strconv"
	"strings"
)

func ParseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)

	// format: 1.234,56
	if strings.Contains(raw, ".") && strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
		return strconv.ParseFloat(raw, 64)
	}

	// format: 35,000 (ribuan)
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		if len(parts[len(parts)-1]) == 3 {
			raw = strings.ReplaceAll(raw, ",", "")
			return strconv.ParseFloat(raw, 64)
		}

		// format: 0,01 (desimal)
		raw = strings.ReplaceAll(raw, ",", ".")
	}

	return strconv.ParseFloat(raw, 64)
}

// ToFloat is the permissive cast the feed rows use: anything that does
// not parse becomes the fallback instead of failing the row.
func ToFloat(raw string, fallback float64) float64 {
	v, err := ParseNumber(raw)
	if err != nil {
		return fallback
	}
	return v
}

func ToInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
