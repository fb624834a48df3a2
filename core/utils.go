package core

import (
	"math"
	"strings"
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Round2 rounds half away from zero to 2 decimal places.
// All derived percentages (grades, attendance, averages) go through this.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
