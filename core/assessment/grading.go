package assessment

import (
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var ErrInvalidMarks = errors.New("max marks must be greater than zero")

// gradeBands maps a percentage to a letter by descending inclusive floors;
// first match wins, anything below the last band is an F.
var gradeBands = []struct {
	floor  float64
	letter string
}{
	{95, "A+"},
	{90, "A"},
	{85, "B+"},
	{80, "B"},
	{75, "C+"},
	{70, "C"},
	{60, "D"},
}

// ComputeGrade derives the percentage (rounded half away from zero to 2
// decimals) and letter grade from raw marks. It performs no clamping: out of
// range marks yield percentages outside [0, 100] graded under the same table.
func ComputeGrade(marksObtained, maxMarks float64) (float64, string, error) {
	if maxMarks <= 0 {
		return 0, "", ErrInvalidMarks
	}
	pct := core.Round2(marksObtained / maxMarks * 100)
	return pct, LetterFor(pct), nil
}

// LetterFor classifies a percentage per the fixed threshold table.
func LetterFor(pct float64) string {
	for _, band := range gradeBands {
		if pct >= band.floor {
			return band.letter
		}
	}
	return "F"
}
