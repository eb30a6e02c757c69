package core

// convert.go coerces CSV cells to numbers.
//
// Cells come from hand-edited spreadsheets as often as from exports, so the
// coercion tolerates the usual artifacts:
//   - Surrounding whitespace and quotes left over from re-exports
//   - Thousands separators ("1,234.5")
//   - Excel formula prefixes (="2001")
//
// Anything else that is not a plain decimal or scientific number becomes NaN,
// which the limit and render code treats as a missing value.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// groupedRegex matches comma thousands grouping. Any other comma is invalid.
var groupedRegex = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// ToNumber converts a cell to float64, returning NaN for blank or invalid input.
func ToNumber(s string) float64 {
	s = cleanCell(s)
	if s == "" {
		return math.NaN()
	}

	if strings.Contains(s, ",") {
		if !groupedRegex.MatchString(s) {
			return math.NaN()
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if !numericRegex.MatchString(s) {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToText trims a text cell and strips spreadsheet artifacts.
func ToText(s string) string {
	return cleanCell(s)
}

// cleanCell removes whitespace, wrapping quotes and an Excel ="..." prefix.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// FormatNumber renders a value for JSON-free text output (CLI, tooltips).
// NaN prints as "NaN" so missing values stay visible.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
