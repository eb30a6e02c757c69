package chart

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// tickPrinter groups thousands in tick labels ("2,000").
// Labels are always English; localized axes are out of scope.
var tickPrinter = message.NewPrinter(language.English)

// TickFormatter returns a label formatter whose precision matches step,
// so a 0.1 step prints one decimal and a whole step prints none.
func TickFormatter(step float64) func(float64) string {
	precision := 0
	if step > 0 && !math.IsInf(step, 0) {
		precision = int(math.Max(0, -math.Floor(math.Log10(step))))
		// Steps like 0.25 or 2.5 need one more digit than their exponent.
		for precision < 10 && !isWhole(step*math.Pow(10, float64(precision))) {
			precision++
		}
	}
	format := "%." + strconv.Itoa(precision) + "f"
	return func(v float64) string {
		if v == 0 {
			v = 0 // drop negative zero
		}
		return tickPrinter.Sprintf(format, v)
	}
}

func isWhole(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}

// coord formats an SVG coordinate with at most three decimals.
func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// translate formats an SVG translate transform.
func translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", coord(x), coord(y))
}
