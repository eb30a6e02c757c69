package core

import "math"

// AxisLimits holds the data domain of a two-axis chart.
// Empty is set when either axis had no finite value.
type AxisLimits struct {
	XMin  float64 `json:"x_min"`
	XMax  float64 `json:"x_max"`
	YMin  float64 `json:"y_min"`
	YMax  float64 `json:"y_max"`
	Empty bool    `json:"empty"`
}

// FindMinMax computes the limits of x and y independently.
// NaN and infinite values are skipped.
func FindMinMax(x, y []float64) AxisLimits {
	xMin, xMax, xOK := minMax(x)
	yMin, yMax, yOK := minMax(y)
	if !xOK || !yOK {
		return AxisLimits{Empty: true}
	}
	return AxisLimits{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

// LimitsFor is FindMinMax over two fields of rows.
func LimitsFor(rows []Row, xField, yField func(Row) float64) AxisLimits {
	return FindMinMax(Column(rows, xField), Column(rows, yField))
}

func minMax(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}
