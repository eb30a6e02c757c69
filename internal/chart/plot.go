package chart

import (
	"math"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// Point is a row projected into pixel space.
// Defined is false when either coordinate was missing.
type Point struct {
	X, Y    float64
	Defined bool
}

// Label is a text element placed on the canvas.
type Label struct {
	X, Y      float64
	Transform string
	FontSize  string
	Text      string
}

// Scales is the pair of mappings for one chart.
type Scales struct {
	X, Y Linear
}

// NewScales builds x and y scales over limits. The y domain is inverted so
// larger values plot higher. Empty limits fall back to a [0,1] domain.
func NewScales(limits core.AxisLimits) Scales {
	if limits.Empty {
		limits = core.AxisLimits{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	}
	return Scales{
		X: NewLinear(limits.XMin, limits.XMax, RangeStart, RangeEnd),
		Y: NewLinear(limits.YMax, limits.YMin, RangeStart, RangeEnd),
	}
}

// Project maps a row through the scales using the given fields.
func (s Scales) Project(row core.Row, xField, yField func(core.Row) float64) Point {
	x, y := s.X.Map(xField(row)), s.Y.Map(yField(row))
	return Point{X: x, Y: y, Defined: isFinite(x) && isFinite(y)}
}

// Axes lays out the bottom and left axes.
func (s Scales) Axes() (x, y Axis) {
	return NewAxis(Bottom, s.X, DefaultTickCount), NewAxis(Left, s.Y, DefaultTickCount)
}

// titleLabels places a chart title and its two axis labels.
func titleLabels(title string, xLabelX float64, xLabel, yLabel string) []Label {
	return []Label{
		{X: 120, Y: 40, FontSize: "14pt", Text: title},
		{X: xLabelX, Y: 490, FontSize: "10pt", Text: xLabel},
		{Transform: "translate(15, 300)rotate(-90)", FontSize: "10pt", Text: yLabel},
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
