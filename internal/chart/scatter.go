package chart

import "github.com/JonMunkholm/lifecharts/internal/core"

// Scatter plot text.
const (
	ScatterTitle  = "Fertility Rate by Life Expectancy"
	ScatterXLabel = "Fertility Rate"
	ScatterYLabel = "Life Expectancy"
)

// Scatter point styling.
const (
	PointRadius = 3
	PointFill   = "#4286f4"
)

// ScatterPlot is fertility rate against life expectancy for every row.
type ScatterPlot struct {
	Limits core.AxisLimits
	XAxis  Axis
	YAxis  Axis
	Points []Point
	Labels []Label
}

// NewScatterPlot builds the plot over all rows, one point per row. Rows
// with a missing value keep an undefined point so the count never changes.
func NewScatterPlot(rows []core.Row) ScatterPlot {
	limits := core.LimitsFor(rows, core.FertilityRate, core.LifeExpectancy)
	scales := NewScales(limits)

	points := make([]Point, len(rows))
	for i, row := range rows {
		points[i] = scales.Project(row, core.FertilityRate, core.LifeExpectancy)
	}

	xAxis, yAxis := scales.Axes()
	return ScatterPlot{
		Limits: limits,
		XAxis:  xAxis,
		YAxis:  yAxis,
		Points: points,
		Labels: titleLabels(ScatterTitle, 225, ScatterXLabel, ScatterYLabel),
	}
}
