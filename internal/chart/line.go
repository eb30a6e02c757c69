package chart

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// Line chart text.
const (
	LineTitle  = "Life Expectancy Over Time"
	LineXLabel = "Year"
	LineYLabel = "Life Expectancy (years)"
)

// Line stroke styling.
const (
	LineStroke = "steelblue"
	LineFill   = "white"
)

// LineChart is one country's life expectancy by year.
type LineChart struct {
	Country string
	Rows    int
	Limits  core.AxisLimits
	XAxis   Axis
	YAxis   Axis
	Points  []Point
	Path    string
	Labels  []Label
}

// NewLineChart builds the chart for rows already filtered to country.
// Limits are computed from exactly these rows.
func NewLineChart(country string, rows []core.Row) LineChart {
	limits := core.LimitsFor(rows, core.Year, core.LifeExpectancy)
	scales := NewScales(limits)

	points := make([]Point, len(rows))
	for i, row := range rows {
		points[i] = scales.Project(row, core.Year, core.LifeExpectancy)
	}

	xAxis, yAxis := scales.Axes()
	return LineChart{
		Country: country,
		Rows:    len(rows),
		Limits:  limits,
		XAxis:   xAxis,
		YAxis:   yAxis,
		Points:  points,
		Path:    linePath(points),
		Labels:  titleLabels(LineTitle, 250, LineXLabel, LineYLabel),
	}
}

// LineChartFor filters ds to country and builds its chart.
func LineChartFor(ds *core.Dataset, country string) (LineChart, error) {
	rows, err := ds.CountryRows(country)
	if err != nil {
		return LineChart{}, err
	}
	return NewLineChart(country, rows), nil
}

// Tooltip is the caption app.js shows above the scatter plot while the
// pointer is over the line.
func (c LineChart) Tooltip() string {
	if c.Limits.Empty {
		return c.Country
	}
	return fmt.Sprintf("%s: %s, life expectancy %s",
		c.Country, span(c.Limits.XMin, c.Limits.XMax), span(c.Limits.YMin, c.Limits.YMax))
}

func span(lo, hi float64) string {
	if lo == hi {
		return core.FormatNumber(lo)
	}
	return core.FormatNumber(lo) + "-" + core.FormatNumber(hi)
}

// linePath joins points in order. An undefined point ends the current
// segment; the next defined point starts a new one.
func linePath(points []Point) string {
	var b strings.Builder
	inSegment := false
	for _, p := range points {
		if !p.Defined {
			inSegment = false
			continue
		}
		if inSegment {
			b.WriteString("L")
		} else {
			b.WriteString("M")
			inSegment = true
		}
		b.WriteString(coord(p.X))
		b.WriteString(",")
		b.WriteString(coord(p.Y))
	}
	return b.String()
}
