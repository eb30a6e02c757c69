package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// ErrNothingToRender is returned when no row has both coordinates.
var ErrNothingToRender = errors.New("no plottable values")

var (
	lineColor  = drawing.ColorFromHex("4682b4") // steelblue
	pointColor = drawing.ColorFromHex(strings.TrimPrefix(PointFill, "#"))
)

// RenderLinePNG writes the country's line chart as a PNG image.
func RenderLinePNG(w io.Writer, country string, rows []core.Row) error {
	c := NewLineChart(country, rows)
	xs, ys := plottable(rows, core.Year, core.LifeExpectancy)
	if len(xs) == 0 {
		return fmt.Errorf("line chart for %q: %w", country, ErrNothingToRender)
	}

	ch := baseChart(LineTitle+" ("+country+")", c.Limits, LineXLabel, LineYLabel, c.XAxis, c.YAxis)
	ch.Series = []gochart.Series{
		gochart.ContinuousSeries{
			Name:    country,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: lineColor,
				StrokeWidth: 1.5,
			},
		},
	}
	return render(w, ch)
}

// RenderScatterPNG writes the scatter plot over all rows as a PNG image.
func RenderScatterPNG(w io.Writer, rows []core.Row) error {
	p := NewScatterPlot(rows)
	xs, ys := plottable(rows, core.FertilityRate, core.LifeExpectancy)
	if len(xs) == 0 {
		return fmt.Errorf("scatter plot: %w", ErrNothingToRender)
	}

	ch := baseChart(ScatterTitle, p.Limits, ScatterXLabel, ScatterYLabel, p.XAxis, p.YAxis)
	ch.Series = []gochart.Series{
		gochart.ContinuousSeries{
			Name:    "rows",
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    PointRadius,
				DotColor:    pointColor,
			},
		},
	}
	return render(w, ch)
}

func baseChart(title string, limits core.AxisLimits, xName, yName string, xAxis, yAxis Axis) gochart.Chart {
	xMin, xMax := padRange(limits.XMin, limits.XMax)
	yMin, yMax := padRange(limits.YMin, limits.YMax)
	return gochart.Chart{
		Title:      title,
		Width:      Width,
		Height:     Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  xName,
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: pngTicks(xAxis, xMin, xMax),
		},
		YAxis: gochart.YAxis{
			Name:  yName,
			Range: &gochart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: pngTicks(yAxis, yMin, yMax),
		},
	}
}

func render(w io.Writer, ch gochart.Chart) error {
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	return nil
}

// plottable keeps the pairs where both values are finite.
func plottable(rows []core.Row, xField, yField func(core.Row) float64) (xs, ys []float64) {
	for _, row := range rows {
		x, y := xField(row), yField(row)
		if isFinite(x) && isFinite(y) {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// padRange widens a zero-width range so the renderer has an interval to
// divide.
func padRange(lo, hi float64) (float64, float64) {
	if hi > lo {
		return lo, hi
	}
	pad := math.Max(math.Abs(lo)*0.05, 0.5)
	return lo - pad, hi + pad
}

// pngTicks reuses the SVG axis ticks, clamped to the padded range.
func pngTicks(a Axis, lo, hi float64) []gochart.Tick {
	var out []gochart.Tick
	for _, t := range a.Ticks {
		if t.Value < lo || t.Value > hi {
			continue
		}
		out = append(out, gochart.Tick{Value: t.Value, Label: t.Label})
	}
	if len(out) < 2 {
		return nil
	}
	// go-chart needs ticks in ascending order; the y axis lists them high to low.
	if out[0].Value > out[len(out)-1].Value {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
