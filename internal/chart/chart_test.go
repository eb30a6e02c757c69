package chart

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

const exampleCSV = `location,time,life_expectancy,fertility_rate
AUS,2000,45,2.1
AUS,2001,46,2.0
USA,2000,50,3.0
`

func exampleDataset(t *testing.T) *core.Dataset {
	t.Helper()
	rows, err := core.ParseCSV(context.Background(), strings.NewReader(exampleCSV))
	require.NoError(t, err)
	return core.NewDataset(rows, "test")
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLineChartFor_Example(t *testing.T) {
	c, err := LineChartFor(exampleDataset(t), "AUS")
	require.NoError(t, err)

	assert.Equal(t, 2, c.Rows)
	assert.Equal(t, core.AxisLimits{XMin: 2000, XMax: 2001, YMin: 45, YMax: 46}, c.Limits)
	require.Len(t, c.Points, 2)
	assert.Equal(t, Point{X: 50, Y: 450, Defined: true}, c.Points[0])
	assert.Equal(t, Point{X: 450, Y: 50, Defined: true}, c.Points[1])
	assert.Equal(t, "M50,450L450,50", c.Path)
}

func TestLineChartFor_UnknownCountry(t *testing.T) {
	_, err := LineChartFor(exampleDataset(t), "GBR")
	assert.True(t, errors.Is(err, core.ErrUnknownCountry))
}

func TestLinePath_BreaksOnMissingValues(t *testing.T) {
	rows := []core.Row{
		{Location: "AUS", Time: 2000, LifeExpectancy: 45},
		{Location: "AUS", Time: 2001, LifeExpectancy: math.NaN()},
		{Location: "AUS", Time: 2002, LifeExpectancy: 47},
		{Location: "AUS", Time: 2003, LifeExpectancy: 46},
	}
	c := NewLineChart("AUS", rows)

	assert.Equal(t, 2, strings.Count(c.Path, "M"))
	assert.Equal(t, 1, strings.Count(c.Path, "L"))
	assert.False(t, c.Points[1].Defined)
}

func TestNewLineChart_Empty(t *testing.T) {
	c := NewLineChart("AUS", nil)

	assert.True(t, c.Limits.Empty)
	assert.Empty(t, c.Path)
	assert.NotEmpty(t, c.XAxis.Ticks)
	assert.Equal(t, "AUS", c.Tooltip())
}

func TestLineChart_TooltipSingleYear(t *testing.T) {
	c := NewLineChart("USA", []core.Row{{Location: "USA", Time: 2000, LifeExpectancy: 50}})
	assert.Equal(t, "USA: 2000, life expectancy 50", c.Tooltip())
}

func TestNewScatterPlot_OnePointPerRow(t *testing.T) {
	ds := exampleDataset(t)
	p := NewScatterPlot(ds.Rows())

	require.Len(t, p.Points, 3)
	assert.Equal(t, core.AxisLimits{XMin: 2.0, XMax: 3.0, YMin: 45, YMax: 50}, p.Limits)
	// USA has the highest fertility and life expectancy: top right corner.
	assert.Equal(t, Point{X: 450, Y: 50, Defined: true}, p.Points[2])
}

func TestLineChartSVG_Structure(t *testing.T) {
	c, err := LineChartFor(exampleDataset(t), "AUS")
	require.NoError(t, err)

	out := renderString(t, LineChartSVG(c))

	assert.Equal(t, 2, strings.Count(out, `<g class="axis"`))
	assert.Equal(t, 1, strings.Count(out, `<path class="line"`))
	assert.Equal(t, 3, strings.Count(out, `class="label"`))
	assert.Contains(t, out, `d="M50,450L450,50"`)
	assert.Contains(t, out, `stroke="steelblue"`)
	assert.Contains(t, out, `data-hover="scatter"`)
	assert.Contains(t, out, LineTitle)
	assert.Contains(t, out, `transform="translate(15, 300)rotate(-90)"`)
	assert.Contains(t, out, `data-tooltip="AUS: 2000-2001, life expectancy 45-46"`)
	// [2000, 2001] ticks every 0.1 year, [45, 46] every 0.1 year of life.
	assert.Contains(t, out, ">2,000.0<")
	assert.Contains(t, out, ">2,001.0<")
	assert.Contains(t, out, ">45.0<")
	assert.NotContains(t, out, "<circle")
}

func TestLineChartSVG_IntegerYearTicks(t *testing.T) {
	var rows []core.Row
	for year := 2000; year <= 2010; year++ {
		rows = append(rows, core.Row{Location: "AUS", Time: float64(year), LifeExpectancy: 40 + float64(year-2000)})
	}

	out := renderString(t, LineChartSVG(NewLineChart("AUS", rows)))

	assert.Contains(t, out, ">2,000<")
	assert.Contains(t, out, ">2,010<")
	assert.NotContains(t, out, ">2,000.0<")
	assert.Contains(t, out, ">40<")
}

func TestScatterPlotSVG_Structure(t *testing.T) {
	rows := exampleDataset(t).Rows()
	rows = append(rows, core.Row{Location: "NZL", Time: 2000, LifeExpectancy: math.NaN(), FertilityRate: 1.9})

	out := renderString(t, ScatterPlotSVG(NewScatterPlot(rows)))

	assert.Equal(t, 4, strings.Count(out, "<circle"))
	assert.Equal(t, 1, strings.Count(out, `visibility="hidden"`))
	assert.Equal(t, 2, strings.Count(out, `<g class="axis"`))
	assert.Equal(t, 3, strings.Count(out, `class="label"`))
	assert.Contains(t, out, `fill="#4286f4"`)
	assert.NotContains(t, out, `class="line"`)
}

func TestLineChartSVG_EscapesCountry(t *testing.T) {
	rows := []core.Row{{Location: `<b>`, Time: 2000, LifeExpectancy: 45}}
	out := renderString(t, LineChartSVG(NewLineChart(`<b>`, rows)))

	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "&lt;b&gt;")
}

func TestDocument(t *testing.T) {
	out := renderString(t, Document("line", ScatterPlotSVG(NewScatterPlot(nil))))

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" id="line" width="500" height="500"`))
	assert.True(t, strings.HasSuffix(out, "</svg>"))
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderLinePNG(t *testing.T) {
	var buf bytes.Buffer
	err := RenderLinePNG(&buf, "AUS", exampleDataset(t).FilterByLocation("AUS"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderScatterPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderScatterPNG(&buf, exampleDataset(t).Rows()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderPNG_NothingToRender(t *testing.T) {
	var buf bytes.Buffer
	err := RenderScatterPNG(&buf, nil)
	assert.ErrorIs(t, err, ErrNothingToRender)
	assert.Zero(t, buf.Len())
}

func TestPadRange(t *testing.T) {
	lo, hi := padRange(2000, 2000)
	assert.Less(t, lo, 2000.0)
	assert.Greater(t, hi, 2000.0)

	lo, hi = padRange(1, 2)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}
