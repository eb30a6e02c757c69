// Package templates holds the HTML components served by the web package.
// Components are authored in .templ files; run `templ generate` after
// editing them.
package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/lifecharts/internal/chart"
)

// Element ids shared with static/app.js.
const (
	LineCanvasID    = "line-chart"
	ScatterCanvasID = "scatter-plot"
	TooltipID       = "tooltip"
	CaptionID       = "tooltip-caption"
	SelectName      = "country-list"
)

const defaultTitle = "Life Expectancy"

// PageData is everything the page shell needs.
type PageData struct {
	Title     string
	Countries []string
	Selected  string
	// Line is the pre-rendered chart for Selected; nil renders an empty canvas.
	Line *chart.LineChart
	// Notice is shown instead of the charts when no dataset is loaded.
	Notice string
}

func (d PageData) title() string {
	if d.Title == "" {
		return defaultTitle
	}
	return d.Title
}

func (d PageData) lineBody() templ.Component {
	if d.Line == nil {
		return templ.NopComponent
	}
	return chart.LineChartSVG(*d.Line)
}

var (
	canvasWidth  = strconv.Itoa(chart.Width)
	canvasHeight = strconv.Itoa(chart.Height)
)
