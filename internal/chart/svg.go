package chart

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// svgWriter accumulates the first write error so element builders can be
// chained without checking every call.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

func (s *svgWriter) axis(a Axis) {
	s.printf(`<g class="axis" fill="none" font-size="10" font-family="sans-serif" text-anchor="%s" transform="%s">`,
		a.textAnchor(), a.Transform)
	s.printf(`<path class="domain" stroke="currentColor" d="%s"></path>`, a.DomainPath)
	for _, t := range a.Ticks {
		s.printf(`<g class="tick" opacity="1" transform="%s">`, a.tickTransform(t))
		if a.Orient == Left {
			s.printf(`<line stroke="currentColor" x2="%s"></line>`, coord(-tickSize))
			s.printf(`<text fill="currentColor" x="%s" dy="0.32em">%s</text>`,
				coord(-(tickSize + tickPadding)), templ.EscapeString(t.Label))
		} else {
			s.printf(`<line stroke="currentColor" y2="%s"></line>`, coord(tickSize))
			s.printf(`<text fill="currentColor" y="%s" dy="0.71em">%s</text>`,
				coord(tickSize+tickPadding), templ.EscapeString(t.Label))
		}
		s.printf(`</g>`)
	}
	s.printf(`</g>`)
}

func (s *svgWriter) labels(labels []Label) {
	for _, l := range labels {
		if l.Transform != "" {
			s.printf(`<text class="label" transform="%s" style="font-size: %s">%s</text>`,
				l.Transform, l.FontSize, templ.EscapeString(l.Text))
			continue
		}
		s.printf(`<text class="label" x="%s" y="%s" style="font-size: %s">%s</text>`,
			coord(l.X), coord(l.Y), l.FontSize, templ.EscapeString(l.Text))
	}
}

// LineChartSVG renders the line chart's children: two axes, one path and
// three labels. The caller supplies the enclosing svg element.
func LineChartSVG(c LineChart) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := &svgWriter{w: w}
		s.axis(c.XAxis)
		s.axis(c.YAxis)
		s.printf(`<path class="line" fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round" d="%s" data-hover="scatter" data-tooltip="%s"></path>`,
			LineFill, LineStroke, c.Path, templ.EscapeString(c.Tooltip()))
		s.labels(c.Labels)
		return s.err
	})
}

// ScatterPlotSVG renders the scatter plot's children: two axes, one circle
// per row and three labels. Circles for rows with missing values are hidden.
func ScatterPlotSVG(p ScatterPlot) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := &svgWriter{w: w}
		s.axis(p.XAxis)
		s.axis(p.YAxis)
		for _, pt := range p.Points {
			if !pt.Defined {
				s.printf(`<circle class="dot" r="%d" fill="%s" visibility="hidden"></circle>`, PointRadius, PointFill)
				continue
			}
			s.printf(`<circle class="dot" cx="%s" cy="%s" r="%d" fill="%s"></circle>`,
				coord(pt.X), coord(pt.Y), PointRadius, PointFill)
		}
		s.labels(p.Labels)
		return s.err
	})
}

// Document wraps body in a standalone svg element.
func Document(id string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		s := &svgWriter{w: w}
		s.printf(`<svg xmlns="http://www.w3.org/2000/svg" id="%s" width="%s" height="%s" viewBox="0 0 %s %s">`,
			templ.EscapeString(id), strconv.Itoa(Width), strconv.Itoa(Height), strconv.Itoa(Width), strconv.Itoa(Height))
		if s.err != nil {
			return s.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		s.printf(`</svg>`)
		return s.err
	})
}
