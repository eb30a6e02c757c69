package web

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/lifecharts/internal/chart"
	"github.com/JonMunkholm/lifecharts/internal/core"
	"github.com/JonMunkholm/lifecharts/internal/logging"
	"github.com/JonMunkholm/lifecharts/internal/web/templates"
)

// handlePage renders the page shell with the default country's line chart.
// Without a dataset the page still renders, just without charts.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	data := templates.PageData{}

	if ds, err := s.store.Dataset(); err != nil {
		data.Notice = core.MapError(err).Message
	} else {
		data.Countries = ds.Countries()
		data.Selected = ds.DefaultCountry(s.cfg.Chart.DefaultCountry)
		if c, err := chart.LineChartFor(ds, data.Selected); err == nil {
			data.Line = &c
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Page(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleLineChart returns the line chart fragment for ?country=.
func (s *Server) handleLineChart(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolveChart(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	c, err := chart.LineChartFor(req.ds, req.country)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if notModified(w, r, etag(req.ds, "line", req.country)) {
		return
	}

	logging.WithFields(r.Context(), "country", req.country).Debug("rendering line chart", "rows", c.Rows)
	s.writeSVG(w, r, "line", chart.LineChartSVG(c))
}

// handleScatterPlot returns the scatter plot fragment over every row.
func (s *Server) handleScatterPlot(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if notModified(w, r, etag(ds, "scatter")) {
		return
	}
	s.writeSVG(w, r, "scatter", chart.ScatterPlotSVG(chart.NewScatterPlot(ds.Rows())))
}

// writeSVG writes a fragment, or a standalone document with ?standalone=1.
func (s *Server) writeSVG(w http.ResponseWriter, r *http.Request, id string, c templ.Component) {
	if standalone, _ := strconv.ParseBool(r.URL.Query().Get("standalone")); standalone {
		c = chart.Document(id, c)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render svg", "chart", id, "error", err)
	}
}

// handleExportLine returns the country's line chart as a PNG.
func (s *Server) handleExportLine(w http.ResponseWriter, r *http.Request) {
	req, err := s.resolveChart(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	rows, err := req.ds.CountryRows(req.country)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if notModified(w, r, etag(req.ds, "line.png", req.country)) {
		return
	}

	var buf bytes.Buffer
	err = s.renders.withRenderSlot(r.Context(), func() error {
		return chart.RenderLinePNG(&buf, req.country, rows)
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writePNG(w, "line_"+req.country+".png", buf.Bytes())
}

// handleExportScatter returns the scatter plot as a PNG.
func (s *Server) handleExportScatter(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if notModified(w, r, etag(ds, "scatter.png")) {
		return
	}

	var buf bytes.Buffer
	err = s.renders.withRenderSlot(r.Context(), func() error {
		return chart.RenderScatterPNG(&buf, ds.Rows())
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writePNG(w, "scatter.png", buf.Bytes())
}

func writePNG(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// handleCountries lists the distinct countries in first-seen order.
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, map[string]any{"countries": ds.Countries()})
}

// LimitsResponse is the body of /api/limits.
type LimitsResponse struct {
	Country string          `json:"country,omitempty"`
	Rows    int             `json:"rows"`
	Limits  core.AxisLimits `json:"limits"`
}

// handleLimits returns the line chart limits for ?country=, or the scatter
// plot limits over all rows when no country is given.
func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	country := countryParam(r)
	if country == "" {
		rows := ds.Rows()
		writeJSON(w, r, LimitsResponse{
			Rows:   len(rows),
			Limits: core.LimitsFor(rows, core.FertilityRate, core.LifeExpectancy),
		})
		return
	}

	rows, err := ds.CountryRows(country)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, LimitsResponse{
		Country: country,
		Rows:    len(rows),
		Limits:  core.LimitsFor(rows, core.Year, core.LifeExpectancy),
	})
}

// handleDataset describes the loaded dataset.
func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Dataset()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, ds.Info())
}

// handleReload reloads from the source. On failure the previous dataset
// stays in place.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Reload(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, ds.Info())
}
