package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/JonMunkholm/lifecharts/internal/core"
)

// chartRequest is the dataset and country a chart request resolves to.
type chartRequest struct {
	ds      *core.Dataset
	country string
}

// resolveChart loads the current dataset and the requested country, falling
// back to the configured default when the query omits it.
func (s *Server) resolveChart(r *http.Request) (chartRequest, error) {
	ds, err := s.store.Dataset()
	if err != nil {
		return chartRequest{}, err
	}
	country := countryParam(r)
	if country == "" {
		country = ds.DefaultCountry(s.cfg.Chart.DefaultCountry)
	}
	return chartRequest{ds: ds, country: country}, nil
}

// countryParam is the trimmed ?country= value.
func countryParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("country"))
}

// etag identifies a rendering of ds. Datasets are immutable, so the ID plus
// the view parameters fully determine the output.
func etag(ds *core.Dataset, parts ...string) string {
	tag := ds.ID.String()
	for _, p := range parts {
		tag += "-" + url.QueryEscape(p)
	}
	return `"` + tag + `"`
}

// notModified sets the ETag and answers 304 when the client already has it.
func notModified(w http.ResponseWriter, r *http.Request, tag string) bool {
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	for _, candidate := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == tag || candidate == "*" {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	return false
}
