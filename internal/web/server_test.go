package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/lifecharts/internal/config"
	"github.com/JonMunkholm/lifecharts/internal/core"
)

const exampleCSV = `location,time,life_expectancy,fertility_rate
AUS,2000,45,2.1
AUS,2001,46,2.0
USA,2000,50,3.0
`

type testServer struct {
	*Server
	store *core.Store
	path  string
}

// newTestServer serves exampleCSV from a temp file. With load false the
// store starts empty.
func newTestServer(t *testing.T, load bool, configure ...func(*config.Config)) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(exampleCSV), 0o644))

	cfg := config.Defaults()
	for _, fn := range configure {
		fn(cfg)
	}

	store := core.NewStore(core.FileSource{Path: path})
	if load {
		_, err := store.Reload(context.Background())
		require.NoError(t, err)
	}
	return &testServer{Server: NewServer(store, cfg), store: store, path: path}
}

func (ts *testServer) do(t *testing.T, method, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func TestPage(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<option value="AUS" selected>AUS</option><option value="USA">USA</option>`)
	assert.Equal(t, 1, strings.Count(body, `<path class="line"`))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestPage_DefaultCountryFallsBackToFirst(t *testing.T) {
	ts := newTestServer(t, true, func(c *config.Config) { c.Chart.DefaultCountry = "NZL" })

	body := ts.do(t, http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, body, `<option value="AUS" selected>`)
}

func TestPage_NoDataset(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `class="notice"`)
	assert.NotContains(t, rec.Body.String(), "<path")
}

func TestLineChart(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/chart/line?country=AUS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, 2, strings.Count(body, `<g class="axis"`))
	assert.Equal(t, 1, strings.Count(body, "<path class=\"line\""))
	assert.Equal(t, 3, strings.Count(body, `class="label"`))
	assert.Contains(t, body, `d="M50,450L450,50"`)
	assert.False(t, strings.HasPrefix(body, "<svg"))

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Contains(t, etag, ts.store.Current().ID.String())

	again := ts.do(t, http.MethodGet, "/chart/line?country=AUS", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, again.Code)
	assert.Zero(t, again.Body.Len())

	other := ts.do(t, http.MethodGet, "/chart/line?country=USA", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestLineChart_DefaultsCountry(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/chart/line", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-tooltip="AUS: 2000-2001, life expectancy 45-46"`)
}

func TestLineChart_Standalone(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/chart/line?country=USA&standalone=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
}

func TestLineChart_UnknownCountry(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/chart/line?country=GBR", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "CHART001")
	assert.Empty(t, rec.Header().Get("ETag"))
}

func TestCharts_NoDataset(t *testing.T) {
	ts := newTestServer(t, false)

	for _, target := range []string{"/chart/line?country=AUS", "/chart/scatter", "/export/scatter.png"} {
		rec := ts.do(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "DATA001", target)
	}
}

func TestScatterPlot(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/chart/scatter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "<circle"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestCountriesAPI(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/api/countries", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Countries []string `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"AUS", "USA"}, body.Countries)
}

func TestCountriesAPI_NoDataset(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/api/countries", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATA001", body.Code)
}

func TestLimitsAPI(t *testing.T) {
	ts := newTestServer(t, true)

	var line LimitsResponse
	rec := ts.do(t, http.MethodGet, "/api/limits?country=AUS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	assert.Equal(t, LimitsResponse{
		Country: "AUS",
		Rows:    2,
		Limits:  core.AxisLimits{XMin: 2000, XMax: 2001, YMin: 45, YMax: 46},
	}, line)

	var scatter LimitsResponse
	rec = ts.do(t, http.MethodGet, "/api/limits", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scatter))
	assert.Equal(t, 3, scatter.Rows)
	assert.Equal(t, core.AxisLimits{XMin: 2.0, XMax: 3.0, YMin: 45, YMax: 50}, scatter.Limits)

	rec = ts.do(t, http.MethodGet, "/api/limits?country=GBR", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCountryParam_TrimmedEverywhere(t *testing.T) {
	ts := newTestServer(t, true)

	for _, path := range []string{
		"/chart/line?country=%20AUS%20",
		"/export/line.png?country=%20AUS",
		"/api/limits?country=AUS%20",
	} {
		rec := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	var line LimitsResponse
	rec := ts.do(t, http.MethodGet, "/api/limits?country=%20AUS", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	assert.Equal(t, "AUS", line.Country)
	assert.Equal(t, 2, line.Rows)
}

func TestDatasetAPI(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/api/dataset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info core.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, ts.store.Current().ID.String(), info.ID)
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, 2, info.Countries)
	assert.Equal(t, "file:"+ts.path, info.Source)
}

func TestExportPNG(t *testing.T) {
	ts := newTestServer(t, true)
	magic := []byte("\x89PNG\r\n\x1a\n")

	rec := ts.do(t, http.MethodGet, "/export/line.png?country=AUS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "line_AUS.png")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), magic))

	rec = ts.do(t, http.MethodGet, "/export/scatter.png", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), magic))

	rec = ts.do(t, http.MethodGet, "/export/line.png?country=GBR", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReload(t *testing.T) {
	ts := newTestServer(t, true, func(c *config.Config) {
		c.Security.RequireAPIKey = true
		c.Security.APIKeys = []string{"secret"}
	})
	before := ts.store.Current().ID

	rec := ts.do(t, http.MethodPost, "/api/reload", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, before, ts.store.Current().ID)

	require.NoError(t, os.WriteFile(ts.path, []byte(exampleCSV+"NZL,2000,60,1.9\n"), 0o644))

	rec = ts.do(t, http.MethodPost, "/api/reload", map[string]string{"X-API-Key": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)

	var info core.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 4, info.Rows)
	assert.NotEqual(t, before, ts.store.Current().ID)
}

func TestReload_FailureKeepsDataset(t *testing.T) {
	ts := newTestServer(t, true)
	before := ts.store.Current()

	require.NoError(t, os.WriteFile(ts.path, []byte("location,time\nAUS,2000\n"), 0o644))

	rec := ts.do(t, http.MethodPost, "/api/reload", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "CSV002")
	assert.Same(t, before, ts.store.Current())
}

func TestHealthAndStatic(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/static/app.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "country-list")
}

func TestGzip(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(t, http.MethodGet, "/", map[string]string{"Accept-Encoding": "gzip"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, true, func(c *config.Config) { c.Rate.RequestsPerMinute = 2 })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/healthz", nil).Code)
	}
	rec := ts.do(t, http.MethodGet, "/api/countries", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE001")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := newRateLimiter(60)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("1.1.1.1"))
	assert.True(t, rl.allow("2.2.2.2"))
	assert.Equal(t, 2, rl.size())

	now = now.Add(2 * staleAfter)
	rl.lastSweep = now.Add(-staleAfter)
	assert.True(t, rl.allow("3.3.3.3"))
	assert.Equal(t, 1, rl.size())
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.allow("1.1.1.1"))
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(core.ErrNoDataset))
	assert.Equal(t, http.StatusNotFound, statusFor(core.ErrUnknownCountry))
	assert.Equal(t, http.StatusTooManyRequests, statusFor(errRateLimited))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(errRenderBusy))
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.Canceled))
}
