// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/mineralmap/catalog"
	"github.com/jcodagnone/mineralmap/mapdef"
	"github.com/jcodagnone/mineralmap/observability"
	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
)

type failingSource struct{}

func (failingSource) Sites() ([]sites.Site, error) { return nil, errors.New("boom") }

var testSites = Static{
	{Name: "Mountain Pass", Category: "REE", Kind: "Carbonatite", Status: "Operating", Point: spatial.Point{Lat: 35.4786, Lng: -115.5322}},
	{Name: "Cañón City Mill", Category: "Uranium", Kind: "Superfund", Status: "Remediation", Point: spatial.Point{Lat: 38.43, Lng: -105.2}},
	{Name: "Red Dog", Category: "Zinc, Lead", Status: "Operating", Point: spatial.Point{Lat: 68.0706, Lng: -162.8556}},
}

func setupServerTest(t *testing.T, source Source) (*gin.Engine, *observability.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	def, err := mapdef.Builtin("critical-minerals")
	require.NoError(t, err)

	metrics, registry := observability.NewMetricsForTesting()

	return NewServer(def, source, nil, metrics, registry).Handler(), metrics
}

func get(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestMapView(t *testing.T) {
	router, _ := setupServerTest(t, testSites)

	w := get(t, router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Mountain Pass")
}

func TestMapViewNoSites(t *testing.T) {
	router, _ := setupServerTest(t, Static{})

	w := get(t, router, "/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSites(t *testing.T) {
	router, _ := setupServerTest(t, testSites)

	tests := []struct {
		name string
		url  string
		want []string
	}{
		{name: "all", url: "/api/sites", want: []string{"Mountain Pass", "Cañón City Mill", "Red Dog"}},
		{name: "accent insensitive", url: "/api/sites?q=CANON", want: []string{"Cañón City Mill"}},
		{name: "filter", url: "/api/sites?filter=contamination", want: []string{"Cañón City Mill"}},
		{name: "filter and query", url: "/api/sites?filter=minerals&q=red", want: []string{"Red Dog"}},
		{name: "nothing", url: "/api/sites?q=zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, router, tt.url)
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Count int          `json:"count"`
				Sites []sites.Site `json:"sites"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			names := []string{}
			for _, s := range resp.Sites {
				names = append(names, s.Name)
			}

			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), resp.Count)
		})
	}
}

func TestListSitesBadFilter(t *testing.T) {
	router, _ := setupServerTest(t, testSites)

	w := get(t, router, "/api/sites?filter=color:red")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown filter term")
}

func TestLegend(t *testing.T) {
	router, _ := setupServerTest(t, testSites)

	w := get(t, router, "/api/legend/tab-1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tab     string `json:"tab"`
		Legends []struct {
			Title   string `json:"title"`
			Entries []struct {
				Label string `json:"label"`
				Color string `json:"color"`
			} `json:"entries"`
		} `json:"legends"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Mineral Deposits", resp.Tab)
	require.NotEmpty(t, resp.Legends)
	assert.NotEmpty(t, resp.Legends[0].Entries)

	byTitle := get(t, router, "/api/legend/Mineral%20Deposits")
	assert.Equal(t, http.StatusOK, byTitle.Code)

	missing := get(t, router, "/api/legend/nope")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestHealthz(t *testing.T) {
	router, _ := setupServerTest(t, testSites)

	w := get(t, router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sites":3}`, w.Body.String())

	router, _ = setupServerTest(t, failingSource{})
	w = get(t, router, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetrics(t *testing.T) {
	router, metrics := setupServerTest(t, testSites)

	get(t, router, "/healthz")
	get(t, router, "/healthz")
	get(t, router, "/missing")

	assert.InDelta(t, 2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("/healthz", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("unmatched", "404")), 0)

	w := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "mineralmap_http_requests_total"))
}

func TestCatalogSource(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)

	defer db.Close()

	repo := catalog.NewSiteRepository(db)
	require.NoError(t, repo.CreateSchema())
	require.NoError(t, repo.BulkInsert(testSites))

	router, _ := setupServerTest(t, Catalog{Repo: repo})

	w := get(t, router, "/api/sites?q=mountain")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mountain Pass")
}
