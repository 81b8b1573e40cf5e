package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-rows/internal/network"
)

func newTestServer() *Server {
	return New(Config{Host: "localhost", Port: "8087", Defaults: network.DefaultOptions()})
}

func TestRoutes(t *testing.T) {
	srv := newTestServer()

	for _, path := range []string{"/health", "/api/v1/info", "/openapi.json", "/metrics"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCreateNetworkCountsRequests(t *testing.T) {
	srv := newTestServer()

	body := `{"area":{"type":"Polygon","coordinates":[[[9,52],[9.002,52],[9.002,52.001],[9,52.001],[9,52]]]},
		"abLine":{"type":"LineString","coordinates":[[9,52.0005],[9.002,52.0005]]}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"NetworkDestination"`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `rows_generator_runs_total{outcome="ok"}`)
	assert.Contains(t, rec.Body.String(), `/api/v1/networks"`)
}

func TestOpenAPI(t *testing.T) {
	spec := newTestServer().OpenAPI()
	require.NotNil(t, spec.Paths)
	assert.Contains(t, spec.Paths, "/api/v1/networks")
	assert.Contains(t, spec.Paths, "/health")
}
