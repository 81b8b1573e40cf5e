package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/plat-rows/internal/network"
	"github.com/joeblew999/plat-rows/internal/service"
)

func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	cfg := huma.DefaultConfig("plat-rows API", Version)
	cfg.Transformers = append(cfg.Transformers, LinkTransformer())
	_, api := humatest.New(t, cfg)

	defaults := network.DefaultOptions()
	huma.AutoRegister(api, NewAPIHandler(&Services{
		Network: service.NewNetworkService(defaults, nil),
	}))
	NewInfoHandler(defaults).RegisterRoutes(api)
	return api
}

var (
	area = map[string]any{
		"type":        "Polygon",
		"coordinates": [][][]float64{{{9.0, 52.0}, {9.002, 52.0}, {9.002, 52.001}, {9.0, 52.001}, {9.0, 52.0}}},
	}
	abLine = map[string]any{
		"type":       "Feature",
		"properties": map[string]any{},
		"geometry": map[string]any{
			"type":        "LineString",
			"coordinates": [][]float64{{9.0, 52.0005}, {9.002, 52.0005}},
		},
	}
)

type networkResponse struct {
	Collection struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string         `json:"id"`
			Geometry   map[string]any `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	} `json:"collection"`
	Warnings []string `json:"warnings"`
	Rows     int      `json:"rows"`
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Contains(t, resp.Header().Values("Link"), `</api/v1/info>; rel="info"`)
}

func TestInfo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/v1/info")
	require.Equal(t, http.StatusOK, resp.Code)

	var body InfoBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "plat-rows", body.Name)
	assert.Equal(t, 6.0, body.Defaults.SpacingM)
	assert.Equal(t, "A", body.Defaults.DestSide)
}

func TestCreateNetwork(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/v1/networks", map[string]any{
		"area":    area,
		"abLine":  abLine,
		"options": map[string]any{"spacingM": 10, "destSide": "B"},
		"turnA": map[string]any{
			"attach": true,
			"template": map[string]any{
				"type":        "LineString",
				"coordinates": [][]float64{{9.0, 52.0}, {9.0001, 52.0}},
			},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body networkResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "FeatureCollection", body.Collection.Type)
	assert.Empty(t, body.Warnings)
	require.Equal(t, 11, body.Rows)

	// Each row has a path, an A turn and a destination.
	require.Len(t, body.Collection.Features, 3*body.Rows)
	last := body.Collection.Features[len(body.Collection.Features)-1]
	assert.Equal(t, network.TypeDestination, last.Properties["type"])
	assert.Equal(t, "Point", last.Geometry["type"])
	assert.NotEmpty(t, last.ID)

	first := body.Collection.Features[0]
	assert.Equal(t, network.TypePath, first.Properties["type"])
	assert.Equal(t, "two_way", first.Properties["direction"])
}

func TestCreateNetworkBadTemplateIsAWarning(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/v1/networks", map[string]any{
		"area":   area,
		"abLine": abLine,
		"turnB":  map[string]any{"attach": true, "template": map[string]any{"coordinates": []float64{1, 2}}},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body networkResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "turn B")
	assert.Len(t, body.Collection.Features, 2*body.Rows)
}

func TestCreateNetworkRejected(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{"area is a line", map[string]any{"area": abLine, "abLine": abLine}, http.StatusUnprocessableEntity},
		{"missing type", map[string]any{"area": map[string]any{}, "abLine": abLine}, http.StatusUnprocessableEntity},
		{"degenerate AB", map[string]any{
			"area":   area,
			"abLine": map[string]any{"type": "LineString", "coordinates": [][]float64{{9.001, 52.0005}, {9.001, 52.0005}}},
		}, http.StatusUnprocessableEntity},
		{"bad side", map[string]any{"area": area, "abLine": abLine, "options": map[string]any{"destSide": "C"}}, http.StatusUnprocessableEntity},
		{"zero spacing", map[string]any{"area": area, "abLine": abLine, "options": map[string]any{"spacingM": 0}}, http.StatusUnprocessableEntity},
		{"too many rows", map[string]any{"area": area, "abLine": abLine, "options": map[string]any{"spacingM": 1e-6}}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Post("/api/v1/networks", tt.body)
			assert.Equal(t, tt.code, resp.Code, resp.Body.String())
		})
	}
}
