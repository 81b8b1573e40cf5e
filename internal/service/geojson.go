package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrBadGeoJSON is returned for input that is not usable GeoJSON.
var ErrBadGeoJSON = errors.New("bad GeoJSON")

// DecodeGeometry decodes a bare GeoJSON geometry, a Feature, or a
// FeatureCollection, in which case the first feature is used. The geometry
// kind is not checked here.
func DecodeGeometry(data []byte) (orb.Geometry, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeoJSON, err)
	}

	var g orb.Geometry
	switch envelope.Type {
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrBadGeoJSON)
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGeoJSON, err)
		}
		if len(fc.Features) == 0 {
			return nil, fmt.Errorf("%w: feature collection is empty", ErrBadGeoJSON)
		}
		g = fc.Features[0].Geometry
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGeoJSON, err)
		}
		g = f.Geometry
	default:
		geo, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadGeoJSON, err)
		}
		g = geo.Geometry()
	}

	if g == nil {
		return nil, fmt.Errorf("%w: no geometry", ErrBadGeoJSON)
	}
	return g, nil
}

// DecodePolygon decodes GeoJSON that must hold a polygon.
func DecodePolygon(data []byte) (orb.Polygon, error) {
	g, err := DecodeGeometry(data)
	if err != nil {
		return nil, err
	}
	poly, ok := g.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: area must be a Polygon, got %s", ErrBadGeoJSON, g.GeoJSONType())
	}
	return poly, nil
}

// DecodeLineString decodes GeoJSON that must hold a line string.
func DecodeLineString(data []byte) (orb.LineString, error) {
	g, err := DecodeGeometry(data)
	if err != nil {
		return nil, err
	}
	ls, ok := g.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("%w: AB line must be a LineString, got %s", ErrBadGeoJSON, g.GeoJSONType())
	}
	return ls, nil
}

// ExtractInput returns the first polygon and the first line string of a
// feature collection: the field boundary and the AB line.
func ExtractInput(fc *geojson.FeatureCollection) (orb.Polygon, orb.LineString, error) {
	var (
		area orb.Polygon
		ab   orb.LineString
	)
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if area == nil {
				area = g
			}
		case orb.LineString:
			if ab == nil {
				ab = g
			}
		}
	}
	if area == nil {
		return nil, nil, fmt.Errorf("%w: no Polygon feature for the area", ErrBadGeoJSON)
	}
	if ab == nil {
		return nil, nil, fmt.Errorf("%w: no LineString feature for the AB line", ErrBadGeoJSON)
	}
	return area, ab, nil
}

// ReadInputFile reads a feature collection holding the area and the AB line.
func ReadInputFile(path string) (orb.Polygon, orb.LineString, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrBadGeoJSON, path, err)
	}
	return ExtractInput(fc)
}

// ReadGeometryFile reads a GeoJSON file accepted by DecodeGeometry.
func ReadGeometryFile(path string) (orb.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := DecodeGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
