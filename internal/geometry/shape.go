// Package geometry holds the closed set of geometry kinds the row generator
// works with (point, line string, polygon) and the coordinate transforms that
// are applied to them.
//
// Every transform goes through [Apply] or [Map], which switch exhaustively
// over the three kinds. Anything else is rejected with [ErrUnsupported].
package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// DefaultTolerance is the default geometric tolerance in meters.
const DefaultTolerance = 0.01

// ErrUnsupported is returned for geometry kinds other than point, line string
// and polygon.
var ErrUnsupported = errors.New("unsupported geometry kind")

// Shape is the closed set of supported geometry kinds.
type Shape interface {
	orb.Point | orb.LineString | orb.Polygon
}

// PointFunc maps one coordinate to another.
type PointFunc func(orb.Point) (orb.Point, error)

// Apply maps every coordinate of s through fn and returns a new geometry of
// the same kind. The input is never modified.
func Apply[S Shape](s S, fn PointFunc) (S, error) {
	var out any
	switch g := any(s).(type) {
	case orb.Point:
		p, err := fn(g)
		if err != nil {
			return s, err
		}
		out = p
	case orb.LineString:
		ls, err := mapPoints(g, fn)
		if err != nil {
			return s, err
		}
		out = orb.LineString(ls)
	case orb.Polygon:
		poly := make(orb.Polygon, len(g))
		for i, ring := range g {
			r, err := mapPoints(ring, fn)
			if err != nil {
				return s, fmt.Errorf("ring %d: %w", i, err)
			}
			poly[i] = orb.Ring(r)
		}
		out = poly
	}
	return out.(S), nil
}

// Map is Apply for a dynamically typed geometry.
func Map(g orb.Geometry, fn PointFunc) (orb.Geometry, error) {
	switch g := g.(type) {
	case orb.Point:
		return Apply(g, fn)
	case orb.LineString:
		return Apply(g, fn)
	case orb.Polygon:
		return Apply(g, fn)
	case nil:
		return nil, fmt.Errorf("%w: nil geometry", ErrUnsupported)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, g.GeoJSONType())
	}
}

// Supported reports whether g is one of the supported kinds.
func Supported(g orb.Geometry) bool {
	switch g.(type) {
	case orb.Point, orb.LineString, orb.Polygon:
		return true
	default:
		return false
	}
}

// First returns the first coordinate of g: the point itself, the first vertex
// of a line string, or the first exterior vertex of a polygon.
func First(g orb.Geometry) (orb.Point, bool) {
	switch g := g.(type) {
	case orb.Point:
		return g, true
	case orb.LineString:
		if len(g) > 0 {
			return g[0], true
		}
	case orb.Polygon:
		if len(g) > 0 && len(g[0]) > 0 {
			return g[0][0], true
		}
	}
	return orb.Point{}, false
}

func mapPoints[P ~[]orb.Point](pts P, fn PointFunc) ([]orb.Point, error) {
	out := make([]orb.Point, len(pts))
	for i, p := range pts {
		q, err := fn(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}
