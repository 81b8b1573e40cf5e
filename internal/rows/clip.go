package rows

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/peterstace/simplefeatures/geom"
)

// ErrBoundary is returned when the boundary cannot be intersected with a row.
var ErrBoundary = errors.New("boundary cannot be clipped")

// Clip intersects every generated candidate with the aligned boundary and
// returns the surviving pieces in index order. The reference row passes
// through untouched. Pieces not longer than tol are dropped; disjoint pieces
// of one candidate each become their own segment, ordered along x.
func Clip(candidates []Segment, boundary orb.Polygon, tol float64) ([]Segment, error) {
	var out []Segment
	for _, c := range candidates {
		if c.Origin == Reference {
			out = append(out, c)
			continue
		}
		pieces, err := clipLine(c.Line, boundary, tol)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", c.Index, err)
		}
		for _, piece := range pieces {
			out = append(out, Segment{Index: c.Index, Line: piece, Origin: Generated})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out, nil
}

type span struct {
	lo, hi float64
}

// clipLine intersects a horizontal candidate with the boundary. Boundary
// vertices within tol of the candidate are snapped onto it first so nearly
// collinear edges count as on the row. The overlay splits the result at
// every boundary vertex; touching pieces are joined again before the length
// filter.
func clipLine(line orb.LineString, boundary orb.Polygon, tol float64) ([]orb.LineString, error) {
	if len(line) < 2 {
		return nil, nil
	}
	y := line[0][1]

	poly := toPolygon(snapRings(boundary, y, tol))
	if poly.Validate() != nil {
		poly = toPolygon(boundary)
	}
	result, err := geom.Intersection(toLineString(line).AsGeometry(), poly.AsGeometry())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBoundary, err)
	}

	var pieces []orb.LineString
	for _, s := range merge(spans(result)) {
		if s.hi-s.lo <= tol {
			continue
		}
		pieces = append(pieces, orb.LineString{{s.lo, y}, {s.hi, y}})
	}
	return pieces, nil
}

// spans collects the x extent of every linear part of an overlay result.
// Points left by tangent vertices are ignored.
func spans(g geom.Geometry) []span {
	if g.IsEmpty() {
		return nil
	}
	switch g.Type() {
	case geom.TypeLineString:
		ls, ok := g.AsLineString()
		if !ok {
			return nil
		}
		return []span{extent(ls)}
	case geom.TypeMultiLineString:
		mls, ok := g.AsMultiLineString()
		if !ok {
			return nil
		}
		out := make([]span, 0, mls.NumLineStrings())
		for i := 0; i < mls.NumLineStrings(); i++ {
			out = append(out, extent(mls.LineStringN(i)))
		}
		return out
	case geom.TypeGeometryCollection:
		gc, ok := g.AsGeometryCollection()
		if !ok {
			return nil
		}
		var out []span
		for i := 0; i < gc.NumGeometries(); i++ {
			out = append(out, spans(gc.GeometryN(i))...)
		}
		return out
	default:
		return nil
	}
}

func extent(ls geom.LineString) span {
	seq := ls.Coordinates()
	s := span{lo: seq.GetXY(0).X, hi: seq.GetXY(0).X}
	for i := 1; i < seq.Length(); i++ {
		x := seq.GetXY(i).X
		s.lo, s.hi = min(s.lo, x), max(s.hi, x)
	}
	return s
}

// merge unions overlapping or touching spans, returning them sorted by lo.
func merge(in []span) []span {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool {
		return in[i].lo < in[j].lo
	})
	out := []span{in[0]}
	for _, s := range in[1:] {
		last := &out[len(out)-1]
		if s.lo <= last.hi {
			last.hi = max(last.hi, s.hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

func snapRings(p orb.Polygon, y, tol float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			if pt[1]-y <= tol && y-pt[1] <= tol {
				pt[1] = y
			}
			r[j] = pt
		}
		out[i] = r
	}
	return out
}

func toLineString(ls orb.LineString) geom.LineString {
	flat := make([]float64, 0, 2*len(ls))
	for _, p := range ls {
		flat = append(flat, p[0], p[1])
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// toPolygon closes open rings and skips rings too short to bound an area.
func toPolygon(p orb.Polygon) geom.Polygon {
	rings := make([]geom.LineString, 0, len(p))
	for _, ring := range p {
		if len(ring) < 3 {
			continue
		}
		if !ring.Closed() {
			ring = append(append(orb.Ring(nil), ring...), ring[0])
		}
		rings = append(rings, toLineString(orb.LineString(ring)))
	}
	return geom.NewPolygon(rings)
}
