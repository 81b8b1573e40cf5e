// Package turns places turn-maneuver templates at the ends of rows.
//
// A template is an arbitrary point, line or polygon drawn by the user. Its
// first coordinate is the anchor. Attaching the template moves the anchor
// onto a row endpoint and turns the shape to follow the row direction.
package turns

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-rows/internal/geometry"
)

// ErrMalformedTemplate is returned for a template with no usable geometry.
var ErrMalformedTemplate = errors.New("malformed turn template")

// End names a row end.
type End int

const (
	EndA End = iota
	EndB
)

func (e End) String() string {
	if e == EndB {
		return "B"
	}
	return "A"
}

// Template is a turn shape together with its anchor.
type Template struct {
	Geometry orb.Geometry
	Anchor   orb.Point
}

// NewTemplate builds a template from g, anchoring it at g's first coordinate.
func NewTemplate(g orb.Geometry) (Template, error) {
	if g == nil {
		return Template{}, fmt.Errorf("%w: no geometry", ErrMalformedTemplate)
	}
	if !geometry.Supported(g) {
		return Template{}, fmt.Errorf("%w: %s is not a point, line or polygon", ErrMalformedTemplate, g.GeoJSONType())
	}
	anchor, ok := geometry.First(g)
	if !ok {
		return Template{}, fmt.Errorf("%w: empty %s", ErrMalformedTemplate, g.GeoJSONType())
	}
	return Template{Geometry: g, Anchor: anchor}, nil
}

// Map transforms the template geometry and its anchor with fn, e.g. to move
// it into the planar frame.
func (t Template) Map(fn geometry.PointFunc) (Template, error) {
	g, err := geometry.Map(t.Geometry, fn)
	if err != nil {
		return Template{}, err
	}
	anchor, err := fn(t.Anchor)
	if err != nil {
		return Template{}, err
	}
	return Template{Geometry: g, Anchor: anchor}, nil
}

// Placement positions a template at a row end.
type Placement struct {
	Target         orb.Point
	Angle          float64 // degrees, counter-clockwise
	FlipHorizontal bool
	FlipVertical   bool
}

// Matrix returns the affine transform for attaching a template anchored at
// anchor. Steps, in order: move the anchor to the origin, mirror about the Y
// axis, mirror about the X axis, rotate, move the origin to the target.
func Matrix(anchor orb.Point, p Placement) geometry.Matrix {
	m := geometry.Translate(-anchor[0], -anchor[1])
	if p.FlipHorizontal {
		m = geometry.Scale(-1, 1).Multiply(m)
	}
	if p.FlipVertical {
		m = geometry.Scale(1, -1).Multiply(m)
	}
	m = geometry.Rotate(p.Angle).Multiply(m)
	return geometry.Translate(p.Target[0], p.Target[1]).Multiply(m)
}

// Attach returns a copy of the template geometry placed per p.
func (t Template) Attach(p Placement) (orb.Geometry, error) {
	return geometry.TransformGeometry(Matrix(t.Anchor, p), t.Geometry)
}

// Resolve picks the template for one end: its own when given, otherwise the
// other end's. Nil means no turn is attached at that end.
func Resolve(own, other orb.Geometry) orb.Geometry {
	if own != nil {
		return own
	}
	return other
}
