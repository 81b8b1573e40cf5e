// Package frame rotates planar geometry so that the reference (AB) line
// becomes horizontal, and back.
package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/joeblew999/plat-rows/internal/geometry"
)

// ErrDegenerate is returned when A and B coincide and the line has no
// direction.
var ErrDegenerate = errors.New("degenerate reference line")

// Frame is the working frame of one generation run. The direction angle is
// computed once in New and never re-derived from rotated coordinates.
type Frame struct {
	angle   float64
	align   geometry.PointFunc
	unalign geometry.PointFunc
}

// New builds the frame for the planar reference points a and b. Points closer
// than tol are considered equal.
func New(a, b orb.Point, tol float64) (*Frame, error) {
	if d := planar.Distance(a, b); d <= tol || math.IsNaN(d) {
		return nil, fmt.Errorf("%w: A %v and B %v are %.4g m apart", ErrDegenerate, a, b, d)
	}
	angle := math.Atan2(b[1]-a[1], b[0]-a[0]) * 180 / math.Pi
	return &Frame{
		angle:   angle,
		align:   rotateAbout(geometry.Rotate(-angle), a),
		unalign: rotateAbout(geometry.Rotate(angle), a),
	}, nil
}

// rotateAbout applies the rotation to coordinates relative to origin, so the
// origin itself maps to exactly the same coordinate.
func rotateAbout(m geometry.Matrix, origin orb.Point) geometry.PointFunc {
	return func(p orb.Point) (orb.Point, error) {
		q := m.Point(orb.Point{p[0] - origin[0], p[1] - origin[1]})
		return orb.Point{q[0] + origin[0], q[1] + origin[1]}, nil
	}
}

// Angle returns the direction of AB in degrees, in (-180, 180].
func (f *Frame) Angle() float64 {
	return f.angle
}

// AlignShape rotates s by -Angle about A.
func AlignShape[S geometry.Shape](f *Frame, s S) S {
	out, _ := geometry.Apply(s, f.align)
	return out
}

// UnalignShape rotates s by +Angle about A.
func UnalignShape[S geometry.Shape](f *Frame, s S) S {
	out, _ := geometry.Apply(s, f.unalign)
	return out
}
