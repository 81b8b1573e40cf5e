package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertPoint(t *testing.T, want, got orb.Point) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], eps, "x")
	assert.InDelta(t, want[1], got[1], eps, "y")
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		in   orb.Point
		want orb.Point
	}{
		{"zero", 0, orb.Point{1, 2}, orb.Point{1, 2}},
		{"quarter turn", 90, orb.Point{1, 0}, orb.Point{0, 1}},
		{"half turn", 180, orb.Point{1, 2}, orb.Point{-1, -2}},
		{"clockwise", -90, orb.Point{1, 0}, orb.Point{0, -1}},
		{"diagonal", 45, orb.Point{1, 0}, orb.Point{math.Sqrt2 / 2, math.Sqrt2 / 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoint(t, tt.want, Rotate(tt.deg).Point(tt.in))
		})
	}
}

func TestRotateAboutPoint(t *testing.T) {
	origin := orb.Point{10, 10}
	m := Translate(10, 10).Multiply(Rotate(90)).Multiply(Translate(-10, -10))

	assertPoint(t, origin, m.Point(origin))
	assertPoint(t, orb.Point{10, 11}, m.Point(orb.Point{11, 10}))
}

func TestMultiplyOrder(t *testing.T) {
	// Translate after scale: (1,1) -> (2,2) -> (12,2).
	m := Translate(10, 0).Multiply(Scale(2, 2))
	assertPoint(t, orb.Point{12, 2}, m.Point(orb.Point{1, 1}))

	// Scale after translate: (1,1) -> (11,1) -> (22,2).
	m = Scale(2, 2).Multiply(Translate(10, 0))
	assertPoint(t, orb.Point{22, 2}, m.Point(orb.Point{1, 1}))
}

func TestRotationPreservesLength(t *testing.T) {
	ls := orb.LineString{{0, 0}, {3, 4}, {3, 10}}
	rotated, err := Apply(ls, Rotate(37.5).Multiply(Translate(-1, -1)).Func())
	require.NoError(t, err)

	require.Len(t, rotated, len(ls))
	for i := 1; i < len(ls); i++ {
		want := math.Hypot(ls[i][0]-ls[i-1][0], ls[i][1]-ls[i-1][1])
		got := math.Hypot(rotated[i][0]-rotated[i-1][0], rotated[i][1]-rotated[i-1][1])
		assert.InDelta(t, want, got, eps)
	}
}

func TestTransformGeometry(t *testing.T) {
	poly := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	out, err := TransformGeometry(Translate(5, 5), poly)
	require.NoError(t, err)

	got, ok := out.(orb.Polygon)
	require.True(t, ok)
	assertPoint(t, orb.Point{6, 6}, got[0][2])
	assertPoint(t, orb.Point{1, 1}, poly[0][2])
}
