// Package projection converts geographic WGS84 geometries to a local metric
// frame and back.
//
// The frame is the UTM zone containing a reference lon/lat; the hemisphere is
// taken from the sign of the reference latitude. Transforms are done by the
// pure Go proj4 port in github.com/ctessum/geom/proj.
package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-rows/internal/geometry"
)

// ErrProjection is returned when a coordinate cannot be represented in the
// selected zone.
var ErrProjection = errors.New("projection failure")

const wgs84 = "+proj=longlat +datum=WGS84 +no_defs"

// UTM coverage. Points further than maxOffset degrees from the zone's
// central meridian are rejected.
const (
	minLat    = -80.0
	maxLat    = 84.0
	maxOffset = 10.0
)

// Zone identifies a UTM zone.
type Zone struct {
	Number int
	South  bool
}

// ZoneFor returns the UTM zone containing lon/lat.
func ZoneFor(lon, lat float64) Zone {
	n := int(math.Floor((lon+180)/6)) + 1
	if n < 1 {
		n = 1
	}
	if n > 60 {
		n = 60
	}
	return Zone{Number: n, South: lat < 0}
}

// EPSG returns the EPSG code of the WGS84 / UTM zone.
func (z Zone) EPSG() int {
	if z.South {
		return 32700 + z.Number
	}
	return 32600 + z.Number
}

func (z Zone) String() string {
	return fmt.Sprintf("EPSG:%d", z.EPSG())
}

// CentralMeridian returns the zone's central meridian in degrees.
func (z Zone) CentralMeridian() float64 {
	return float64(z.Number)*6 - 183
}

func (z Zone) proj4() string {
	s := fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", z.Number)
	if z.South {
		s += " +south"
	}
	return s
}

// Projector projects geometries between WGS84 and one UTM zone.
type Projector struct {
	zone    Zone
	forward proj.Transformer
	inverse proj.Transformer
}

// New creates a projector for the UTM zone containing the reference point.
func New(ref orb.Point) (*Projector, error) {
	if err := checkGeographic(ref); err != nil {
		return nil, fmt.Errorf("reference point: %w", err)
	}
	zone := ZoneFor(ref[0], ref[1])

	src, err := proj.Parse(wgs84)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing wgs84: %v", ErrProjection, err)
	}
	dst, err := proj.Parse(zone.proj4())
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrProjection, zone, err)
	}
	forward, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjection, err)
	}
	inverse, err := dst.NewTransform(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProjection, err)
	}

	return &Projector{zone: zone, forward: forward, inverse: inverse}, nil
}

// Zone returns the projector's UTM zone.
func (p *Projector) Zone() Zone {
	return p.zone
}

// Unproject converts a planar geometry back into lon/lat.
func (p *Projector) Unproject(g orb.Geometry) (orb.Geometry, error) {
	return geometry.Map(g, p.unprojectPoint)
}

// Forward returns the lon/lat to planar point transform.
func (p *Projector) Forward() geometry.PointFunc {
	return p.projectPoint
}

// ProjectShape converts a geographic geometry into the planar frame.
func ProjectShape[S geometry.Shape](p *Projector, s S) (S, error) {
	return geometry.Apply(s, p.projectPoint)
}

// UnprojectShape is Unproject for a statically typed geometry.
func UnprojectShape[S geometry.Shape](p *Projector, s S) (S, error) {
	return geometry.Apply(s, p.unprojectPoint)
}

func (p *Projector) projectPoint(pt orb.Point) (orb.Point, error) {
	if err := checkGeographic(pt); err != nil {
		return orb.Point{}, err
	}
	if d := meridianOffset(pt[0], p.zone.CentralMeridian()); math.Abs(d) > maxOffset {
		return orb.Point{}, fmt.Errorf("%w: longitude %g is %.1f degrees from the central meridian of %s",
			ErrProjection, pt[0], d, p.zone)
	}
	x, y, err := p.forward(pt[0], pt[1])
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v in %s: %v", ErrProjection, pt, p.zone, err)
	}
	if !finite(x) || !finite(y) {
		return orb.Point{}, fmt.Errorf("%w: %v is not representable in %s", ErrProjection, pt, p.zone)
	}
	return orb.Point{x, y}, nil
}

func (p *Projector) unprojectPoint(pt orb.Point) (orb.Point, error) {
	if !finite(pt[0]) || !finite(pt[1]) {
		return orb.Point{}, fmt.Errorf("%w: non-finite planar coordinate %v", ErrProjection, pt)
	}
	lon, lat, err := p.inverse(pt[0], pt[1])
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %v in %s: %v", ErrProjection, pt, p.zone, err)
	}
	if !finite(lon) || !finite(lat) {
		return orb.Point{}, fmt.Errorf("%w: %v has no geographic position in %s", ErrProjection, pt, p.zone)
	}
	return orb.Point{lon, lat}, nil
}

func checkGeographic(pt orb.Point) error {
	lon, lat := pt[0], pt[1]
	switch {
	case !finite(lon) || !finite(lat):
		return fmt.Errorf("%w: non-finite coordinate %v", ErrProjection, pt)
	case lon < -180 || lon > 180:
		return fmt.Errorf("%w: longitude %g out of range", ErrProjection, lon)
	case lat < minLat || lat > maxLat:
		return fmt.Errorf("%w: latitude %g outside UTM coverage", ErrProjection, lat)
	}
	return nil
}

func meridianOffset(lon, cm float64) float64 {
	return math.Mod(lon-cm+540, 360) - 180
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
