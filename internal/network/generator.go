// Package network generates a guidance row network: parallel rows clipped to
// a field boundary, each with a destination point and optional turn
// maneuvers at its ends.
//
// Generation is a single synchronous pass. Geographic input is projected into
// the UTM zone of the reference line, rotated so the line is horizontal, and
// every output geometry is taken back through the same two transforms.
package network

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/joeblew999/plat-rows/internal/frame"
	"github.com/joeblew999/plat-rows/internal/projection"
	"github.com/joeblew999/plat-rows/internal/rows"
	"github.com/joeblew999/plat-rows/internal/turns"
)

// PathKind distinguishes row paths from turn paths.
type PathKind int

const (
	PathRow PathKind = iota
	PathTurn
)

func (k PathKind) String() string {
	if k == PathTurn {
		return "turn"
	}
	return "row"
}

// Path is a travel path in geographic coordinates. Rows are line strings;
// turns keep the kind of their template.
type Path struct {
	ID       string
	Kind     PathKind
	Row      int
	End      turns.End // only meaningful for turns
	Geometry orb.Geometry
}

// Destination marks the named end of a row. Point is always one of the row
// path's endpoints.
type Destination struct {
	ID    string
	Row   int
	Name  string
	Point orb.Point
}

// Result is the outcome of one generation run.
type Result struct {
	CreatedAt    time.Time
	Zone         projection.Zone
	Paths        []Path
	Destinations []Destination

	// Warnings lists turn ends that were skipped because their template
	// could not be used.
	Warnings []error
}

// RowCount returns the number of row segments.
func (r *Result) RowCount() int {
	return len(r.Destinations)
}

// Generator runs the row pipeline. The clock and id source can be replaced
// for reproducible output. A Generator is safe for concurrent use as long as
// Now and NewID are.
type Generator struct {
	Now   func() time.Time
	NewID func() string
}

// New returns a generator using the wall clock and random UUIDs.
func New() *Generator {
	return &Generator{
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Generate builds the row network for a geographic area polygon and AB line.
func (g *Generator) Generate(area orb.Polygon, ab orb.LineString, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkInput(area, ab); err != nil {
		return nil, err
	}

	proj, err := projection.New(centroid(ab))
	if err != nil {
		return nil, fmt.Errorf("choosing projection: %w", err)
	}
	areaP, err := projection.ProjectShape(proj, area)
	if err != nil {
		return nil, fmt.Errorf("projecting area: %w", err)
	}
	abP, err := projection.ProjectShape(proj, ab)
	if err != nil {
		return nil, fmt.Errorf("projecting reference line: %w", err)
	}

	fr, err := frame.New(abP[0], abP[len(abP)-1], opts.Tolerance)
	if err != nil {
		return nil, err
	}
	boundary := frame.AlignShape(fr, areaP)
	ref := frame.AlignShape(fr, abP)
	a, b := ref[0], ref[len(ref)-1]

	family, err := rows.Family(boundary.Bound(), ref, opts.SpacingM)
	if err != nil {
		return nil, err
	}
	segments, err := rows.Clip(family, boundary, opts.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}

	res := &Result{
		CreatedAt: g.now().UTC(),
		Zone:      proj.Zone(),
	}
	ends, warnings := prepareTurns(proj, opts)
	res.Warnings = append(res.Warnings, warnings...)
	seq := opts.sequencer()

	for _, seg := range segments {
		seg = rows.Orient(seg, a, b)
		unaligned := frame.UnalignShape(fr, seg.Line)
		line, err := projection.UnprojectShape(proj, unaligned)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", seg.Index, err)
		}

		res.Paths = append(res.Paths, Path{
			ID:       g.NewID(),
			Kind:     PathRow,
			Row:      seg.Index,
			Geometry: line,
		})
		res.Destinations = append(res.Destinations, Destination{
			ID:    g.NewID(),
			Row:   seg.Index,
			Name:  seq.Label(seg.Index),
			Point: rows.Endpoint(line, rows.DestinationAtStart(seg.Line, a, opts.DestSide)),
		})

		nearStart := rows.DestinationAtStart(seg.Line, a, rows.SideA)
		angle := fr.Angle()
		for _, e := range ends {
			start, rotation := nearStart, angle+e.opts.RotationOffset
			if e.end == turns.EndB {
				start, rotation = !nearStart, rotation+180
			}
			turn, err := e.template.Attach(turns.Placement{
				Target:         rows.Endpoint(unaligned, start),
				Angle:          rotation,
				FlipHorizontal: e.opts.FlipHorizontal,
				FlipVertical:   e.opts.FlipVertical,
			})
			if err == nil {
				turn, err = proj.Unproject(turn)
			}
			if err != nil {
				res.Warnings = append(res.Warnings, fmt.Errorf("turn %s on row %d: %w", e.end, seg.Index, err))
				continue
			}
			res.Paths = append(res.Paths, Path{
				ID:       g.NewID(),
				Kind:     PathTurn,
				Row:      seg.Index,
				End:      e.end,
				Geometry: turn,
			})
		}
	}
	return res, nil
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

type turnEnd struct {
	end      turns.End
	opts     TurnOptions
	template turns.Template // planar
}

// prepareTurns resolves and projects the template of every end that is to be
// attached. Ends whose template is unusable are reported and left out.
func prepareTurns(proj *projection.Projector, opts Options) ([]turnEnd, []error) {
	var (
		ends     []turnEnd
		warnings []error
	)
	for _, e := range []struct {
		end        turns.End
		own, other TurnOptions
	}{
		{turns.EndA, opts.TurnA, opts.TurnB},
		{turns.EndB, opts.TurnB, opts.TurnA},
	} {
		if !e.own.Attach {
			continue
		}
		geo := turns.Resolve(e.own.Template, e.other.Template)
		if geo == nil {
			continue
		}
		tmpl, err := turns.NewTemplate(geo)
		if err == nil {
			tmpl, err = tmpl.Map(proj.Forward())
		}
		if err != nil {
			warnings = append(warnings, fmt.Errorf("turn %s: %w", e.end, err))
			continue
		}
		ends = append(ends, turnEnd{end: e.end, opts: e.own, template: tmpl})
	}
	return ends, warnings
}

func checkInput(area orb.Polygon, ab orb.LineString) error {
	if len(area) == 0 || len(area[0]) < 3 {
		return fmt.Errorf("%w: area needs an exterior ring of at least 3 points", ErrInvalidGeometry)
	}
	if len(ab) < 2 {
		return fmt.Errorf("%w: reference line needs at least 2 points, got %d", ErrInvalidGeometry, len(ab))
	}
	return nil
}

// centroid is the length-weighted centroid of the geographic AB line, falling
// back to A for a zero-length line.
func centroid(ab orb.LineString) orb.Point {
	c, _ := planar.CentroidArea(ab)
	if math.IsNaN(c[0]) || math.IsNaN(c[1]) {
		return ab[0]
	}
	return c
}

// direction returns the angle of the line from its first to its last point,
// in degrees.