// Package rows generates the family of parallel rows in the aligned frame,
// clips them to the field boundary and orients them along the reference line.
//
// All functions in this package operate on aligned geometry: the reference
// line runs horizontally from A towards +x.
package rows

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrSpacing is returned for a non-positive or non-finite row spacing.
var ErrSpacing = errors.New("row spacing must be a positive number")

// ErrTooManyRows is returned when the spacing is so small relative to the
// field that the candidate family would exceed MaxRows.
var ErrTooManyRows = errors.New("too many rows")

// MaxRows caps the number of candidate rows in one family.
const MaxRows = 100_000

// margin is the number of extra rows generated beyond the bounding box on
// each side, since the box edges rarely fall on a row center.
const margin = 2

// Origin tells whether a segment is the user's reference line or a generated
// row.
type Origin int

const (
	Generated Origin = iota
	Reference
)

func (o Origin) String() string {
	if o == Reference {
		return "reference"
	}
	return "generated"
}

// Segment is one row piece. Several segments can share an index when the
// boundary crosses the row more than once.
type Segment struct {
	Index  int
	Line   orb.LineString
	Origin Origin
}

// Family returns the candidate rows for an aligned boundary bound, ordered by
// index. Row 0 is ref itself; every other row is a horizontal line spaced
// spacing meters from the reference and wide enough to cross the whole bound.
func Family(bound orb.Bound, ref orb.LineString, spacing float64) ([]Segment, error) {
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return nil, fmt.Errorf("%w: %g", ErrSpacing, spacing)
	}
	if len(ref) < 2 {
		return nil, fmt.Errorf("reference line needs 2 points, got %d", len(ref))
	}

	refY := (ref[0][1] + ref[len(ref)-1][1]) / 2
	pad := 2 * (bound.Max[0] - bound.Min[0])
	left, right := bound.Min[0]-pad, bound.Max[0]+pad

	below := math.Max(math.Ceil((refY-bound.Min[1])/spacing)+margin, 0)
	above := math.Max(math.Ceil((bound.Max[1]-refY)/spacing)+margin, 0)
	if n := below + above + 1; !(n <= MaxRows) {
		return nil, fmt.Errorf("%w: %g rows at %g m spacing exceeds %d", ErrTooManyRows, n, spacing, MaxRows)
	}

	family := make([]Segment, 0, int(below+above)+1)
	for i := -int(below); i <= int(above); i++ {
		if i == 0 {
			family = append(family, Segment{Index: 0, Line: ref, Origin: Reference})
			continue
		}
		y := refY + float64(i)*spacing
		family = append(family, Segment{
			Index:  i,
			Line:   orb.LineString{{left, y}, {right, y}},
			Origin: Generated,
		})
	}
	return family, nil
}
