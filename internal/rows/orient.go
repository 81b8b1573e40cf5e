package rows

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Side selects which row end carries the destination.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// ParseSide parses "A" or "B", case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	default:
		return SideA, fmt.Errorf("destination side must be A or B, got %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Orient returns seg with its coordinates running in the same x direction as
// the reference line from a to b. The input is not modified.
func Orient(seg Segment, a, b orb.Point) Segment {
	line := seg.Line
	if len(line) < 2 {
		return seg
	}
	ref := sign(b[0] - a[0])
	dir := sign(line[len(line)-1][0] - line[0][0])
	if ref != 0 && dir != 0 && ref != dir {
		reversed := line.Clone()
		reversed.Reverse()
		seg.Line = reversed
	}
	return seg
}

// DestinationAtStart reports whether the destination for side is the first
// coordinate of line (otherwise it is the last). Side A picks the endpoint
// strictly closer to a, side B the one strictly farther; on a tie A takes the
// first endpoint and B the last.
func DestinationAtStart(line orb.LineString, a orb.Point, side Side) bool {
	d1 := planar.Distance(line[0], a)
	d2 := planar.Distance(line[len(line)-1], a)
	if side == SideB {
		return d1 > d2
	}
	return d1 <= d2
}

// Endpoint returns the first or last coordinate of line.
func Endpoint(line orb.LineString, start bool) orb.Point {
	if start {
		return line[0]
	}
	return line[len(line)-1]
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
