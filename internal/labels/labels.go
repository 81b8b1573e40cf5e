// Package labels derives row names such as "F01" or "F-1/F00" from a row
// index.
package labels

import (
	"fmt"
	"strconv"
	"strings"
)

// Sequencer names rows relative to the reference row (index 0).
type Sequencer struct {
	StartLetter     string
	StartNum        int
	ZeroPad         bool
	DualZone        bool
	KeepStartLetter bool
}

// Validate checks that the start letter is a single ASCII letter.
func (s Sequencer) Validate() error {
	if len(s.StartLetter) != 1 {
		return fmt.Errorf("start letter must be a single letter, got %q", s.StartLetter)
	}
	c := strings.ToUpper(s.StartLetter)[0]
	if c < 'A' || c > 'Z' {
		return fmt.Errorf("start letter must be A-Z, got %q", s.StartLetter)
	}
	return nil
}

// Label returns the name of row i. With DualZone set the row is named after
// both zones it separates, e.g. "F01/F02".
func (s Sequencer) Label(i int) string {
	if s.DualZone {
		return s.single(i) + "/" + s.single(i+1)
	}
	return s.single(i)
}

func (s Sequencer) single(i int) string {
	return s.letter(i) + s.number(i)
}

func (s Sequencer) letter(i int) string {
	start := strings.ToUpper(s.StartLetter)
	if s.KeepStartLetter || start == "" {
		return start
	}
	off := (int(start[0]-'A') + i) % 26
	if off < 0 {
		off += 26
	}
	return string(rune('A' + off))
}

// number may be negative for rows below the reference; it is not clamped.
func (s Sequencer) number(i int) string {
	n := s.StartNum + i
	if s.ZeroPad {
		return fmt.Sprintf("%02d", n)
	}
	return strconv.Itoa(n)
}
