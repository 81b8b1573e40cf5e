package network

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/joeblew999/plat-rows/internal/geometry"
	"github.com/joeblew999/plat-rows/internal/labels"
	"github.com/joeblew999/plat-rows/internal/rows"
)

// TurnOptions configures the turn maneuver at one row end.
type TurnOptions struct {
	// Template is a geographic point, line or polygon. When nil the other
	// end's template is used.
	Template       orb.Geometry
	Attach         bool
	RotationOffset float64 // degrees
	FlipHorizontal bool
	FlipVertical   bool
}

// Options controls one generation run.
type Options struct {
	SpacingM        float64
	StartLetter     string
	StartNum        int
	ZeroPad         bool
	DualZone        bool
	KeepStartLetter bool
	DestSide        rows.Side
	Tolerance       float64 // meters

	TurnA TurnOptions
	TurnB TurnOptions
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{
		SpacingM:        6.0,
		StartLetter:     "F",
		StartNum:        1,
		ZeroPad:         true,
		KeepStartLetter: true,
		DestSide:        rows.SideA,
		Tolerance:       geometry.DefaultTolerance,
	}
}

// Validate reports every invalid field at once.
func (o Options) Validate() error {
	var errs []error
	if o.SpacingM <= 0 || math.IsNaN(o.SpacingM) || math.IsInf(o.SpacingM, 0) {
		errs = append(errs, fmt.Errorf("%w: %g", rows.ErrSpacing, o.SpacingM))
	}
	if err := o.sequencer().Validate(); err != nil {
		errs = append(errs, err)
	}
	if o.StartNum < 0 {
		errs = append(errs, fmt.Errorf("start number must not be negative, got %d", o.StartNum))
	}
	if o.DestSide != rows.SideA && o.DestSide != rows.SideB {
		errs = append(errs, fmt.Errorf("unknown destination side %d", o.DestSide))
	}
	if o.Tolerance <= 0 || math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) {
		errs = append(errs, fmt.Errorf("tolerance must be a positive number, got %g", o.Tolerance))
	}
	for _, t := range []struct {
		end  string
		opts TurnOptions
	}{{"A", o.TurnA}, {"B", o.TurnB}} {
		if math.IsNaN(t.opts.RotationOffset) || math.IsInf(t.opts.RotationOffset, 0) {
			errs = append(errs, fmt.Errorf("turn %s: rotation offset must be finite", t.end))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
}

func (o Options) sequencer() labels.Sequencer {
	return labels.Sequencer{
		StartLetter:     o.StartLetter,
		StartNum:        o.StartNum,
		ZeroPad:         o.ZeroPad,
		DualZone:        o.DualZone,
		KeepStartLetter: o.KeepStartLetter,
	}
}
