package network

import (
	"errors"

	"github.com/joeblew999/plat-rows/internal/frame"
	"github.com/joeblew999/plat-rows/internal/projection"
	"github.com/joeblew999/plat-rows/internal/rows"
)

var (
	// ErrInvalidGeometry is returned when the area is not a polygon or the
	// reference line has fewer than two coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidOptions wraps every option validation failure.
	ErrInvalidOptions = errors.New("invalid options")

	ErrDegenerateReferenceLine = frame.ErrDegenerate
	ErrProjection              = projection.ErrProjection

	// ErrTooManyRows is returned when the spacing would produce more than
	// rows.MaxRows candidate rows.
	ErrTooManyRows = rows.ErrTooManyRows
)

// IsInputError reports whether err was caused by the caller's input rather
// than by the generator.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidGeometry) ||
		errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrDegenerateReferenceLine) ||
		errors.Is(err, ErrProjection) ||
		errors.Is(err, ErrTooManyRows)
}
