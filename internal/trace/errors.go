package trace

import "errors"

var (
	// ErrEmptyBitmap is returned when a bitmap has no foreground pixel.
	ErrEmptyBitmap = errors.New("trace: bitmap has no foreground pixel")

	// ErrInvalidDirection is returned when a neighbour offset is not one of
	// the eight unit deltas. Correct callers never see it.
	ErrInvalidDirection = errors.New("trace: invalid direction")

	// ErrTraceDidNotClose is returned when the boundary walk does not get
	// back to its start within the step bound.
	ErrTraceDidNotClose = errors.New("trace: contour did not close")

	// ErrInvalidWidth is returned for a bitmap width that is not positive.
	ErrInvalidWidth = errors.New("trace: width must be positive")

	// ErrRaggedBitmap is returned when the pixel count is not a multiple of
	// the width.
	ErrRaggedBitmap = errors.New("trace: pixel count is not a multiple of width")

	// ErrInvalidRatio is returned for a smoothing ratio outside [0, 1].
	ErrInvalidRatio = errors.New("trace: smoothing ratio must be in [0, 1]")
)
