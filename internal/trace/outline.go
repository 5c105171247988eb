package trace

import (
	"fmt"
	"math"
)

// Result is a traced outline: the boundary polygon of one region together
// with the bezier handles of each vertex.
type Result struct {
	// Vertices is the closed clockwise boundary polygon.
	Vertices Contour

	// Controls holds one pair of handles per vertex, index-aligned with
	// Vertices.
	Controls []ControlPointPair

	// Width and Height are the dimensions of the traced bitmap.
	Width  int
	Height int

	// Ratio is the smoothing ratio the handles were computed with.
	Ratio float64
}

// Outline traces the first foreground region of a row-major bitmap and
// smooths its boundary.
//
// Parameters:
//   - pixels: Row-major pixel values, true for foreground.
//   - width: Pixels per row. len(pixels) must be a multiple of width.
//   - ratio: Smoothing ratio in [0, 1].
//
// Returns:
//   - *Result: The boundary polygon and its control points.
//   - error: ErrInvalidWidth, ErrRaggedBitmap or ErrInvalidRatio for rejected
//     input; otherwise any error from Trace. Nothing is returned alongside an
//     error.
func Outline(pixels []bool, width int, ratio float64) (*Result, error) {
	b, err := NewBitmap(pixels, width)
	if err != nil {
		return nil, err
	}
	return OutlineBitmap(b, ratio)
}

// OutlineBitmap is like Outline for an already constructed bitmap.
func OutlineBitmap(b *Bitmap, ratio float64) (*Result, error) {
	if err := ValidateRatio(ratio); err != nil {
		return nil, err
	}

	contour, err := Trace(b)
	if err != nil {
		return nil, fmt.Errorf("failed to trace bitmap: %w", err)
	}

	return &Result{
		Vertices: contour,
		Controls: Smooth(contour, ratio),
		Width:    b.Width(),
		Height:   b.Height(),
		Ratio:    ratio,
	}, nil
}

// ValidateRatio returns ErrInvalidRatio unless 0 <= ratio <= 1.
func ValidateRatio(ratio float64) error {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidRatio, ratio)
	}
	return nil
}
