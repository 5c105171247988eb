package trace

import "fmt"

// Contour is an ordered, 8-connected, closed sequence of boundary pixels.
// The last point connects back to the first; the closing repeat of the start
// point is not stored.
type Contour []Point

// FindStart returns the first foreground pixel in row-major order.
//
// Returns ErrEmptyBitmap if the bitmap has no foreground pixel.
func FindStart(b *Bitmap) (Point, error) {
	for i, set := range b.pixels {
		if set {
			return Point{X: i % b.width, Y: i / b.width}, nil
		}
	}
	return Point{}, ErrEmptyBitmap
}

// Trace follows the outer boundary of the region containing the start pixel
// found by FindStart and returns it as a clockwise contour.
//
// # Algorithm
//
// Clockwise Moore-neighbour tracing:
//
//  1. At the start pixel the neighbour scan begins at North. The start is the
//     first foreground pixel in row-major order, so the row above and the
//     pixel to the left are empty and the first hit lies on the boundary.
//  2. At every later pixel the scan begins one step clockwise of the reverse
//     of the direction of arrival, i.e. just past the pixel we came from.
//     The first foreground neighbour is the next boundary pixel.
//  3. The walk ends when it stands on the start pixel again and is about to
//     repeat its first step. A boundary that passes through the start pixel
//     more than once (a diagonal bridge) therefore still gets walked in full.
//
// An isolated pixel has no foreground neighbour and yields a 1-point contour.
//
// # Errors
//
//   - ErrEmptyBitmap: no foreground pixel exists
//   - ErrTraceDidNotClose: the walk took more than 8 steps per pixel
//   - ErrInvalidDirection: internal invariant violation
func Trace(b *Bitmap) (Contour, error) {
	// Each (pixel, arrival direction) state occurs at most once per lap.
	return traceWithLimit(b, numDirections*b.Len()+numDirections)
}

// traceWithLimit is Trace with an explicit bound on the number of steps
// taken after leaving the start pixel.
func traceWithLimit(b *Bitmap, maxSteps int) (Contour, error) {
	start, err := FindStart(b)
	if err != nil {
		return nil, err
	}

	second, ok := nextBoundaryPixel(b, start, North)
	if !ok {
		return Contour{start}, nil
	}
	first, err := stepDirection(start, second)
	if err != nil {
		return nil, err
	}

	contour := Contour{start}
	cur, arrived := second, first
	for steps := 0; steps < maxSteps; steps++ {
		next, _ := nextBoundaryPixel(b, cur, arrived.Reverse().Clockwise(1))
		d, err := stepDirection(cur, next)
		if err != nil {
			return nil, err
		}
		if cur == start && d == first {
			return contour, nil
		}
		contour = append(contour, cur)
		cur, arrived = next, d
	}

	return nil, fmt.Errorf("%w: %d steps from (%d,%d)", ErrTraceDidNotClose, maxSteps, start.X, start.Y)
}

// nextBoundaryPixel scans the neighbours of p clockwise beginning at from and
// returns the first foreground one.
func nextBoundaryPixel(b *Bitmap, p Point, from Direction) (Point, bool) {
	for i := 0; i < numDirections; i++ {
		q := p.Add(from.Clockwise(i))
		if b.IsForeground(q.X, q.Y) {
			return q, true
		}
	}
	return p, false
}

// stepDirection returns the direction that leads from p to its neighbour q.
func stepDirection(p, q Point) (Direction, error) {
	return IndexOf(q.X-p.X, q.Y-p.Y)
}
