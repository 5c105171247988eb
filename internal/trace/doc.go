// Package trace turns a binary raster into a smooth closed outline.
//
// The pipeline has two stages:
//
//  1. Contour tracing: Trace walks the outer boundary of the first foreground
//     region (in row-major order) with clockwise Moore-neighbour tracing and
//     returns an ordered, 8-connected, closed polygon.
//  2. Smoothing: ControlPoints computes a pair of cubic bezier handles for one
//     polygon vertex from its predecessor and successor. Smooth applies it to
//     every vertex of a contour.
//
// Outline runs both stages on raw input and is the single entry point used by
// the server and the command line tool.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward
//   - Y increases downward
//
// "Clockwise" is meant as seen on screen, i.e. with Y pointing down.
//
// # Error Handling
//
// All failures are fatal and reported through sentinel errors that can be
// matched with errors.Is:
//   - ErrEmptyBitmap: no foreground pixel exists
//   - ErrInvalidDirection: a neighbour offset lookup received a non-unit delta
//   - ErrTraceDidNotClose: the boundary walk exceeded its step bound
//   - ErrInvalidWidth, ErrRaggedBitmap, ErrInvalidRatio: rejected input
//
// No partial result is returned together with an error.
//
// # Thread Safety
//
// Bitmap values are immutable after construction and every function in this
// package is free of shared state, so independent bitmaps may be traced from
// multiple goroutines.
package trace
