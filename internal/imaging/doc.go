// Package imaging acquires the binary bitmaps that the tracer consumes.
//
// Source images are decoded through a shared ImageCache and reduced to
// foreground/background pixels by Binarize. Raw CCITT fax data, which is
// bilevel already, is handled by DecodeCCITT.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner.
// Bitmaps produced by Binarize always start at (0,0), even when the source
// image has a different origin or a Region was cropped out of it.
//
// # Binarisation Modes
//
// Luminance mode (the default) converts to grayscale and compares against a
// threshold; dark pixels are foreground unless Invert is set. Colour-key mode
// measures the CIE L*a*b* distance of every pixel to a key colour and marks
// close pixels as foreground, which isolates one coloured shape in a
// multi-coloured image. Fully transparent pixels are background in both modes.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Binarize and DecodeCCITT do not
// modify their inputs.
package imaging
