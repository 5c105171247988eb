// Package vector serialises traced outlines as SVG.
//
// PathData renders the closed bezier path in pixel coordinates. WriteSVG
// wraps it in a standalone document, scaling each pixel to Scale output
// units and moving vertices to pixel centres with an affine matrix.
//
// Coordinates are written with at most three decimals.
package vector
