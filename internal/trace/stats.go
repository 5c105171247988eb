package trace

import "math"

// Bounds is the bounding box of a contour. All four edges are inclusive
// pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Stats summarises the geometry of a contour.
type Stats struct {
	// Vertices is the number of polygon vertices.
	Vertices int `json:"vertices"`

	// Perimeter is the length of the closed polygon in pixels, rounded to
	// two decimals. Diagonal steps count as sqrt(2).
	Perimeter float64 `json:"perimeter"`

	// Area is the polygon area from the shoelace formula, in square pixels.
	// It is measured between pixel centres, so it is smaller than the
	// foreground pixel count.
	Area float64 `json:"area"`

	// Clockwise is true when the polygon winds clockwise on screen (Y down).
	// Polygons with zero area report false.
	Clockwise bool `json:"clockwise"`

	// Bounds is the bounding box of the vertices.
	Bounds Bounds `json:"bounds"`
}

// Stats computes vertex count, perimeter, area, orientation and bounds.
// An empty contour yields the zero Stats.
func (c Contour) Stats() Stats {
	if len(c) == 0 {
		return Stats{}
	}

	b := Bounds{X1: c[0].X, Y1: c[0].Y, X2: c[0].X, Y2: c[0].Y}
	var perimeter float64
	var twiceArea int
	for i, p := range c {
		q := c[(i+1)%len(c)]

		dx, dy := q.X-p.X, q.Y-p.Y
		perimeter += math.Sqrt(float64(dx*dx + dy*dy))
		twiceArea += p.X*q.Y - q.X*p.Y

		b.X1 = min(b.X1, p.X)
		b.Y1 = min(b.Y1, p.Y)
		b.X2 = max(b.X2, p.X)
		b.Y2 = max(b.Y2, p.Y)
	}

	return Stats{
		Vertices:  len(c),
		Perimeter: math.Round(perimeter*100) / 100,
		Area:      math.Abs(float64(twiceArea)) / 2,
		Clockwise: twiceArea > 0,
		Bounds:    b,
	}
}
