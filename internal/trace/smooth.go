package trace

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ControlPointPair holds the two cubic bezier handles of one polygon vertex.
//
// In is the handle of the curve arriving at the vertex, Out the handle of the
// curve leaving it.
type ControlPointPair struct {
	In  vec.Vec2
	Out vec.Vec2
}

// ControlPoints computes the bezier handles that round off vertex, given its
// predecessor prev and successor next on the polygon.
//
// Parameters:
//   - vertex: The polygon vertex being smoothed.
//   - prev, next: Its neighbours on the polygon. The line through them is the
//     chord.
//   - ratio: Smoothing strength in [0, 1]. 0 leaves a sharp corner, larger
//     values pull the handles further along the chord. The value is not
//     checked here; Outline rejects ratios outside [0, 1].
//
// # Algorithm
//
//  1. Find the foot of the perpendicular from vertex onto the chord. Vertical
//     and horizontal chords are handled explicitly so the slope is never
//     infinite or zero in the general branch.
//  2. Take the displacements (prev - foot) * ratio and (next - foot) * ratio.
//  3. If both displacements point the same way along x, flip the one with the
//     smaller x magnitude (the outgoing one on a tie) so the handles lie on
//     opposite sides of the vertex and the curve does not loop back.
//  4. Add the displacements to vertex.
//
// A zero-length chord (prev == next) has no direction; both handles are then
// placed on the vertex itself, which renders as a sharp corner.
func ControlPoints(vertex, prev, next Point, ratio float64) ControlPointPair {
	v := toVec(vertex)
	if prev == next {
		return ControlPointPair{In: v, Out: v}
	}

	p, n := toVec(prev), toVec(next)
	foot := perpendicularFoot(v, p, n)

	d1 := p.Sub(foot).Mul(ratio)
	d2 := n.Sub(foot).Mul(ratio)
	d1, d2 = separate(d1, d2)

	return ControlPointPair{
		In:  v.Add(d1),
		Out: v.Add(d2),
	}
}

// Smooth computes the control point pair of every contour vertex. The
// result is index-aligned with c.
func Smooth(c Contour, ratio float64) []ControlPointPair {
	n := len(c)
	pairs := make([]ControlPointPair, n)
	for i, vertex := range c {
		prev := c[(i+n-1)%n]
		next := c[(i+1)%n]
		pairs[i] = ControlPoints(vertex, prev, next, ratio)
	}
	return pairs
}

// perpendicularFoot returns the point on the line through p and n that is
// closest to v. p and n must differ.
func perpendicularFoot(v, p, n vec.Vec2) vec.Vec2 {
	switch {
	case n.X == p.X:
		return vec.Vec2{X: p.X, Y: v.Y}
	case n.Y == p.Y:
		return vec.Vec2{X: v.X, Y: p.Y}
	}

	// chord: y = k*x + b, perpendicular through v: y = k2*x + b2
	k := (n.Y - p.Y) / (n.X - p.X)
	b := p.Y - k*p.X
	k2 := -1 / k
	b2 := v.Y - k2*v.X
	x := (b2 - b) / (k - k2)
	return vec.Vec2{X: x, Y: k*x + b}
}

// separate flips one of two same-side displacements.
func separate(d1, d2 vec.Vec2) (vec.Vec2, vec.Vec2) {
	if (d1.X > 0 && d2.X > 0) || (d1.X < 0 && d2.X < 0) {
		if math.Abs(d1.X) < math.Abs(d2.X) {
			d1 = d1.Mul(-1)
		} else {
			d2 = d2.Mul(-1)
		}
	}
	return d1, d2
}

func toVec(p Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}
