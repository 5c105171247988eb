package trace

import "fmt"

// Direction is one of the eight neighbour offsets, numbered clockwise
// starting at North.
type Direction int

// The eight neighbour directions in clockwise order.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// numDirections is the size of the Moore neighbourhood.
const numDirections = 8

// clockwiseDeltas holds the (dx, dy) offset of each Direction. Y grows
// downward, so North is (0, -1).
var clockwiseDeltas = [numDirections][2]int{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

// clockwiseIndex is the inverse of clockwiseDeltas, indexed [dy+1][dx+1].
// The centre cell is not a direction.
var clockwiseIndex = [3][3]Direction{
	{NorthWest, North, NorthEast},
	{West, -1, East},
	{SouthWest, South, SouthEast},
}

var directionNames = [numDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// IndexOf returns the Direction whose offset is (dx, dy).
//
// It fails with ErrInvalidDirection unless (dx, dy) is one of the eight unit
// deltas; (0, 0) is not a direction.
func IndexOf(dx, dy int) (Direction, error) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	d := clockwiseIndex[dy+1][dx+1]
	if d < 0 {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, dx, dy)
	}
	return d, nil
}

// Delta returns the unit offset of d.
func (d Direction) Delta() (dx, dy int) {
	delta := clockwiseDeltas[d.normalize()]
	return delta[0], delta[1]
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return (d + numDirections/2).normalize()
}

// Clockwise returns the direction n steps clockwise of d. Negative n turns
// counter-clockwise.
func (d Direction) Clockwise(n int) Direction {
	return (d + Direction(n)).normalize()
}

func (d Direction) normalize() Direction {
	d %= numDirections
	if d < 0 {
		d += numDirections
	}
	return d
}

// String returns the compass abbreviation, e.g. "NE".
func (d Direction) String() string {
	if d < 0 || d >= numDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ForegroundNeighborCount returns how many of the eight neighbours of (x, y)
// are foreground. Neighbours outside the bitmap count as background.
func ForegroundNeighborCount(b *Bitmap, x, y int) int {
	count := 0
	for _, delta := range clockwiseDeltas {
		if b.IsForeground(x+delta[0], y+delta[1]) {
			count++
		}
	}
	return count
}
