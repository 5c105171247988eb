package trace

import (
	"fmt"
	"strings"
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Add returns p shifted by d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Bitmap is an immutable, bounds-checked view over a row-major binary grid.
//
// Pixel (x, y) is stored at index width*y + x. The height is implied by the
// pixel count divided by the width.
type Bitmap struct {
	pixels []bool
	width  int
	height int
}

// NewBitmap creates a bitmap from row-major pixel values.
//
// Parameters:
//   - pixels: Pixel values, true for foreground. The slice is copied.
//   - width: Number of pixels per row. Must be positive.
//
// Returns:
//   - *Bitmap: The bitmap.
//   - error: ErrInvalidWidth if width <= 0, ErrRaggedBitmap if len(pixels)
//     is not a multiple of width.
//
// An empty pixel slice with a positive width is a valid bitmap of height 0.
func NewBitmap(pixels []bool, width int) (*Bitmap, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	if len(pixels)%width != 0 {
		return nil, fmt.Errorf("%w: %d pixels, width %d", ErrRaggedBitmap, len(pixels), width)
	}

	p := make([]bool, len(pixels))
	copy(p, pixels)
	return &Bitmap{
		pixels: p,
		width:  width,
		height: len(pixels) / width,
	}, nil
}

// BitmapFromBytes creates a bitmap from byte values where any non-zero byte
// is foreground.
func BitmapFromBytes(data []byte, width int) (*Bitmap, error) {
	pixels := make([]bool, len(data))
	for i, v := range data {
		pixels[i] = v != 0
	}
	return NewBitmap(pixels, width)
}

// BitmapFromRows creates a bitmap from a slice of rows, which must all have
// the same length. It is mostly useful for writing literal test shapes.
func BitmapFromRows(rows [][]int) (*Bitmap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidWidth)
	}
	width := len(rows[0])
	pixels := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedBitmap, y, len(row), width)
		}
		for _, v := range row {
			pixels = append(pixels, v != 0)
		}
	}
	return NewBitmap(pixels, width)
}

// Width returns the number of pixels per row.
func (b *Bitmap) Width() int { return b.width }

// Height returns the number of rows.
func (b *Bitmap) Height() int { return b.height }

// Len returns the total pixel count.
func (b *Bitmap) Len() int { return len(b.pixels) }

// IsForeground reports whether the pixel at (x, y) is set. Coordinates
// outside the bitmap are background.
func (b *Bitmap) IsForeground(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.pixels[b.width*y+x]
}

// String renders the bitmap with '#' for foreground and '.' for background,
// one line per row.
func (b *Bitmap) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.IsForeground(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
