package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

// Region is a rectangular area of an image. (X1, Y1) is inclusive,
// (X2, Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// maxScaledPixels caps the area of an image after Scale is applied.
const maxScaledPixels = 64 * 1024 * 1024

// BinarizeOptions controls how an image is reduced to foreground and
// background pixels.
type BinarizeOptions struct {
	// Region, if non-nil, restricts the bitmap to this part of the image.
	// Bitmap coordinates are relative to the region's top-left corner.
	Region *Region

	// Scale resizes the (cropped) image before binarisation using nearest
	// neighbour sampling. 0 and 1 keep the native size.
	Scale float64

	// Threshold is the luminance level (0-255) used when Color is empty.
	// Pixels darker than Threshold are foreground.
	Threshold uint8

	// Invert makes pixels at least as light as Threshold the foreground.
	Invert bool

	// Color, if set, switches to colour-key mode: pixels whose colour is
	// within Tolerance of this hex color ("#RRGGBB") are foreground.
	Color string

	// Tolerance is the maximum CIE L*a*b* distance to Color, scaled by
	// 100 (0 = exact match, 100 = very loose).
	Tolerance float64
}

// Binarize converts an image into a bitmap suitable for tracing.
//
// # Pipeline
//
//  1. Crop to Region, if any. The region must lie within the image bounds
//     and have a positive area.
//  2. Resize by Scale with nearest neighbour sampling so edges stay hard.
//  3. Classify every pixel:
//     - luminance mode: grayscale conversion followed by a fixed threshold
//     - colour-key mode: CIE L*a*b* distance to the key colour
//  4. Fully transparent pixels are background in either mode.
//
// Returns an error for an invalid region, a negative scale or an unparsable
// key colour.
func Binarize(img image.Image, opts BinarizeOptions) (*trace.Bitmap, error) {
	src, err := prepare(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}

	var pixels []bool
	if opts.Color != "" {
		pixels, err = colorKey(src, opts.Color, opts.Tolerance)
		if err != nil {
			return nil, err
		}
	} else {
		pixels = luminanceThreshold(src, opts.Threshold, opts.Invert)
	}

	return trace.NewBitmap(pixels, src.Bounds().Dx())
}

// Prepare applies the Region and Scale of opts to img and returns the image
// that Binarize classifies. Its pixel grid matches the bitmap's.
func Prepare(img image.Image, opts BinarizeOptions) (*image.NRGBA, error) {
	return prepare(img, opts.Region, opts.Scale)
}

// prepare crops and scales img. The result always has its origin at (0,0).
func prepare(img image.Image, region *Region, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()

	var src *image.NRGBA
	if region != nil {
		r := image.Rect(region.X1, region.Y1, region.X2, region.Y2)
		if region.X1 >= region.X2 || region.Y1 >= region.Y2 {
			return nil, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
		}
		if !r.In(bounds) {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
				region.X1, region.Y1, region.X2, region.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		src = imaging.Crop(img, r)
	} else {
		src = imaging.Clone(img)
	}

	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("invalid scale %g: must be a finite, non-negative number", scale)
	}
	if scale != 0 && scale != 1 {
		wf := float64(src.Bounds().Dx()) * scale
		hf := float64(src.Bounds().Dy()) * scale
		if wf*hf > maxScaledPixels {
			return nil, fmt.Errorf("scaled image of %.0fx%.0f pixels is too large", wf, hf)
		}
		w := max(1, int(wf))
		h := max(1, int(hf))
		src = imaging.Resize(src, w, h, imaging.NearestNeighbor)
	}

	if src.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return src, nil
}

// luminanceThreshold marks pixels below level (or at/above it, if invert is
// set) as foreground.
func luminanceThreshold(src *image.NRGBA, level uint8, invert bool) []bool {
	gray := imaging.Grayscale(src)
	th := segment.Threshold(gray, level)

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	pixels := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if transparent(src, x, y) {
				continue
			}
			light := th.GrayAt(x, y).Y != 0
			pixels[w*y+x] = light == invert
		}
	}
	return pixels
}

// colorKey marks pixels close to the key colour as foreground.
func colorKey(src *image.NRGBA, hex string, tolerance float64) ([]bool, error) {
	key, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color %q: %w", hex, err)
	}
	if tolerance < 0 {
		return nil, fmt.Errorf("invalid tolerance %g: must not be negative", tolerance)
	}
	limit := tolerance / 100

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	pixels := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(src.NRGBAAt(x, y))
			if !ok {
				continue // fully transparent
			}
			pixels[w*y+x] = c.DistanceLab(key) <= limit
		}
	}
	return pixels, nil
}

func transparent(src *image.NRGBA, x, y int) bool {
	return src.NRGBAAt(x, y).A == 0
}
