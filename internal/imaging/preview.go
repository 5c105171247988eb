package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

// maxPreviewPixels caps the area of an encoded preview.
const maxPreviewPixels = 16 * 1024 * 1024

// PreviewResult is a PNG image returned inline to the client.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderBitmap draws b as black foreground on white, magnified by scale.
//
// Use this to check what a Binarize configuration actually selected before
// tracing it. scale must be at least 1.
func RenderBitmap(b *trace.Bitmap, scale int) (*PreviewResult, error) {
	if scale < 1 {
		return nil, fmt.Errorf("invalid preview scale %d: must be at least 1", scale)
	}

	img := image.NewGray(image.Rect(0, 0, b.Width(), b.Height()))
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.IsForeground(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	big, err := magnify(img, scale)
	if err != nil {
		return nil, err
	}
	return encodePreview(big)
}

// OverlayContour draws the vertices of c on top of img.
//
// The image is magnified by scale with nearest-neighbour sampling so each
// source pixel becomes a scale x scale cell; every contour vertex fills its
// cell with markHex and the start vertex is drawn with the opposite hue
// and lightness so the trace direction can be followed. Contour coordinates are
// relative to img's top-left corner.
func OverlayContour(img image.Image, c trace.Contour, markHex string, scale int) (*PreviewResult, error) {
	if scale < 1 {
		return nil, fmt.Errorf("invalid preview scale %d: must be at least 1", scale)
	}
	mark, err := colorful.Hex(markHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mark color %q: %w", markHex, err)
	}
	h, s, l := mark.Hsl()
	start := colorful.Hsl(math.Mod(h+180, 360), s, 1-l)

	base, err := magnify(img, scale)
	if err != nil {
		return nil, err
	}
	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)

	for i, p := range c {
		cell := image.Rect(p.X*scale, p.Y*scale, (p.X+1)*scale, (p.Y+1)*scale).Intersect(bounds)
		fill := mark
		if i == 0 {
			fill = start
		}
		draw.Draw(out, cell, image.NewUniform(fill), image.Point{}, draw.Src)
	}

	return encodePreview(out)
}

// magnify resizes img by scale, refusing before any allocation when the
// result would exceed maxPreviewPixels.
func magnify(img image.Image, scale int) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxPreviewPixels/scale || h > maxPreviewPixels/scale ||
		int64(w*scale)*int64(h*scale) > maxPreviewPixels {
		return nil, fmt.Errorf("preview of %dx%d pixels at scale %d is too large", w, h, scale)
	}

	if scale == 1 {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, w*scale, h*scale, imaging.NearestNeighbor), nil
}

func encodePreview(img image.Image) (*PreviewResult, error) {
	b := img.Bounds()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
