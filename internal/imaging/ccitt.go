package imaging

import (
	"fmt"
	"io"

	"golang.org/x/image/ccitt"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

// CCITTOptions describes a raw CCITT fax-compressed bitmap.
type CCITTOptions struct {
	// Width is the number of pixels per row. Required.
	Width int

	// Height is the number of rows. 0 detects the height from the data.
	Height int

	// Group4 selects Group 4 (T.6) coding; otherwise Group 3 (T.4) 1D.
	Group4 bool

	// Invert makes white pixels the foreground. By default black is
	// foreground, matching ink on paper.
	Invert bool
}

// DecodeCCITT decodes CCITT Group 3 or Group 4 compressed data into a
// bitmap.
//
// Fax data is already bilevel, so no threshold is involved. The data is
// read MSB-first, as stored in TIFF and PDF files.
func DecodeCCITT(r io.Reader, opts CCITTOptions) (*trace.Bitmap, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("invalid CCITT width %d: must be positive", opts.Width)
	}
	if opts.Height < 0 {
		return nil, fmt.Errorf("invalid CCITT height %d: must not be negative", opts.Height)
	}

	sf := ccitt.Group3
	if opts.Group4 {
		sf = ccitt.Group4
	}
	rows := opts.Height
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	reader := ccitt.NewReader(r, ccitt.MSB, sf, opts.Width, rows, &ccitt.Options{})
	packed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CCITT data: %w", err)
	}

	return unpackRows(packed, opts.Width, opts.Invert)
}

// unpackRows expands byte-aligned, MSB-first 1-bit rows where 1 is white.
func unpackRows(packed []byte, width int, invert bool) (*trace.Bitmap, error) {
	stride := (width + 7) / 8
	if len(packed)%stride != 0 {
		return nil, fmt.Errorf("decoded CCITT data is %d bytes, not a multiple of row size %d", len(packed), stride)
	}
	height := len(packed) / stride

	pixels := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := packed[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			white := row[x/8]&(0x80>>(x%8)) != 0
			pixels[width*y+x] = white == invert
		}
	}
	return trace.NewBitmap(pixels, width)
}
