package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

func TestBinarize_Luminance(t *testing.T) {
	img := drawShape(3, 3, image.Pt(1, 0), image.Pt(0, 1), image.Pt(1, 1), image.Pt(2, 1), image.Pt(1, 2))

	b, err := Binarize(img, BinarizeOptions{Threshold: 128})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}

	want := ".#.\n###\n.#.\n"
	if got := b.String(); got != want {
		t.Errorf("bitmap:\n%s\nwant:\n%s", got, want)
	}
}

func TestBinarize_Invert(t *testing.T) {
	img := drawShape(2, 2, image.Pt(0, 0))

	b, err := Binarize(img, BinarizeOptions{Threshold: 128, Invert: true})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}

	want := ".#\n##\n"
	if got := b.String(); got != want {
		t.Errorf("bitmap:\n%s\nwant:\n%s", got, want)
	}
}

func TestBinarize_TransparentIsBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 0})

	for _, invert := range []bool{false, true} {
		b, err := Binarize(img, BinarizeOptions{Threshold: 128, Invert: invert})
		if err != nil {
			t.Fatalf("Binarize failed: %v", err)
		}
		if b.IsForeground(1, 0) {
			t.Errorf("invert=%v: transparent pixel is foreground", invert)
		}
	}
}

func TestBinarize_Region(t *testing.T) {
	img := drawShape(10, 10, image.Pt(5, 5), image.Pt(6, 5))

	b, err := Binarize(img, BinarizeOptions{
		Region:    &Region{X1: 4, Y1: 4, X2: 8, Y2: 7},
		Threshold: 128,
	})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", b.Width(), b.Height())
	}

	start, err := trace.FindStart(b)
	if err != nil {
		t.Fatalf("FindStart failed: %v", err)
	}
	if diff := cmp.Diff(trace.Point{X: 1, Y: 1}, start); diff != "" {
		t.Errorf("start mismatch (-want +got):\n%s", diff)
	}
}

func TestBinarize_InvalidRegion(t *testing.T) {
	img := drawShape(10, 10)

	tests := []struct {
		name   string
		region Region
	}{
		{"empty", Region{X1: 5, Y1: 5, X2: 5, Y2: 8}},
		{"inverted", Region{X1: 6, Y1: 0, X2: 2, Y2: 4}},
		{"outside", Region{X1: 0, Y1: 0, X2: 11, Y2: 4}},
		{"negative", Region{X1: -1, Y1: 0, X2: 4, Y2: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.region
			if _, err := Binarize(img, BinarizeOptions{Region: &r, Threshold: 128}); err == nil {
				t.Error("Binarize should fail for an invalid region")
			}
		})
	}
}

func TestBinarize_Scale(t *testing.T) {
	img := drawShape(2, 2, image.Pt(0, 0))

	b, err := Binarize(img, BinarizeOptions{Scale: 2, Threshold: 128})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if b.Width() != 4 || b.Height() != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", b.Width(), b.Height())
	}

	want := "##..\n##..\n....\n....\n"
	if got := b.String(); got != want {
		t.Errorf("bitmap:\n%s\nwant:\n%s", got, want)
	}

	if _, err := Binarize(img, BinarizeOptions{Scale: -1}); err == nil {
		t.Error("Binarize should fail for a negative scale")
	}
}

func TestBinarize_InvalidScale(t *testing.T) {
	img := drawShape(10, 10, image.Pt(1, 1))

	tests := []struct {
		name  string
		scale float64
	}{
		{"NaN", math.NaN()},
		{"infinite", math.Inf(1)},
		{"negative infinite", math.Inf(-1)},
		{"too large", 1e6},
		{"overflows int", 1e300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Binarize(img, BinarizeOptions{Scale: tt.scale, Threshold: 128}); err == nil {
				t.Error("Binarize should fail")
			}
			if _, err := Prepare(img, BinarizeOptions{Scale: tt.scale}); err == nil {
				t.Error("Prepare should fail")
			}
		})
	}
}

func TestBinarize_ColorKey(t *testing.T) {
	img := drawShape(3, 1)
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{250, 10, 5, 255})
	img.Set(2, 0, color.RGBA{0, 0, 255, 255})

	b, err := Binarize(img, BinarizeOptions{Color: "#FF0000", Tolerance: 10})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if got, want := b.String(), "##.\n"; got != want {
		t.Errorf("loose key: got %q, want %q", got, want)
	}

	b, err = Binarize(img, BinarizeOptions{Color: "#FF0000", Tolerance: 0})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if got, want := b.String(), "#..\n"; got != want {
		t.Errorf("exact key: got %q, want %q", got, want)
	}
}

func TestBinarize_ColorKeyErrors(t *testing.T) {
	img := drawShape(2, 2)

	if _, err := Binarize(img, BinarizeOptions{Color: "red"}); err == nil {
		t.Error("Binarize should fail for an unparsable color")
	}
	if _, err := Binarize(img, BinarizeOptions{Color: "#000000", Tolerance: -1}); err == nil {
		t.Error("Binarize should fail for a negative tolerance")
	}
}

func TestBinarize_NonZeroOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	for y := 20; y < 22; y++ {
		for x := 10; x < 13; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(12, 21, color.Black)

	b, err := Binarize(img, BinarizeOptions{Threshold: 128})
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if !b.IsForeground(2, 1) {
		t.Errorf("bitmap not normalised to origin:\n%s", b)
	}
}
