package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

func writeDot(t *testing.T) string {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(1, 1, color.Gray{Y: 0})

	path := filepath.Join(t.TempDir(), "dot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestRunTrace(t *testing.T) {
	path := writeDot(t)

	var out bytes.Buffer
	if err := runTrace([]string{path, "0.5"}, &out); err != nil {
		t.Fatalf("runTrace failed: %v", err)
	}

	// the isolated pixel traces to a single vertex at its centre
	if !strings.Contains(out.String(), `d="M 1.5 1.5 Z"`) {
		t.Errorf("unexpected SVG:\n%s", out.String())
	}
}

func TestRunTrace_Errors(t *testing.T) {
	path := writeDot(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no args", nil, nil},
		{"too many args", []string{path, "0.1", "x"}, nil},
		{"bad ratio", []string{path, "abc"}, nil},
		{"ratio out of range", []string{path, "1.5"}, trace.ErrInvalidRatio},
		{"missing file", []string{"/nonexistent/dot.png"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runTrace(tt.args, &out)
			if err == nil {
				t.Fatal("runTrace should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error: got %v, want %v", err, tt.wantErr)
			}
			if out.Len() != 0 {
				t.Error("nothing should be written on error")
			}
		})
	}
}
