package vector

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/ironsheep/outline-tools-mcp/internal/trace"
)

// DefaultFill is the fill colour used when SVGOptions.Fill is empty.
const DefaultFill = "#000000"

// SVGOptions controls WriteSVG.
type SVGOptions struct {
	// Scale is the size of one source pixel in output units. 0 means 1.
	Scale float64

	// Fill is the outline fill colour as "#RRGGBB". Empty means DefaultFill.
	Fill string

	// ShowPolygon adds the unsmoothed boundary polygon as a thin red
	// stroke on top of the filled curve.
	ShowPolygon bool
}

// PathData returns the smoothed outline as SVG path data in pixel
// coordinates.
//
// The path starts at the first vertex and joins each vertex i to vertex
// i+1 with a cubic bezier whose handles are the outgoing control point of i
// and the incoming control point of i+1. The last vertex is joined back to
// the first before the path is closed. A 1-vertex outline becomes "M x y Z";
// an empty outline becomes "".
func PathData(res *trace.Result) string {
	return pathData(res, matrix.Identity)
}

// pathData is PathData with every coordinate mapped through m.
func pathData(res *trace.Result, m matrix.Matrix) string {
	n := len(res.Vertices)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	first := apply(m, toVec(res.Vertices[0]))
	fmt.Fprintf(&sb, "M %s %s", num(first.X), num(first.Y))
	if n > 1 {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			c1 := apply(m, res.Controls[i].Out)
			c2 := apply(m, res.Controls[j].In)
			end := apply(m, toVec(res.Vertices[j]))
			fmt.Fprintf(&sb, " C %s %s %s %s %s %s",
				num(c1.X), num(c1.Y), num(c2.X), num(c2.Y), num(end.X), num(end.Y))
		}
	}
	sb.WriteString(" Z")
	return sb.String()
}

// polygonPoints returns the boundary polygon as an SVG points list.
func polygonPoints(res *trace.Result, m matrix.Matrix) string {
	parts := make([]string, len(res.Vertices))
	for i, p := range res.Vertices {
		v := apply(m, toVec(p))
		parts[i] = num(v.X) + "," + num(v.Y)
	}
	return strings.Join(parts, " ")
}

// WriteSVG writes a standalone SVG document containing the filled outline.
//
// The document is Width*Scale by Height*Scale units. Vertices sit at pixel
// centres, so a full-width shape is inset by half a pixel on every side.
//
// Returns an error if Fill is not a valid hex colour, Scale is negative, or
// writing to w fails.
func WriteSVG(w io.Writer, res *trace.Result, opts SVGOptions) error {
	scale, fill, err := resolve(opts.Scale, opts.Fill)
	if err != nil {
		return err
	}

	m := pixelCentres(scale)
	width := num(float64(res.Width) * scale)
	height := num(float64(res.Height) * scale)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&sb, `  <path d="%s" fill="%s" fill-rule="nonzero"/>`+"\n", pathData(res, m), fill)
	if opts.ShowPolygon && len(res.Vertices) > 1 {
		fmt.Fprintf(&sb, `  <polygon points="%s" fill="none" stroke="#FF0000" stroke-width="%s"/>`+"\n",
			polygonPoints(res, m), num(scale/10))
	}
	sb.WriteString("</svg>\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// resolve applies defaults to scale and fill and validates them.
func resolve(scale float64, fill string) (float64, string, error) {
	if scale < 0 || math.IsNaN(scale) {
		return 0, "", fmt.Errorf("invalid scale %g: must not be negative", scale)
	}
	if scale == 0 {
		scale = 1
	}
	if fill == "" {
		fill = DefaultFill
	}
	c, err := colorful.Hex(fill)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse fill color %q: %w", fill, err)
	}
	return scale, strings.ToUpper(c.Hex()), nil
}

// pixelCentres maps pixel (x, y) to the centre of its scaled output cell.
func pixelCentres(scale float64) matrix.Matrix {
	return matrix.Translate(0.5, 0.5).Scale(scale, scale)
}

func apply(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	x, y := m.Apply(v.X, v.Y)
	return vec.Vec2{X: x, Y: y}
}

func toVec(p trace.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}

// num formats a coordinate with at most three decimals and no trailing
// zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
