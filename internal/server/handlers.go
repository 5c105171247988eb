package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/ironsheep/outline-tools-mcp/internal/imaging"
	"github.com/ironsheep/outline-tools-mcp/internal/trace"
	"github.com/ironsheep/outline-tools-mcp/internal/vector"
)

// Defaults for optional tool arguments.
const (
	defaultRatio        = 0.25
	defaultThreshold    = 128
	defaultTolerance    = 10.0
	defaultPreviewScale = 4
	defaultMarkColor    = "#FF0000"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "bitmap_trace", "image_trace").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	if s.debug {
		log.Printf("tools/call %s", params.Name)
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tools/call %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Builds a bitmap from inline pixels, an image file or CCITT data
//  4. Calls the trace, imaging or vector function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "cache_clear":
		return s.handleCacheClear(args)

	// Bitmap Operations
	case "bitmap_find_start":
		return s.handleBitmapFindStart(args)
	case "bitmap_neighbor_count":
		return s.handleBitmapNeighborCount(args)
	case "bitmap_trace":
		return s.handleBitmapTrace(args)
	case "curve_control_points":
		return s.handleCurveControlPoints(args)

	// Image Tracing
	case "image_binarize":
		return s.handleImageBinarize(args)
	case "image_trace":
		return s.handleImageTrace(args)
	case "image_overlay_outline":
		return s.handleImageOverlayOutline(args)
	case "image_export_outline":
		return s.handleImageExportOutline(args)
	case "ccitt_trace":
		return s.handleCCITTTrace(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Result Types ===

type vecJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type controlPointJSON struct {
	In  vecJSON `json:"in"`
	Out vecJSON `json:"out"`
}

func newControlPointJSON(c trace.ControlPointPair) controlPointJSON {
	return controlPointJSON{
		In:  vecJSON{X: c.In.X, Y: c.In.Y},
		Out: vecJSON{X: c.Out.X, Y: c.Out.Y},
	}
}

// traceResult is the common output of every tracing tool.
type traceResult struct {
	Width         int                `json:"width"`
	Height        int                `json:"height"`
	Ratio         float64            `json:"ratio"`
	Vertices      []trace.Point      `json:"vertices"`
	ControlPoints []controlPointJSON `json:"control_points"`
	Stats         trace.Stats        `json:"stats"`
	PathData      string             `json:"path_data"`
}

func newTraceResult(res *trace.Result) *traceResult {
	cps := make([]controlPointJSON, len(res.Controls))
	for i, c := range res.Controls {
		cps[i] = newControlPointJSON(c)
	}
	return &traceResult{
		Width:         res.Width,
		Height:        res.Height,
		Ratio:         res.Ratio,
		Vertices:      res.Vertices,
		ControlPoints: cps,
		Stats:         res.Vertices.Stats(),
		PathData:      vector.PathData(res),
	}
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type cacheClearArgs struct {
	Path string `json:"path"`
}

type cacheClearResult struct {
	Cleared      string `json:"cleared"`
	CachedImages int    `json:"cached_images"`
}

func (s *Server) handleCacheClear(args json.RawMessage) (interface{}, error) {
	var a cacheClearArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cleared := "all"
	if a.Path != "" {
		s.cache.Evict(a.Path)
		cleared = a.Path
	} else {
		s.cache.Clear()
	}
	return &cacheClearResult{Cleared: cleared, CachedImages: s.cache.Len()}, nil
}

// === Bitmap Operation Handlers ===

type bitmapArgs struct {
	Pixels []int `json:"pixels"`
	Width  int   `json:"width"`
}

func (a *bitmapArgs) bitmap() (*trace.Bitmap, error) {
	data := make([]byte, len(a.Pixels))
	for i, v := range a.Pixels {
		if v != 0 {
			data[i] = 1
		}
	}
	return trace.BitmapFromBytes(data, a.Width)
}

type findStartResult struct {
	Found bool         `json:"found"`
	Start *trace.Point `json:"start,omitempty"`
}

func (s *Server) handleBitmapFindStart(args json.RawMessage) (interface{}, error) {
	var a bitmapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := a.bitmap()
	if err != nil {
		return nil, err
	}

	start, err := trace.FindStart(b)
	if errors.Is(err, trace.ErrEmptyBitmap) {
		return &findStartResult{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &findStartResult{Found: true, Start: &start}, nil
}

type neighborCountArgs struct {
	bitmapArgs
	X int `json:"x"`
	Y int `json:"y"`
}

type neighborCountResult struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"count"`
}

func (s *Server) handleBitmapNeighborCount(args json.RawMessage) (interface{}, error) {
	var a neighborCountArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := a.bitmap()
	if err != nil {
		return nil, err
	}
	return &neighborCountResult{
		X:     a.X,
		Y:     a.Y,
		Count: trace.ForegroundNeighborCount(b, a.X, a.Y),
	}, nil
}

type bitmapTraceArgs struct {
	bitmapArgs
	Ratio *float64 `json:"ratio"`
}

func (s *Server) handleBitmapTrace(args json.RawMessage) (interface{}, error) {
	var a bitmapTraceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := a.bitmap()
	if err != nil {
		return nil, err
	}
	res, err := trace.OutlineBitmap(b, ratioOrDefault(a.Ratio))
	if err != nil {
		return nil, err
	}
	return newTraceResult(res), nil
}

type controlPointsArgs struct {
	Vertex trace.Point `json:"vertex"`
	Prev   trace.Point `json:"prev"`
	Next   trace.Point `json:"next"`
	Ratio  *float64    `json:"ratio"`
}

func (s *Server) handleCurveControlPoints(args json.RawMessage) (interface{}, error) {
	var a controlPointsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ratio := ratioOrDefault(a.Ratio)
	if err := trace.ValidateRatio(ratio); err != nil {
		return nil, err
	}
	return newControlPointJSON(trace.ControlPoints(a.Vertex, a.Prev, a.Next, ratio)), nil
}

func ratioOrDefault(r *float64) float64 {
	if r == nil {
		return defaultRatio
	}
	return *r
}

// === Image Tracing Handlers ===

type binarizeArgs struct {
	Path      string          `json:"path"`
	Threshold *int            `json:"threshold"`
	Invert    bool            `json:"invert"`
	Color     string          `json:"color"`
	Tolerance *float64        `json:"tolerance"`
	Region    *imaging.Region `json:"region"`
	Scale     float64         `json:"scale"`
}

func (a *binarizeArgs) options() (imaging.BinarizeOptions, error) {
	threshold := defaultThreshold
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold < 0 || threshold > 255 {
		return imaging.BinarizeOptions{}, fmt.Errorf("invalid threshold %d: must be 0-255", threshold)
	}
	tolerance := defaultTolerance
	if a.Tolerance != nil {
		tolerance = *a.Tolerance
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	return imaging.BinarizeOptions{
		Region:    a.Region,
		Scale:     a.Scale,
		Threshold: uint8(threshold),
		Invert:    a.Invert,
		Color:     a.Color,
		Tolerance: tolerance,
	}, nil
}

// binarize loads the image named by a and returns the prepared source
// together with its bitmap.
func (s *Server) binarize(a *binarizeArgs) (image.Image, *trace.Bitmap, error) {
	opts, err := a.options()
	if err != nil {
		return nil, nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}
	src, err := imaging.Prepare(img, opts)
	if err != nil {
		return nil, nil, err
	}

	// src is already cropped and scaled
	opts.Region = nil
	opts.Scale = 1
	b, err := imaging.Binarize(src, opts)
	if err != nil {
		return nil, nil, err
	}
	return src, b, nil
}

type imageBinarizeArgs struct {
	binarizeArgs
	PreviewScale int `json:"preview_scale"`
}

type binarizeResult struct {
	*imaging.PreviewResult
	BitmapWidth  int `json:"bitmap_width"`
	BitmapHeight int `json:"bitmap_height"`
	Foreground   int `json:"foreground_pixels"`
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a imageBinarizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewScale == 0 {
		a.PreviewScale = defaultPreviewScale
	}

	_, b, err := s.binarize(&a.binarizeArgs)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.RenderBitmap(b, a.PreviewScale)
	if err != nil {
		return nil, err
	}

	fg := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.IsForeground(x, y) {
				fg++
			}
		}
	}
	return &binarizeResult{
		PreviewResult: preview,
		BitmapWidth:   b.Width(),
		BitmapHeight:  b.Height(),
		Foreground:    fg,
	}, nil
}

type imageTraceArgs struct {
	binarizeArgs
	Ratio *float64 `json:"ratio"`
}

func (s *Server) traceImage(a *imageTraceArgs) (*trace.Result, error) {
	ratio := ratioOrDefault(a.Ratio)
	if err := trace.ValidateRatio(ratio); err != nil {
		return nil, err
	}
	_, b, err := s.binarize(&a.binarizeArgs)
	if err != nil {
		return nil, err
	}
	return trace.OutlineBitmap(b, ratio)
}

func (s *Server) handleImageTrace(args json.RawMessage) (interface{}, error) {
	var a imageTraceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.traceImage(&a)
	if err != nil {
		return nil, err
	}
	return newTraceResult(res), nil
}

type overlayArgs struct {
	binarizeArgs
	MarkColor    string `json:"mark_color"`
	PreviewScale int    `json:"preview_scale"`
}

type overlayResult struct {
	*imaging.PreviewResult
	Vertices int         `json:"vertices"`
	Start    trace.Point `json:"start"`
}

func (s *Server) handleImageOverlayOutline(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MarkColor == "" {
		a.MarkColor = defaultMarkColor
	}
	if a.PreviewScale == 0 {
		a.PreviewScale = defaultPreviewScale
	}

	src, b, err := s.binarize(&a.binarizeArgs)
	if err != nil {
		return nil, err
	}
	contour, err := trace.Trace(b)
	if err != nil {
		return nil, fmt.Errorf("failed to trace bitmap: %w", err)
	}
	preview, err := imaging.OverlayContour(src, contour, a.MarkColor, a.PreviewScale)
	if err != nil {
		return nil, err
	}
	return &overlayResult{
		PreviewResult: preview,
		Vertices:      len(contour),
		Start:         contour[0],
	}, nil
}

type exportArgs struct {
	imageTraceArgs
	OutputPath  string `json:"output_path"`
	Fill        string `json:"fill"`
	ShowPolygon bool   `json:"show_polygon"`
}

type exportResult struct {
	OutputPath string `json:"output_path"`
	Bytes      int    `json:"bytes"`
	Vertices   int    `json:"vertices"`
}

func (s *Server) handleImageExportOutline(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputPath == "" {
		return nil, fmt.Errorf("output_path is required")
	}

	res, err := s.traceImage(&a.imageTraceArgs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := vector.WriteSVG(&buf, res, vector.SVGOptions{
		Scale:       1,
		Fill:        a.Fill,
		ShowPolygon: a.ShowPolygon,
	}); err != nil {
		return nil, err
	}
	if err := os.WriteFile(a.OutputPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write outline: %w", err)
	}

	return &exportResult{
		OutputPath: a.OutputPath,
		Bytes:      buf.Len(),
		Vertices:   len(res.Vertices),
	}, nil
}

type ccittTraceArgs struct {
	Data   string   `json:"data"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Group4 bool     `json:"group4"`
	Invert bool     `json:"invert"`
	Ratio  *float64 `json:"ratio"`
}

func (s *Server) handleCCITTTrace(args json.RawMessage) (interface{}, error) {
	var a ccittTraceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ratio := ratioOrDefault(a.Ratio)
	if err := trace.ValidateRatio(ratio); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	b, err := imaging.DecodeCCITT(bytes.NewReader(data), imaging.CCITTOptions{
		Width:  a.Width,
		Height: a.Height,
		Group4: a.Group4,
		Invert: a.Invert,
	})
	if err != nil {
		return nil, err
	}

	res, err := trace.OutlineBitmap(b, ratio)
	if err != nil {
		return nil, err
	}
	return newTraceResult(res), nil
}
