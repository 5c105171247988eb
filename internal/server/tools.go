package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it is already bilevel. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "cache_clear",
			Description: "Drop cached source images so edited files are decoded again. With a path only that image is dropped; without one the whole cache is cleared.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Image path to evict, exactly as it was loaded (optional, default: all images)",
					},
				},
				"required": []string{},
			},
		},

		// Bitmap Operations
		{
			Name:        "bitmap_find_start",
			Description: "Find the first foreground pixel of a bitmap in row-major order (top row first, left to right). This is where a trace begins.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": bitmapProperties(),
				"required":   []string{"pixels", "width"},
			},
		},
		{
			Name:        "bitmap_neighbor_count",
			Description: "Count the foreground pixels among the 8 neighbours of a pixel. Neighbours outside the bitmap count as background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(bitmapProperties(), map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				}),
				"required": []string{"pixels", "width", "x", "y"},
			},
		},
		{
			Name:        "bitmap_trace",
			Description: "Trace the outer boundary of the first foreground region clockwise and compute bezier control points for every vertex. Returns vertices, control points, contour statistics and SVG path data.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": with(bitmapProperties(), ratioProperty()),
				"required":   []string{"pixels", "width"},
			},
		},
		{
			Name:        "curve_control_points",
			Description: "Compute the incoming and outgoing bezier control points of one vertex from its neighbours on the contour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(map[string]interface{}{
					"vertex": pointProperty("The vertex the handles belong to"),
					"prev":   pointProperty("The preceding vertex"),
					"next":   pointProperty("The following vertex"),
				}, ratioProperty()),
				"required": []string{"vertex", "prev", "next"},
			},
		},

		// Image Tracing
		{
			Name:        "image_binarize",
			Description: "Preview the bitmap an image trace would use: the image is cropped, scaled and thresholded (or colour-keyed), then returned as a black-on-white PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(binarizeProperties(), map[string]interface{}{
					"preview_scale": previewScaleProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_trace",
			Description: "Binarize an image and trace the first foreground region. Returns the same data as bitmap_trace.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": with(binarizeProperties(), ratioProperty()),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_overlay_outline",
			Description: "Trace an image and return the (cropped, scaled) source as PNG with every contour vertex marked. The start vertex uses a contrasting colour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(binarizeProperties(), map[string]interface{}{
					"mark_color": map[string]interface{}{
						"type":        "string",
						"description": "Vertex marker color as hex (e.g., #FF0000)",
						"default":     "#FF0000",
					},
					"preview_scale": previewScaleProperty(),
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_export_outline",
			Description: "Trace an image and write the smoothed outline to an SVG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(binarizeProperties(), ratioProperty(), map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the SVG file to write",
					},
					"fill": map[string]interface{}{
						"type":        "string",
						"description": "Outline fill color as hex",
						"default":     "#000000",
					},
					"show_polygon": map[string]interface{}{
						"type":        "boolean",
						"description": "Also draw the unsmoothed boundary polygon",
						"default":     false,
					},
				}),
				"required": []string{"path", "output_path"},
			},
		},
		{
			Name:        "ccitt_trace",
			Description: "Decode raw CCITT Group 3 or Group 4 fax data and trace the first black region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": with(map[string]interface{}{
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded CCITT data",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per row",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rows. 0 detects the height from the data",
						"default":     0,
					},
					"group4": map[string]interface{}{
						"type":        "boolean",
						"description": "Group 4 (T.6) coding instead of Group 3",
						"default":     false,
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Trace white instead of black pixels",
						"default":     false,
					},
				}, ratioProperty()),
				"required": []string{"data", "width"},
			},
		},
	}
}

// with merges property maps into the first one and returns it.
func with(props map[string]interface{}, more ...map[string]interface{}) map[string]interface{} {
	for _, m := range more {
		for k, v := range m {
			props[k] = v
		}
	}
	return props
}

func bitmapProperties() map[string]interface{} {
	return map[string]interface{}{
		"pixels": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"description": "Row-major pixel values, non-zero for foreground",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels per row",
		},
	}
}

func ratioProperty() map[string]interface{} {
	return map[string]interface{}{
		"ratio": map[string]interface{}{
			"type":        "number",
			"description": "Smoothing ratio from 0 (sharp corners) to 1. Default 0.25",
			"default":     0.25,
		},
	}
}

func pointProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x": map[string]interface{}{"type": "integer"},
			"y": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x", "y"},
	}
}

func previewScaleProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Magnification of the returned PNG. Default 4",
		"default":     4,
	}
}

// binarizeProperties are shared by every tool that traces an image file.
func binarizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance threshold 0-255; darker pixels are foreground. Default 128",
			"default":     128,
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat light pixels as foreground",
			"default":     false,
		},
		"color": map[string]interface{}{
			"type":        "string",
			"description": "Optional key color as hex. When set, pixels close to this color are foreground instead of dark pixels",
		},
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Color-key tolerance (0 = exact, 100 = very loose). Default 10",
			"default":     10,
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region to trace. Coordinates in the result are relative to its top-left corner",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Resize factor applied before binarization (nearest neighbour). Default 1.0",
			"default":     1.0,
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
