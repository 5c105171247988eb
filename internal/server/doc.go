// Package server implements the MCP (Model Context Protocol) server for outline tracing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the contour tracer and
// its image front end through the MCP protocol, so an MCP client can turn bitmaps
// and image files into smooth closed bezier outlines.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - cache_clear: Drop one cached image, or all of them
//
// Bitmap Operations (pixels passed inline as a row-major integer array):
//   - bitmap_find_start: First foreground pixel in scan order
//   - bitmap_neighbor_count: Foreground pixels among the 8 neighbours
//   - bitmap_trace: Boundary, control points, statistics and SVG path data
//   - curve_control_points: Handles of a single vertex
//
// Image Tracing:
//   - image_binarize: Preview the bitmap an image trace would use
//   - image_trace: Binarize an image file and trace it
//   - image_overlay_outline: Source image with the traced vertices marked
//   - image_export_outline: Write the smoothed outline to an SVG file
//   - ccitt_trace: Trace raw CCITT Group 3/4 fax data
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, so trying several thresholds
// or regions on one image decodes it only once. cache_clear drops entries so
// a file edited on disk is decoded again.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "failed to trace bitmap: trace: bitmap has no foreground pixel"
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
