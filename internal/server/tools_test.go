package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"cache_clear",
		"bitmap_find_start",
		"bitmap_neighbor_count",
		"bitmap_trace",
		"curve_control_points",
		"image_binarize",
		"image_trace",
		"image_overlay_outline",
		"image_export_outline",
		"ccitt_trace",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	toolRequired := map[string][]string{
		"image_load":            {"path"},
		"image_dimensions":      {"path"},
		"cache_clear":           {},
		"bitmap_find_start":     {"pixels", "width"},
		"bitmap_neighbor_count": {"pixels", "width", "x", "y"},
		"bitmap_trace":          {"pixels", "width"},
		"curve_control_points":  {"vertex", "prev", "next"},
		"image_binarize":        {"path"},
		"image_trace":           {"path"},
		"image_overlay_outline": {"path"},
		"image_export_outline":  {"path", "output_path"},
		"ccitt_trace":           {"data", "width"},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for name, want := range toolRequired {
		t.Run(name, func(t *testing.T) {
			tool, ok := toolMap[name]
			if !ok {
				t.Fatalf("Tool %s not found", name)
			}

			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}

			if len(requiredList) != len(want) {
				t.Errorf("required: got %v, want %v", requiredList, want)
			}
			for _, r := range want {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	tools := GetToolDefinitions()

	// Tools with optional parameters that should have defaults
	toolDefaults := map[string]map[string]interface{}{
		"bitmap_trace":          {"ratio": 0.25},
		"curve_control_points":  {"ratio": 0.25},
		"image_binarize":        {"threshold": 128, "tolerance": 10, "scale": 1.0, "preview_scale": 4, "invert": false},
		"image_trace":           {"threshold": 128, "ratio": 0.25},
		"image_overlay_outline": {"mark_color": "#FF0000", "preview_scale": 4},
		"image_export_outline":  {"fill": "#000000", "show_polygon": false, "ratio": 0.25},
		"ccitt_trace":           {"height": 0, "group4": false, "ratio": 0.25},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			// Compare defaults (handle type differences)
			switch expected := expectedDefault.(type) {
			case float64:
				actual, ok := actualDefault.(float64)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case int:
				// JSON numbers are float64
				actual, ok := actualDefault.(int)
				if !ok {
					actualFloat, ok := actualDefault.(float64)
					if !ok || int(actualFloat) != expected {
						t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
					}
				} else if actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case string:
				actual, ok := actualDefault.(string)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			case bool:
				actual, ok := actualDefault.(bool)
				if !ok || actual != expected {
					t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actualDefault, expected)
				}
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}

func TestToolStruct(t *testing.T) {
	tool := Tool{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"param1": map[string]interface{}{
					"type":        "string",
					"description": "A test parameter",
				},
			},
			"required": []string{"param1"},
		},
	}

	if tool.Name != "test_tool" {
		t.Errorf("Name: got %s, want test_tool", tool.Name)
	}
	if tool.Description != "A test tool" {
		t.Errorf("Description: got %s, want 'A test tool'", tool.Description)
	}
	if tool.InputSchema == nil {
		t.Error("InputSchema should not be nil")
	}
}
