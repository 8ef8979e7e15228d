package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func schema(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func enumProp(description string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description, "enum": values}
}

// regionProps are the shared ways of naming a part of the image.
func regionProps(props map[string]interface{}) map[string]interface{} {
	props["region"] = enumProp("Named region; overrides coordinates",
		"full", "top-left", "top-right", "bottom-left", "bottom-right",
		"top-half", "bottom-half", "left-half", "right-half", "center")
	props["x1"] = prop("integer", "Left edge X coordinate (0-based)")
	props["y1"] = prop("integer", "Top edge Y coordinate (0-based)")
	props["x2"] = prop("integer", "Right edge X coordinate (exclusive)")
	props["y2"] = prop("integer", "Bottom edge Y coordinate (exclusive)")
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "image_load",
			Description: "Load a reference image (PNG, JPEG, GIF or WebP) into the study session. Resets filters, study mode and the selected color; saved colors are kept.",
			InputSchema: schema([]string{"path"}, map[string]interface{}{
				"path": prop("string", "Absolute path to the image file"),
			}),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file, or of the loaded image when no path is given.",
			InputSchema: schema(nil, map[string]interface{}{
				"path": prop("string", "Optional absolute path to an image file"),
			}),
		},
		{
			Name:        "session_state",
			Description: "Report the loaded image, active filter or study mode, selected color and palette sizes.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},

		// Filters and studies
		{
			Name:        "apply_filter",
			Description: "Apply a painting-reference filter to the original image: oil (mode filter, radius 3, 20 levels), simplified (box blur, radius 2), posterize (2 levels) or none.",
			InputSchema: schema([]string{"filter"}, map[string]interface{}{
				"filter":        enumProp("Filter name", "none", "oil", "simplified", "posterize"),
				"include_image": prop("boolean", "Return the filtered image as base64 PNG"),
			}),
		},
		{
			Name:        "apply_study",
			Description: "Apply a value study to the original image. The squint blur runs first, then the mode: grayscale, grouped (value groups), posterize, squint (blur only) or original.",
			InputSchema: schema([]string{"mode"}, map[string]interface{}{
				"mode":          enumProp("Study mode", "original", "grayscale", "grouped", "squint", "posterize"),
				"groups":        prop("integer", "Number of value groups or posterize levels, 3-10. Default 5"),
				"squint":        prop("integer", "Squint blur radius in pixels; 0 disables"),
				"include_image": prop("boolean", "Return the study image as base64 PNG"),
			}),
		},
		{
			Name:        "reset_image",
			Description: "Clear any filter or study mode and show the original image.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},

		// Color
		{
			Name:        "sample_color",
			Description: "Eyedropper: analyze the color at a pixel of the displayed image and make it the selected color.",
			InputSchema: schema([]string{"x", "y"}, map[string]interface{}{
				"x": prop("integer", "X coordinate (0 = left edge)"),
				"y": prop("integer", "Y coordinate (0 = top edge)"),
			}),
		},
		{
			Name:        "analyze_color",
			Description: "Analyze a color given as hex or RGB: HSL, chroma, value, temperature and tint.",
			InputSchema: schema(nil, map[string]interface{}{
				"hex":    prop("string", "Color as #rrggbb"),
				"r":      prop("integer", "Red 0-255"),
				"g":      prop("integer", "Green 0-255"),
				"b":      prop("integer", "Blue 0-255"),
				"select": prop("boolean", "Make this the selected color"),
			}),
		},
		{
			Name:        "color_harmony",
			Description: "Generate a color harmony from the selected color, or from hex when given.",
			InputSchema: schema([]string{"type"}, map[string]interface{}{
				"type": enumProp("Harmony rule",
					"complementary", "triadic", "analogous", "split-complementary", "tetradic", "monochromatic"),
				"hex": prop("string", "Optional base color as #rrggbb"),
			}),
		},
		{
			Name:        "dominant_colors",
			Description: "Extract the most common colors of the displayed image or a region of it.",
			InputSchema: schema(nil, regionProps(map[string]interface{}{
				"count": prop("integer", "Number of colors to return. Default 8"),
			})),
		},

		// Palette
		{
			Name:        "save_color",
			Description: "Save the selected color, or hex when given, to the palette. Colors already saved are not duplicated.",
			InputSchema: schema(nil, map[string]interface{}{
				"hex": prop("string", "Optional color as #rrggbb"),
			}),
		},
		{
			Name:        "remove_color",
			Description: "Remove a saved color by index.",
			InputSchema: schema([]string{"index"}, map[string]interface{}{
				"index": prop("integer", "0-based index in the saved list"),
			}),
		},
		{
			Name:        "select_saved_color",
			Description: "Make a saved color the selected color.",
			InputSchema: schema([]string{"index"}, map[string]interface{}{
				"index": prop("integer", "0-based index in the saved list"),
			}),
		},
		{
			Name:        "list_saved_colors",
			Description: "List saved colors with their temperature notation and an RGB copy text.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},
		{
			Name:        "save_harmony",
			Description: "Generate a harmony from the selected color and save it.",
			InputSchema: schema([]string{"type"}, map[string]interface{}{
				"type": enumProp("Harmony rule",
					"complementary", "triadic", "analogous", "split-complementary", "tetradic", "monochromatic"),
			}),
		},
		{
			Name:        "list_saved_harmonies",
			Description: "List saved harmonies.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},

		// Analysis
		{
			Name:        "value_analysis",
			Description: "Darkest, lightest, median and average value and the contrast of the displayed image.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},
		{
			Name:        "compare_values",
			Description: "Compare the mean value of two regions of the displayed image to check which reads lighter.",
			InputSchema: schema([]string{"first", "second"}, map[string]interface{}{
				"first":  map[string]interface{}{"type": "object", "properties": regionProps(map[string]interface{}{})},
				"second": map[string]interface{}{"type": "object", "properties": regionProps(map[string]interface{}{})},
			}),
		},
		{
			Name:        "temperature_profile",
			Description: "Warm, cool and neutral share of the original image, average biases and dark/light dominance.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},
		{
			Name:        "paint_recommendations",
			Description: "Lighting description, shadow/highlight/mid-tone guidance, base pigment pairs for the selected color and value mixing tips.",
			InputSchema: schema(nil, map[string]interface{}{}),
		},

		// Output
		{
			Name:        "crop_region",
			Description: "Crop part of the displayed image and return it as base64 PNG, optionally scaled.",
			InputSchema: schema(nil, regionProps(map[string]interface{}{
				"scale": prop("number", "Scale factor, e.g. 2.0 to double size. Default 1.0"),
			})),
		},
		{
			Name:        "grid_overlay",
			Description: "Draw a drawing grid over the displayed image and return it as base64 PNG.",
			InputSchema: schema(nil, map[string]interface{}{
				"spacing":     prop("integer", "Grid cell size in pixels. Default 50"),
				"color":       prop("string", "Line color as #rrggbb. Default #ff0000"),
				"opacity":     prop("number", "Line opacity 0-1. Default 1"),
				"show_labels": prop("boolean", "Label intersections with coordinates"),
			}),
		},
		{
			Name:        "export_image",
			Description: "Export the displayed or original image as PNG, to a file when path is given or as base64 otherwise.",
			InputSchema: schema(nil, map[string]interface{}{
				"source": enumProp("Which image to export. Default displayed", "displayed", "original"),
				"path":   prop("string", "Optional absolute output path"),
			}),
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
