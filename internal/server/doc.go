// Package server exposes a painting study session over the MCP (Model Context
// Protocol) JSON-RPC 2.0 interface.
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
// The same dispatcher is available over HTTP through HTTPHandler, which also
// serves the displayed and original images as PNG.
//
// # Available Tools
//
// Image:
//   - image_load, image_dimensions, session_state
//
// Filters and studies (always applied to the unmodified original):
//   - apply_filter: oil, simplified, posterize
//   - apply_study: grayscale, grouped, squint, posterize
//   - reset_image
//
// Color:
//   - sample_color: eyedropper on the displayed image
//   - analyze_color, color_harmony, dominant_colors
//
// Palette:
//   - save_color, remove_color, select_saved_color, list_saved_colors
//   - save_harmony, list_saved_harmonies
//
// Analysis:
//   - value_analysis, compare_values, temperature_profile, paint_recommendations
//
// Output:
//   - crop_region, grid_overlay, export_image
//
// # State
//
// One Server owns one session. Images loaded by path are cached for the
// lifetime of the process, so reloading a reference is cheap.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.Options{Version: version, Logger: logger})
//	if err := srv.Run(); err != nil {
//	    logger.Error("server error", "error", err)
//	}
package server
