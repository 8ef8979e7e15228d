package server

import (
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// createTestImageFile writes a PNG with red, green, blue and white quadrants
// and returns its path.
func createTestImageFile(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "reference.png")
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

// callTool runs a tools/call request and decodes the JSON text content.
func callTool(t *testing.T, s *Server, name string, args interface{}) (map[string]interface{}, *MCPError) {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("unexpected content: %v", content)
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content[0]["text"].(string)), &out); err != nil {
		t.Fatalf("tool %s returned invalid JSON: %v", name, err)
	}
	return out, nil
}

func mustCall(t *testing.T, s *Server, name string, args interface{}) map[string]interface{} {
	t.Helper()
	out, mcpErr := callTool(t, s, name, args)
	if mcpErr != nil {
		t.Fatalf("%s failed: %s (%v)", name, mcpErr.Message, mcpErr.Data)
	}
	return out
}

func loadedServer(t *testing.T) *Server {
	t.Helper()
	s := New(Options{})
	mustCall(t, s, "image_load", map[string]interface{}{"path": createTestImageFile(t, 100, 80)})
	return s
}

func TestImageLoad(t *testing.T) {
	s := New(Options{})
	path := createTestImageFile(t, 100, 80)

	out := mustCall(t, s, "image_load", map[string]interface{}{"path": path})
	if out["width"] != float64(100) || out["height"] != float64(80) {
		t.Errorf("dimensions: got %v x %v", out["width"], out["height"])
	}
	if out["format"] != "png" {
		t.Errorf("format: got %v", out["format"])
	}
	if out["path"] != path {
		t.Errorf("path: got %v", out["path"])
	}

	dims := mustCall(t, s, "image_dimensions", map[string]interface{}{})
	if dims["width"] != float64(100) {
		t.Errorf("image_dimensions width: got %v", dims["width"])
	}
}

func TestImageLoad_Errors(t *testing.T) {
	s := New(Options{})

	tests := []struct {
		name string
		args interface{}
	}{
		{"missing path", map[string]interface{}{}},
		{"nonexistent file", map[string]interface{}{"path": "/nonexistent/photo.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mcpErr := callTool(t, s, "image_load", tt.args)
			if mcpErr == nil || mcpErr.Code != codeToolFailed {
				t.Errorf("expected tool failure, got %+v", mcpErr)
			}
		})
	}
}

func TestTools_RequireImage(t *testing.T) {
	s := New(Options{})

	for _, name := range []string{
		"image_dimensions", "apply_filter", "apply_study", "reset_image", "sample_color",
		"dominant_colors", "value_analysis", "compare_values", "temperature_profile",
		"paint_recommendations", "crop_region", "grid_overlay", "export_image",
	} {
		t.Run(name, func(t *testing.T) {
			args := map[string]interface{}{}
			if name == "apply_filter" {
				args["filter"] = "oil"
			}
			_, mcpErr := callTool(t, s, name, args)
			if mcpErr == nil {
				t.Fatal("expected an error without an image")
			}
			if !strings.Contains(mcpErr.Data.(string), "no image loaded") {
				t.Errorf("error data: got %v", mcpErr.Data)
			}
		})
	}
}

func TestUnknownTool(t *testing.T) {
	_, mcpErr := callTool(t, New(Options{}), "image_rotate", map[string]interface{}{})
	if mcpErr == nil || !strings.Contains(mcpErr.Data.(string), "unknown tool") {
		t.Errorf("expected unknown tool error, got %+v", mcpErr)
	}
}

func TestSampleAndAnalyzeColor(t *testing.T) {
	s := loadedServer(t)

	out := mustCall(t, s, "sample_color", map[string]interface{}{"x": 10, "y": 10})
	if out["hex"] != "#ff0000" || out["temperature"] != "Warm" {
		t.Errorf("sample: got %v %v", out["hex"], out["temperature"])
	}
	if out["notation"] != "T: 30 N: 2" || out["rgb_text"] != "255, 0, 0" {
		t.Errorf("notation/rgb_text: got %v / %v", out["notation"], out["rgb_text"])
	}

	if _, mcpErr := callTool(t, s, "sample_color", map[string]interface{}{"x": 100, "y": 0}); mcpErr == nil {
		t.Error("expected out-of-bounds error")
	}

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantHex string
		wantErr bool
	}{
		{"hex", map[string]interface{}{"hex": "#0000FF"}, "#0000ff", false},
		{"rgb", map[string]interface{}{"r": 0, "g": 255, "b": 0}, "#00ff00", false},
		{"partial rgb", map[string]interface{}{"r": 10}, "", true},
		{"out of range", map[string]interface{}{"r": 300, "g": 0, "b": 0}, "", true},
		{"nothing", map[string]interface{}{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, mcpErr := callTool(t, s, "analyze_color", tt.args)
			if tt.wantErr {
				if mcpErr == nil {
					t.Error("expected error")
				}
				return
			}
			if mcpErr != nil {
				t.Fatalf("unexpected error: %+v", mcpErr)
			}
			if out["hex"] != tt.wantHex {
				t.Errorf("hex: got %v, want %s", out["hex"], tt.wantHex)
			}
		})
	}
}

func TestColorHarmony(t *testing.T) {
	s := New(Options{})

	if _, mcpErr := callTool(t, s, "color_harmony", map[string]interface{}{"type": "triadic"}); mcpErr == nil {
		t.Error("expected error with no selection and no hex")
	}

	out := mustCall(t, s, "color_harmony", map[string]interface{}{"type": "complementary", "hex": "#ff0000"})
	if out["copy_text"] != "#ff0000, #00ffff" {
		t.Errorf("copy_text: got %v", out["copy_text"])
	}

	mustCall(t, s, "analyze_color", map[string]interface{}{"hex": "#ff0000", "select": true})
	out = mustCall(t, s, "color_harmony", map[string]interface{}{"type": "tetradic"})
	if colors := out["colors"].([]interface{}); len(colors) != 4 {
		t.Errorf("tetradic: got %d colors", len(colors))
	}
	out = mustCall(t, s, "color_harmony", map[string]interface{}{"type": "rainbow"})
	if out["type"] != "complementary" {
		t.Errorf("fallback type: got %v", out["type"])
	}
}

func TestFiltersAndStudies(t *testing.T) {
	s := loadedServer(t)

	out := mustCall(t, s, "apply_filter", map[string]interface{}{"filter": "posterize", "include_image": true})
	if out["filter"] != "posterize" {
		t.Errorf("filter: got %v", out["filter"])
	}
	img, ok := out["image"].(map[string]interface{})
	if !ok || img["mime_type"] != "image/png" {
		t.Fatalf("expected an embedded image, got %v", out["image"])
	}
	if _, err := base64.StdEncoding.DecodeString(img["image_base64"].(string)); err != nil {
		t.Errorf("invalid base64: %v", err)
	}

	if _, mcpErr := callTool(t, s, "apply_filter", map[string]interface{}{"filter": "watercolor"}); mcpErr == nil {
		t.Error("expected error for unknown filter")
	}

	out = mustCall(t, s, "apply_study", map[string]interface{}{"mode": "grayscale"})
	study := out["study"].(map[string]interface{})
	if study["mode"] != "grayscale" || study["groups"] != float64(5) {
		t.Errorf("study: got %v", study)
	}
	if _, ok := out["image"]; ok {
		t.Error("image should be omitted unless requested")
	}

	sample := mustCall(t, s, "sample_color", map[string]interface{}{"x": 10, "y": 10})
	if sample["hex"] != "#4c4c4c" {
		t.Errorf("grayscale sample: got %v", sample["hex"])
	}

	mustCall(t, s, "reset_image", map[string]interface{}{})
	sample = mustCall(t, s, "sample_color", map[string]interface{}{"x": 10, "y": 10})
	if sample["hex"] != "#ff0000" {
		t.Errorf("after reset: got %v", sample["hex"])
	}

	state := mustCall(t, s, "session_state", nil)
	if state["loaded"] != true || state["filter"] != "none" {
		t.Errorf("state: %v", state)
	}
}

func TestPalette(t *testing.T) {
	s := loadedServer(t)

	if _, mcpErr := callTool(t, s, "save_color", map[string]interface{}{}); mcpErr == nil {
		t.Error("expected error saving with no selection")
	}

	mustCall(t, s, "sample_color", map[string]interface{}{"x": 10, "y": 10})
	out := mustCall(t, s, "save_color", map[string]interface{}{})
	if out["added"] != true || out["saved_count"] != float64(1) {
		t.Errorf("first save: %v", out)
	}
	out = mustCall(t, s, "save_color", map[string]interface{}{"hex": "#ff0000"})
	if out["added"] != false {
		t.Error("duplicate should not be added")
	}
	mustCall(t, s, "save_color", map[string]interface{}{"hex": "#0000ff"})

	list := mustCall(t, s, "list_saved_colors", nil)
	if list["rgb_text"] != "255, 0, 0\n0, 0, 255" {
		t.Errorf("rgb_text: got %q", list["rgb_text"])
	}

	sel := mustCall(t, s, "select_saved_color", map[string]interface{}{"index": 1})
	if sel["hex"] != "#0000ff" {
		t.Errorf("select_saved_color: got %v", sel["hex"])
	}

	h := mustCall(t, s, "save_harmony", map[string]interface{}{"type": "analogous"})
	if h["id"] != float64(1) || h["base_color"] != "#0000ff" {
		t.Errorf("save_harmony: %v", h)
	}
	harmonies := mustCall(t, s, "list_saved_harmonies", nil)
	if len(harmonies["harmonies"].([]interface{})) != 1 {
		t.Errorf("list_saved_harmonies: %v", harmonies)
	}

	mustCall(t, s, "remove_color", map[string]interface{}{"index": 0})
	if _, mcpErr := callTool(t, s, "remove_color", map[string]interface{}{"index": 5}); mcpErr == nil {
		t.Error("expected index error")
	}
	if _, mcpErr := callTool(t, s, "remove_color", map[string]interface{}{}); mcpErr == nil {
		t.Error("expected missing index error")
	}
}

func TestAnalysisTools(t *testing.T) {
	s := loadedServer(t)

	values := mustCall(t, s, "value_analysis", nil)
	if values["darkest"] != float64(29) || values["lightest"] != float64(255) {
		t.Errorf("value_analysis: %v", values)
	}

	cmp := mustCall(t, s, "compare_values", map[string]interface{}{
		"first":  map[string]interface{}{"region": "top-left"},
		"second": map[string]interface{}{"x1": 50, "y1": 40, "x2": 100, "y2": 80},
	})
	if cmp["lighter"] != "second" {
		t.Errorf("compare_values: %v", cmp)
	}
	if _, mcpErr := callTool(t, s, "compare_values", map[string]interface{}{
		"first":  map[string]interface{}{"region": "nowhere"},
		"second": map[string]interface{}{},
	}); mcpErr == nil {
		t.Error("expected error for unknown region")
	}

	temp := mustCall(t, s, "temperature_profile", nil)
	if _, ok := temp["overall_bias"]; !ok {
		t.Errorf("temperature_profile: %v", temp)
	}

	rec := mustCall(t, s, "paint_recommendations", nil)
	if len(rec["guidance"].([]interface{})) != 3 {
		t.Errorf("paint_recommendations guidance: %v", rec["guidance"])
	}
	if _, ok := rec["mixing"]; ok {
		t.Error("mixing should be omitted without a selection")
	}

	palette := mustCall(t, s, "dominant_colors", map[string]interface{}{"count": 2, "region": "left-half"})
	if colors := palette["colors"].([]interface{}); len(colors) != 2 {
		t.Errorf("dominant_colors: %v", colors)
	}
}

func TestOutputTools(t *testing.T) {
	s := loadedServer(t)

	crop := mustCall(t, s, "crop_region", map[string]interface{}{"region": "center", "scale": 2.0})
	if crop["width"] != float64(100) || crop["height"] != float64(80) {
		t.Errorf("crop_region: got %vx%v", crop["width"], crop["height"])
	}
	if _, mcpErr := callTool(t, s, "crop_region", map[string]interface{}{"x1": 0, "y1": 0, "x2": 500, "y2": 10}); mcpErr == nil {
		t.Error("expected error for crop outside the image")
	}

	grid := mustCall(t, s, "grid_overlay", map[string]interface{}{"spacing": 20, "color": "#00ff00"})
	if grid["mime_type"] != "image/png" {
		t.Errorf("grid_overlay: %v", grid["mime_type"])
	}
	if _, mcpErr := callTool(t, s, "grid_overlay", map[string]interface{}{"color": "green"}); mcpErr == nil {
		t.Error("expected error for bad colour")
	}

	path := filepath.Join(t.TempDir(), "study.png")
	out := mustCall(t, s, "export_image", map[string]interface{}{"source": "original", "path": path})
	if out["path"] != path {
		t.Errorf("export path: got %v", out["path"])
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	b64 := mustCall(t, s, "export_image", map[string]interface{}{})
	if b64["width"] != float64(100) || b64["image_base64"] == "" {
		t.Errorf("export_image base64: %v", b64["width"])
	}
	if _, mcpErr := callTool(t, s, "export_image", map[string]interface{}{"source": "thumbnail"}); mcpErr == nil {
		t.Error("expected error for unknown source")
	}
}
