package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/paint-study-mcp/internal/analysis"
	"github.com/ironsheep/paint-study-mcp/internal/colormath"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
	"github.com/ironsheep/paint-study-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "apply_study").
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
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
//  3. Calls the session or the imaging/analysis functions
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 || string(args) == "null" {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "session_state":
		return s.session.State(), nil

	// Filters and studies
	case "apply_filter":
		return s.handleApplyFilter(args)
	case "apply_study":
		return s.handleApplyStudy(args)
	case "reset_image":
		return s.handleResetImage()

	// Color
	case "sample_color":
		return s.handleSampleColor(args)
	case "analyze_color":
		return s.handleAnalyzeColor(args)
	case "color_harmony":
		return s.handleColorHarmony(args)
	case "dominant_colors":
		return s.handleDominantColors(args)

	// Palette
	case "save_color":
		return s.handleSaveColor(args)
	case "remove_color":
		return s.handleRemoveColor(args)
	case "select_saved_color":
		return s.handleSelectSavedColor(args)
	case "list_saved_colors":
		return s.handleListSavedColors()
	case "save_harmony":
		return s.handleSaveHarmony(args)
	case "list_saved_harmonies":
		return map[string]interface{}{"harmonies": s.session.SavedHarmonies()}, nil

	// Analysis
	case "value_analysis":
		return s.session.AnalyzeValues()
	case "compare_values":
		return s.handleCompareValues(args)
	case "temperature_profile":
		return s.session.Temperature()
	case "paint_recommendations":
		return s.session.Recommendations()

	// Output
	case "crop_region":
		return s.handleCropRegion(args)
	case "grid_overlay":
		return s.handleGridOverlay(args)
	case "export_image":
		return s.handleExportImage(args)

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

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

type imageLoadResult struct {
	*imaging.ImageInfo
	Path          string `json:"path"`
	WorkingWidth  int    `json:"working_width"`
	WorkingHeight int    `json:"working_height"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	buf, info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.session.Load(buf, a.Path); err != nil {
		return nil, err
	}

	st := s.session.State()
	s.logger.Info("image loaded", "path", a.Path, "width", info.Width, "height", info.Height)
	return &imageLoadResult{
		ImageInfo:     info,
		Path:          a.Path,
		WorkingWidth:  st.DisplayWidth,
		WorkingHeight: st.DisplayHeight,
	}, nil
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if a.Path != "" {
		buf, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		return map[string]int{"width": buf.Width, "height": buf.Height}, nil
	}

	st := s.session.State()
	if !st.Loaded {
		return nil, session.ErrNoImage
	}
	return map[string]int{"width": st.Width, "height": st.Height}, nil
}

// === Filter and Study Handlers ===

// displayResult describes the displayed image after a change.
type displayResult struct {
	Filter imaging.Filter         `json:"filter,omitempty"`
	Study  *imaging.StudySettings `json:"study,omitempty"`
	Width  int                    `json:"width"`
	Height int                    `json:"height"`
	Image  *imaging.ExportResult  `json:"image,omitempty"`
}

func newDisplayResult(buf *imaging.PixelBuffer, includeImage bool) (*displayResult, error) {
	r := &displayResult{Width: buf.Width, Height: buf.Height}
	if includeImage {
		img, err := imaging.Export(buf)
		if err != nil {
			return nil, err
		}
		r.Image = img
	}
	return r, nil
}

type applyFilterArgs struct {
	Filter       string `json:"filter"`
	IncludeImage bool   `json:"include_image"`
}

func (s *Server) handleApplyFilter(args json.RawMessage) (interface{}, error) {
	var a applyFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}

	buf, err := s.session.ApplyFilter(f)
	if err != nil {
		return nil, err
	}
	r, err := newDisplayResult(buf, a.IncludeImage)
	if err != nil {
		return nil, err
	}
	r.Filter = f
	return r, nil
}

type applyStudyArgs struct {
	Mode         string `json:"mode"`
	Groups       int    `json:"groups"`
	Squint       int    `json:"squint"`
	IncludeImage bool   `json:"include_image"`
}

func (s *Server) handleApplyStudy(args json.RawMessage) (interface{}, error) {
	var a applyStudyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mode, err := imaging.ParseStudyMode(a.Mode)
	if err != nil {
		return nil, err
	}

	buf, err := s.session.ApplyStudy(imaging.StudySettings{Mode: mode, Groups: a.Groups, Squint: a.Squint})
	if err != nil {
		return nil, err
	}
	r, err := newDisplayResult(buf, a.IncludeImage)
	if err != nil {
		return nil, err
	}
	st := s.session.State().Study
	r.Study = &st
	return r, nil
}

func (s *Server) handleResetImage() (interface{}, error) {
	if err := s.session.Reset(); err != nil {
		return nil, err
	}
	buf, err := s.session.Displayed()
	if err != nil {
		return nil, err
	}
	r, err := newDisplayResult(buf, false)
	if err != nil {
		return nil, err
	}
	r.Filter = imaging.FilterNone
	return r, nil
}

// === Color Handlers ===

// colorResult is a ColorInfo with its palette notation.
type colorResult struct {
	analysis.ColorInfo
	Notation string `json:"notation"`
	RGBText  string `json:"rgb_text"`
}

func newColorResult(info analysis.ColorInfo) colorResult {
	return colorResult{ColorInfo: info, Notation: info.Notation(), RGBText: info.RGB.String()}
}

type sampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := s.session.Sample(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return newColorResult(info), nil
}

type colorArgs struct {
	Hex string `json:"hex"`
	R   *int   `json:"r"`
	G   *int   `json:"g"`
	B   *int   `json:"b"`
}

// resolve returns the colour named by hex or r/g/b. ok is false when
// neither is given.
func (a colorArgs) resolve() (info analysis.ColorInfo, ok bool, err error) {
	if a.Hex != "" {
		info, err = analysis.AnalyzeHex(a.Hex)
		return info, err == nil, err
	}
	if a.R == nil && a.G == nil && a.B == nil {
		return analysis.ColorInfo{}, false, nil
	}
	if a.R == nil || a.G == nil || a.B == nil {
		return analysis.ColorInfo{}, false, errors.New("r, g and b must all be given")
	}
	for _, v := range []int{*a.R, *a.G, *a.B} {
		if v < 0 || v > 255 {
			return analysis.ColorInfo{}, false, fmt.Errorf("channel value %d outside 0-255", v)
		}
	}
	return analysis.Analyze(uint8(*a.R), uint8(*a.G), uint8(*a.B)), true, nil
}

type analyzeColorArgs struct {
	colorArgs
	Select bool `json:"select"`
}

func (s *Server) handleAnalyzeColor(args json.RawMessage) (interface{}, error) {
	var a analyzeColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, ok, err := a.resolve()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("hex or r, g, b is required")
	}
	if a.Select {
		s.session.Select(info)
	}
	return newColorResult(info), nil
}

type colorHarmonyArgs struct {
	Type string `json:"type"`
	Hex  string `json:"hex"`
}

type harmonyResult struct {
	analysis.Harmony
	Description string `json:"description"`
	CopyText    string `json:"copy_text"`
}

func (s *Server) handleColorHarmony(args json.RawMessage) (interface{}, error) {
	var a colorHarmonyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// Unknown types fall back to complementary inside GenerateHarmony.
	t := analysis.HarmonyType(a.Type)

	var h analysis.Harmony
	if a.Hex != "" {
		info, err := analysis.AnalyzeHex(a.Hex)
		if err != nil {
			return nil, err
		}
		h = analysis.GenerateHarmony(info.HSL, t)
	} else {
		var err error
		if h, err = s.session.Harmony(t); err != nil {
			return nil, err
		}
	}

	return harmonyResult{Harmony: h, Description: h.Type.Description(), CopyText: h.CopyText()}, nil
}

// regionArgs names a region by name or by coordinates. A zero value means
// the whole image.
type regionArgs struct {
	Region string `json:"region"`
	X1     *int   `json:"x1"`
	Y1     *int   `json:"y1"`
	X2     *int   `json:"x2"`
	Y2     *int   `json:"y2"`
}

func (a regionArgs) resolve(buf *imaging.PixelBuffer) (*imaging.Region, error) {
	if a.Region != "" {
		r, err := imaging.NamedRegion(buf.Width, buf.Height, a.Region)
		if err != nil {
			return nil, err
		}
		return &r, nil
	}
	if a.X1 == nil && a.Y1 == nil && a.X2 == nil && a.Y2 == nil {
		return nil, nil
	}
	if a.X1 == nil || a.Y1 == nil || a.X2 == nil || a.Y2 == nil {
		return nil, fmt.Errorf("%w: x1, y1, x2 and y2 must all be given", imaging.ErrInvalidRegion)
	}
	r := imaging.Region{X1: *a.X1, Y1: *a.Y1, X2: *a.X2, Y2: *a.Y2}
	if err := r.Within(buf.Width, buf.Height); err != nil {
		return nil, err
	}
	return &r, nil
}

// resolveOrFull is resolve with the whole image as the default.
func (a regionArgs) resolveOrFull(buf *imaging.PixelBuffer) (imaging.Region, error) {
	r, err := a.resolve(buf)
	if err != nil {
		return imaging.Region{}, err
	}
	if r == nil {
		return imaging.FullRegion(buf), nil
	}
	return *r, nil
}

type dominantColorsArgs struct {
	regionArgs
	Count int `json:"count"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.session.Displayed()
	if err != nil {
		return nil, err
	}
	region, err := a.resolve(buf)
	if err != nil {
		return nil, err
	}
	colors, err := analysis.DominantColors(buf, a.Count, region)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": colors}, nil
}

// === Palette Handlers ===

type saveColorResult struct {
	Added      bool        `json:"added"`
	SavedCount int         `json:"saved_count"`
	Color      colorResult `json:"color"`
}

func (s *Server) handleSaveColor(args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	info, ok, err := a.resolve()
	if err != nil {
		return nil, err
	}

	var added bool
	if ok {
		added = s.session.SaveColor(info)
	} else if info, added, err = s.session.SaveSelected(); err != nil {
		return nil, err
	}

	return saveColorResult{
		Added:      added,
		SavedCount: len(s.session.SavedColors()),
		Color:      newColorResult(info),
	}, nil
}

type indexArgs struct {
	Index *int `json:"index"`
}

func (a indexArgs) value() (int, error) {
	if a.Index == nil {
		return 0, errors.New("index is required")
	}
	return *a.Index, nil
}

func (s *Server) handleRemoveColor(args json.RawMessage) (interface{}, error) {
	var a indexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	i, err := a.value()
	if err != nil {
		return nil, err
	}
	removed, err := s.session.RemoveColor(i)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"removed":     newColorResult(removed),
		"saved_count": len(s.session.SavedColors()),
	}, nil
}

func (s *Server) handleSelectSavedColor(args json.RawMessage) (interface{}, error) {
	var a indexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	i, err := a.value()
	if err != nil {
		return nil, err
	}
	info, err := s.session.SelectSaved(i)
	if err != nil {
		return nil, err
	}
	return newColorResult(info), nil
}

func (s *Server) handleListSavedColors() (interface{}, error) {
	saved := s.session.SavedColors()
	colors := make([]colorResult, len(saved))
	for i, c := range saved {
		colors[i] = newColorResult(c)
	}
	return map[string]interface{}{
		"colors":   colors,
		"rgb_text": s.session.SavedColorsRGBText(),
	}, nil
}

type saveHarmonyArgs struct {
	Type string `json:"type"`
}

func (s *Server) handleSaveHarmony(args json.RawMessage) (interface{}, error) {
	var a saveHarmonyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.session.SaveHarmony(analysis.HarmonyType(a.Type))
}

// === Analysis Handlers ===

type compareValuesArgs struct {
	First  regionArgs `json:"first"`
	Second regionArgs `json:"second"`
}

func (s *Server) handleCompareValues(args json.RawMessage) (interface{}, error) {
	var a compareValuesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.session.Displayed()
	if err != nil {
		return nil, err
	}
	first, err := a.First.resolveOrFull(buf)
	if err != nil {
		return nil, fmt.Errorf("first: %w", err)
	}
	second, err := a.Second.resolveOrFull(buf)
	if err != nil {
		return nil, fmt.Errorf("second: %w", err)
	}
	return imaging.CompareValues(buf, first, second)
}

// === Output Handlers ===

type cropRegionArgs struct {
	regionArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleCropRegion(args json.RawMessage) (interface{}, error) {
	var a cropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", a.Scale)
	}

	buf, err := s.session.Displayed()
	if err != nil {
		return nil, err
	}
	region, err := a.resolveOrFull(buf)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.Crop(buf, region)
	if err != nil {
		return nil, err
	}
	if a.Scale != 1.0 {
		w := max(1, int(float64(cropped.Width)*a.Scale))
		h := max(1, int(float64(cropped.Height)*a.Scale))
		cropped = imaging.ResizeTo(cropped, w, h)
	}
	return imaging.Export(cropped)
}

type gridOverlayArgs struct {
	Spacing    int     `json:"spacing"`
	Color      string  `json:"color"`
	Opacity    float64 `json:"opacity"`
	ShowLabels bool    `json:"show_labels"`
}

func (s *Server) handleGridOverlay(args json.RawMessage) (interface{}, error) {
	var a gridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	lineColor := colormath.RGB{R: 255}
	if a.Color != "" {
		c, err := colormath.ParseHex(a.Color)
		if err != nil {
			return nil, err
		}
		lineColor = c
	}

	buf, err := s.session.Displayed()
	if err != nil {
		return nil, err
	}
	grid := imaging.GridOverlay(buf, imaging.GridOptions{
		Spacing: a.Spacing,
		Color:   lineColor,
		Opacity: a.Opacity,
		Labels:  a.ShowLabels,
	})
	return imaging.Export(grid)
}

type exportImageArgs struct {
	Source string `json:"source"`
	Path   string `json:"path"`
}

func (s *Server) handleExportImage(args json.RawMessage) (interface{}, error) {
	var a exportImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var (
		buf *imaging.PixelBuffer
		err error
	)
	switch a.Source {
	case "", "displayed":
		buf, err = s.session.Displayed()
	case "original":
		buf, err = s.session.Original()
	default:
		return nil, fmt.Errorf("unknown source: %s", a.Source)
	}
	if err != nil {
		return nil, err
	}

	if a.Path == "" {
		return imaging.Export(buf)
	}
	if err := imaging.SavePNG(a.Path, buf); err != nil {
		return nil, err
	}
	s.logger.Info("image exported", "path", a.Path)
	return map[string]interface{}{
		"path":   a.Path,
		"width":  buf.Width,
		"height": buf.Height,
	}, nil
}
