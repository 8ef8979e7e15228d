// Package session holds the state of one painting study: the pristine
// original image, the displayed version after the current filter or study
// mode, the eyedropper selection and the saved palette.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/paint-study-mcp/internal/analysis"
	"github.com/ironsheep/paint-study-mcp/internal/colormath"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
)

var (
	// ErrNoImage is returned by operations that need a loaded image.
	ErrNoImage = errors.New("no image loaded")

	// ErrNoSelection is returned when an operation needs a selected colour.
	ErrNoSelection = errors.New("no color selected")

	// ErrIndexOutOfRange is returned for a saved-colour index that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Options configure a Session.
type Options struct {
	// SampleStride is passed to the temperature sampler; <= 0 uses its default.
	SampleStride int

	// PreviewMax bounds the working copy that filters and study modes run
	// on. Larger images are scaled down to fit PreviewMax x PreviewMax;
	// 0 keeps full resolution.
	PreviewMax int

	Logger hclog.Logger
}

// SavedHarmony is a harmony stored in the palette.
type SavedHarmony struct {
	ID        int                     `json:"id"`
	Type      analysis.HarmonyType    `json:"type"`
	BaseColor string                  `json:"base_color"`
	Colors    []analysis.HarmonyColor `json:"colors"`
}

// State is a snapshot of what the session currently shows.
type State struct {
	Loaded         bool                   `json:"loaded"`
	Source         string                 `json:"source,omitempty"`
	Width          int                    `json:"width,omitempty"`
	Height         int                    `json:"height,omitempty"`
	DisplayWidth   int                    `json:"display_width,omitempty"`
	DisplayHeight  int                    `json:"display_height,omitempty"`
	Filter         imaging.Filter         `json:"filter"`
	Study          imaging.StudySettings  `json:"study"`
	Selected       *analysis.ColorInfo    `json:"selected,omitempty"`
	SavedColors    int                    `json:"saved_colors"`
	SavedHarmonies int                    `json:"saved_harmonies"`
	LastValues     *imaging.ValueAnalysis `json:"last_values,omitempty"`
}

// Session is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	opts   Options
	logger hclog.Logger

	source    string
	original  *imaging.PixelBuffer // never mutated
	working   *imaging.PixelBuffer // original fitted within PreviewMax
	displayed *imaging.PixelBuffer

	filter imaging.Filter
	study  imaging.StudySettings

	selected      *analysis.ColorInfo
	saved         []analysis.ColorInfo
	harmonies     []SavedHarmony
	nextHarmonyID int

	values      *imaging.ValueAnalysis
	temperature *analysis.TemperatureProfile
}

// New creates an empty session.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{
		opts:          opts,
		logger:        logger.Named("session"),
		filter:        imaging.FilterNone,
		study:         imaging.DefaultStudySettings(),
		nextHarmonyID: 1,
	}
}

// Load makes buf the session's original image. Filters, study settings, the
// selection and cached analyses are reset; the saved palette is kept.
func (s *Session) Load(buf *imaging.PixelBuffer, source string) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	original := buf.Clone()
	working := original
	if s.opts.PreviewMax > 0 {
		working = imaging.FitWithin(original, s.opts.PreviewMax, s.opts.PreviewMax)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = source
	s.original = original
	s.working = working
	s.displayed = working.Clone()
	s.filter = imaging.FilterNone
	s.study = imaging.DefaultStudySettings()
	s.selected = nil
	s.values = nil
	s.temperature = nil

	s.logger.Debug("image loaded", "source", source,
		"width", original.Width, "height", original.Height,
		"working_width", working.Width, "working_height", working.Height)
	return nil
}

// ApplyFilter replaces the displayed image with f applied to the original.
// Any study mode is cleared.
func (s *Session) ApplyFilter(f imaging.Filter) (*imaging.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return nil, ErrNoImage
	}
	s.displayed = imaging.ApplyFilter(s.working, f)
	s.filter = f
	s.study = imaging.DefaultStudySettings()
	s.values = nil

	s.logger.Debug("filter applied", "filter", f)
	return s.displayed.Clone(), nil
}

// ApplyStudy replaces the displayed image with a study of the original.
// Any filter is cleared.
func (s *Session) ApplyStudy(settings imaging.StudySettings) (*imaging.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return nil, ErrNoImage
	}
	if settings.Mode == "" {
		settings.Mode = imaging.StudyOriginal
	}
	if settings.Groups == 0 {
		settings.Groups = imaging.DefaultValueGroups
	}
	settings.Groups = min(max(settings.Groups, imaging.MinGroups), imaging.MaxGroups)
	settings.Squint = max(settings.Squint, 0)

	s.displayed = imaging.ApplyStudy(s.working, settings)
	s.study = settings
	s.filter = imaging.FilterNone
	s.values = nil

	s.logger.Debug("study applied", "mode", settings.Mode, "groups", settings.Groups, "squint", settings.Squint)
	return s.displayed.Clone(), nil
}

// Reset shows the unfiltered image again.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return ErrNoImage
	}
	s.displayed = s.working.Clone()
	s.filter = imaging.FilterNone
	s.study = imaging.DefaultStudySettings()
	s.values = nil
	return nil
}

// Original returns a copy of the pristine image.
func (s *Session) Original() (*imaging.PixelBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.original == nil {
		return nil, ErrNoImage
	}
	return s.original.Clone(), nil
}

// Displayed returns a copy of the image as currently shown.
func (s *Session) Displayed() (*imaging.PixelBuffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.displayed == nil {
		return nil, ErrNoImage
	}
	return s.displayed.Clone(), nil
}

// Sample picks the colour at (x, y) of the displayed image and makes it the
// selection.
func (s *Session) Sample(x, y int) (analysis.ColorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.displayed == nil {
		return analysis.ColorInfo{}, ErrNoImage
	}
	c, err := s.displayed.RGBAt(x, y)
	if err != nil {
		return analysis.ColorInfo{}, err
	}
	info := analysis.AnalyzeRGB(c)
	s.selected = &info
	return info, nil
}

// Select makes info the current selection without sampling.
func (s *Session) Select(info analysis.ColorInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &info
}

// Selected returns the current selection.
func (s *Session) Selected() (analysis.ColorInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selected == nil {
		return analysis.ColorInfo{}, ErrNoSelection
	}
	return *s.selected, nil
}

// SaveColor appends info to the palette unless a colour with the same hex is
// already saved. It reports whether the colour was added.
func (s *Session) SaveColor(info analysis.ColorInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.saved {
		if c.Hex == info.Hex {
			return false
		}
	}
	s.saved = append(s.saved, info)
	return true
}

// SaveSelected saves the current selection.
func (s *Session) SaveSelected() (analysis.ColorInfo, bool, error) {
	info, err := s.Selected()
	if err != nil {
		return analysis.ColorInfo{}, false, err
	}
	return info, s.SaveColor(info), nil
}

// RemoveColor deletes the saved colour at index i.
func (s *Session) RemoveColor(i int) (analysis.ColorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.saved) {
		return analysis.ColorInfo{}, fmt.Errorf("%w: %d (have %d saved colors)", ErrIndexOutOfRange, i, len(s.saved))
	}
	removed := s.saved[i]
	s.saved = append(s.saved[:i:i], s.saved[i+1:]...)
	return removed, nil
}

// SelectSaved makes the saved colour at index i the selection.
func (s *Session) SelectSaved(i int) (analysis.ColorInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.saved) {
		return analysis.ColorInfo{}, fmt.Errorf("%w: %d (have %d saved colors)", ErrIndexOutOfRange, i, len(s.saved))
	}
	info := s.saved[i]
	s.selected = &info
	return info, nil
}

// SavedColors returns a copy of the palette in save order.
func (s *Session) SavedColors() []analysis.ColorInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]analysis.ColorInfo{}, s.saved...)
}

// SavedColorsRGBText is the "copy all" clipboard text: one "r, g, b" line
// per saved colour.
func (s *Session) SavedColorsRGBText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, len(s.saved))
	for i, c := range s.saved {
		lines[i] = c.RGB.String()
	}
	return strings.Join(lines, "\n")
}

// Harmony generates harmony t from the current selection.
func (s *Session) Harmony(t analysis.HarmonyType) (analysis.Harmony, error) {
	info, err := s.Selected()
	if err != nil {
		return analysis.Harmony{}, err
	}
	return analysis.GenerateHarmony(info.HSL, t), nil
}

// SaveHarmony generates harmony t from the selection and stores it.
func (s *Session) SaveHarmony(t analysis.HarmonyType) (SavedHarmony, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return SavedHarmony{}, ErrNoSelection
	}
	h := analysis.GenerateHarmony(s.selected.HSL, t)
	saved := SavedHarmony{
		ID:        s.nextHarmonyID,
		Type:      h.Type,
		BaseColor: s.selected.Hex,
		Colors:    h.Colors,
	}
	s.nextHarmonyID++
	s.harmonies = append(s.harmonies, saved)
	return saved, nil
}

// SavedHarmonies returns a copy of the stored harmonies.
func (s *Session) SavedHarmonies() []SavedHarmony {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SavedHarmony{}, s.harmonies...)
}

// AnalyzeValues computes value statistics over the displayed image and
// remembers them for Recommendations.
func (s *Session) AnalyzeValues() (imaging.ValueAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.displayed == nil {
		return imaging.ValueAnalysis{}, ErrNoImage
	}
	v, ok := imaging.ComputeValues(s.displayed)
	if !ok {
		return imaging.ValueAnalysis{}, imaging.ErrInvalidBuffer
	}
	s.values = &v
	return v, nil
}

// Temperature returns the temperature profile of the original image. It is
// computed once per loaded image.
func (s *Session) Temperature() (analysis.TemperatureProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.temperatureLocked()
}

func (s *Session) temperatureLocked() (analysis.TemperatureProfile, error) {
	if s.original == nil {
		return analysis.TemperatureProfile{}, ErrNoImage
	}
	if s.temperature == nil {
		p := analysis.SampleTemperature(s.original, s.opts.SampleStride)
		s.temperature = &p
		s.logger.Debug("temperature sampled", "bias", p.OverallBias, "samples", p.Samples)
	}
	return *s.temperature, nil
}

// Recommendations combines lighting, mixing and value guidance from the
// current session state.
func (s *Session) Recommendations() (analysis.Recommendations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.temperatureLocked()
	if err != nil {
		return analysis.Recommendations{}, err
	}

	var selected *colormath.RGB
	if s.selected != nil {
		rgb := s.selected.RGB
		selected = &rgb
	}
	return analysis.Recommend(p, selected, s.values), nil
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Loaded:         s.original != nil,
		Source:         s.source,
		Filter:         s.filter,
		Study:          s.study,
		SavedColors:    len(s.saved),
		SavedHarmonies: len(s.harmonies),
	}
	if s.original != nil {
		st.Width, st.Height = s.original.Width, s.original.Height
		st.DisplayWidth, st.DisplayHeight = s.displayed.Width, s.displayed.Height
	}
	if s.selected != nil {
		sel := *s.selected
		st.Selected = &sel
	}
	if s.values != nil {
		v := *s.values
		st.LastValues = &v
	}
	return st
}
