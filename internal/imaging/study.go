package imaging

import "fmt"

// Filter names an artistic filter applied to the pristine original.
type Filter string

const (
	FilterNone       Filter = "none"
	FilterOil        Filter = "oil"
	FilterSimplified Filter = "simplified"
	FilterPosterize  Filter = "posterize"
)

// ParseFilter validates a filter name. The empty string means FilterNone.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case "", FilterNone:
		return FilterNone, nil
	case FilterOil, FilterSimplified, FilterPosterize:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (valid: none, oil, simplified, posterize)", s)
	}
}

// ApplyFilter runs a filter with its default parameters and returns a new
// buffer. FilterNone returns a copy of src.
func ApplyFilter(src *PixelBuffer, f Filter) *PixelBuffer {
	switch f {
	case FilterOil:
		return ModeFilter(src, DefaultOilRadius, DefaultOilIntensity)
	case FilterSimplified:
		return BoxBlur(src, DefaultSimplifiedRadius)
	case FilterPosterize:
		return Posterize(src, FastPosterizeLevels)
	default:
		return src.Clone()
	}
}

// StudyMode names a value-study display transform.
type StudyMode string

const (
	StudyOriginal  StudyMode = "original"
	StudyGrayscale StudyMode = "grayscale"
	StudyGrouped   StudyMode = "grouped"
	StudySquint    StudyMode = "squint"
	StudyPosterize StudyMode = "posterize"
)

// ParseStudyMode validates a study mode name. The empty string means
// StudyOriginal.
func ParseStudyMode(s string) (StudyMode, error) {
	switch m := StudyMode(s); m {
	case "", StudyOriginal:
		return StudyOriginal, nil
	case StudyGrayscale, StudyGrouped, StudySquint, StudyPosterize:
		return m, nil
	default:
		return "", fmt.Errorf("unknown study mode %q (valid: original, grayscale, grouped, squint, posterize)", s)
	}
}

// StudySettings are the value-study controls.
type StudySettings struct {
	Mode StudyMode `json:"mode"`
	// Groups is the number of value groups or posterize levels (3-10).
	Groups int `json:"groups"`
	// Squint is the blur radius in pixels; 0 disables it.
	Squint int `json:"squint"`
}

// DefaultStudySettings shows the original with five value groups ready.
func DefaultStudySettings() StudySettings {
	return StudySettings{Mode: StudyOriginal, Groups: DefaultValueGroups}
}

// ApplyStudy renders a study from src. When Squint is positive the blur is
// applied first, whatever the mode, and the mode transform runs on the
// blurred pixels.
func ApplyStudy(src *PixelBuffer, s StudySettings) *PixelBuffer {
	if !src.Valid() {
		return src
	}

	groups := s.Groups
	if groups == 0 {
		groups = DefaultValueGroups
	}
	groups = clamp(groups, MinGroups, MaxGroups)

	out := src
	if s.Squint > 0 {
		out = Squint(src, s.Squint)
	}

	switch s.Mode {
	case StudyGrayscale:
		out = Grayscale(out)
	case StudyGrouped:
		out = ValueGroup(out, groups)
	case StudyPosterize:
		out = Posterize(out, groups)
	}

	if out == src {
		return src.Clone()
	}
	return out
}
