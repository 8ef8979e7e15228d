package analysis

import (
	"fmt"
	"math"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
)

// Lighting describes the light in the reference and how to paint it.
type Lighting struct {
	Overall    Bias   `json:"overall"`
	Lighting   string `json:"lighting"`
	Shadows    string `json:"shadows"`
	Highlights string `json:"highlights"`
}

// strongBias is the average per-pixel bias above which light counts as strong.
const strongBias = 0.5

// DescribeLighting turns a temperature profile into lighting notes.
func DescribeLighting(p TemperatureProfile) Lighting {
	warmPct := int(math.Round(p.WarmPercentage))
	coolPct := int(math.Round(p.CoolPercentage))

	switch p.OverallBias {
	case BiasWarm:
		l := Lighting{
			Overall:    BiasWarm,
			Lighting:   fmt.Sprintf("warm lighting (%d%% warm areas) - likely sunlight or tungsten", warmPct),
			Shadows:    "Moderate warm light: ultramarine blue + burnt umber for cool shadows",
			Highlights: "Warm highlights: add yellow ochre or raw sienna to titanium white",
		}
		if p.AverageWarmBias > strongBias {
			l.Shadows = "Strong warm light creates cool shadows: ultramarine blue + burnt umber + touch of dioxazine purple"
		}
		if p.IsDarkDominant {
			l.Highlights = "Warm highlights in dark scene: cadmium yellow + raw sienna + titanium white"
		}
		return l

	case BiasCool:
		l := Lighting{
			Overall:    BiasCool,
			Lighting:   fmt.Sprintf("cool lighting (%d%% cool areas) - likely overcast sky or cool artificial light", coolPct),
			Shadows:    "Moderate cool light: raw umber + burnt sienna for warm shadows",
			Highlights: "Cool highlights: add ultramarine blue or cerulean blue to titanium white",
		}
		if p.AverageCoolBias > strongBias {
			l.Shadows = "Strong cool light creates warm shadows: burnt sienna + raw umber + touch of cadmium red"
		}
		if p.IsLightDominant {
			l.Highlights = "Cool highlights in bright scene: cerulean blue + zinc white"
		}
		return l

	default:
		l := Lighting{
			Overall:    BiasNeutral,
			Lighting:   fmt.Sprintf("balanced lighting (%d%% warm, %d%% cool) - natural balanced light", warmPct, coolPct),
			Shadows:    "Balanced shadows: burnt umber + ultramarine blue for neutral grays",
			Highlights: "Neutral highlights: titanium white with subtle warm bias (Naples yellow)",
		}
		if p.IsDarkDominant {
			l.Shadows = "Neutral shadows in dark scene: ivory black + raw umber + titanium white"
		}
		if p.IsLightDominant {
			l.Highlights = "Subtle warm highlights: unbleached titanium + touch of yellow ochre"
		}
		return l
	}
}

// GuidanceEntry is advice for one tonal zone.
type GuidanceEntry struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	MixingTip   string `json:"mixing_tip"`
}

// TemperatureGuidance returns shadow, highlight and mid-tone advice, in that
// order.
func TemperatureGuidance(p TemperatureProfile) []GuidanceEntry {
	l := DescribeLighting(p)

	var shadowTip, highlightTip string
	switch l.Overall {
	case BiasWarm:
		shadowTip = "For warm light sources, shadows appear cooler by contrast"
		highlightTip = "Warm highlights suggest direct sunlight - add yellow ochre to white"
	case BiasCool:
		shadowTip = "For cool light sources, shadows can be warmer or neutral"
		highlightTip = "Cool highlights suggest indirect light - add ultramarine to white"
	default:
		shadowTip = "Neutral lighting allows for flexible shadow temperature"
		highlightTip = "Neutral highlights work well with subtle warm bias"
	}

	return []GuidanceEntry{
		{Type: "Shadows", Description: l.Shadows, MixingTip: shadowTip},
		{Type: "Highlights", Description: l.Highlights, MixingTip: highlightTip},
		{
			Type:        "Mid-tones",
			Description: "Transition areas between light and shadow",
			MixingTip:   "Mid-tones should bridge the temperature gap between warm lights and cool shadows, or vice versa",
		},
	}
}

// MixingRecommendation suggests base pigment pairs for a colour.
type MixingRecommendation struct {
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions"`
}

// mixingBias is the |tempBias| beyond which a colour gets warm or cool bases.
const mixingBias = 0.3

// MixingFor picks base pigment pairs for c by its temperature bias.
func MixingFor(c colormath.RGB) MixingRecommendation {
	bias := colormath.TemperatureBias(c.R, c.G, c.B)
	switch {
	case bias > mixingBias:
		return MixingRecommendation{
			Category: "Warm Base Colors",
			Suggestions: []string{
				"Cadmium Red Light + Cadmium Yellow Light",
				"Burnt Sienna + Raw Sienna",
				"Yellow Ochre + Venetian Red",
				"Quinacridone Gold + Alizarin Crimson",
			},
		}
	case bias < -mixingBias:
		return MixingRecommendation{
			Category: "Cool Base Colors",
			Suggestions: []string{
				"Ultramarine Blue + Cerulean Blue",
				"Phthalo Blue + Viridian Green",
				"Payne's Gray + Prussian Blue",
				"Dioxazine Purple + Cobalt Blue",
			},
		}
	default:
		return MixingRecommendation{
			Category: "Neutral Base Colors",
			Suggestions: []string{
				"Burnt Umber + Titanium White",
				"Raw Umber + Yellow Ochre",
				"Ivory Black + Naples Yellow",
				"Van Dyke Brown + Zinc White",
			},
		}
	}
}

// ValueTip is advice driven by the value structure of the displayed image.
type ValueTip struct {
	Title  string   `json:"title"`
	Tip    string   `json:"tip"`
	Colors []string `json:"colors"`
}

// ValueMixingTips returns tips for high contrast, dark dominant and light
// dominant scenes. Any combination may apply.
func ValueMixingTips(v imaging.ValueAnalysis) []ValueTip {
	var tips []ValueTip
	if v.Contrast > 70 {
		tips = append(tips, ValueTip{
			Title:  "High Contrast Scene",
			Tip:    "Use pure black (Ivory Black) and pure white (Titanium White) sparingly. Reserve them for the absolute darkest shadows and brightest highlights.",
			Colors: []string{"Ivory Black", "Titanium White", "Burnt Umber", "Zinc White"},
		})
	}
	if v.Average < 85 {
		tips = append(tips, ValueTip{
			Title:  "Dark Dominant Scene",
			Tip:    "Build up darks gradually using transparent layers. Start with Burnt Umber and add Ultramarine Blue for cool shadows.",
			Colors: []string{"Burnt Umber", "Raw Umber", "Ultramarine Blue", "Van Dyke Brown"},
		})
	}
	if v.Average > 170 {
		tips = append(tips, ValueTip{
			Title:  "Light Dominant Scene",
			Tip:    "Avoid using white directly from the tube. Tint it with subtle colors to create more natural highlights.",
			Colors: []string{"Naples Yellow", "Cerulean Blue", "Raw Sienna", "Unbleached Titanium"},
		})
	}
	return tips
}

// Recommendations bundles all paint guidance for the current session.
// Mixing is nil without a selected colour; ValueTips is empty without a
// value analysis.
type Recommendations struct {
	Lighting  Lighting              `json:"lighting"`
	Guidance  []GuidanceEntry       `json:"guidance"`
	Mixing    *MixingRecommendation `json:"mixing,omitempty"`
	ValueTips []ValueTip            `json:"value_tips"`
}

// Recommend assembles guidance from a profile and the optional selected
// colour and value analysis.
func Recommend(p TemperatureProfile, selected *colormath.RGB, values *imaging.ValueAnalysis) Recommendations {
	rec := Recommendations{
		Lighting:  DescribeLighting(p),
		Guidance:  TemperatureGuidance(p),
		ValueTips: []ValueTip{},
	}
	if selected != nil {
		m := MixingFor(*selected)
		rec.Mixing = &m
	}
	if values != nil {
		if tips := ValueMixingTips(*values); tips != nil {
			rec.ValueTips = tips
		}
	}
	return rec
}
