package analysis

import (
	"fmt"
	"strings"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

// HarmonyType names a colour-wheel rule.
type HarmonyType string

const (
	Complementary      HarmonyType = "complementary"
	Triadic            HarmonyType = "triadic"
	Analogous          HarmonyType = "analogous"
	SplitComplementary HarmonyType = "split-complementary"
	Tetradic           HarmonyType = "tetradic"
	Monochromatic      HarmonyType = "monochromatic"
)

// HarmonyTypes lists every supported rule in display order.
var HarmonyTypes = []HarmonyType{
	Complementary, Triadic, Analogous, SplitComplementary, Tetradic, Monochromatic,
}

// hueOffsets holds the offsets from the base hue for the rules that keep
// saturation and lightness.
var hueOffsets = map[HarmonyType][]int{
	Complementary:      {0, 180},
	Triadic:            {0, 120, 240},
	Analogous:          {-30, 0, 30},
	SplitComplementary: {0, 150, 210},
	Tetradic:           {0, 90, 180, 270},
}

// Monochromatic lightness bounds.
const (
	monoStep     = 30
	monoMinLight = 10
	monoMaxLight = 90
)

// HarmonyColor is one member of a harmony.
type HarmonyColor struct {
	HSL colormath.HSL `json:"hsl"`
	Hex string        `json:"hex"`
	RGB colormath.RGB `json:"rgb"`
}

// Harmony is an ordered set of related colours.
type Harmony struct {
	Type   HarmonyType    `json:"type"`
	Colors []HarmonyColor `json:"colors"`
}

// Description is a one-line explanation of the rule.
func (t HarmonyType) Description() string {
	switch t {
	case Complementary:
		return "Opposite colors on the wheel"
	case Triadic:
		return "Three evenly spaced colors"
	case Analogous:
		return "Adjacent colors on the wheel"
	case SplitComplementary:
		return "Base + two adjacent to complement"
	case Tetradic:
		return "Four evenly spaced colors"
	case Monochromatic:
		return "Same hue, different values"
	default:
		return ""
	}
}

// ParseHarmonyType validates a harmony name.
func ParseHarmonyType(s string) (HarmonyType, error) {
	t := HarmonyType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range HarmonyTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown harmony type: %s", s)
}

// GenerateHarmony derives the colours of rule t from base. Hues wrap into
// [0,360). An unknown rule falls back to Complementary.
func GenerateHarmony(base colormath.HSL, t HarmonyType) Harmony {
	if t == Monochromatic {
		return Harmony{
			Type: Monochromatic,
			Colors: []HarmonyColor{
				newHarmonyColor(base.H, base.S, max(base.L-monoStep, monoMinLight)),
				newHarmonyColor(base.H, base.S, base.L),
				newHarmonyColor(base.H, base.S, min(base.L+monoStep, monoMaxLight)),
			},
		}
	}

	offsets, ok := hueOffsets[t]
	if !ok {
		t = Complementary
		offsets = hueOffsets[Complementary]
	}

	colors := make([]HarmonyColor, len(offsets))
	for i, off := range offsets {
		colors[i] = newHarmonyColor(base.H+off, base.S, base.L)
	}
	return Harmony{Type: t, Colors: colors}
}

func newHarmonyColor(hue, s, l int) HarmonyColor {
	h := ((hue % 360) + 360) % 360
	rgb := colormath.HSLToRGB(float64(h), float64(s), float64(l))
	return HarmonyColor{
		HSL: colormath.HSL{H: h, S: s, L: l},
		Hex: rgb.Hex(),
		RGB: rgb,
	}
}

// Hexes returns the member hex codes in order.
func (h Harmony) Hexes() []string {
	out := make([]string, len(h.Colors))
	for i, c := range h.Colors {
		out[i] = c.Hex
	}
	return out
}

// CopyText is the "copy all" clipboard form: hex codes joined by ", ".
func (h Harmony) CopyText() string {
	return strings.Join(h.Hexes(), ", ")
}
