package analysis

import (
	"fmt"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

// ColorInfo describes one sampled colour.
//
// Chroma and Value are HSL saturation and lightness, rounded. They are not
// perceptual chroma or Munsell value.
type ColorInfo struct {
	RGB         colormath.RGB         `json:"rgb"`
	HSL         colormath.HSL         `json:"hsl"`
	Hex         string                `json:"hex"`
	Chroma      int                   `json:"chroma"`
	Value       int                   `json:"value"`
	Temperature colormath.Temperature `json:"temperature"`
	Tint        colormath.Temperature `json:"tint"`
}

// Analyze builds the ColorInfo for an 8-bit colour. The tint is classified
// from the unrounded hue.
func Analyze(r, g, b uint8) ColorInfo {
	h, s, l := colormath.RGBToHSL(r, g, b)
	rounded := colormath.Round(h, s, l)

	return ColorInfo{
		RGB:         colormath.RGB{R: r, G: g, B: b},
		HSL:         rounded,
		Hex:         colormath.ToHex(r, g, b),
		Chroma:      rounded.S,
		Value:       rounded.L,
		Temperature: colormath.TemperatureOf(r, g, b),
		Tint:        colormath.TintOf(h),
	}
}

// AnalyzeRGB is Analyze for an RGB value.
func AnalyzeRGB(c colormath.RGB) ColorInfo {
	return Analyze(c.R, c.G, c.B)
}

// AnalyzeHex parses a "#rrggbb" string and analyzes it.
func AnalyzeHex(hex string) (ColorInfo, error) {
	c, err := colormath.ParseHex(hex)
	if err != nil {
		return ColorInfo{}, err
	}
	return AnalyzeRGB(c), nil
}

// TemperatureScore maps the temperature to the palette notation: +30 warm,
// -30 cool, 0 neutral.
func (c ColorInfo) TemperatureScore() int {
	return notationScore(c.Temperature, 30)
}

// TintScore maps the tint to the palette notation: +2 warm, -2 cool, 0 neutral.
func (c ColorInfo) TintScore() int {
	return notationScore(c.Tint, 2)
}

// Notation is the short saved-colour label, e.g. "T: 30 N: -2".
func (c ColorInfo) Notation() string {
	return fmt.Sprintf("T: %d N: %d", c.TemperatureScore(), c.TintScore())
}

func notationScore(t colormath.Temperature, magnitude int) int {
	switch t {
	case colormath.Warm:
		return magnitude
	case colormath.Cool:
		return -magnitude
	default:
		return 0
	}
}
