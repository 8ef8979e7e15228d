package analysis

import (
	"github.com/ironsheep/paint-study-mcp/internal/colormath"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
)

// Bias is the overall temperature lean of an image.
type Bias string

const (
	BiasWarm    Bias = "warm"
	BiasCool    Bias = "cool"
	BiasNeutral Bias = "neutral"
)

// Sampler defaults and classification thresholds.
const (
	DefaultSampleStride = 4   // Sample every 4th pixel
	SampleMaxDimension  = 200 // Larger images are resized first

	pixelBiasThreshold = 0.1  // |tempBias| above this is warm or cool
	darkBrightness     = 85   // Mean channel below this is dark
	lightBrightness    = 170  // Mean channel above this is light
	dominanceFraction  = 0.4  // Share of samples that makes a scene dark or light
	overallMargin      = 10.0 // Percentage points one side must lead by
)

// TemperatureProfile summarises the warm/cool balance of an image.
type TemperatureProfile struct {
	WarmPercentage    float64 `json:"warm_percentage"`
	CoolPercentage    float64 `json:"cool_percentage"`
	NeutralPercentage float64 `json:"neutral_percentage"`
	AverageWarmBias   float64 `json:"average_warm_bias"`
	AverageCoolBias   float64 `json:"average_cool_bias"` // Magnitude, always >= 0
	IsDarkDominant    bool    `json:"is_dark_dominant"`
	IsLightDominant   bool    `json:"is_light_dominant"`
	OverallBias       Bias    `json:"overall_bias"`
	Samples           int     `json:"samples"`
}

// SampleTemperature classifies every stride-th pixel of buf. Images wider or
// taller than SampleMaxDimension are first resized to at most 200x200
// (each axis independently). An invalid buffer yields an empty neutral
// profile.
func SampleTemperature(buf *imaging.PixelBuffer, stride int) TemperatureProfile {
	if !buf.Valid() {
		return TemperatureProfile{OverallBias: BiasNeutral}
	}
	if stride <= 0 {
		stride = DefaultSampleStride
	}

	sw, sh := min(SampleMaxDimension, buf.Width), min(SampleMaxDimension, buf.Height)
	if sw != buf.Width || sh != buf.Height {
		buf = imaging.ResizeTo(buf, sw, sh)
	}

	var (
		warmBias, coolBias  float64
		warm, cool, neutral int
		dark, light         int
	)

	pix := buf.Pix
	for i := 0; i < len(pix); i += stride * 4 {
		r, g, b := pix[i], pix[i+1], pix[i+2]
		bias := colormath.TemperatureBias(r, g, b)

		switch {
		case bias > pixelBiasThreshold:
			warm++
			warmBias += bias
		case bias < -pixelBiasThreshold:
			cool++
			coolBias += -bias
		default:
			neutral++
		}

		brightness := (float64(r) + float64(g) + float64(b)) / 3
		if brightness < darkBrightness {
			dark++
		} else if brightness > lightBrightness {
			light++
		}
	}

	total := warm + cool + neutral
	if total == 0 {
		return TemperatureProfile{OverallBias: BiasNeutral}
	}

	p := TemperatureProfile{
		WarmPercentage:  float64(warm) / float64(total) * 100,
		CoolPercentage:  float64(cool) / float64(total) * 100,
		IsDarkDominant:  float64(dark) > float64(total)*dominanceFraction,
		IsLightDominant: float64(light) > float64(total)*dominanceFraction,
		Samples:         total,
	}
	p.NeutralPercentage = 100 - p.WarmPercentage - p.CoolPercentage
	if warm > 0 {
		p.AverageWarmBias = warmBias / float64(warm)
	}
	if cool > 0 {
		p.AverageCoolBias = coolBias / float64(cool)
	}

	switch {
	case p.WarmPercentage > p.CoolPercentage+overallMargin:
		p.OverallBias = BiasWarm
	case p.CoolPercentage > p.WarmPercentage+overallMargin:
		p.OverallBias = BiasCool
	default:
		p.OverallBias = BiasNeutral
	}
	return p
}
