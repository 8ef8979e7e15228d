package colormath

// Temperature is a warm/cool/neutral classification.
type Temperature string

const (
	Warm    Temperature = "Warm"
	Cool    Temperature = "Cool"
	Neutral Temperature = "Neutral"
)

// WarmthThreshold bounds the neutral band of TemperatureOf.
const WarmthThreshold = 0.2

// TemperatureOf classifies a colour by its red/blue balance:
// warmth = (r-b)/255, Warm above +0.2, Cool below -0.2.
func TemperatureOf(r, g, b uint8) Temperature {
	warmth := (float64(r) - float64(b)) / 255
	switch {
	case warmth > WarmthThreshold:
		return Warm
	case warmth < -WarmthThreshold:
		return Cool
	default:
		return Neutral
	}
}

// TintOf classifies a hue angle. Warm is checked first (below 60 or above
// 300 degrees), then Cool (above 180).
func TintOf(hue float64) Temperature {
	if hue < 60 || hue > 300 {
		return Warm
	}
	if hue > 180 {
		return Cool
	}
	return Neutral
}

// TemperatureBias is the signed warm-minus-cool bias used by the image
// temperature sampler and the paint mixing suggestions.
//
//	warm = R + 0.5G - B
//	cool = B + 0.3G - R
//
// with channels normalised to [0,1].
func TemperatureBias(r, g, b uint8) float64 {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	warm := (rf + gf*0.5) - bf
	cool := bf + gf*0.3 - rf
	return warm - cool
}
