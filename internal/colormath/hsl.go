package colormath

import (
	"fmt"
	"math"
)

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String formats the triple the way it is copied to the clipboard: "r, g, b".
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// HSL is a rounded HSL colour.
type HSL struct {
	H int `json:"h"` // Hue: 0-359 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// RGBToHSL converts 8-bit RGB values to HSL.
//
// The result is scaled to degrees and percent but left unrounded; callers
// round. When all channels are equal the hue and saturation are both 0.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))

	l = (max + min) / 2.0
	if max == min {
		return 0, 0, l * 100
	}

	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = 2.0 + (bf-rf)/d
	default:
		h = 4.0 + (rf-gf)/d
	}

	return h * 60, s * 100, l * 100
}

// HSLToRGB converts HSL (degrees, percent, percent) to 8-bit RGB using the
// chroma construction over six 60 degree sectors. Hue is wrapped into
// [0,360) first; saturation and lightness are clamped to [0,100].
func HSLToRGB(h, s, l float64) RGB {
	h = WrapHue(h) / 360
	s = clampUnit(s / 100)
	l = clampUnit(l / 100)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: toByte((r + m) * 255),
		G: toByte((g + m) * 255),
		B: toByte((b + m) * 255),
	}
}

// Round converts unrounded HSL components to an HSL value. A hue that rounds
// up to 360 wraps to 0.
func Round(h, s, l float64) HSL {
	hue := int(math.Round(h))
	if hue >= 360 {
		hue -= 360
	}
	return HSL{H: hue, S: int(math.Round(s)), L: int(math.Round(l))}
}

// WrapHue maps any angle into [0,360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
