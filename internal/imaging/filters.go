package imaging

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/parallel"
)

// Default parameters for each call site.
const (
	DefaultSimplifiedRadius = 2
	DefaultOilRadius        = 3
	DefaultOilIntensity     = 20
	DefaultValueGroups      = 5
	FastPosterizeLevels     = 2

	MinGroups = 3
	MaxGroups = 10
)

// BoxBlur replaces every pixel with the unweighted mean of the square window
// [-radius,+radius] around it, truncating each channel. Coordinates outside
// the image are clamped to the nearest edge pixel. A radius of 0 copies the
// source.
func BoxBlur(src *PixelBuffer, radius int) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	if radius < 0 {
		radius = 0
	}

	w, h := src.Width, src.Height
	dst := NewPixelBuffer(w, h)
	count := (2*radius + 1) * (2*radius + 1)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var r, g, b int
				for dy := -radius; dy <= radius; dy++ {
					row := clamp(y+dy, 0, h-1) * w
					for dx := -radius; dx <= radius; dx++ {
						i := (row + clamp(x+dx, 0, w-1)) * 4
						r += int(src.Pix[i])
						g += int(src.Pix[i+1])
						b += int(src.Pix[i+2])
					}
				}

				o := (y*w + x) * 4
				dst.Pix[o] = uint8(r / count)
				dst.Pix[o+1] = uint8(g / count)
				dst.Pix[o+2] = uint8(b / count)
				dst.Pix[o+3] = src.Pix[o+3]
			}
		}
	})

	return dst
}

// ModeFilter is the "oil paint" effect.
//
// Each neighbour in the clamped square window is bucketed by its mean channel
// brightness into one of `levels` bins. The output pixel is the mean colour of
// the most populated bin; on equal counts the lowest bin wins.
func ModeFilter(src *PixelBuffer, radius, levels int) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	if radius < 0 {
		radius = 0
	}
	if levels < 1 {
		levels = 1
	}

	w, h := src.Width, src.Height
	dst := NewPixelBuffer(w, h)
	lv := float64(levels)

	parallel.Line(h, func(start, end int) {
		counts := make([]int, levels)
		sumR := make([]int, levels)
		sumG := make([]int, levels)
		sumB := make([]int, levels)

		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				for i := range counts {
					counts[i], sumR[i], sumG[i], sumB[i] = 0, 0, 0, 0
				}

				for dy := -radius; dy <= radius; dy++ {
					row := clamp(y+dy, 0, h-1) * w
					for dx := -radius; dx <= radius; dx++ {
						i := (row + clamp(x+dx, 0, w-1)) * 4
						r, g, b := int(src.Pix[i]), int(src.Pix[i+1]), int(src.Pix[i+2])

						bin := int(float64(r+g+b) / 3 * lv / 255)
						bin = clamp(bin, 0, levels-1)

						counts[bin]++
						sumR[bin] += r
						sumG[bin] += g
						sumB[bin] += b
					}
				}

				best := 0
				for i := 1; i < levels; i++ {
					if counts[i] > counts[best] {
						best = i
					}
				}

				o := (y*w + x) * 4
				if n := counts[best]; n > 0 {
					dst.Pix[o] = roundByte(float64(sumR[best]) / float64(n))
					dst.Pix[o+1] = roundByte(float64(sumG[best]) / float64(n))
					dst.Pix[o+2] = roundByte(float64(sumB[best]) / float64(n))
				} else {
					copy(dst.Pix[o:o+3], src.Pix[o:o+3])
				}
				dst.Pix[o+3] = src.Pix[o+3]
			}
		}
	})

	return dst
}

// Grayscale sets R, G and B to the pixel's Luma.
func Grayscale(src *PixelBuffer) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	dst := src.Clone()
	for i := 0; i < len(dst.Pix); i += 4 {
		y := Luma(dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = y, y, y
	}
	return dst
}

// ValueGroup converts to grayscale and snaps the luma to `groups` evenly
// spaced levels between 0 and 255. Groups are clamped to [MinGroups, MaxGroups].
func ValueGroup(src *PixelBuffer, groups int) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	groups = clamp(groups, MinGroups, MaxGroups)
	table := quantizeTable(groups)

	dst := src.Clone()
	for i := 0; i < len(dst.Pix); i += 4 {
		v := table[Luma(dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])]
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = v, v, v
	}
	return dst
}

// Posterize snaps each colour channel independently to `levels` evenly spaced
// values. Levels below 2 are treated as 2.
func Posterize(src *PixelBuffer, levels int) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	levels = clamp(levels, 2, 256)
	table := quantizeTable(levels)

	dst := src.Clone()
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = table[dst.Pix[i]]
		dst.Pix[i+1] = table[dst.Pix[i+1]]
		dst.Pix[i+2] = table[dst.Pix[i+2]]
	}
	return dst
}

// quantizeTable maps every byte v to round(v/step)*step with
// step = 255/(levels-1).
func quantizeTable(levels int) [256]uint8 {
	var table [256]uint8
	step := 255 / float64(levels-1)
	for v := 0; v < 256; v++ {
		n := float64(int(float64(v)/step + 0.5))
		table[v] = roundByte(n * step)
	}
	return table
}

// Squint blurs the buffer with a Gaussian of the given radius in pixels.
// Level 0 returns an unmodified copy. Alpha is carried over from the source.
func Squint(src *PixelBuffer, level int) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	if level <= 0 {
		return src.Clone()
	}

	dst := FromImage(blur.Gaussian(src.ToNRGBA(), float64(level)))
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = src.Pix[i]
	}
	return dst
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
