package imaging

import (
	"math"
	"sort"
)

// ValueAnalysis summarises the luma distribution of a buffer.
type ValueAnalysis struct {
	Darkest  int `json:"darkest"`  // Minimum luma (0-255)
	Lightest int `json:"lightest"` // Maximum luma (0-255)
	Median   int `json:"median"`   // sorted[n/2] luma (0-255)
	Average  int `json:"average"`  // Rounded mean luma (0-255)
	Contrast int `json:"contrast"` // Range as a percentage of 255 (0-100)
	Range    int `json:"range"`    // Lightest - Darkest (0-255)
}

// ComputeValues derives luma statistics from every pixel of buf.
//
// The median is sorted[n/2] with no interpolation, which for an even count is
// the upper of the two middle values. An invalid buffer yields the zero ValueAnalysis
// and ok == false.
func ComputeValues(buf *PixelBuffer) (analysis ValueAnalysis, ok bool) {
	if !buf.Valid() {
		return ValueAnalysis{}, false
	}

	n := buf.Width * buf.Height
	values := make([]int, n)
	sum := 0
	for i := 0; i < n; i++ {
		p := i * 4
		v := int(Luma(buf.Pix[p], buf.Pix[p+1], buf.Pix[p+2]))
		values[i] = v
		sum += v
	}
	sort.Ints(values)

	darkest := values[0]
	lightest := values[n-1]
	valueRange := lightest - darkest

	return ValueAnalysis{
		Darkest:  darkest,
		Lightest: lightest,
		Median:   values[n/2],
		Average:  int(math.Round(float64(sum) / float64(n))),
		Contrast: int(math.Round(float64(valueRange) / 255 * 100)),
		Range:    valueRange,
	}, true
}
