package imaging

import "math"

// ValueComparison compares the mean value of two regions.
type ValueComparison struct {
	First      Region `json:"first"`
	Second     Region `json:"second"`
	FirstMean  int    `json:"first_mean"`
	SecondMean int    `json:"second_mean"`
	Difference int    `json:"difference"` // FirstMean - SecondMean
	Contrast   int    `json:"contrast"`   // |Difference| as a percentage of 255
	Lighter    string `json:"lighter"`    // "first", "second" or "equal"
}

// CompareValues reports which of two regions reads lighter in value, the
// question a painter asks when checking relative values.
func CompareValues(buf *PixelBuffer, first, second Region) (*ValueComparison, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := first.Within(buf.Width, buf.Height); err != nil {
		return nil, err
	}
	if err := second.Within(buf.Width, buf.Height); err != nil {
		return nil, err
	}

	m1 := regionMeanLuma(buf, first)
	m2 := regionMeanLuma(buf, second)
	diff := m1 - m2

	lighter := "equal"
	switch {
	case diff > 0:
		lighter = "first"
	case diff < 0:
		lighter = "second"
	}

	abs := diff
	if abs < 0 {
		abs = -abs
	}

	return &ValueComparison{
		First:      first,
		Second:     second,
		FirstMean:  m1,
		SecondMean: m2,
		Difference: diff,
		Contrast:   int(math.Round(float64(abs) / 255 * 100)),
		Lighter:    lighter,
	}, nil
}

func regionMeanLuma(buf *PixelBuffer, r Region) int {
	var sum int
	for y := r.Y1; y < r.Y2; y++ {
		row := y * buf.Width * 4
		for x := r.X1; x < r.X2; x++ {
			i := row + x*4
			sum += int(Luma(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2]))
		}
	}
	return int(math.Round(float64(sum) / float64(r.Width()*r.Height())))
}
