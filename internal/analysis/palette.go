package analysis

import (
	"sort"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
)

// DefaultPaletteSize is the number of colours DominantColors returns by default.
const DefaultPaletteSize = 8

// PaletteColor is a quantized colour and its share of the pixels.
type PaletteColor struct {
	Hex         string                `json:"hex"`
	RGB         colormath.RGB         `json:"rgb"`
	Percentage  float64               `json:"percentage"`
	Temperature colormath.Temperature `json:"temperature"`
}

// DominantColors returns up to count of the most common colours in region of
// buf (the whole buffer when region is nil), most common first.
//
// Channels are quantized to multiples of 16 before counting so that near
// neighbours pool together; #f0f0f0 and #fafafa both count as #f0f0f0. Equal
// counts are ordered by colour so the result is deterministic.
func DominantColors(buf *imaging.PixelBuffer, count int, region *imaging.Region) ([]PaletteColor, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	r := imaging.FullRegion(buf)
	if region != nil {
		if err := region.Within(buf.Width, buf.Height); err != nil {
			return nil, err
		}
		r = *region
	}
	if count <= 0 {
		count = DefaultPaletteSize
	}

	counts := make(map[colormath.RGB]int)
	for y := r.Y1; y < r.Y2; y++ {
		row := y * buf.Width * 4
		for x := r.X1; x < r.X2; x++ {
			i := row + x*4
			key := colormath.RGB{
				R: buf.Pix[i] &^ 0x0f,
				G: buf.Pix[i+1] &^ 0x0f,
				B: buf.Pix[i+2] &^ 0x0f,
			}
			counts[key]++
		}
	}

	total := float64(r.Width() * r.Height())
	colors := make([]PaletteColor, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, PaletteColor{
			Hex:         c.Hex(),
			RGB:         c,
			Percentage:  float64(n) / total * 100,
			Temperature: colormath.TemperatureOf(c.R, c.G, c.B),
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return colors, nil
}
