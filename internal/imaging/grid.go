package imaging

import (
	"strconv"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

// DefaultGridSpacing is the drawing-grid cell size in pixels.
const DefaultGridSpacing = 50

// GridOptions control the drawing grid.
type GridOptions struct {
	Spacing int           // Cell size in pixels; <= 0 means DefaultGridSpacing
	Color   colormath.RGB // Line colour
	Opacity float64       // Line opacity 0-1; 0 means fully opaque
	Labels  bool          // Draw "x,y" at each intersection
}

// GridOverlay draws a drawing grid (the painter's grid method for transferring
// proportions) over a copy of src. Lines are alpha-blended over the pixels.
func GridOverlay(src *PixelBuffer, opts GridOptions) *PixelBuffer {
	if !src.Valid() {
		return src
	}
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = DefaultGridSpacing
	}
	opacity := opts.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	dst := src.Clone()
	w, h := dst.Width, dst.Height

	for x := spacing; x < w; x += spacing {
		for y := 0; y < h; y++ {
			blendPixel(dst, x, y, opts.Color, opacity)
		}
	}
	for y := spacing; y < h; y += spacing {
		for x := 0; x < w; x++ {
			blendPixel(dst, x, y, opts.Color, opacity)
		}
	}

	if opts.Labels {
		fg := colormath.RGB{R: 255, G: 255, B: 255}
		bg := colormath.RGB{}
		for y := spacing; y < h; y += spacing {
			for x := spacing; x < w; x += spacing {
				label := strconv.Itoa(x) + "," + strconv.Itoa(y)
				drawLabel(dst, x+2, y+2, label, fg, bg)
			}
		}
	}

	return dst
}

func blendPixel(buf *PixelBuffer, x, y int, c colormath.RGB, opacity float64) {
	if x < 0 || x >= buf.Width || y < 0 || y >= buf.Height {
		return
	}
	i := (y*buf.Width + x) * 4
	buf.Pix[i] = roundByte(float64(buf.Pix[i])*(1-opacity) + float64(c.R)*opacity)
	buf.Pix[i+1] = roundByte(float64(buf.Pix[i+1])*(1-opacity) + float64(c.G)*opacity)
	buf.Pix[i+2] = roundByte(float64(buf.Pix[i+2])*(1-opacity) + float64(c.B)*opacity)
}

// digitGlyphs is a 3x5 bitmap font for grid coordinates.
var digitGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws text on a translucent backing box at (x, y).
func drawLabel(buf *PixelBuffer, x, y int, text string, fg, bg colormath.RGB) {
	const charWidth, labelHeight = 4, 7
	labelWidth := len(text) * charWidth

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			blendPixel(buf, x+dx, y+dy, bg, 0.7)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range digitGlyphs[ch] {
			for col, bit := range line {
				if bit == '1' {
					blendPixel(buf, cx+col, y+row, fg, 1)
				}
			}
		}
		cx += charWidth
	}
}
