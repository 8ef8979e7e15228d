package analysis

import "github.com/ironsheep/paint-study-mcp/internal/imaging"

// fillBuffer creates a width x height opaque buffer coloured by fn.
func fillBuffer(width, height int, fn func(x, y int) (r, g, b uint8)) *imaging.PixelBuffer {
	buf := imaging.NewPixelBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = fn(x, y)
			buf.Pix[i+3] = 255
		}
	}
	return buf
}

func uniform(width, height int, r, g, b uint8) *imaging.PixelBuffer {
	return fillBuffer(width, height, func(int, int) (uint8, uint8, uint8) { return r, g, b })
}
