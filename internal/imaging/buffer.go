package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

var (
	// ErrInvalidBuffer is returned when a buffer's pixel slice does not match
	// its dimensions.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrOutOfBounds is returned when a coordinate lies outside the buffer.
	ErrOutOfBounds = errors.New("coordinates outside image bounds")
)

// PixelBuffer is a non-premultiplied RGBA raster with a top-left origin.
//
// Pix holds interleaved R,G,B,A bytes in row-major order, so the pixel at
// (x, y) starts at Pix[(y*Width+x)*4]. A valid buffer always satisfies
// len(Pix) == Width*Height*4.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer allocates a zeroed (transparent black) buffer.
func NewPixelBuffer(width, height int) *PixelBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies any image.Image into a new buffer.
func FromImage(img image.Image) *PixelBuffer {
	if img == nil {
		return NewPixelBuffer(0, 0)
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	return &PixelBuffer{Width: b.Dx(), Height: b.Dy(), Pix: nrgba.Pix}
}

// ToNRGBA wraps a copy of the buffer as an *image.NRGBA.
func (p *PixelBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	copy(img.Pix, p.Pix)
	return img
}

// Valid reports whether the buffer has pixels and a consistent length.
func (p *PixelBuffer) Valid() bool {
	return p != nil && p.Width > 0 && p.Height > 0 && len(p.Pix) == p.Width*p.Height*4
}

// Validate returns ErrInvalidBuffer with details when the buffer is not Valid.
func (p *PixelBuffer) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: zero-sized buffer %dx%d", ErrInvalidBuffer, p.Width, p.Height)
	}
	if want := p.Width * p.Height * 4; len(p.Pix) != want {
		return fmt.Errorf("%w: %d bytes for %dx%d, want %d", ErrInvalidBuffer, len(p.Pix), p.Width, p.Height, want)
	}
	return nil
}

// Clone returns a deep copy. Cloning nil yields nil.
func (p *PixelBuffer) Clone() *PixelBuffer {
	if p == nil {
		return nil
	}
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Width: p.Width, Height: p.Height, Pix: pix}
}

// RGBAt returns the colour at (x, y), ignoring alpha.
func (p *PixelBuffer) RGBAt(x, y int) (colormath.RGB, error) {
	if !p.Valid() {
		return colormath.RGB{}, ErrInvalidBuffer
	}
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return colormath.RGB{}, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, p.Width, p.Height)
	}
	i := (y*p.Width + x) * 4
	return colormath.RGB{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2]}, nil
}

// Luma returns the BT.601 luma of a colour, rounded to the nearest byte:
//
//	round(0.299*R + 0.587*G + 0.114*B)
//
// Grayscale, value grouping and value statistics all go through this
// function so that "lightness" means the same thing everywhere.
func Luma(r, g, b uint8) uint8 {
	return uint8(math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)))
}

// roundByte stores a fractional channel value, rounding half to even.
func roundByte(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
