package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidRegion is returned for empty or out-of-bounds regions.
var ErrInvalidRegion = errors.New("invalid region")

// Region is a rectangle in buffer coordinates.
//
// (X1, Y1) is the inclusive top-left corner and (X2, Y2) the exclusive
// bottom-right corner, so Width = X2 - X1.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the region width in pixels.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns the region height in pixels.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Within reports an error unless r is a non-empty rectangle inside a
// width x height buffer.
func (r Region) Within(width, height int) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("%w: x1 must be < x2 and y1 must be < y2", ErrInvalidRegion)
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > width || r.Y2 > height {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) outside image bounds %dx%d",
			ErrInvalidRegion, r.X1, r.Y1, r.X2, r.Y2, width, height)
	}
	return nil
}

// FullRegion covers the whole buffer.
func FullRegion(buf *PixelBuffer) Region {
	return Region{X2: buf.Width, Y2: buf.Height}
}

// NamedRegion resolves a named part of a width x height image: a quadrant
// ("top-left" etc.), a half ("top-half" etc.) or "center", the middle 50%.
func NamedRegion(width, height int, name string) (Region, error) {
	midX, midY := width/2, height/2

	switch name {
	case "full":
		return Region{X2: width, Y2: height}, nil
	case "top-left":
		return Region{X2: midX, Y2: midY}, nil
	case "top-right":
		return Region{X1: midX, X2: width, Y2: midY}, nil
	case "bottom-left":
		return Region{Y1: midY, X2: midX, Y2: height}, nil
	case "bottom-right":
		return Region{X1: midX, Y1: midY, X2: width, Y2: height}, nil
	case "top-half":
		return Region{X2: width, Y2: midY}, nil
	case "bottom-half":
		return Region{Y1: midY, X2: width, Y2: height}, nil
	case "left-half":
		return Region{X2: midX, Y2: height}, nil
	case "right-half":
		return Region{X1: midX, X2: width, Y2: height}, nil
	case "center":
		qW, qH := width/4, height/4
		return Region{X1: qW, Y1: qH, X2: width - qW, Y2: height - qH}, nil
	default:
		return Region{}, fmt.Errorf("%w: unknown region name %q", ErrInvalidRegion, name)
	}
}

// Crop copies region r out of buf.
func Crop(buf *PixelBuffer, r Region) (*PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := r.Within(buf.Width, buf.Height); err != nil {
		return nil, err
	}
	return FromImage(imaging.Crop(buf.ToNRGBA(), image.Rect(r.X1, r.Y1, r.X2, r.Y2))), nil
}
