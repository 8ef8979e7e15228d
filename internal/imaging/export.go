package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// ExportResult is an encoded image ready for download.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// WritePNG encodes buf as PNG to w.
func WritePNG(w io.Writer, buf *PixelBuffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if err := imaging.Encode(w, buf.ToNRGBA(), imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodePNG returns buf as PNG bytes.
func EncodePNG(buf *PixelBuffer) ([]byte, error) {
	var out bytes.Buffer
	if err := WritePNG(&out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Export encodes buf as a base64 PNG result.
func Export(buf *PixelBuffer) (*ExportResult, error) {
	data, err := EncodePNG(buf)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Width:       buf.Width,
		Height:      buf.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// SavePNG writes buf to path as PNG.
func SavePNG(path string, buf *PixelBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WritePNG(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ResizeTo scales buf to exactly width x height with a linear filter.
func ResizeTo(buf *PixelBuffer, width, height int) *PixelBuffer {
	if !buf.Valid() || width <= 0 || height <= 0 {
		return buf
	}
	if width == buf.Width && height == buf.Height {
		return buf.Clone()
	}
	return FromImage(imaging.Resize(buf.ToNRGBA(), width, height, imaging.Linear))
}

// FitWithin scales buf down so it fits inside maxWidth x maxHeight while
// keeping its aspect ratio. Buffers that already fit are copied unchanged.
func FitWithin(buf *PixelBuffer, maxWidth, maxHeight int) *PixelBuffer {
	if !buf.Valid() || maxWidth <= 0 || maxHeight <= 0 {
		return buf
	}
	if buf.Width <= maxWidth && buf.Height <= maxHeight {
		return buf.Clone()
	}
	return FromImage(imaging.Fit(buf.ToNRGBA(), maxWidth, maxHeight, imaging.Linear))
}
