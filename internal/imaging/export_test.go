package imaging

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"path/filepath"
	"testing"
)

func TestExport(t *testing.T) {
	src := createPatternBuffer(40, 30)

	result, err := Export(src)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if result.Width != 40 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(decoded))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if got := FromImage(img); !bytes.Equal(got.Pix, src.Pix) {
		t.Error("PNG round trip changed the pixels")
	}
}

func TestExport_InvalidBuffer(t *testing.T) {
	if _, err := Export(NewPixelBuffer(0, 0)); err == nil {
		t.Error("Export should fail for an empty buffer")
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.png")
	src := createUniformBuffer(8, 8, 10, 20, 30, 255)

	if err := SavePNG(path, src); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("saved image differs from the source")
	}

	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), src); err == nil {
		t.Error("SavePNG should fail when the directory does not exist")
	}
}

func TestResizeTo(t *testing.T) {
	src := createUniformBuffer(400, 300, 90, 90, 90, 255)
	got := ResizeTo(src, 200, 200)
	if got.Width != 200 || got.Height != 200 {
		t.Fatalf("dimensions: got %dx%d, want 200x200", got.Width, got.Height)
	}
	if got.Pix[0] != 90 {
		t.Errorf("uniform colour changed: got %d", got.Pix[0])
	}

	same := ResizeTo(src, 400, 300)
	if same == src || !bytes.Equal(same.Pix, src.Pix) {
		t.Error("same-size resize should return an equal copy")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"landscape", 600, 300, 300, 200, 300, 150},
		{"portrait", 300, 600, 300, 200, 100, 200},
		{"already fits", 100, 50, 300, 200, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitWithin(createUniformBuffer(tt.w, tt.h, 1, 2, 3, 255), tt.maxW, tt.maxH)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}
		})
	}
}
