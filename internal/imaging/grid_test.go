package imaging

import (
	"bytes"
	"testing"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

func TestGridOverlay(t *testing.T) {
	src := createUniformBuffer(100, 100, 255, 255, 255, 255)
	red := colormath.RGB{R: 255}

	got := GridOverlay(src, GridOptions{Spacing: 25, Color: red})

	tests := []struct {
		name    string
		x, y    int
		wantHex string
	}{
		{"vertical line", 25, 10, "#ff0000"},
		{"horizontal line", 10, 50, "#ff0000"},
		{"intersection", 75, 75, "#ff0000"},
		{"cell interior", 10, 10, "#ffffff"},
		{"no line at origin", 0, 0, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := got.RGBAt(tt.x, tt.y)
			if err != nil {
				t.Fatalf("RGBAt: %v", err)
			}
			if c.Hex() != tt.wantHex {
				t.Errorf("got %s, want %s", c.Hex(), tt.wantHex)
			}
		})
	}

	if !bytes.Equal(src.Pix, createUniformBuffer(100, 100, 255, 255, 255, 255).Pix) {
		t.Error("GridOverlay mutated its source")
	}
}

func TestGridOverlay_Opacity(t *testing.T) {
	src := createUniformBuffer(20, 20, 255, 255, 255, 255)
	got := GridOverlay(src, GridOptions{Spacing: 10, Color: colormath.RGB{}, Opacity: 0.5})

	c, _ := got.RGBAt(10, 3)
	if c.R != 128 && c.R != 127 {
		t.Errorf("half-opacity black over white: got %d", c.R)
	}
}

func TestGridOverlay_DefaultSpacing(t *testing.T) {
	src := createUniformBuffer(120, 120, 0, 0, 0, 255)
	got := GridOverlay(src, GridOptions{Color: colormath.RGB{G: 255}})

	c, _ := got.RGBAt(DefaultGridSpacing, 5)
	if c.G != 255 {
		t.Errorf("expected a line at x=%d", DefaultGridSpacing)
	}
}

func TestGridOverlay_Labels(t *testing.T) {
	src := createUniformBuffer(100, 100, 0, 0, 255, 255)
	plain := GridOverlay(src, GridOptions{Spacing: 50})
	labelled := GridOverlay(src, GridOptions{Spacing: 50, Labels: true})

	if bytes.Equal(plain.Pix, labelled.Pix) {
		t.Error("labels did not change any pixels")
	}
}
