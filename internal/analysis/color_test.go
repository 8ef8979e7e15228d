package analysis

import (
	"testing"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b    uint8
		wantHex    string
		wantHSL    colormath.HSL
		wantTemp   colormath.Temperature
		wantTint   colormath.Temperature
		wantChroma int
		wantValue  int
	}{
		{"pure red", 255, 0, 0, "#ff0000", colormath.HSL{H: 0, S: 100, L: 50}, colormath.Warm, colormath.Warm, 100, 50},
		{"pure blue", 0, 0, 255, "#0000ff", colormath.HSL{H: 240, S: 100, L: 50}, colormath.Cool, colormath.Cool, 100, 50},
		{"pure green", 0, 255, 0, "#00ff00", colormath.HSL{H: 120, S: 100, L: 50}, colormath.Neutral, colormath.Neutral, 100, 50},
		{"magenta at 300 is cool tint", 255, 0, 255, "#ff00ff", colormath.HSL{H: 300, S: 100, L: 50}, colormath.Neutral, colormath.Cool, 100, 50},
		{"mid gray", 128, 128, 128, "#808080", colormath.HSL{H: 0, S: 0, L: 50}, colormath.Neutral, colormath.Warm, 0, 50},
		{"black", 0, 0, 0, "#000000", colormath.HSL{H: 0, S: 0, L: 0}, colormath.Neutral, colormath.Warm, 0, 0},
		// Hue 59.76 rounds to 60 but the tint uses the raw hue
		{"tint from raw hue", 255, 254, 0, "#fffe00", colormath.HSL{H: 60, S: 100, L: 50}, colormath.Warm, colormath.Warm, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.r, tt.g, tt.b)
			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", got.HSL, tt.wantHSL)
			}
			if got.Temperature != tt.wantTemp {
				t.Errorf("Temperature: got %s, want %s", got.Temperature, tt.wantTemp)
			}
			if got.Tint != tt.wantTint {
				t.Errorf("Tint: got %s, want %s", got.Tint, tt.wantTint)
			}
			if got.Chroma != tt.wantChroma || got.Value != tt.wantValue {
				t.Errorf("Chroma/Value: got %d/%d, want %d/%d", got.Chroma, got.Value, tt.wantChroma, tt.wantValue)
			}
			if got.RGB != (colormath.RGB{R: tt.r, G: tt.g, B: tt.b}) {
				t.Errorf("RGB: got %+v", got.RGB)
			}
		})
	}
}

func TestAnalyze_ChromaAndValueAliasHSL(t *testing.T) {
	for _, c := range []colormath.RGB{{R: 12, G: 200, B: 99}, {R: 240, G: 17, B: 180}, {R: 90, G: 90, B: 91}} {
		got := AnalyzeRGB(c)
		if got.Chroma != got.HSL.S || got.Value != got.HSL.L {
			t.Errorf("%v: chroma/value %d/%d do not match S/L %d/%d", c, got.Chroma, got.Value, got.HSL.S, got.HSL.L)
		}
	}
}

func TestAnalyzeHex(t *testing.T) {
	got, err := AnalyzeHex("#FF8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RGB != (colormath.RGB{R: 255, G: 128, B: 0}) {
		t.Errorf("RGB: got %+v", got.RGB)
	}
	if got.Hex != "#ff8000" {
		t.Errorf("Hex: got %s, want #ff8000", got.Hex)
	}

	if _, err := AnalyzeHex("not-a-colour"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestNotation(t *testing.T) {
	tests := []struct {
		name    string
		info    ColorInfo
		wantT   int
		wantN   int
		wantStr string
	}{
		{"red", Analyze(255, 0, 0), 30, 2, "T: 30 N: 2"},
		{"blue", Analyze(0, 0, 255), -30, -2, "T: -30 N: -2"},
		{"green", Analyze(0, 255, 0), 0, 0, "T: 0 N: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.TemperatureScore(); got != tt.wantT {
				t.Errorf("TemperatureScore: got %d, want %d", got, tt.wantT)
			}
			if got := tt.info.TintScore(); got != tt.wantN {
				t.Errorf("TintScore: got %d, want %d", got, tt.wantN)
			}
			if got := tt.info.Notation(); got != tt.wantStr {
				t.Errorf("Notation: got %q, want %q", got, tt.wantStr)
			}
		})
	}
}
