// Package config resolves server settings from defaults, the environment and
// command-line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/paint-study-mcp/internal/analysis"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel     = "PAINT_STUDY_LOG_LEVEL"
	EnvHTTPAddr     = "PAINT_STUDY_HTTP_ADDR"
	EnvSampleStride = "PAINT_STUDY_SAMPLE_STRIDE"
	EnvPreviewMax   = "PAINT_STUDY_PREVIEW_MAX"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the server settings.
type Config struct {
	LogLevel     string // trace, debug, info, warn, error or off
	HTTPAddr     string // Empty disables the HTTP transport
	SampleStride int    // Temperature sampler stride in pixels
	PreviewMax   int    // Working-copy bound in pixels; 0 is full resolution
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "info",
		SampleStride: analysis.DefaultSampleStride,
	}
}

// FromEnv overlays environment variables on Default.
func FromEnv() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is FromEnv with an injectable environment.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvHTTPAddr); ok {
		cfg.HTTPAddr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSampleStride); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, EnvSampleStride, v)
		}
		cfg.SampleStride = n
	}
	if v, ok := lookup(EnvPreviewMax); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, EnvPreviewMax, v)
		}
		cfg.PreviewMax = n
	}

	return cfg, cfg.Validate()
}

// Validate checks every field.
func (c Config) Validate() error {
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	if c.SampleStride < 1 {
		return fmt.Errorf("%w: sample stride must be at least 1, got %d", ErrInvalid, c.SampleStride)
	}
	if c.PreviewMax < 0 {
		return fmt.Errorf("%w: preview max must not be negative, got %d", ErrInvalid, c.PreviewMax)
	}
	return nil
}

// Logger builds the root logger. Output goes to w, which must not be stdout
// when the MCP transport owns it.
func (c Config) Logger(w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "paint-study",
		Level:  hclog.LevelFromString(c.LogLevel),
		Output: w,
	})
}
