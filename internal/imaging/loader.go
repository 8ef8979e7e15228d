package imaging

import (
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode reads an encoded image (PNG, JPEG, GIF or WebP) into a new buffer.
// JPEG EXIF orientation is applied so the buffer is upright.
func Decode(r io.Reader) (*PixelBuffer, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	buf := FromImage(img)
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("decoded image is empty: %w", err)
	}
	return buf, nil
}

// Open decodes the image file at path.
func Open(path string) (*PixelBuffer, error) {
	f, err := os.Open(path) // #nosec G304 - user-selected reference photo
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// ImageCache keeps decoded buffers keyed by file path so that reloading the
// same reference photo does not hit the disk again.
//
// ImageCache is safe for concurrent use. Callers must treat returned buffers
// as read-only; Session clones before it mutates anything.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*PixelBuffer
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*PixelBuffer),
	}
}

// Load returns the cached buffer for path or decodes it from disk.
//
// The exact path string is the key, so a relative and an absolute path to
// the same file are cached separately.
func (c *ImageCache) Load(path string) (*PixelBuffer, error) {
	c.mu.RLock()
	if buf, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return buf, nil
	}
	c.mu.RUnlock()

	buf, err := Open(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = buf
	c.mu.Unlock()

	return buf, nil
}

// Len reports how many images are cached.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*PixelBuffer)
	c.mu.Unlock()
}

// Evict drops one path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes a loaded reference photo.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", "webp" or "unknown", taken from the
	// file extension.
	Format string `json:"format"`

	// HasAlpha reports whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
func LoadImageInfo(cache *ImageCache, path string) (*PixelBuffer, *ImageInfo, error) {
	buf, err := cache.Load(path)
	if err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".webp":
		format = "webp"
	}

	return buf, &ImageInfo{
		Width:         buf.Width,
		Height:        buf.Height,
		Format:        format,
		HasAlpha:      hasAlpha(buf),
		FileSizeBytes: stat.Size(),
	}, nil
}

func hasAlpha(buf *PixelBuffer) bool {
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 255 {
			return true
		}
	}
	return false
}
