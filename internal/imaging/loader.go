package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder (incl. CCITT compressed bilevel)
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// cachedImage is a decoded image together with the format name reported by
// the decoder.
type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded source images, so that
// tracing the same file with different thresholds or ratios only decodes it
// once.
//
// Entries are keyed by the exact path string. Cached images remain in memory
// until removed via Evict() or Clear().
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/logo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	if entry, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to decode image: %w", err)
	}

	entry := cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes the image loaded from path. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a source image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the decoder, e.g. "png",
	// "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// Bilevel is true for images whose color model can only hold two
	// values (1-bit paletted images, e.g. fax TIFFs). These trace without
	// any threshold tuning.
	Bilevel bool `json:"bilevel"`

	// HasAlpha indicates whether the image has an alpha channel. Fully
	// transparent pixels are always treated as background.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and describes it.
//
// Returns an error if the image cannot be loaded or the file cannot be
// stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bilevel := false
	hasAlpha := false
	switch m := entry.img.(type) {
	case *image.Paletted:
		bilevel = len(m.Palette) <= 2
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
			}
		}
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        entry.format,
		Bilevel:       bilevel,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it through the
// cache.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
