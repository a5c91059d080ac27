package hocr

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	// scans are commonly TIFF
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSize returns the pixel dimensions of the image at path.
// Only the image header is decoded.
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening page image: %w", err)
	}
	defer f.Close() // nolint: errcheck

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding page image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("page image %s (%s) has no size", path, format)
	}

	return cfg.Width, cfg.Height, nil
}

// Size returns the page dimensions, preferring the page bbox and falling
// back to the page image header. ok is false when neither is available.
func (p Page) Size(baseDir string) (width, height int, ok bool) {
	if p.Properties.BBox != nil && p.Properties.BBox.Width() > 0 && p.Properties.BBox.Height() > 0 {
		return p.Properties.BBox.Width(), p.Properties.BBox.Height(), true
	}

	path := p.ImagePath(baseDir)
	if path == "" {
		return 0, 0, false
	}

	width, height, err := ImageSize(path)
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}
