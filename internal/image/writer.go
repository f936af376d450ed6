// Package image provides utilities for loading and saving images.
package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// defaultJPEGQuality is used when encoding JPEG output.
const defaultJPEGQuality = 95

// Save writes an image to the given path, choosing the encoder from the
// file extension. Supported: .png (default), .jpg/.jpeg.
func Save(path string, img image.Image) error {
	if path == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	file, err := os.Create(path) // #nosec G304 - User-specified output path, intended to be written
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: defaultJPEGQuality})
	case ".png", "":
		err = png.Encode(file, img)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: png, jpg)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	return nil
}
