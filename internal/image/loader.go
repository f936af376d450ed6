// Package image provides utilities for loading and saving images.
package image

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/pigment/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return img, nil
}

// ValidateImagePath checks if the given path is valid and points to a
// supported image file. Supports both local file paths and HTTP(S) URLs.
// For local files, it verifies the file exists and can be decoded.
// For HTTP(S) URLs, it just validates the URL format (actual fetching
// happens later).
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	// URL validation happens at fetch time to avoid double-fetching.
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	// Decode only the config to verify the format is supported without
	// loading the whole image.
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}

	return nil
}

// IsURL reports whether the path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// GetImageDimensions returns the width and height of an image without fully
// loading it.
func GetImageDimensions(path string) (width, height int, err error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image config: %w", err)
	}

	return config.Width, config.Height, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(path string) (image.Image, error) {
	if IsURL(path) {
		return l.loadFromURL(path)
	}

	return l.fileLoader.Load(path)
}

// loadFromURL fetches an image from an HTTP(S) URL through the local image
// cache and decodes it. Repeated loads of the same URL reuse the cached copy.
func (l *SmartLoader) loadFromURL(url string) (image.Image, error) {
	cachedPath, err := imagecache.DownloadAndCache(context.Background(), url, imagecache.CacheOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	return l.fileLoader.Load(cachedPath)
}
