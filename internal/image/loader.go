// Package image provides utilities for loading and decoding images.
package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

var (
	// ErrDecode is returned when data is not an image in a registered format.
	ErrDecode = errors.New("failed to decode image")

	// ErrTooManyPixels is returned when an image header declares an area
	// above the caller's limit.
	ErrTooManyPixels = errors.New("image dimensions exceed pixel limit")
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// Decode decodes an image from r, accepting any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, format, nil
}

// DecodeBounded decodes data after checking the dimensions in its header.
// A maxPixels of zero or less disables the check.
func DecodeBounded(data []byte, maxPixels int64) (image.Image, string, error) {
	if err := checkPixels(bytes.NewReader(data), maxPixels); err != nil {
		return nil, "", err
	}
	return Decode(bytes.NewReader(data))
}

func checkPixels(r io.Reader, maxPixels int64) error {
	if maxPixels <= 0 {
		return nil
	}
	config, _, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if area := int64(config.Width) * int64(config.Height); area > maxPixels {
		return fmt.Errorf("%w: %dx%d is over %d pixels", ErrTooManyPixels, config.Width, config.Height, maxPixels)
	}
	return nil
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	maxPixels int64
}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
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

	if l.maxPixels > 0 {
		if err := checkPixels(file, l.maxPixels); err != nil {
			return nil, err
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind image file: %w", err)
		}
	}

	img, _, err := Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL rather than a local file.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is a URL or a readable file in a supported format.
// URLs are only syntax-checked here; they are fetched once by the loader.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		return security.ValidateImageURL(path, true)
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

	if _, _, err := GetImageDimensions(path); err != nil {
		if !IsImageFile(path) {
			return fmt.Errorf("unsupported image file %s (supported: %s): %w",
				path, strings.Join(SupportedImageExtensions(), ", "), err)
		}
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// GetImageDimensions returns the width and height of an image without fully decoding it.
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
	fetch      httputil.FetchOptions
	maxPixels  int64
}

// NewSmartLoader creates a new SmartLoader instance. Images whose header
// declares more than maxPixels pixels are rejected before decoding.
func NewSmartLoader(fetch httputil.FetchOptions, maxPixels int64) *SmartLoader {
	return &SmartLoader{
		fileLoader: &FileLoader{maxPixels: maxPixels},
		fetch:      fetch,
		maxPixels:  maxPixels,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	data, err := httputil.Fetch(ctx, url, l.fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, _, err := DecodeBounded(data, l.maxPixels)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ToRGBA flattens img into a row-major, non-premultiplied RGBA buffer,
// the same layout a browser canvas hands back from getImageData.
func ToRGBA(img image.Image) (pix []byte, width, height int) {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst.Pix, bounds.Dx(), bounds.Dy()
}
