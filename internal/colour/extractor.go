package colour

import (
	"fmt"
	"image"
	"math"
	"sort"

	"golang.org/x/image/draw"
)

// ExtractorConfig holds the tuning constants for palette extraction.
type ExtractorConfig struct {
	// BucketSize is the per-channel quantisation step.
	BucketSize int `mapstructure:"bucket" validate:"gte=1,lte=128"`

	// SampleStride examines every Nth pixel of the row-major buffer.
	SampleStride int `mapstructure:"stride" validate:"gte=1"`

	// MaxArea caps width*height; larger images are resampled first.
	MaxArea int `mapstructure:"max_area" validate:"gte=1"`

	// AlphaThreshold skips pixels whose alpha is below it.
	AlphaThreshold int `mapstructure:"alpha" validate:"gte=0,lte=256"`

	// TopCount is the length of the returned palette.
	TopCount int `mapstructure:"top" validate:"gte=1,lte=256"`
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		BucketSize:     16,
		SampleStride:   10,
		MaxArea:        250000,
		AlphaThreshold: 128,
		TopCount:       10,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if c.BucketSize < 1 || c.BucketSize > 128 {
		return fmt.Errorf("bucket size must be between 1 and 128, got %d", c.BucketSize)
	}
	if c.SampleStride < 1 {
		return fmt.Errorf("sample stride must be at least 1, got %d", c.SampleStride)
	}
	if c.MaxArea < 1 {
		return fmt.Errorf("max area must be at least 1, got %d", c.MaxArea)
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > 256 {
		return fmt.Errorf("alpha threshold must be between 0 and 256, got %d", c.AlphaThreshold)
	}
	if c.TopCount < 1 || c.TopCount > 256 {
		return fmt.Errorf("top count must be between 1 and 256, got %d", c.TopCount)
	}
	return nil
}

// Extractor builds palettes by counting quantised colour buckets.
// It holds only configuration and is safe for concurrent use.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an Extractor after validating the configuration.
func NewExtractor(config ExtractorConfig) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor configuration: %w", err)
	}
	return &Extractor{config: config}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() ExtractorConfig {
	return e.config
}

// ExtractPalette extracts a palette from a non-premultiplied RGBA buffer
// using the default configuration.
func ExtractPalette(pix []byte, width, height int) (*Palette, error) {
	e := &Extractor{config: DefaultExtractorConfig()}
	return e.Extract(pix, width, height)
}

// Extract builds a palette from a row-major, non-premultiplied RGBA buffer
// of width*height*4 bytes. Returns ErrEmptyPalette if no sampled pixel is
// opaque enough.
func (e *Extractor) Extract(pix []byte, width, height int) (*Palette, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if width > 0 && height > math.MaxInt/4/width {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidImage, width, height)
	}
	if len(pix) < width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidImage, len(pix), width, height)
	}
	if width == 0 || height == 0 {
		return nil, ErrEmptyPalette
	}

	if width*height > e.config.MaxArea {
		pix, width, height = downscale(pix, width, height, e.config.MaxArea)
	}

	return e.count(pix[:width*height*4])
}

// ExtractImage converts img to an RGBA buffer and extracts its palette.
func (e *Extractor) ExtractImage(img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidImage)
	}
	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	return e.Extract(nrgba.Pix, b.Dx(), b.Dy())
}

type bucket struct {
	colour RGB
	count  int
}

// count walks the buffer at a fixed byte stride, so which pixels are sampled
// depends on the row-major layout rather than a 2-D grid.
func (e *Extractor) count(pix []byte) (*Palette, error) {
	step := e.config.SampleStride * 4
	index := make(map[RGB]int)
	var buckets []bucket

	for i := 0; i+3 < len(pix); i += step {
		if int(pix[i+3]) < e.config.AlphaThreshold {
			continue
		}
		key := RGB{
			R: quantise(pix[i], e.config.BucketSize),
			G: quantise(pix[i+1], e.config.BucketSize),
			B: quantise(pix[i+2], e.config.BucketSize),
		}
		if idx, ok := index[key]; ok {
			buckets[idx].count++
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, bucket{colour: key, count: 1})
	}

	if len(buckets) == 0 {
		return nil, ErrEmptyPalette
	}

	// Ties keep first-seen order.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})

	n := min(len(buckets), e.config.TopCount)
	entries := make([]PaletteEntry, n)
	for i := range n {
		entries[i] = PaletteEntry{Colour: buckets[i].colour, Count: buckets[i].count}
	}

	return &Palette{Dominant: entries[0].Colour, Colours: entries}, nil
}

// quantise rounds v to the nearest multiple of size, half-up, capped at 255.
func quantise(v uint8, size int) uint8 {
	q := (2*int(v) + size) / (2 * size) * size
	if q > 255 {
		return 255
	}
	return uint8(q)
}

// downscale resamples the buffer so width*height <= maxArea, preserving aspect ratio.
func downscale(pix []byte, width, height, maxArea int) ([]byte, int, int) {
	scale := math.Sqrt(float64(maxArea) / float64(width*height))
	w := max(int(math.Floor(float64(width)*scale)), 1)
	h := max(int(math.Floor(float64(height)*scale)), 1)

	src := &image.NRGBA{Pix: pix, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst.Pix, w, h
}

// toNRGBA returns img as a zero-origin NRGBA image, copying only when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*4 {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
