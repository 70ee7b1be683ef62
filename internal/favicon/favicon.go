// Package favicon renders one or two characters on a coloured tile and
// encodes the result as PNG icons at the common favicon sizes.
package favicon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/swatch/internal/colour"
)

var (
	// ErrInvalidText is returned when the text is empty, longer than
	// MaxTextLength, or uses a character the font has no glyph for.
	ErrInvalidText = errors.New("favicon text must be 1 or 2 characters")

	// ErrInvalidSize is returned for non-positive or oversized icon sizes.
	ErrInvalidSize = errors.New("invalid favicon size")

	// ErrInvalidRadius is returned when the corner radius is outside 0-50 percent.
	ErrInvalidRadius = errors.New("corner radius must be between 0 and 50 percent")
)

const (
	// MaxTextLength is the maximum number of characters on an icon.
	MaxTextLength = 2

	// MaxSize bounds a single rendered icon edge.
	MaxSize = 1024

	// glyphFill is the share of the tile the text may occupy.
	glyphFill = 0.6

	// measureSize is the point size used to measure text before fitting it.
	measureSize = 100
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// DefaultSizes are the icon edges generated when Options.Sizes is empty.
var DefaultSizes = []int{16, 32, 48, 64, 128, 180, 192, 512}

// Options describe an icon set.
type Options struct {
	// Text is drawn centred on the tile.
	Text string

	// Background is the tile colour as "#rrggbb".
	Background string

	// Foreground is the text colour. When empty, black or white is chosen,
	// whichever contrasts better with the background.
	Foreground string

	// Sizes lists the icon edges to generate. Defaults to DefaultSizes.
	Sizes []int

	// RadiusPercent rounds the tile corners, 0 for square and 50 for a circle.
	RadiusPercent int
}

// resolved holds parsed options ready for drawing.
type resolved struct {
	text   string
	bg, fg colour.RGB
	radius int
}

func (o Options) resolve() (resolved, error) {
	text := strings.TrimSpace(o.Text)
	if n := utf8.RuneCountInString(text); n == 0 || n > MaxTextLength {
		return resolved{}, fmt.Errorf("%w: got %q", ErrInvalidText, o.Text)
	}
	if err := checkGlyphs(text); err != nil {
		return resolved{}, err
	}
	if o.RadiusPercent < 0 || o.RadiusPercent > 50 {
		return resolved{}, fmt.Errorf("%w: got %d", ErrInvalidRadius, o.RadiusPercent)
	}

	bg, err := colour.ParseHex(o.Background)
	if err != nil {
		return resolved{}, fmt.Errorf("background: %w", err)
	}

	var fg colour.RGB
	if o.Foreground == "" {
		fg = colour.ReadableOn(bg)
	} else if fg, err = colour.ParseHex(o.Foreground); err != nil {
		return resolved{}, fmt.Errorf("foreground: %w", err)
	}

	return resolved{text: text, bg: bg, fg: fg, radius: o.RadiusPercent}, nil
}

// checkGlyphs rejects text containing runes missing from the font.
func checkGlyphs(text string) error {
	f, err := goRegular()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	var buf sfnt.Buffer
	for _, r := range text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return fmt.Errorf("failed to look up glyph for %q: %w", r, err)
		}
		if idx == 0 {
			return fmt.Errorf("%w: no glyph for %q", ErrInvalidText, r)
		}
	}
	return nil
}

// ForegroundColour returns the text colour that will be used for o.
func (o Options) ForegroundColour() (colour.RGB, error) {
	r, err := o.resolve()
	if err != nil {
		return colour.RGB{}, err
	}
	return r.fg, nil
}

// Render draws a single icon of the given edge length.
func Render(opts Options, size int) (*image.NRGBA, error) {
	r, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if err := validateSize(size); err != nil {
		return nil, err
	}
	return r.render(size)
}

// Generate renders and PNG-encodes every requested size, keyed by size.
func Generate(opts Options) (map[int][]byte, error) {
	r, err := opts.resolve()
	if err != nil {
		return nil, err
	}

	sizes := opts.Sizes
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	for _, size := range sizes {
		if err := validateSize(size); err != nil {
			return nil, err
		}
	}

	icons := make(map[int][]byte, len(sizes))
	for _, size := range sizes {
		if _, ok := icons[size]; ok {
			continue
		}
		img, err := r.render(size)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode %dpx icon: %w", size, err)
		}
		icons[size] = buf.Bytes()
	}
	return icons, nil
}

// FileName returns the conventional file name for an icon size.
func FileName(size int) string {
	return fmt.Sprintf("favicon-%dx%d.png", size, size)
}

func validateSize(size int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidSize, size, MaxSize)
	}
	return nil
}

func (r resolved) render(size int) (*image.NRGBA, error) {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(nrgba(r.bg)), image.Point{}, draw.Src)

	if err := r.drawText(dst, size); err != nil {
		return nil, err
	}

	if r.radius > 0 {
		roundCorners(dst, size*r.radius/100)
	}
	return dst, nil
}

// drawText fits the text's ink box into glyphFill of the tile and centres it.
func (r resolved) drawText(dst *image.NRGBA, size int) error {
	f, err := goRegular()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	ref, err := newFace(f, measureSize)
	if err != nil {
		return err
	}
	bounds, _ := font.BoundString(ref, r.text)
	ref.Close()
	w, h := fixedFloat(bounds.Max.X-bounds.Min.X), fixedFloat(bounds.Max.Y-bounds.Min.Y)
	if w <= 0 || h <= 0 {
		return nil
	}

	maxEdge := float64(size) * glyphFill
	face, err := newFace(f, measureSize*min(maxEdge/w, maxEdge/h))
	if err != nil {
		return err
	}
	defer face.Close()

	// Centre on the ink box measured at the final size.
	bounds, _ = font.BoundString(face, r.text)
	w, h = fixedFloat(bounds.Max.X-bounds.Min.X), fixedFloat(bounds.Max.Y-bounds.Min.Y)
	x := (float64(size)-w)/2 - fixedFloat(bounds.Min.X)
	y := (float64(size)-h)/2 - fixedFloat(bounds.Min.Y)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(nrgba(r.fg)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(r.text)
	return nil
}

func newFace(f *opentype.Font, points float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %.1fpt face: %w", points, err)
	}
	return face, nil
}

func fixedFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// roundCorners clears pixels outside a rounded rectangle of radius px.
func roundCorners(img *image.NRGBA, radius int) {
	if radius <= 0 {
		return
	}
	size := img.Bounds().Dx()
	rf := float64(radius)
	for y := range size {
		for x := range size {
			cx, cy := cornerCentre(x, size, radius), cornerCentre(y, size, radius)
			if cx < 0 || cy < 0 {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > rf*rf {
				img.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
}

// cornerCentre returns the coordinate of the arc centre governing p, or -1
// when p lies in the straight middle section.
func cornerCentre(p, size, radius int) float64 {
	switch {
	case p < radius:
		return float64(radius)
	case p >= size-radius:
		return float64(size - radius)
	default:
		return -1
	}
}

func nrgba(c colour.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
