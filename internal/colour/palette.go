// Package colour provides colour extraction, scheme generation and contrast checking.
package colour

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/internal/security"
)

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses a 6-digit hex colour, with or without a leading '#'.
// Input is case-insensitive. Returns ErrInvalidFormat for anything else.
func ParseHex(hex string) (RGB, error) {
	if !hexPattern.MatchString(hex) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// Intended for package-level constants and tests.
func MustParseHex(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return rgb
}

// FromChannels builds an RGB from integer channels, clamping each to 0-255.
func FromChannels(r, g, b int) RGB {
	return RGB{
		R: security.SafeUint8(r),
		G: security.SafeUint8(g),
		B: security.SafeUint8(b),
	}
}

// HexFromChannels renders integer channels as "#rrggbb".
// Out-of-range channels are clamped rather than producing malformed hex.
func HexFromChannels(r, g, b int) string {
	return FromChannels(r, g, b).Hex()
}

// PaletteEntry is a sampled colour and the number of sampled pixels in its bucket.
type PaletteEntry struct {
	Colour RGB
	Count  int
}

// Palette is the result of an extraction: the dominant colour and the
// most frequent buckets in descending count order.
type Palette struct {
	Dominant RGB
	Colours  []PaletteEntry
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, e := range p.Colours {
		hexColours[i] = e.Colour.Hex()
	}
	return hexColours
}

// ColourJSON represents a colour in JSON output format.
type ColourJSON struct {
	Hex   string `json:"hex"`
	RGB   string `json:"rgb"`
	Count int    `json:"count,omitempty"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Dominant ColourJSON   `json:"dominant"`
	Count    int          `json:"count"`
	Colours  []ColourJSON `json:"colors"`
}

// JSON returns the palette's JSON document form.
func (p *Palette) JSON() PaletteJSON {
	colours := make([]ColourJSON, len(p.Colours))
	for i, e := range p.Colours {
		colours[i] = ColourJSON{
			Hex:   e.Colour.Hex(),
			RGB:   e.Colour.String(),
			Count: e.Count,
		}
	}
	return PaletteJSON{
		Dominant: ColourJSON{Hex: p.Dominant.Hex(), RGB: p.Dominant.String()},
		Count:    len(p.Colours),
		Colours:  colours,
	}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours (dominant %s):\n", len(p.Colours), p.Dominant.Hex())
	for i, e := range p.Colours {
		fmt.Fprintf(&b, "  %2d: %s (%s) x%d\n", i+1, e.Colour.Hex(), e.Colour.String(), e.Count)
	}
	return b.String()
}

// Get returns the entry at the specified index.
func (p *Palette) Get(index int) (PaletteEntry, error) {
	if index < 0 || index >= len(p.Colours) {
		return PaletteEntry{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, PaletteEntry) bool) {
	return func(yield func(int, PaletteEntry) bool) {
		for i, e := range p.Colours {
			if !yield(i, e) {
				return
			}
		}
	}
}
