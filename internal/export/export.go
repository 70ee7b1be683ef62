// Package export serialises palettes and schemes to CSS, SCSS and JSON.
package export

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

//go:embed *.tmpl
var templates embed.FS

// ErrUnsupportedFormat is returned for formats outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export format.
type Format string

const (
	FormatCSS  Format = "css"
	FormatSCSS Format = "scss"
	FormatJSON Format = "json"
	FormatHex  Format = "hex"
	FormatRGB  Format = "rgb"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatHex, FormatRGB, FormatJSON, FormatCSS, FormatSCSS}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedFormat, s, Formats())
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSS:
		return "text/css; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// SchemeColour is the JSON form of a scheme entry.
type SchemeColour struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Slugify lowercases s and collapses every run of non-alphanumerics into a
// single hyphen, e.g. "Medium Dark" becomes "medium-dark".
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

func render(name string, data TemplateData) ([]byte, error) {
	tmplContent, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", name, err)
	}
	return Execute(name, tmplContent, data)
}

// PaletteCSS renders a ":root" block with one "--color-N" property per colour.
func PaletteCSS(p *colour.Palette) ([]byte, error) {
	return render("css.tmpl", PaletteData(p))
}

// PaletteSCSS renders one "$color-N" variable per colour.
func PaletteSCSS(p *colour.Palette) ([]byte, error) {
	return render("scss.tmpl", PaletteData(p))
}

// PaletteJSON renders the palette as an indented array of hex strings.
func PaletteJSON(p *colour.Palette) ([]byte, error) {
	return json.MarshalIndent(p.ToHex(), "", "  ")
}

// SchemeCSS renders a ":root" block with one property per role.
func SchemeCSS(entries []colour.SchemeEntry) ([]byte, error) {
	return render("css.tmpl", SchemeData("", entries))
}

// SchemeSCSS renders one SCSS variable per role.
func SchemeSCSS(entries []colour.SchemeEntry) ([]byte, error) {
	return render("scss.tmpl", SchemeData("", entries))
}

// SchemeJSON renders the scheme as an indented array of {name, hex} objects.
func SchemeJSON(entries []colour.SchemeEntry) ([]byte, error) {
	out := make([]SchemeColour, len(entries))
	for i, e := range entries {
		out[i] = SchemeColour{Name: e.Role, Hex: e.Hex()}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Palette renders p in the given format. Hex and RGB produce one colour per line.
func Palette(p *colour.Palette, f Format) ([]byte, error) {
	switch f {
	case FormatCSS:
		return PaletteCSS(p)
	case FormatSCSS:
		return PaletteSCSS(p)
	case FormatJSON:
		return PaletteJSON(p)
	case FormatHex:
		return []byte(strings.Join(p.ToHex(), "\n")), nil
	case FormatRGB:
		lines := make([]string, len(p.Colours))
		for i, e := range p.Colours {
			lines[i] = e.Colour.String()
		}
		return []byte(strings.Join(lines, "\n")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Scheme renders entries in the given format. Hex and RGB produce
// "role: value" lines.
func Scheme(entries []colour.SchemeEntry, f Format) ([]byte, error) {
	switch f {
	case FormatCSS:
		return SchemeCSS(entries)
	case FormatSCSS:
		return SchemeSCSS(entries)
	case FormatJSON:
		return SchemeJSON(entries)
	case FormatHex, FormatRGB:
		lines := make([]string, len(entries))
		for i, e := range entries {
			value := e.Hex()
			if f == FormatRGB {
				value = e.Colour.String()
			}
			lines[i] = fmt.Sprintf("%s: %s", e.Role, value)
		}
		return []byte(strings.Join(lines, "\n")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
