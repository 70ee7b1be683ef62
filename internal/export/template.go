package export

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/swatch/internal/colour"
)

// TemplateColour is one colour as seen by export templates.
type TemplateColour struct {
	// Index is the 1-based position in the palette or scheme.
	Index int

	// Name is the variable name: "color-N" for palettes, the role slug for schemes.
	Name string

	// Role is the scheme role label, empty for palettes.
	Role string

	Hex    string
	Colour colour.RGB

	// Count is the number of sampled pixels, zero for schemes.
	Count int
}

// TemplateData is the root object passed to export templates.
type TemplateData struct {
	// Kind is "palette" or the scheme kind.
	Kind    string
	Colours []TemplateColour
}

// PaletteData builds template data for a palette.
func PaletteData(p *colour.Palette) TemplateData {
	colours := make([]TemplateColour, len(p.Colours))
	for i, e := range p.Colours {
		colours[i] = TemplateColour{
			Index:  i + 1,
			Name:   fmt.Sprintf("color-%d", i+1),
			Hex:    e.Colour.Hex(),
			Colour: e.Colour,
			Count:  e.Count,
		}
	}
	return TemplateData{Kind: "palette", Colours: colours}
}

// SchemeData builds template data for scheme entries of the given kind.
func SchemeData(kind colour.SchemeKind, entries []colour.SchemeEntry) TemplateData {
	colours := make([]TemplateColour, len(entries))
	for i, e := range entries {
		colours[i] = TemplateColour{
			Index:  i + 1,
			Name:   Slugify(e.Role),
			Role:   e.Role,
			Hex:    e.Hex(),
			Colour: e.Colour,
		}
	}
	return TemplateData{Kind: string(kind), Colours: colours}
}

// Funcs returns the functions available to export templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// Format conversion.
		"hex":        hexFunc,
		"hexNoHash":  hexNoHashFunc,
		"rgb":        rgbFunc,
		"rgbDecimal": rgbDecimalFunc,
		"rgbSpaces":  rgbSpacesFunc,
		"hsl":        hslFunc,

		// Colour metadata.
		"luminance":  colour.RelativeLuminance,
		"contrast":   colour.ContrastRatio,
		"readableOn": readableOnFunc,

		// String manipulation, with pipe-friendly argument order.
		"slug":       Slugify,
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

// Execute parses text as a template named name and renders it with data.
func Execute(name string, text []byte, data TemplateData) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(Funcs()).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return buf.Bytes(), nil
}

// hexFunc returns the colour as #rrggbb.
func hexFunc(c colour.RGB) string {
	return c.Hex()
}

// hexNoHashFunc returns the colour as rrggbb.
func hexNoHashFunc(c colour.RGB) string {
	return strings.TrimPrefix(c.Hex(), "#")
}

// rgbFunc returns the colour as "rgb(r, g, b)".
func rgbFunc(c colour.RGB) string {
	return c.String()
}

// rgbDecimalFunc returns the colour as "r,g,b".
func rgbDecimalFunc(c colour.RGB) string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// rgbSpacesFunc returns the colour as "r g b".
func rgbSpacesFunc(c colour.RGB) string {
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// hslFunc returns the colour as "hsl(h, s%, l%)".
func hslFunc(c colour.RGB) string {
	return c.HSL().String()
}

// readableOnFunc returns black or white, whichever reads better on c.
func readableOnFunc(c colour.RGB) colour.RGB {
	return colour.ReadableOn(c)
}

// trimPrefixFunc takes the prefix first so it works in pipes:
//
//	{{ .Hex | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// trimSuffixFunc takes the suffix first so it works in pipes.
func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc takes old and new first so it works in pipes:
//
//	{{ .Role | replace " " "_" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
