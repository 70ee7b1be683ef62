package colour

import (
	"fmt"
	"strings"
)

// SchemeKind names a colour-harmony rule.
type SchemeKind string

const (
	SchemeComplementary      SchemeKind = "complementary"
	SchemeAnalogous          SchemeKind = "analogous"
	SchemeTriadic            SchemeKind = "triadic"
	SchemeTetradic           SchemeKind = "tetradic"
	SchemeMonochromatic      SchemeKind = "monochromatic"
	SchemeSplitComplementary SchemeKind = "split-complementary"
)

// SchemeKinds returns every supported kind in display order.
func SchemeKinds() []SchemeKind {
	return []SchemeKind{
		SchemeComplementary,
		SchemeAnalogous,
		SchemeTriadic,
		SchemeTetradic,
		SchemeMonochromatic,
		SchemeSplitComplementary,
	}
}

// ParseSchemeKind resolves a kind name, case-insensitively.
func ParseSchemeKind(s string) (SchemeKind, error) {
	kind := SchemeKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := schemeRules[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSchemeKind, s)
	}
	return kind, nil
}

// SchemeEntry is a derived colour tagged with its role in the scheme.
type SchemeEntry struct {
	Role   string `json:"name"`
	Colour RGB    `json:"-"`
}

// Hex returns the entry colour as "#rrggbb".
func (e SchemeEntry) Hex() string {
	return e.Colour.Hex()
}

// schemeStep derives one entry from the base colour.
// A negative lightness keeps the base lightness.
type schemeStep struct {
	role      string
	hueOffset float64
	lightness float64
}

func hue(role string, offset float64) schemeStep {
	return schemeStep{role: role, hueOffset: offset, lightness: -1}
}

func light(role string, l float64) schemeStep {
	return schemeStep{role: role, lightness: l}
}

// Entry order is part of the output contract.
var schemeRules = map[SchemeKind][]schemeStep{
	SchemeComplementary: {
		hue("Base", 0),
		hue("Complementary", 180),
	},
	SchemeAnalogous: {
		hue("Analogous 1", -30),
		hue("Analogous 2", -15),
		hue("Base", 0),
		hue("Analogous 3", 15),
		hue("Analogous 4", 30),
	},
	SchemeTriadic: {
		hue("Primary", 0),
		hue("Secondary", 120),
		hue("Tertiary", 240),
	},
	SchemeTetradic: {
		hue("Primary", 0),
		hue("Secondary", 90),
		hue("Tertiary", 180),
		hue("Quaternary", 270),
	},
	SchemeMonochromatic: {
		light("Dark", 20),
		light("Medium Dark", 40),
		hue("Base", 0),
		light("Medium Light", 70),
		light("Light", 90),
	},
	SchemeSplitComplementary: {
		hue("Base", 0),
		hue("Split 1", 150),
		hue("Split 2", 210),
	},
}

// GenerateScheme derives the ordered entries of a scheme from a base colour.
func GenerateScheme(base RGB, kind SchemeKind) ([]SchemeEntry, error) {
	steps, ok := schemeRules[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSchemeKind, kind)
	}

	hsl := base.HSL()
	entries := make([]SchemeEntry, len(steps))
	for i, step := range steps {
		// Unshifted entries keep the exact input rather than its HSL round trip.
		if step.hueOffset == 0 && step.lightness < 0 {
			entries[i] = SchemeEntry{Role: step.role, Colour: base}
			continue
		}
		derived := hsl.RotateHue(step.hueOffset)
		if step.lightness >= 0 {
			derived = derived.WithLightness(step.lightness)
		}
		entries[i] = SchemeEntry{Role: step.role, Colour: derived.RGB()}
	}
	return entries, nil
}

// GenerateSchemeHex is GenerateScheme over a hex base colour and a kind name.
func GenerateSchemeHex(baseHex, kind string) ([]SchemeEntry, error) {
	base, err := ParseHex(baseHex)
	if err != nil {
		return nil, err
	}
	k, err := ParseSchemeKind(kind)
	if err != nil {
		return nil, err
	}
	return GenerateScheme(base, k)
}

// Scheme is a generated scheme together with the inputs that produced it.
type Scheme struct {
	Kind    SchemeKind
	Base    RGB
	Entries []SchemeEntry
}

// NewScheme generates the scheme of the given kind for base.
func NewScheme(base RGB, kind SchemeKind) (*Scheme, error) {
	entries, err := GenerateScheme(base, kind)
	if err != nil {
		return nil, err
	}
	return &Scheme{Kind: kind, Base: base, Entries: entries}, nil
}

// AllSchemes generates every supported kind for base, in SchemeKinds order.
func AllSchemes(base RGB) []*Scheme {
	schemes := make([]*Scheme, 0, len(schemeRules))
	for _, kind := range SchemeKinds() {
		s, _ := NewScheme(base, kind)
		schemes = append(schemes, s)
	}
	return schemes
}
