package colour

import "math"

// WCAG 2.1 contrast thresholds.
const (
	ContrastAANormal  = 4.5
	ContrastAALarge   = 3.0
	ContrastAAANormal = 7.0
	ContrastAAALarge  = 4.5
)

// ContrastResult holds a contrast ratio and the WCAG pass flags derived from it.
type ContrastResult struct {
	Ratio     float64 `json:"ratio"`
	AANormal  bool    `json:"aaNormal"`
	AALarge   bool    `json:"aaLarge"`
	AAANormal bool    `json:"aaaNormal"`
	AAALarge  bool    `json:"aaaLarge"`
}

// Level summarises the result as the highest conformance level reached
// for normal text: "AAA", "AA", "AA Large" or "Fail".
func (r ContrastResult) Level() string {
	switch {
	case r.AAANormal:
		return "AAA"
	case r.AANormal:
		return "AA"
	case r.AALarge:
		return "AA Large"
	default:
		return "Fail"
	}
}

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.1.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG21/#dfn-relative-luminance.
func RelativeLuminance(c RGB) float64 {
	r := linearise(float64(c.R) / 255.0)
	g := linearise(float64(c.G) / 255.0)
	b := linearise(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearise applies the sRGB transfer function to a colour component.
func linearise(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours.
// Returns a value between 1 and 21, where 21 is black against white.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := RelativeLuminance(c1)
	l2 := RelativeLuminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// CheckContrast evaluates a foreground/background pair against WCAG thresholds.
func CheckContrast(fg, bg RGB) ContrastResult {
	ratio := ContrastRatio(fg, bg)
	return ContrastResult{
		Ratio:     ratio,
		AANormal:  ratio >= ContrastAANormal,
		AALarge:   ratio >= ContrastAALarge,
		AAANormal: ratio >= ContrastAAANormal,
		AAALarge:  ratio >= ContrastAAALarge,
	}
}

// CheckContrastHex is CheckContrast over hex strings.
func CheckContrastHex(fgHex, bgHex string) (ContrastResult, error) {
	fg, err := ParseHex(fgHex)
	if err != nil {
		return ContrastResult{}, err
	}
	bg, err := ParseHex(bgHex)
	if err != nil {
		return ContrastResult{}, err
	}
	return CheckContrast(fg, bg), nil
}

// ReadableOn returns black or white, whichever contrasts more with bg.
func ReadableOn(bg RGB) RGB {
	black := RGB{}
	white := RGB{R: 255, G: 255, B: 255}
	if ContrastRatio(black, bg) >= ContrastRatio(white, bg) {
		return black
	}
	return white
}
