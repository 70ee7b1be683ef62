package colour

import (
	"fmt"
	"math"
)

// HSL is a colour in HSL space.
// H is hue in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the colour in CSS form, e.g. "hsl(210, 50%, 40%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", c.H, c.S, c.L)
}

// HSL converts the colour to HSL space.
func (rgb RGB) HSL() HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	return HSL{H: normaliseHue(h * 60), S: s * 100, L: l * 100}
}

// RGB converts the colour back to RGB space, rounding each channel half-up.
// The round trip through HSL is within one unit per channel.
func (c HSL) RGB() RGB {
	h := normaliseHue(c.H) / 360.0
	s := clampUnit(c.S / 100.0)
	l := clampUnit(c.L / 100.0)

	if s == 0 {
		v := roundChannel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: roundChannel(hueToRGB(p, q, h+1.0/3.0)),
		G: roundChannel(hueToRGB(p, q, h)),
		B: roundChannel(hueToRGB(p, q, h-1.0/3.0)),
	}
}

// Hex renders the HSL colour as "#rrggbb".
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// RotateHue returns the colour with its hue shifted by degrees, wrapped into [0,360).
func (c HSL) RotateHue(degrees float64) HSL {
	c.H = normaliseHue(c.H + degrees)
	return c
}

// WithLightness returns the colour with lightness replaced.
func (c HSL) WithLightness(l float64) HSL {
	c.L = l
	return c
}

// hueToRGB is a helper for HSL to RGB conversion. t is a hue fraction.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// normaliseHue wraps a hue in degrees into [0,360).
func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// roundChannel maps a unit value to 0-255, rounding half-up.
func roundChannel(v float64) uint8 {
	n := math.Floor(clampUnit(v)*255 + 0.5)
	return uint8(n)
}
