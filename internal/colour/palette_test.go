package colour

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", input: "#ff8000", want: RGB{R: 255, G: 128, B: 0}},
		{name: "without hash", input: "1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "uppercase", input: "#ABCDEF", want: RGB{R: 0xab, G: 0xcd, B: 0xef}},
		{name: "mixed case", input: "#aBcDeF", want: RGB{R: 0xab, G: 0xcd, B: 0xef}},
		{name: "black", input: "#000000", want: RGB{}},
		{name: "short form rejected", input: "#fff", wantErr: true},
		{name: "too long", input: "#0000000", wantErr: true},
		{name: "non hex digit", input: "#gg0000", wantErr: true},
		{name: "double hash", input: "##ff0000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: " #ff0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTripIsExact(t *testing.T) {
	// Step through a spread of channel values, including both extremes.
	values := []int{0, 1, 15, 16, 17, 127, 128, 200, 254, 255}
	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				hex := fmt.Sprintf("#%02x%02x%02x", r, g, b)
				rgb, err := ParseHex(hex)
				if err != nil {
					t.Fatalf("ParseHex(%q) error: %v", hex, err)
				}
				if got := rgb.Hex(); got != hex {
					t.Fatalf("round trip %q -> %q", hex, got)
				}
			}
		}
	}
}

func TestHexFromChannels(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    string
	}{
		{name: "in range", r: 255, g: 0, b: 128, want: "#ff0080"},
		{name: "zero padded", r: 1, g: 2, b: 3, want: "#010203"},
		{name: "clamps high", r: 256, g: 300, b: 1000, want: "#ffffff"},
		{name: "clamps low", r: -1, g: -255, b: 0, want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexFromChannels(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("HexFromChannels(%d, %d, %d) = %s, want %s", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255}, want: "rgb(255, 0, 0)"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "rgb(128, 128, 128)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHex did not panic on malformed input")
		}
	}()
	MustParseHex("nope")
}

func testPalette() *Palette {
	return &Palette{
		Dominant: RGB{R: 255},
		Colours: []PaletteEntry{
			{Colour: RGB{R: 255}, Count: 5},
			{Colour: RGB{G: 255}, Count: 3},
			{Colour: RGB{B: 255}, Count: 1},
		},
	}
}

func TestPaletteToHex(t *testing.T) {
	got := testPalette().ToHex()
	want := []string{"#ff0000", "#00ff00", "#0000ff"}

	if len(got) != len(want) {
		t.Fatalf("ToHex() returned %d colours, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPaletteToJSON(t *testing.T) {
	jsonBytes, err := testPalette().ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	jsonStr := string(jsonBytes)
	for _, expected := range []string{
		`"count": 3`,
		`"hex": "#ff0000"`,
		`"rgb": "rgb(0, 255, 0)"`,
		`"dominant"`,
	} {
		if !strings.Contains(jsonStr, expected) {
			t.Errorf("ToJSON() output missing expected string: %s", expected)
		}
	}
}

func TestPaletteGet(t *testing.T) {
	p := testPalette()

	e, err := p.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if e.Count != 3 {
		t.Errorf("Get(1).Count = %d, want 3", e.Count)
	}

	for _, idx := range []int{-1, 3} {
		if _, err := p.Get(idx); err == nil {
			t.Errorf("Get(%d) expected error", idx)
		}
	}
}

func TestPaletteAll(t *testing.T) {
	p := testPalette()

	var seen []int
	for i, e := range p.All() {
		seen = append(seen, e.Count)
		if i == 1 {
			break
		}
	}
	if len(seen) != 2 || seen[0] != 5 || seen[1] != 3 {
		t.Errorf("All() yielded %v, want [5 3]", seen)
	}
}

func TestPaletteString(t *testing.T) {
	if got := (&Palette{}).String(); got != "Empty palette" {
		t.Errorf("String() = %q, want %q", got, "Empty palette")
	}
	if got := testPalette().String(); !strings.Contains(got, "dominant #ff0000") {
		t.Errorf("String() = %q, missing dominant", got)
	}
}
