package colour

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// solidBuffer returns a width*height RGBA buffer filled with one colour.
func solidBuffer(width, height int, c color.NRGBA) []byte {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	return pix
}

// pixelBuffer lays the given colours out as a single row.
func pixelBuffer(colours ...color.NRGBA) []byte {
	pix := make([]byte, 0, len(colours)*4)
	for _, c := range colours {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	return pix
}

func exhaustive(t *testing.T) *Extractor {
	t.Helper()
	cfg := DefaultExtractorConfig()
	cfg.SampleStride = 1
	e, err := NewExtractor(cfg)
	if err != nil {
		t.Fatalf("NewExtractor() error = %v", err)
	}
	return e
}

func TestExtractUniformImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "tiny", width: 1, height: 1},
		{name: "small", width: 37, height: 11},
		{name: "at area cap", width: 500, height: 500},
		{name: "downscaled", width: 1000, height: 700},
	}

	fill := color.NRGBA{R: 100, G: 150, B: 200, A: 255}
	want := RGB{R: 96, G: 144, B: 208}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ExtractPalette(solidBuffer(tt.width, tt.height, fill), tt.width, tt.height)
			if err != nil {
				t.Fatalf("ExtractPalette() error = %v", err)
			}
			if p.Len() != 1 {
				t.Fatalf("Len() = %d, want 1", p.Len())
			}
			if p.Dominant != want {
				t.Errorf("Dominant = %s, want %s", p.Dominant.Hex(), want.Hex())
			}
		})
	}
}

func TestExtractTransparentImage(t *testing.T) {
	pix := solidBuffer(50, 50, color.NRGBA{R: 255, A: 127})
	p, err := ExtractPalette(pix, 50, 50)
	if !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("ExtractPalette() error = %v, want ErrEmptyPalette", err)
	}
	if p != nil {
		t.Errorf("expected nil palette, got %+v", p)
	}
}

func TestExtractAlphaThreshold(t *testing.T) {
	pix := pixelBuffer(
		color.NRGBA{R: 255, A: 127},
		color.NRGBA{G: 255, A: 128},
	)
	p, err := exhaustive(t).Extract(pix, 2, 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 1 || p.Dominant != (RGB{G: 255}) {
		t.Errorf("palette = %+v, want only green", p.Colours)
	}
}

func TestQuantise(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint8
	}{
		{in: 0, want: 0},
		{in: 7, want: 0},
		{in: 8, want: 16},
		{in: 23, want: 16},
		{in: 24, want: 32},
		{in: 100, want: 96},
		{in: 247, want: 240},
		{in: 248, want: 255},
		{in: 255, want: 255},
	}
	for _, tt := range tests {
		if got := quantise(tt.in, 16); got != tt.want {
			t.Errorf("quantise(%d, 16) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExtractOrdering(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	tests := []struct {
		name   string
		pixels []color.NRGBA
		want   []string
		counts []int
	}{
		{
			name:   "descending count",
			pixels: []color.NRGBA{blue, green, green, red, red, red},
			want:   []string{"#ff0000", "#00ff00", "#0000ff"},
			counts: []int{3, 2, 1},
		},
		{
			name:   "ties keep first seen",
			pixels: []color.NRGBA{green, red, red, green, blue},
			want:   []string{"#00ff00", "#ff0000", "#0000ff"},
			counts: []int{2, 2, 1},
		},
		{
			name:   "ties order by first appearance not first to reach count",
			pixels: []color.NRGBA{{A: 255}, {R: 128, G: 128, B: 128, A: 255}, {R: 128, G: 128, B: 128, A: 255}, {A: 255}},
			want:   []string{"#000000", "#808080"},
			counts: []int{2, 2},
		},
		{
			name:   "near colours share a bucket",
			pixels: []color.NRGBA{{R: 250, A: 255}, {R: 253, G: 3, A: 255}, blue},
			want:   []string{"#ff0000", "#0000ff"},
			counts: []int{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := exhaustive(t).Extract(pixelBuffer(tt.pixels...), len(tt.pixels), 1)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			got := p.ToHex()
			if len(got) != len(tt.want) {
				t.Fatalf("ToHex() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] || p.Colours[i].Count != tt.counts[i] {
					t.Errorf("entry %d = %s x%d, want %s x%d", i, got[i], p.Colours[i].Count, tt.want[i], tt.counts[i])
				}
			}
			if p.Dominant.Hex() != tt.want[0] {
				t.Errorf("Dominant = %s, want %s", p.Dominant.Hex(), tt.want[0])
			}
		})
	}
}

func TestExtractLinearStride(t *testing.T) {
	// A 7x3 image sampled every 10th pixel touches linear indices 0, 10 and 20,
	// which land on (0,0), (3,1) and (6,2) rather than a grid.
	width, height := 7, 3
	pix := solidBuffer(width, height, color.NRGBA{A: 0})
	set := func(x, y int, c color.NRGBA) {
		i := (y*width + x) * 4
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	set(0, 0, color.NRGBA{R: 255, A: 255})
	set(3, 1, color.NRGBA{G: 255, A: 255})
	set(6, 2, color.NRGBA{G: 255, A: 255})
	// Unsampled pixels must not contribute.
	set(1, 0, color.NRGBA{B: 255, A: 255})
	set(0, 1, color.NRGBA{B: 255, A: 255})

	p, err := ExtractPalette(pix, width, height)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}
	got := p.ToHex()
	if len(got) != 2 || got[0] != "#00ff00" || got[1] != "#ff0000" {
		t.Errorf("ToHex() = %v, want [#00ff00 #ff0000]", got)
	}
}

func TestExtractTopCount(t *testing.T) {
	var pixels []color.NRGBA
	for i := range 12 {
		pixels = append(pixels, color.NRGBA{R: uint8(i * 20), A: 255})
	}
	p, err := exhaustive(t).Extract(pixelBuffer(pixels...), len(pixels), 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if p.Len() != 10 {
		t.Errorf("Len() = %d, want 10", p.Len())
	}
}

func TestExtractInvalidBuffer(t *testing.T) {
	tests := []struct {
		name          string
		pix           []byte
		width, height int
		want          error
	}{
		{name: "short buffer", pix: make([]byte, 10), width: 2, height: 2, want: ErrInvalidImage},
		{name: "negative width", pix: nil, width: -1, height: 2, want: ErrInvalidImage},
		{name: "zero area", pix: nil, width: 0, height: 5, want: ErrEmptyPalette},
		{name: "area overflows int", pix: nil, width: 1 << 31, height: 1 << 31, want: ErrInvalidImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractPalette(tt.pix, tt.width, tt.height); !errors.Is(err, tt.want) {
				t.Errorf("ExtractPalette() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDownscaleBoundsArea(t *testing.T) {
	tests := []struct {
		width, height int
		wantW, wantH  int
	}{
		{width: 1000, height: 1000, wantW: 500, wantH: 500},
		{width: 2000, height: 500, wantW: 1000, wantH: 250},
		{width: 100000, height: 3, wantW: 91287, wantH: 2},
	}
	for _, tt := range tests {
		pix := solidBuffer(tt.width, tt.height, color.NRGBA{A: 255})
		_, w, h := downscale(pix, tt.width, tt.height, 250000)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("downscale(%dx%d) = %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
		}
		if w*h > 250000 {
			t.Errorf("downscale(%dx%d) area %d exceeds cap", tt.width, tt.height, w*h)
		}
	}
}

func TestExtractImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 30, 20))
	for y := 10; y < 20; y++ {
		for x := 10; x < 30; x++ {
			img.Set(x, y, color.RGBA{R: 32, G: 64, B: 128, A: 255})
		}
	}

	p, err := exhaustive(t).ExtractImage(img)
	if err != nil {
		t.Fatalf("ExtractImage() error = %v", err)
	}
	if p.Dominant != (RGB{R: 32, G: 64, B: 128}) || p.Colours[0].Count != 200 {
		t.Errorf("palette = %+v", p.Colours)
	}

	if _, err := exhaustive(t).ExtractImage(nil); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("ExtractImage(nil) error = %v, want ErrInvalidImage", err)
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExtractorConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*ExtractorConfig) {}},
		{name: "stride one", mutate: func(c *ExtractorConfig) { c.SampleStride = 1 }},
		{name: "zero bucket", mutate: func(c *ExtractorConfig) { c.BucketSize = 0 }, wantErr: true},
		{name: "zero stride", mutate: func(c *ExtractorConfig) { c.SampleStride = 0 }, wantErr: true},
		{name: "zero area", mutate: func(c *ExtractorConfig) { c.MaxArea = 0 }, wantErr: true},
		{name: "alpha too high", mutate: func(c *ExtractorConfig) { c.AlphaThreshold = 300 }, wantErr: true},
		{name: "zero top", mutate: func(c *ExtractorConfig) { c.TopCount = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractorConfig()
			tt.mutate(&cfg)
			_, err := NewExtractor(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExtractor() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	pix := pixelBuffer(
		color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		color.NRGBA{R: 200, G: 100, B: 50, A: 255},
		color.NRGBA{R: 10, G: 20, B: 30, A: 255},
	)
	a, _ := exhaustive(t).Extract(pix, 3, 1)
	b, _ := exhaustive(t).Extract(pix, 3, 1)
	if a.String() != b.String() {
		t.Errorf("Extract not idempotent:\n%s\n%s", a, b)
	}
}
