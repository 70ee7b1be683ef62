//go:build ignore

// Generates testdata/sample.png, a 400x400 grid of eight flat colour blocks
// used by the extraction golden tests. Run with:
//
//	go run testdata/generate_test_image.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
)

// blocks are laid out left to right, top to bottom in a 2x4 grid.
var blocks = []color.NRGBA{
	{R: 255, A: 255},                 // red
	{G: 255, A: 255},                 // green
	{B: 255, A: 255},                 // blue
	{R: 255, G: 255, A: 255},         // yellow
	{R: 255, B: 255, A: 255},         // magenta
	{G: 255, B: 255, A: 255},         // cyan
	{R: 128, G: 128, B: 128, A: 255}, // grey
	{R: 255, G: 128, A: 255},         // orange
}

func main() {
	const (
		width, height = 400, 400
		cols, rows    = 2, 4
	)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockW, blockH := width/cols, height/rows
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, blocks[(y/blockH)*cols+x/blockW])
		}
	}

	f, err := os.Create("testdata/sample.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote testdata/sample.png")
}
