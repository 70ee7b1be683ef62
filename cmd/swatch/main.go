// swatch - colour palettes, schemes and contrast from the command line
//
// swatch extracts dominant colour palettes from images, derives colour
// schemes from a base colour and checks WCAG contrast, from the terminal
// or over HTTP.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
