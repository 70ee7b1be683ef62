package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
	"github.com/jmylchreest/swatch/internal/image"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

func newExtractCmd(a *app) *cobra.Command {
	var opts outputOptions

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract the dominant colour palette from an image",
		Long: `Extract the dominant colours of an image by counting quantised colour buckets.

Pixels are sampled at a fixed stride, bucketed per channel and ranked by how
often they occur. Large images are downscaled first. Transparent pixels are
ignored.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Top 10 colours as hex, one per line
  swatch extract wallpaper.jpg

  # CSS custom properties written to a file
  swatch extract --format css --output palette.css wallpaper.png

  # Finer buckets, denser sampling, five colours
  swatch extract --bucket 8 --stride 2 --top 5 photo.webp

  # Fetch from a URL and show swatches in the terminal
  swatch extract --preview https://example.com/image.png

  # Render through your own template
  swatch extract --template ./kitty.tmpl wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], opts)
		},
	}

	defaults := colour.DefaultExtractorConfig()
	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", string(export.FormatHex), "output format (hex, rgb, json, css, scss)")
	flags.StringVarP(&opts.template, "template", "t", "", "render with a custom template (name or path); overrides --format")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches on stderr")
	flags.BoolVar(&opts.copy, "copy", false, "copy the output to the clipboard")
	flags.Int("stride", defaults.SampleStride, "sample every Nth pixel")
	flags.Int("bucket", defaults.BucketSize, "per-channel quantisation step (1-128)")
	flags.Int("max-area", defaults.MaxArea, "downscale images larger than this many pixels")
	flags.Int("top", defaults.TopCount, "number of colours to return (1-256)")
	flags.Int("alpha", defaults.AlphaThreshold, "skip pixels with alpha below this value")

	bindConfig(cmd, "stride", "extract.stride")
	bindConfig(cmd, "bucket", "extract.bucket")
	bindConfig(cmd, "max-area", "extract.max_area")
	bindConfig(cmd, "top", "extract.top")
	bindConfig(cmd, "alpha", "extract.alpha")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, source string, opts outputOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(source); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	extractor, err := colour.NewExtractor(a.cfg.Extract)
	if err != nil {
		return err
	}

	a.logger.Debug("loading image", "source", source)
	loader := image.NewSmartLoader(httputil.FetchOptions{
		Timeout:  a.cfg.Fetch.Timeout,
		MaxBytes: a.cfg.Fetch.MaxBytes,
	}, a.cfg.Fetch.MaxPixels)
	img, err := loader.Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	bounds := img.Bounds()
	cfg := extractor.Config()
	a.logger.Debug("extracting palette",
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"bucket", cfg.BucketSize,
		"stride", cfg.SampleStride,
		"top", cfg.TopCount)

	palette, err := extractor.ExtractImage(img)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}
	a.logger.Info("palette extracted", "colours", palette.Len(), "dominant", palette.Dominant.Hex())

	var data []byte
	if opts.template != "" {
		data, err = a.renderTemplate(opts.template, export.PaletteData(palette))
	} else {
		data, err = export.Palette(palette, format)
	}
	if err != nil {
		return err
	}

	if opts.preview {
		w := cmd.ErrOrStderr()
		fmt.Fprint(w, newPreviewer(w).palette(palette))
	}

	return emit(cmd.OutOrStdout(), a.logger, opts, data)
}
