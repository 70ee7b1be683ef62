package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/favicon"
	"github.com/jmylchreest/swatch/internal/security"
)

func newFaviconCmd(a *app) *cobra.Command {
	var (
		opts      favicon.Options
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "favicon <text>",
		Short: "Generate favicon PNGs showing one or two characters",
		Long: `Render one or two characters on a coloured tile and write PNG icons at the
usual favicon sizes. When --fg is omitted the text is drawn in black or white,
whichever contrasts better with the background.

Examples:
  swatch favicon S --bg "#3366cc"
  swatch favicon ok --bg 1e1e2e --fg f5c2e7 --radius 50 --sizes 32,180 --output-dir public`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Text = args[0]
			return a.runFavicon(cmd, opts, outputDir)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Background, "bg", "", "background colour (hex)")
	flags.StringVar(&opts.Foreground, "fg", "", "text colour (hex, default: black or white by contrast)")
	flags.IntSliceVar(&opts.Sizes, "sizes", favicon.DefaultSizes, "icon sizes in pixels")
	flags.IntVar(&opts.RadiusPercent, "radius", 0, "corner radius as a percentage of the size (0-50)")
	flags.StringVarP(&outputDir, "output-dir", "o", ".", "directory to write icons to")
	_ = cmd.MarkFlagRequired("bg")

	return cmd
}

func (a *app) runFavicon(cmd *cobra.Command, opts favicon.Options, outputDir string) error {
	fg, err := opts.ForegroundColour()
	if err != nil {
		return err
	}
	a.logger.Debug("rendering favicons", "text", opts.Text, "background", opts.Background, "foreground", fg.Hex(), "sizes", opts.Sizes)

	icons, err := favicon.Generate(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	sizes := make([]int, 0, len(icons))
	for size := range icons {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)

	for _, size := range sizes {
		name := favicon.FileName(size)
		if err := security.ValidateOutputPath(outputDir, name); err != nil {
			return err
		}
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, icons[size], 0o644); err != nil { // #nosec G306 - icons are public assets
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		a.logger.Debug("wrote icon", "path", path, "bytes", len(icons[size]))
		if !a.quiet {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}

	a.logger.Info("favicons generated", "count", len(sizes), "dir", outputDir)
	return nil
}
