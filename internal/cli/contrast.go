package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
)

// contrastReport is the JSON output of the contrast command.
type contrastReport struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	colour.ContrastResult
	Level string `json:"level"`
}

func newContrastCmd(a *app) *cobra.Command {
	var (
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast ratio between two colours",
		Long: `Compute the WCAG 2.1 contrast ratio between a foreground and a background
colour and report which conformance thresholds it meets.

  AA normal text   4.5:1     AA large text   3:1
  AAA normal text  7:1       AAA large text  4.5:1

Examples:
  swatch contrast "#777777" "#ffffff"
  swatch contrast 000000 ffffff --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContrast(cmd, args[0], args[1], format, preview)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&preview, "preview", false, "show sample text on stderr")

	return cmd
}

func (a *app) runContrast(cmd *cobra.Command, fgHex, bgHex, format string, preview bool) error {
	fg, err := colour.ParseHex(fgHex)
	if err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	bg, err := colour.ParseHex(bgHex)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	result := colour.CheckContrast(fg, bg)
	a.logger.Debug("contrast checked", "foreground", fg.Hex(), "background", bg.Hex(), "ratio", result.Ratio)

	var out string
	switch format {
	case "table":
		out = contrastTable(fg, bg, result)
	case "json":
		data, err := json.MarshalIndent(contrastReport{
			Foreground:     fg.Hex(),
			Background:     bg.Hex(),
			ContrastResult: result,
			Level:          result.Level(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json)", format)
	}

	if preview {
		w := cmd.ErrOrStderr()
		fmt.Fprint(w, newPreviewer(w).contrast(fg, bg))
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func contrastTable(fg, bg colour.RGB, r colour.ContrastResult) string {
	t := NewTable(nil)
	t.AddRow("Foreground", fg.Hex())
	t.AddRow("Background", bg.Hex())
	t.AddRow("Ratio", fmt.Sprintf("%.2f:1", r.Ratio))
	t.AddRow("AA normal", passFail(r.AANormal))
	t.AddRow("AA large", passFail(r.AALarge))
	t.AddRow("AAA normal", passFail(r.AAANormal))
	t.AddRow("AAA large", passFail(r.AAALarge))
	t.AddRow("Level", r.Level())
	return t.Render()
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
