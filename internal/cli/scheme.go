package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
)

func newSchemeCmd(a *app) *cobra.Command {
	var (
		opts outputOptions
		kind string
		all  bool
	)

	kinds := make([]string, len(colour.SchemeKinds()))
	for i, k := range colour.SchemeKinds() {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:   "scheme <hex>",
		Short: "Generate a colour scheme from a base colour",
		Long: fmt.Sprintf(`Generate a colour-harmony scheme from a base colour.

Hue-based schemes rotate the base hue on the colour wheel while keeping its
saturation and lightness; the monochromatic scheme keeps the hue and varies
lightness instead.

Kinds: %s

Examples:
  # Complementary pair for a blue
  swatch scheme "#3366cc"

  # Triadic scheme as SCSS variables
  swatch scheme 3366cc --kind triadic --format scss

  # Every kind, with swatches in the terminal
  swatch scheme "#e4572e" --all --preview

  # Every kind through a custom template
  swatch scheme "#e4572e" --all --template tokens`, strings.Join(kinds, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScheme(cmd, args[0], kind, all, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&kind, "kind", "k", string(colour.SchemeComplementary), "scheme kind ("+strings.Join(kinds, ", ")+")")
	flags.BoolVar(&all, "all", false, "generate every scheme kind")
	flags.StringVarP(&opts.format, "format", "f", string(export.FormatHex), "output format (hex, rgb, json, css, scss)")
	flags.StringVarP(&opts.template, "template", "t", "", "render with a custom template (name or path); overrides --format")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&opts.preview, "preview", false, "show colour swatches on stderr")
	flags.BoolVar(&opts.copy, "copy", false, "copy the output to the clipboard")

	cmd.MarkFlagsMutuallyExclusive("kind", "all")

	return cmd
}

func (a *app) runScheme(cmd *cobra.Command, baseHex, kindName string, all bool, opts outputOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	base, err := colour.ParseHex(baseHex)
	if err != nil {
		return err
	}

	var schemes []*colour.Scheme
	if all {
		schemes = colour.AllSchemes(base)
	} else {
		kind, err := colour.ParseSchemeKind(kindName)
		if err != nil {
			return err
		}
		scheme, err := colour.NewScheme(base, kind)
		if err != nil {
			return err
		}
		schemes = []*colour.Scheme{scheme}
	}

	for _, s := range schemes {
		a.logger.Debug("generated scheme", "kind", s.Kind, "base", s.Base.Hex(), "entries", len(s.Entries))
	}

	var data []byte
	switch {
	case opts.template != "":
		data, err = a.renderSchemeTemplates(opts.template, schemes)
	case all:
		data, err = exportSchemes(schemes, format)
	default:
		data, err = export.Scheme(schemes[0].Entries, format)
	}
	if err != nil {
		return err
	}

	if opts.preview {
		w := cmd.ErrOrStderr()
		p := newPreviewer(w)
		for _, s := range schemes {
			fmt.Fprint(w, p.scheme(s))
		}
	}

	return emit(cmd.OutOrStdout(), a.logger, opts, data)
}

// schemeDocument is one scheme in the JSON output of --all.
type schemeDocument struct {
	Kind   colour.SchemeKind     `json:"kind"`
	Base   string                `json:"base"`
	Colors []export.SchemeColour `json:"colors"`
}

// exportSchemes renders several schemes. Text formats get one block per
// kind under a comment naming it; JSON is a single array of documents.
func exportSchemes(schemes []*colour.Scheme, format export.Format) ([]byte, error) {
	if format == export.FormatJSON {
		docs := make([]schemeDocument, len(schemes))
		for i, s := range schemes {
			colors := make([]export.SchemeColour, len(s.Entries))
			for j, e := range s.Entries {
				colors[j] = export.SchemeColour{Name: e.Role, Hex: e.Hex()}
			}
			docs[i] = schemeDocument{Kind: s.Kind, Base: s.Base.Hex(), Colors: colors}
		}
		return json.MarshalIndent(docs, "", "  ")
	}

	blocks := make([]string, len(schemes))
	for i, s := range schemes {
		out, err := export.Scheme(s.Entries, format)
		if err != nil {
			return nil, err
		}
		blocks[i] = schemeComment(s.Kind, format) + "\n" + string(out)
	}
	return []byte(strings.Join(blocks, "\n\n")), nil
}

func schemeComment(kind colour.SchemeKind, format export.Format) string {
	switch format {
	case export.FormatCSS, export.FormatSCSS:
		return fmt.Sprintf("/* %s */", kind)
	default:
		return fmt.Sprintf("# %s", kind)
	}
}
