package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
)

func newTemplatesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage export templates",
		Long: `Manage the Go templates used for CSS and SCSS output.

The --template flag of extract and scheme looks a name up in the custom
template directory before the built-in templates, so a dumped and edited
"css" template is picked up by --template css. Any other file in that
directory, or any file path, works too. --format always uses the built-in
templates.

Templates receive .Kind and .Colours; each colour has .Index, .Name,
.Role, .Hex, .Colour and .Count. Functions include hex, hexNoHash, rgb,
rgbDecimal, rgbSpaces, hsl, luminance, contrast, readableOn, slug,
trimPrefix, trimSuffix, replace, toLower and toUpper.

Examples:
  swatch templates list
  swatch templates dump
  swatch templates dump css --force
  swatch templates dump --dir ./templates`,
	}

	cmd.AddCommand(newTemplatesListCmd(a), newTemplatesDumpCmd(a))
	return cmd
}

func newTemplatesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in templates and custom overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := a.templateLoader()
			names, err := export.EmbeddedTemplates()
			if err != nil {
				return err
			}

			table := NewTable([]string{"Template", "Source", "Path"})
			for _, name := range names {
				source, path := "built-in", ""
				if loader.HasCustomTemplate(name) {
					source, path = "custom", loader.CustomPath(name)
				}
				table.AddRow(name, source, path)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Custom template directory: %s\n\n", loader.Dir())
			fmt.Fprint(w, table.Render())
			return nil
		},
	}
}

func newTemplatesDumpCmd(a *app) *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "dump [template...]",
		Short: "Copy built-in templates into the custom template directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := a.templateLoader()
			if dir != "" {
				loader = export.NewTemplateLoader(dir)
			}

			var (
				dumped []string
				err    error
			)
			if len(args) == 0 {
				dumped, err = loader.DumpAllTemplates(force)
			} else {
				var errs []error
				for _, name := range args {
					path, dumpErr := loader.DumpTemplate(name, force)
					if dumpErr != nil {
						errs = append(errs, dumpErr)
						continue
					}
					dumped = append(dumped, path)
				}
				err = errors.Join(errs...)
			}

			for _, path := range dumped {
				a.logger.Debug("dumped template", "path", path)
				if !a.quiet {
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "dump into this directory instead of the custom template directory")

	return cmd
}

// templateLoader returns a loader for the configured template directory.
func (a *app) templateLoader() *export.TemplateLoader {
	dir := a.cfg.Templates.Dir
	if dir == "" {
		dir = export.DefaultTemplateDir()
	}
	return export.NewTemplateLoader(dir)
}

// renderTemplate loads the named template and renders data with it.
func (a *app) renderTemplate(name string, data export.TemplateData) ([]byte, error) {
	content, custom, err := a.templateLoader().Load(name)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("rendering template", "template", name, "custom", custom, "kind", data.Kind)
	return export.Execute(name, content, data)
}

// renderSchemeTemplates renders each scheme with the named template,
// separating the results with a blank line.
func (a *app) renderSchemeTemplates(name string, schemes []*colour.Scheme) ([]byte, error) {
	blocks := make([]string, len(schemes))
	for i, s := range schemes {
		out, err := a.renderTemplate(name, export.SchemeData(s.Kind, s.Entries))
		if err != nil {
			return nil, err
		}
		blocks[i] = string(out)
	}
	return []byte(strings.Join(blocks, "\n\n")), nil
}
