// Package cli provides the command-line interface for swatch.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/logger"
	"github.com/jmylchreest/swatch/internal/version"
)

// configKeyAnnotation marks a flag as an override for a config key.
const configKeyAnnotation = "swatch_config_key"

// app carries state shared by every command of one invocation. It is
// filled in by the root command's PersistentPreRunE.
type app struct {
	configFile string
	envFile    string
	verbose    bool
	quiet      bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract palettes, generate colour schemes and check contrast",
		Long: `swatch is a colour toolkit. It extracts dominant colour palettes from images,
derives harmonious colour schemes from a base colour and checks WCAG contrast
between colour pairs. Results export as hex, rgb, CSS, SCSS or JSON, and the
same engine is available over HTTP with "swatch serve".`,
		Version:       version.Short(),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/swatch/swatch.yaml or ./swatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "dotenv file with SWATCH_* variables (default: ./.env if present)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newSchemeCmd(a),
		newContrastCmd(a),
		newFaviconCmd(a),
		newServeCmd(a),
		newTemplatesCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// init loads configuration for the command being run and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		EnvFile:    a.envFile,
		Flags:      configFlags(cmd.Flags()),
	})
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Name:    "swatch",
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
		Verbose: a.verbose,
		Quiet:   a.quiet,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log.Named(cmd.Name())
	a.logger.Trace("configuration loaded", "config_file", a.configFile)
	return nil
}

// bindConfig marks flag name on cmd as overriding config key.
func bindConfig(cmd *cobra.Command, name, key string) {
	_ = cmd.Flags().SetAnnotation(name, configKeyAnnotation, []string{key})
}

// configFlags collects the flags annotated with a config key.
func configFlags(fs *pflag.FlagSet) map[string]*pflag.Flag {
	flags := make(map[string]*pflag.Flag)
	fs.VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && len(keys) == 1 {
			flags[keys[0]] = f
		}
	})
	return flags
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info)
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
