package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the colour engine over HTTP",
		Long: `Start an HTTP server exposing palette extraction, scheme generation,
contrast checking and favicon rendering as a JSON API.

Endpoints:
  GET  /health
  POST /api/palette    image upload (multipart field "image" or raw body), ?format=
  POST /api/scheme     {"base": "#hex", "kind": "triadic", "format": "json"}
  POST /api/contrast   {"foreground": "#hex", "background": "#hex"}
  POST /api/favicon    {"text": "S", "background": "#hex", "size": 64}

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Int64("max-upload", 20<<20, "maximum image upload size in bytes")
	flags.Int64("max-pixels", 25_000_000, "maximum decoded image area in pixels")
	flags.Bool("log-json", false, "log in JSON format")

	bindConfig(cmd, "addr", "server.addr")
	bindConfig(cmd, "max-upload", "server.max_upload_bytes")
	bindConfig(cmd, "max-pixels", "server.max_pixels")
	bindConfig(cmd, "log-json", "log.json")

	return cmd
}

func (a *app) runServe(cmd *cobra.Command) error {
	extractor, err := colour.NewExtractor(a.cfg.Extract)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.cfg.Server, extractor, a.logger)
	return srv.Run(ctx)
}
