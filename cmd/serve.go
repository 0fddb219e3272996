package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopipe/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP for form front-ends",
	Long: `Start an HTTP server exposing the calculators as JSON endpoints:

  GET  /api/health     - liveness and version
  POST /api/darcy      - {"unknown":"headloss|velocity|diameter", "length", "diameter", "velocity", "head_loss", "friction_factor"}
  POST /api/colebrook  - {"reynolds", "rel_roughness"}
  POST /api/flow       - {"length", "diameter", "head_loss", "rel_roughness", "viscosity"}
  GET  /api/ws         - websocket; send a flow request, receive each iteration then the result

Examples:
  gopipe serve
  gopipe serve --addr :9000
  GOPIPE_ADDR=127.0.0.1:8080 gopipe serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(cfg).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
