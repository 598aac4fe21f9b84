package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/api"
	"github.com/mesh-intelligence/hbnb/internal/config"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API",
	Long: `Serve starts the HTTP API under /api/v1 and runs until interrupted.

The listen address comes from --host/--port, else HBNB_API_HOST and
HBNB_API_PORT, else config.yaml, else 0.0.0.0:5000.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var apiCfg api.Config
		if err := config.ParseEnvWithFallback(&apiCfg, settings.fallback); err != nil {
			return failure(exitUserError, "serve", err)
		}
		if cmd.Flags().Changed("host") {
			apiCfg.Host = serveHost
		}
		if cmd.Flags().Changed("port") {
			apiCfg.Port = servePort
		}

		engine, cfg, err := openEngineFor("serve")
		if err != nil {
			return err
		}
		defer engine.Close()
		logger.Infof("serving %s storage on %s", cfg.Storage, apiCfg.Addr())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := api.NewServer(engine, apiCfg).ListenAndServe(ctx); err != nil {
			return failure(exitSysError, "serve", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default: HBNB_API_HOST or 0.0.0.0)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default: HBNB_API_PORT or 5000)")
}
