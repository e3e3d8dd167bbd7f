package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant tools over HTTP",
	Long: `Expose the assistant as an HTTP tool server for hosts that integrate
over a request/response transport.

Endpoints:
  GET  /health        liveness probe
  GET  /manifest      tool catalog
  POST /tools/{name}  invoke a tool with a JSON argument object

Server-mode execution is non-interactive: commands that require
confirmation only run when the caller passes "confirmed": true.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:7341", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, _, err := buildAssistant()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := server.NewRegistry(a)
	httpServer := server.NewHTTPServer(registry, Version, newLogger())
	return httpServer.ListenAndServe(ctx, serveAddr)
}
