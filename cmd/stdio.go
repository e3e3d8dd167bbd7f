package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gitpilot/cli/internal/server"
)

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve the assistant tools over stdio",
	Long: `Speak newline-delimited JSON-RPC 2.0 on stdin/stdout, one request per
line. This is the transport used when an editor or agent host spawns
gitpilot as a tool backend.

Logging goes to stderr so stdout carries only protocol frames.`,
	RunE: runStdio,
}

func runStdio(cmd *cobra.Command, args []string) error {
	a, _, err := buildAssistant()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := server.NewRegistry(a)
	stdioServer := server.NewStdioServer(registry, Version, newLogger())
	return stdioServer.Serve(ctx, os.Stdin, os.Stdout)
}
