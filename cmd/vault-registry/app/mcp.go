package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/stacklok/vault-mcp-registry/internal/app"
	"github.com/stacklok/vault-mcp-registry/internal/mcptools"
	"github.com/stacklok/vault-mcp-registry/internal/versions"
)

func (c *cli) newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the registry tools over MCP on stdin/stdout",
		Long: `Serve the registry as an MCP server speaking JSON-RPC on stdin/stdout.

Add it to an MCP client configuration to let the client list vaults and manage the
MCP servers and conversations stored in them. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return c.withComponents(ctx, func(components *app.AppComponents) error {
				s := mcptools.NewServer(components.RegistryService, versions.GetVersionInfo().Version)
				err := server.NewStdioServer(s).Listen(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}
