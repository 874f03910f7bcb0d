package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklok/vault-mcp-registry/internal/app"
)

const (
	flagAddress = "address"

	defaultGracefulTimeout = 30 * time.Second
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the registry API server",
		Long: `Start the registry API server. The REST API is served under /api/v1 and the
MCP tools at /mcp.

The optional configuration file (--config) declares the data directory, vaults to
register on startup, the collision policy for adds, file locking and telemetry.
The listen address is taken from --address, then VAULT_REGISTRY_ADDRESS, then
http.address in the configuration file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.runServe(ctx)
		},
	}

	cmd.Flags().String(flagAddress, "", "Address to listen on (default \":8080\")")
	if err := c.v.BindPFlag(flagAddress, cmd.Flags().Lookup(flagAddress)); err != nil {
		slog.Error("Error binding address flag", "error", err)
	}

	return cmd
}

// runServe serves until ctx is cancelled, then shuts down gracefully
func (c *cli) runServe(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	address := c.v.GetString(flagAddress)
	if address == "" {
		address = cfg.HTTP.GetAddress()
	}

	slog.Info("Starting vault registry server", "address", address, "data_dir", cfg.GetDataDir())

	registryApp, err := app.NewRegistryApp(ctx, app.WithConfig(cfg), app.WithAddress(address))
	if err != nil {
		return fmt.Errorf("failed to create registry app: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- registryApp.Start()
	}()

	select {
	case err := <-serveErr:
		if stopErr := registryApp.Stop(defaultGracefulTimeout); stopErr != nil {
			slog.Error("Failed to stop server", "error", stopErr)
		}
		return err
	case <-ctx.Done():
	}

	if err := registryApp.Stop(defaultGracefulTimeout); err != nil {
		return err
	}
	return <-serveErr
}
