package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stacklok/vault-mcp-registry/internal/config"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

// InitializeVaults ensures all vaults declared in the config exist in the catalog.
// This function is idempotent and safe to call on every startup. Vaults already in the
// catalog keep their id and name.
func InitializeVaults(ctx context.Context, cfg *config.Config, catalog *vault.Catalog) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	if catalog == nil {
		return fmt.Errorf("vault catalog is required")
	}

	if len(cfg.Vaults) == 0 {
		slog.Debug("No vaults declared in config")
		return nil
	}

	for _, vc := range cfg.Vaults {
		v, err := catalog.Ensure(ctx, vc.Path, vc.Name)
		if err != nil {
			return fmt.Errorf("failed to register vault '%s': %w", vc.Path, err)
		}
		slog.Info("Initialized vault", "id", v.ID, "path", v.Path, "name", v.DisplayName())
	}

	slog.Info(fmt.Sprintf("Successfully initialized %d vault%s",
		len(cfg.Vaults), pluralize(len(cfg.Vaults), "", "s")))

	return nil
}

// pluralize returns singular or plural suffix based on count
func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
