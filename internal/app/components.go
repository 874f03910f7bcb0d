package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stacklok/vault-mcp-registry/internal/config"
	"github.com/stacklok/vault-mcp-registry/internal/conversation"
	"github.com/stacklok/vault-mcp-registry/internal/docstore"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/service"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

const tracerName = "github.com/stacklok/vault-mcp-registry/internal/registry"

// AppComponents groups all application components
//
//nolint:revive // This name is fine
type AppComponents struct {
	// Telemetry owns the tracer and meter providers
	Telemetry *telemetry.Telemetry

	// Catalog is the persisted list of known vaults
	Catalog *vault.Catalog

	// Resolver maps windows to their active vault
	Resolver *vault.Resolver

	Servers       *mcpserver.Registry
	Conversations *conversation.Registry

	// RegistryService provides registry business logic
	RegistryService service.RegistryService
}

// NewComponents builds the vault catalog, the registries and the service described by
// cfg, and registers the vaults declared in cfg. Close must be called when done.
func NewComponents(ctx context.Context, cfg *config.Config) (*AppComponents, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.Telemetry))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	components, err := buildComponents(ctx, cfg, tel)
	if err != nil {
		if shutdownErr := tel.Shutdown(ctx); shutdownErr != nil {
			slog.Error("Failed to shutdown telemetry", "error", shutdownErr)
		}
		return nil, err
	}
	return components, nil
}

func buildComponents(ctx context.Context, cfg *config.Config, tel *telemetry.Telemetry) (*AppComponents, error) {
	var storeOpts []docstore.Option
	if cfg.Registry.FileLock {
		storeOpts = append(storeOpts, docstore.WithFileLock())
	}
	if cfg.Registry.RenameTries > 0 {
		storeOpts = append(storeOpts, docstore.WithRenameTries(cfg.Registry.RenameTries))
	}

	dataDir := cfg.GetDataDir()
	slog.Info("Initializing vault catalog", "data_dir", dataDir, "file_lock", cfg.Registry.FileLock)
	catalog := vault.NewCatalog(dataDir, storeOpts...)

	if err := InitializeVaults(ctx, cfg, catalog); err != nil {
		return nil, err
	}

	resolver := vault.NewResolver(catalog, vault.NewWindows())

	regOpts := []registry.Option{
		registry.WithCollisionPolicy(cfg.Registry.GetCollisionPolicy()),
		registry.WithTracer(tel.Tracer(tracerName)),
		registry.WithStoreOptions(storeOpts...),
	}
	servers := mcpserver.NewRegistry(resolver, regOpts...)
	conversations := conversation.NewRegistry(resolver, regOpts...)

	metrics, err := telemetry.NewRegistryMetrics(tel.MeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create registry metrics: %w", err)
	}

	svcOpts := []service.Option{service.WithMetrics(metrics)}
	if cfg.Registry.SummaryConcurrency > 0 {
		svcOpts = append(svcOpts, service.WithSummaryConcurrency(cfg.Registry.SummaryConcurrency))
	}
	svc := service.New(catalog, resolver, servers, conversations, svcOpts...)

	return &AppComponents{
		Telemetry:       tel,
		Catalog:         catalog,
		Resolver:        resolver,
		Servers:         servers,
		Conversations:   conversations,
		RegistryService: svc,
	}, nil
}

// Close flushes telemetry
func (c *AppComponents) Close(ctx context.Context) error {
	if c == nil || c.Telemetry == nil {
		return nil
	}
	return c.Telemetry.Shutdown(ctx)
}
