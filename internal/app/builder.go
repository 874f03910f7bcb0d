package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stacklok/vault-mcp-registry/internal/api"
	"github.com/stacklok/vault-mcp-registry/internal/config"
	"github.com/stacklok/vault-mcp-registry/internal/mcptools"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
	"github.com/stacklok/vault-mcp-registry/internal/versions"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
)

// RegistryAppOptions is a function that configures the registry app builder
type RegistryAppOptions func(*registryAppConfig) error

type registryAppConfig struct {
	config *config.Config

	// Optional component override (primarily for testing)
	components *AppComponents

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

func baseConfig(opts ...RegistryAppOptions) (*registryAppConfig, error) {
	cfg := &registryAppConfig{
		address:        config.DefaultAddress,
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		cfg.config = &config.Config{}
	}

	return cfg, nil
}

// NewRegistryApp creates the application from the given options
func NewRegistryApp(
	ctx context.Context,
	opts ...RegistryAppOptions,
) (*RegistryApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components := cfg.components
	if components == nil {
		components, err = NewComponents(ctx, cfg.config)
		if err != nil {
			return nil, fmt.Errorf("failed to build components: %w", err)
		}
	}

	httpServer, err := buildHTTPServer(ctx, cfg, components)
	if err != nil {
		if closeErr := components.Close(ctx); closeErr != nil {
			slog.Error("Failed to close components", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)

	return &RegistryApp{
		config:     cfg.config,
		components: components,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) RegistryAppOptions {
	return func(cfg *registryAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address
func WithAddress(addr string) RegistryAppOptions {
	return func(cfg *registryAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, found := strings.Cut(addr, ":")
		if !found || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) RegistryAppOptions {
	return func(cfg *registryAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithComponents injects prebuilt components (for testing)
func WithComponents(c *AppComponents) RegistryAppOptions {
	return func(cfg *registryAppConfig) error {
		cfg.components = c
		return nil
	}
}

// buildHTTPServer builds the HTTP server with router and middleware
//
//nolint:unparam // we prefer having a similar interface
func buildHTTPServer(
	_ context.Context,
	b *registryAppConfig,
	components *AppComponents,
) (*http.Server, error) {
	slog.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	var serverOpts []api.ServerOption
	if tel := components.Telemetry; tel != nil {
		metricsMiddleware, err := telemetry.MetricsMiddleware(tel.MeterProvider())
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics middleware: %w", err)
		}
		// Metrics and tracing go first so they observe every request
		b.middlewares = append([]func(http.Handler) http.Handler{
			metricsMiddleware,
			telemetry.TracingMiddleware(tel.TracerProvider()),
		}, b.middlewares...)

		if h := tel.MetricsHandler(); h != nil {
			serverOpts = append(serverOpts, api.WithMetricsHandler(h))
			slog.Info("Prometheus metrics endpoint enabled", "path", "/metrics")
		}
	}
	serverOpts = append(serverOpts, api.WithMiddlewares(b.middlewares...))

	mcpServer := mcptools.NewServer(components.RegistryService, versions.GetVersionInfo().Version)
	mcpHandler := server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
	serverOpts = append(serverOpts, api.WithMCPHandler(mcpHandler))
	slog.Info("MCP endpoint enabled", "path", "/mcp")

	router := api.NewServer(components.RegistryService, serverOpts...)

	httpServer := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	slog.Info("HTTP server configured", "address", b.address)
	return httpServer, nil
}
