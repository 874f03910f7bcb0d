// Package app provides application lifecycle management for the vault registry server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/stacklok/vault-mcp-registry/internal/config"
)

// RegistryApp encapsulates all components needed to run the registry API server
type RegistryApp struct {
	config     *config.Config
	components *AppComponents
	httpServer *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start serves HTTP until Stop is called or the listener fails
func (app *RegistryApp) Start() error {
	ln, err := net.Listen("tcp", app.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.httpServer.Addr, err)
	}
	return app.Serve(ln)
}

// Serve serves HTTP on ln until Stop is called
func (app *RegistryApp) Serve(ln net.Listener) error {
	slog.Info("Server listening", "address", ln.Addr().String())
	app.httpServer.BaseContext = func(net.Listener) context.Context { return app.ctx }
	if err := app.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the application with the given timeout
func (app *RegistryApp) Stop(timeout time.Duration) error {
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server forced to shutdown: %w", err))
	}

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	if err := app.components.Close(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown telemetry: %w", err))
	}

	if len(errs) == 0 {
		slog.Info("Server shutdown complete")
	}
	return errors.Join(errs...)
}

// GetConfig returns the application configuration
func (app *RegistryApp) GetConfig() *config.Config {
	return app.config
}

// GetComponents returns the application components
func (app *RegistryApp) GetComponents() *AppComponents {
	return app.components
}

// GetHTTPServer returns the HTTP server
func (app *RegistryApp) GetHTTPServer() *http.Server {
	return app.httpServer
}
