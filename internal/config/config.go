// Package config provides configuration loading for the vault registry.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
)

const (
	// AppName names the application data directory
	AppName = "vault-registry"

	// DefaultAddress is the default HTTP listen address
	DefaultAddress = ":8080"

	// EnvPrefix prefixes environment variables read by the command line
	EnvPrefix = "VAULT_REGISTRY"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// EvalSymlinks also cleans the path
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) && !filepath.IsLocal(realPath) {
			return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// DataDir holds the vault catalog. Defaults to $XDG_DATA_HOME/vault-registry.
	DataDir string `yaml:"dataDir,omitempty"`

	// Vaults are registered in the catalog on startup when not already known
	Vaults []VaultConfig `yaml:"vaults,omitempty"`

	Registry  RegistryConfig    `yaml:"registry,omitempty"`
	HTTP      HTTPConfig        `yaml:"http,omitempty"`
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// VaultConfig declares a vault directory
type VaultConfig struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"`
}

// RegistryConfig tunes how registry documents are written
type RegistryConfig struct {
	// CollisionPolicy is "overwrite" (default) or "reject"
	CollisionPolicy string `yaml:"collisionPolicy,omitempty"`

	// FileLock serialises writers of the same document across processes
	FileLock bool `yaml:"fileLock,omitempty"`

	// RenameTries bounds the attempts at moving a written document into place.
	// Zero keeps the store default.
	RenameTries uint `yaml:"renameTries,omitempty"`

	// SummaryConcurrency bounds how many vaults are read at once when listing vault
	// summaries. Zero keeps the service default.
	SummaryConcurrency int `yaml:"summaryConcurrency,omitempty"`
}

// HTTPConfig configures the API server
type HTTPConfig struct {
	Address string `yaml:"address,omitempty"`
}

// LoadConfig loads the configuration. Without WithConfigPath the defaults are returned.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	var config Config
	if loaderCfg.path != "" {
		data, err := os.ReadFile(loaderCfg.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetDataDir returns the data directory, using the XDG data home if not specified
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return filepath.Join(xdg.DataHome, AppName)
	}
	return c.DataDir
}

// GetAddress returns the HTTP listen address, using DefaultAddress if not specified
func (c *HTTPConfig) GetAddress() string {
	if c.Address == "" {
		return DefaultAddress
	}
	return c.Address
}

// GetCollisionPolicy returns the parsed collision policy. Validate must have passed.
func (c *RegistryConfig) GetCollisionPolicy() registry.CollisionPolicy {
	policy, err := registry.ParseCollisionPolicy(c.CollisionPolicy)
	if err != nil {
		return registry.CollisionOverwrite
	}
	return policy
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var errs []error

	seen := make(map[string]int, len(c.Vaults))
	for i, v := range c.Vaults {
		if v.Path == "" {
			errs = append(errs, fmt.Errorf("vaults[%d]: path is required", i))
			continue
		}
		clean := filepath.Clean(v.Path)
		if first, dup := seen[clean]; dup {
			errs = append(errs, fmt.Errorf("vaults[%d]: duplicate path %q (also vaults[%d])", i, v.Path, first))
			continue
		}
		seen[clean] = i
	}

	if _, err := registry.ParseCollisionPolicy(c.Registry.CollisionPolicy); err != nil {
		errs = append(errs, fmt.Errorf("registry: %w", err))
	}
	if c.Registry.SummaryConcurrency < 0 {
		errs = append(errs, fmt.Errorf("registry: summaryConcurrency must not be negative"))
	}

	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return errors.Join(errs...)
}
