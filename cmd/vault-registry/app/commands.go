// Package app provides the command line interface of the vault registry.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/vault-mcp-registry/internal/app"
	"github.com/stacklok/vault-mcp-registry/internal/config"
	"github.com/stacklok/vault-mcp-registry/internal/versions"
)

const (
	flagConfig  = "config"
	flagDataDir = "data-dir"
	flagFormat  = "format"

	formatJSON = "json"
)

// cli carries state shared by all subcommands of one root command
type cli struct {
	v *viper.Viper
}

// NewRootCmd creates a new root command for the vault registry.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix(config.EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:               "vault-registry",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Per-vault MCP server and conversation registries",
		Long: `vault-registry keeps MCP server definitions and conversations in JSON documents
stored inside each registered vault directory, and serves them over a REST API.`,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				slog.Error("Error displaying help", "error", err)
			}
		},
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "Path to configuration file (YAML format)")
	rootCmd.PersistentFlags().String(flagDataDir, "", "Directory holding the vault catalog (overrides dataDir)")
	for _, name := range []string{flagConfig, flagDataDir} {
		if err := c.v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(c.newVaultsCmd())
	rootCmd.AddCommand(c.newServersCmd())
	rootCmd.AddCommand(c.newMCPCmd())

	return rootCmd
}

// loadConfig reads the configuration file, if any, and applies flag and environment overrides
func (c *cli) loadConfig() (*config.Config, error) {
	var opts []config.Option
	if path := c.v.GetString(flagConfig); path != "" {
		opts = append(opts, config.WithConfigPath(path))
	}

	cfg, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dir := c.v.GetString(flagDataDir); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// withComponents builds the application components, runs fn and releases them
func (c *cli) withComponents(ctx context.Context, fn func(*app.AppComponents) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	components, err := app.NewComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := components.Close(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	return fn(components)
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetVersionInfo()
			format, err := cmd.Flags().GetString(flagFormat)
			if err != nil {
				return err
			}

			if format == formatJSON {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "vault-registry %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	cmd.Flags().String(flagFormat, "", "Output format (json)")
	return cmd
}
