package app

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stacklok/vault-mcp-registry/internal/app"
	"github.com/stacklok/vault-mcp-registry/internal/filtering"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
)

const (
	flagWindow = "window"
	flagVault  = "vault"

	flagID          = "id"
	flagDescription = "description"
	flagTransport   = "transport"
	flagCommand     = "command"
	flagArg         = "arg"
	flagEnv         = "env"
	flagURL         = "url"
	flagHeader      = "header"
	flagDisabled    = "disabled"
	flagInclude     = "include"
	flagExclude     = "exclude"

	// cliWindowID is the window that --vault binds when no --window is given
	cliWindowID = "cli"
)

func (c *cli) newServersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "servers",
		Short: "Manage the MCP servers of a vault",
		Long: `Manage the MCP servers stored in a vault.

Commands act on the first registered vault unless --vault selects another one.`,
	}
	cmd.PersistentFlags().String(flagWindow, "", "Window id the operation is made for")
	cmd.PersistentFlags().String(flagVault, "", "Id of the vault to act on")

	list := &cobra.Command{
		Use:   "list",
		Short: "List MCP servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString(flagFormat)
			return c.withServers(cmd, func(components *app.AppComponents, window string) error {
				servers := components.RegistryService.GetMcpServers(cmd.Context(), window)
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), servers)
				}
				return printServers(cmd.OutOrStdout(), servers)
			})
		},
	}
	list.Flags().String(flagFormat, "", "Output format (json)")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := serverFromFlags(cmd, mcpserver.Server{})
			if err != nil {
				return err
			}
			if server.Transport == "" {
				server.Transport = server.EffectiveTransport()
			}
			return c.withServers(cmd, func(components *app.AppComponents, window string) error {
				added, ok := components.RegistryService.AddMcpServer(cmd.Context(), server, window)
				if !ok {
					return fmt.Errorf("failed to add MCP server %s", server.Name)
				}
				printOK(cmd.OutOrStdout(), "Added MCP server %s", added.ID)
				return nil
			})
		},
	}
	addServerFlags(add)
	add.Flags().String(flagID, "", "Server id (generated when empty)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an MCP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withServers(cmd, func(components *app.AppComponents, window string) error {
				existing, ok := components.RegistryService.GetMcpServers(cmd.Context(), window)[id]
				if !ok {
					return fmt.Errorf("MCP server %s not found", id)
				}
				server, err := serverFromFlags(cmd, existing)
				if err != nil {
					return err
				}
				if !components.RegistryService.UpdateMcpServer(cmd.Context(), id, server, window) {
					return fmt.Errorf("failed to update MCP server %s", id)
				}
				printOK(cmd.OutOrStdout(), "Updated MCP server %s", id)
				return nil
			})
		},
	}
	addServerFlags(update)

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an MCP server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServers(cmd, func(components *app.AppComponents, window string) error {
				if !components.RegistryService.RemoveMcpServer(cmd.Context(), args[0], window) {
					return fmt.Errorf("failed to remove MCP server %s", args[0])
				}
				printOK(cmd.OutOrStdout(), "Removed MCP server %s", args[0])
				return nil
			})
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import servers from an MCP client configuration (\"-\" reads stdin)",
		Long: `Import servers from an MCP client configuration such as claude_desktop_config.json
or .vscode/mcp.json. Comments and trailing commas are accepted. Servers whose name is
already registered in the vault are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			include, _ := cmd.Flags().GetStringSlice(flagInclude)
			exclude, _ := cmd.Flags().GetStringSlice(flagExclude)
			filter := filtering.NameFilter{Include: include, Exclude: exclude}
			if err := filter.Validate(); err != nil {
				return err
			}
			return c.withServers(cmd, func(components *app.AppComponents, window string) error {
				n, ok := components.RegistryService.ImportMcpServers(cmd.Context(), data, filter, window)
				if !ok {
					return fmt.Errorf("failed to import MCP servers from %s", args[0])
				}
				printOK(cmd.OutOrStdout(), "Imported %d MCP server%s", n, pluralSuffix(n))
				return nil
			})
		},
	}

	importCmd.Flags().StringSlice(flagInclude, nil, "Only import servers whose name matches one of these glob patterns")
	importCmd.Flags().StringSlice(flagExclude, nil, "Skip servers whose name matches one of these glob patterns")

	cmd.AddCommand(list, add, update, remove, importCmd)
	return cmd
}

// withServers runs fn with the window id the command acts for. With --vault the window
// is pinned to that vault first.
func (c *cli) withServers(cmd *cobra.Command, fn func(*app.AppComponents, string) error) error {
	window, _ := cmd.Flags().GetString(flagWindow)
	vaultID, _ := cmd.Flags().GetString(flagVault)

	return c.withComponents(cmd.Context(), func(components *app.AppComponents) error {
		if err := requireVault(cmd, components); err != nil {
			return err
		}
		if vaultID != "" {
			if window == "" {
				window = cliWindowID
			}
			if !components.RegistryService.SetActiveVault(cmd.Context(), window, vaultID) {
				return fmt.Errorf("vault %s not found", vaultID)
			}
		}
		return fn(components, window)
	})
}

func addServerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(flagName, "", "Display name")
	f.String(flagDescription, "", "Description")
	f.String(flagTransport, "", "Transport: stdio, sse or streamable-http (inferred when empty)")
	f.String(flagCommand, "", "Command of a stdio server")
	f.StringArray(flagArg, nil, "Command argument (repeatable)")
	f.StringToString(flagEnv, nil, "Environment variable KEY=VALUE (repeatable)")
	f.String(flagURL, "", "URL of a remote server")
	f.StringToString(flagHeader, nil, "HTTP header KEY=VALUE (repeatable)")
	f.Bool(flagDisabled, false, "Mark the server as disabled")
}

// serverFromFlags applies the flags set on cmd to base
func serverFromFlags(cmd *cobra.Command, base mcpserver.Server) (mcpserver.Server, error) {
	f := cmd.Flags()
	var err error
	setString := func(name string, dst *string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetString(name)
		}
	}
	setMap := func(name string, dst *map[string]string) {
		if err == nil && f.Changed(name) {
			*dst, err = f.GetStringToString(name)
		}
	}

	if f.Lookup(flagID) != nil {
		setString(flagID, &base.ID)
	}
	setString(flagName, &base.Name)
	setString(flagDescription, &base.Description)
	setString(flagTransport, &base.Transport)
	setString(flagCommand, &base.Command)
	setString(flagURL, &base.URL)
	setMap(flagEnv, &base.Env)
	setMap(flagHeader, &base.Headers)
	if err == nil && f.Changed(flagArg) {
		base.Args, err = f.GetStringArray(flagArg)
	}
	if err == nil && f.Changed(flagDisabled) {
		base.Disabled, err = f.GetBool(flagDisabled)
	}
	if err != nil {
		return mcpserver.Server{}, fmt.Errorf("invalid flags: %w", err)
	}
	return base, nil
}

func printServers(w io.Writer, servers map[string]mcpserver.Server) error {
	sorted := make([]mcpserver.Server, 0, len(servers))
	for _, s := range servers {
		sorted = append(sorted, s)
	}
	slices.SortFunc(sorted, func(a, b mcpserver.Server) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			s.EffectiveTransport(),
			s.Target(),
			strconv.FormatBool(s.Disabled),
		})
	}
	return printTable(w, []string{"ID", "NAME", "TRANSPORT", "TARGET", "DISABLED"}, rows)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // user supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
