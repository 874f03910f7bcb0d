package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stacklok/vault-mcp-registry/internal/app"
)

const flagName = "name"

func (c *cli) newVaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaults",
		Short: "Manage the vault catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List registered vaults with their record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString(flagFormat)
			return c.withComponents(cmd.Context(), func(components *app.AppComponents) error {
				summaries := components.RegistryService.VaultSummaries(cmd.Context())
				if format == formatJSON {
					return printJSON(cmd.OutOrStdout(), summaries)
				}

				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					rows = append(rows, []string{
						s.Vault.ID,
						s.Vault.DisplayName(),
						s.Vault.Path,
						strconv.Itoa(s.Servers),
						strconv.Itoa(s.Conversations),
					})
				}
				return printTable(cmd.OutOrStdout(),
					[]string{"ID", "NAME", "PATH", "SERVERS", "CONVERSATIONS"}, rows)
			})
		},
	}
	list.Flags().String(flagFormat, "", "Output format (json)")

	add := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a directory as a vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString(flagName)
			return c.withComponents(cmd.Context(), func(components *app.AppComponents) error {
				v, ok := components.RegistryService.AddVault(cmd.Context(), args[0], name)
				if !ok {
					return fmt.Errorf("failed to add vault %s", args[0])
				}
				printOK(cmd.OutOrStdout(), "Added vault %s (%s)", v.DisplayName(), v.ID)
				return nil
			})
		},
	}
	add.Flags().String(flagName, "", "Display name of the vault")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Unregister a vault. The directory and its documents are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withComponents(cmd.Context(), func(components *app.AppComponents) error {
				if !components.RegistryService.RemoveVault(cmd.Context(), args[0]) {
					return fmt.Errorf("failed to remove vault %s", args[0])
				}
				printOK(cmd.OutOrStdout(), "Removed vault %s", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

// errNoVault is returned when a registry command has no vault to act on
var errNoVault = errors.New("no vault available; register one with 'vault-registry vaults add <path>'")

// requireVault fails when the catalog is empty so commands can report it instead of printing
// an empty result
func requireVault(cmd *cobra.Command, components *app.AppComponents) error {
	vaults := components.RegistryService.ListVaults(cmd.Context())
	if len(vaults) == 0 {
		return errNoVault
	}
	return nil
}
