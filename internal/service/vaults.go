package service

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/stacklok/vault-mcp-registry/internal/conversation"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

// VaultSummary describes one vault and what its registries hold
type VaultSummary struct {
	Vault         vault.Vault `json:"vault"`
	Servers       int         `json:"servers"`
	Conversations int         `json:"conversations"`
	Windows       []string    `json:"windows,omitempty"`
}

// ListVaults returns every known vault, or an empty slice on failure
func (s *Service) ListVaults(ctx context.Context) []vault.Vault {
	vaults, err := s.vaults.GetVaults(ctx)
	if !s.done(ctx, vaultsRegistryName, "list", "", err) || vaults == nil {
		return []vault.Vault{}
	}
	return vaults
}

// AddVault registers a directory as a vault
func (s *Service) AddVault(ctx context.Context, path, name string) (vault.Vault, bool) {
	v, err := s.vaults.Add(ctx, path, name)
	return v, s.done(ctx, vaultsRegistryName, "add", "", err, "path", path)
}

// RemoveVault unregisters a vault and drops every window association to it
func (s *Service) RemoveVault(ctx context.Context, id string) bool {
	err := s.vaults.Remove(ctx, id)
	if !s.done(ctx, vaultsRegistryName, "remove", "", err, "id", id) {
		return false
	}
	s.resolver.Windows().ClearVault(id)
	return true
}

// ActiveVault returns the vault registry operations from windowID run against
func (s *Service) ActiveVault(ctx context.Context, windowID string) (vault.Vault, bool) {
	v, err := s.resolver.ResolveActiveVault(ctx, windowID)
	return v, s.done(ctx, vaultsRegistryName, "resolve", windowID, err)
}

// SetActiveVault associates windowID with a known vault
func (s *Service) SetActiveVault(ctx context.Context, windowID, vaultID string) bool {
	vaults, err := s.vaults.GetVaults(ctx)
	if err == nil && !slices.ContainsFunc(vaults, func(v vault.Vault) bool { return v.ID == vaultID }) {
		err = vault.ErrVaultNotFound
	}
	if err == nil {
		err = s.resolver.Windows().Set(windowID, vaultID)
	}
	return s.done(ctx, vaultsRegistryName, "activate", windowID, err, "vault_id", vaultID)
}

// ClearActiveVault drops the association of windowID
func (s *Service) ClearActiveVault(ctx context.Context, windowID string) bool {
	s.resolver.Windows().Clear(windowID)
	return s.done(ctx, vaultsRegistryName, "deactivate", windowID, nil)
}

// VaultSummaries counts the records of every vault. Vaults are read concurrently and
// the result keeps catalog order.
func (s *Service) VaultSummaries(ctx context.Context) []VaultSummary {
	vaults := s.ListVaults(ctx)
	summaries := make([]VaultSummary, len(vaults))

	windowsByVault := map[string][]string{}
	for windowID, vaultID := range s.resolver.Windows().List() {
		windowsByVault[vaultID] = append(windowsByVault[vaultID], windowID)
	}

	g, gctx := errgroup.WithContext(ctx)
	if s.summaryConcurrency > 0 {
		g.SetLimit(s.summaryConcurrency)
	}
	for i, v := range vaults {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			servers := len(s.servers.ListInVault(gctx, v))
			conversations := len(s.conversations.ListInVault(gctx, v))
			s.metrics.RecordRecordsTotal(gctx, mcpserver.RegistryName, v.ID, int64(servers))
			s.metrics.RecordRecordsTotal(gctx, conversation.RegistryName, v.ID, int64(conversations))

			windows := windowsByVault[v.ID]
			slices.Sort(windows)
			summaries[i] = VaultSummary{
				Vault:         v,
				Servers:       servers,
				Conversations: conversations,
				Windows:       windows,
			}
			return nil
		})
	}

	err := g.Wait()
	if !s.done(ctx, vaultsRegistryName, "summarize", "", err) {
		return []VaultSummary{}
	}
	return summaries
}
