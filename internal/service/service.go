// Package service is the boundary between the registries and their callers.
//
// Internal operations return typed errors; every Service method logs the error,
// records the outcome and hands the caller an empty value or false instead.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stacklok/vault-mcp-registry/internal/conversation"
	"github.com/stacklok/vault-mcp-registry/internal/filtering"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

// vaultsRegistryName labels vault catalog and window operations
const vaultsRegistryName = "vaults"

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go RegistryService

// RegistryService is the surface exposed to the API and CLI
type RegistryService interface {
	// CheckReadiness fails when the vault catalog exists but cannot be read or parsed
	CheckReadiness(ctx context.Context) error

	GetMcpServers(ctx context.Context, windowID string) map[string]mcpserver.Server
	// AddMcpServer returns the stored server, whose id is generated when server has none
	AddMcpServer(ctx context.Context, server mcpserver.Server, windowID string) (mcpserver.Server, bool)
	UpdateMcpServer(ctx context.Context, id string, server mcpserver.Server, windowID string) bool
	RemoveMcpServer(ctx context.Context, id, windowID string) bool
	// ImportMcpServers returns the number of servers imported and whether the import succeeded
	ImportMcpServers(ctx context.Context, data []byte, filter filtering.NameFilter, windowID string) (int, bool)

	GetConversations(ctx context.Context, windowID string) map[string]conversation.Conversation
	AddConversation(ctx context.Context, c conversation.Conversation, windowID string) (conversation.Conversation, bool)
	UpdateConversation(ctx context.Context, id string, c conversation.Conversation, windowID string) bool
	RemoveConversation(ctx context.Context, id, windowID string) bool

	ListVaults(ctx context.Context) []vault.Vault
	AddVault(ctx context.Context, path, name string) (vault.Vault, bool)
	RemoveVault(ctx context.Context, id string) bool
	VaultSummaries(ctx context.Context) []VaultSummary

	ActiveVault(ctx context.Context, windowID string) (vault.Vault, bool)
	SetActiveVault(ctx context.Context, windowID, vaultID string) bool
	ClearActiveVault(ctx context.Context, windowID string) bool
}

// VaultStore is the vault catalog the service manages
type VaultStore interface {
	vault.Source
	Check(ctx context.Context) error
	Add(ctx context.Context, path, name string) (vault.Vault, error)
	Remove(ctx context.Context, id string) error
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records operation outcomes and record counts
func WithMetrics(m *telemetry.RegistryMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSummaryConcurrency bounds how many vaults VaultSummaries reads at once
func WithSummaryConcurrency(n int) Option {
	return func(s *Service) {
		s.summaryConcurrency = n
	}
}

// Service implements RegistryService
type Service struct {
	vaults             VaultStore
	resolver           *vault.Resolver
	servers            *mcpserver.Registry
	conversations      *conversation.Registry
	metrics            *telemetry.RegistryMetrics
	summaryConcurrency int
}

var _ RegistryService = (*Service)(nil)

// New creates a Service. The resolver must read its vaults from the same catalog.
func New(
	vaults VaultStore,
	resolver *vault.Resolver,
	servers *mcpserver.Registry,
	conversations *conversation.Registry,
	opts ...Option,
) *Service {
	s := &Service{
		vaults:             vaults,
		resolver:           resolver,
		servers:            servers,
		conversations:      conversations,
		summaryConcurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckReadiness implements RegistryService.CheckReadiness
func (s *Service) CheckReadiness(ctx context.Context) error {
	if err := s.vaults.Check(ctx); err != nil {
		return fmt.Errorf("vault catalog unavailable: %w", err)
	}
	return nil
}

// GetMcpServers returns the servers of the active vault, or an empty map on failure
func (s *Service) GetMcpServers(ctx context.Context, windowID string) map[string]mcpserver.Server {
	servers, err := s.servers.List(ctx, windowID)
	if !s.done(ctx, mcpserver.RegistryName, "list", windowID, err) {
		return map[string]mcpserver.Server{}
	}
	return servers
}

// AddMcpServer stores a server in the active vault and returns it with its assigned id
func (s *Service) AddMcpServer(
	ctx context.Context, server mcpserver.Server, windowID string,
) (mcpserver.Server, bool) {
	added, err := s.servers.Add(ctx, server, windowID)
	if !s.done(ctx, mcpserver.RegistryName, "add", windowID, err, "id", added.ID) {
		return mcpserver.Server{}, false
	}
	return added, true
}

// UpdateMcpServer replaces the server stored under id
func (s *Service) UpdateMcpServer(ctx context.Context, id string, server mcpserver.Server, windowID string) bool {
	_, err := s.servers.Update(ctx, id, server, windowID)
	return s.done(ctx, mcpserver.RegistryName, "update", windowID, err, "id", id)
}

// RemoveMcpServer deletes the server stored under id
func (s *Service) RemoveMcpServer(ctx context.Context, id, windowID string) bool {
	err := s.servers.Remove(ctx, id, windowID)
	return s.done(ctx, mcpserver.RegistryName, "remove", windowID, err, "id", id)
}

// ImportMcpServers adds the servers declared in an MCP client configuration that pass filter
func (s *Service) ImportMcpServers(
	ctx context.Context, data []byte, filter filtering.NameFilter, windowID string,
) (int, bool) {
	n, err := mcpserver.Import(ctx, s.servers, data, filter, windowID)
	return n, s.done(ctx, mcpserver.RegistryName, "import", windowID, err, "imported", n)
}

// GetConversations returns the conversations of the active vault, or an empty map on failure
func (s *Service) GetConversations(ctx context.Context, windowID string) map[string]conversation.Conversation {
	conversations, err := s.conversations.List(ctx, windowID)
	if !s.done(ctx, conversation.RegistryName, "list", windowID, err) {
		return map[string]conversation.Conversation{}
	}
	return conversations
}

// AddConversation stores a conversation in the active vault and returns it as stored
func (s *Service) AddConversation(
	ctx context.Context, c conversation.Conversation, windowID string,
) (conversation.Conversation, bool) {
	added, err := s.conversations.Add(ctx, c, windowID)
	if !s.done(ctx, conversation.RegistryName, "add", windowID, err, "id", added.ID) {
		return conversation.Conversation{}, false
	}
	return added, true
}

// UpdateConversation replaces the conversation stored under id
func (s *Service) UpdateConversation(ctx context.Context, id string, c conversation.Conversation, windowID string) bool {
	_, err := s.conversations.Update(ctx, id, c, windowID)
	return s.done(ctx, conversation.RegistryName, "update", windowID, err, "id", id)
}

// RemoveConversation deletes the conversation stored under id
func (s *Service) RemoveConversation(ctx context.Context, id, windowID string) bool {
	err := s.conversations.Remove(ctx, id, windowID)
	return s.done(ctx, conversation.RegistryName, "remove", windowID, err, "id", id)
}

// done logs a failed operation, records its outcome and reports whether it succeeded.
// Missing records and missing vaults are expected outcomes and logged as warnings.
func (s *Service) done(ctx context.Context, registryName, op, windowID string, err error, attrs ...any) bool {
	s.metrics.RecordOperation(ctx, registryName, op, err == nil)
	if err == nil {
		return true
	}

	args := append([]any{"registry", registryName, "operation", op, "window_id", windowID, "error", err}, attrs...)
	switch {
	case errors.Is(err, registry.ErrRecordNotFound),
		errors.Is(err, registry.ErrRecordExists),
		errors.Is(err, vault.ErrNoVaultsFound),
		errors.Is(err, vault.ErrVaultNotFound),
		errors.Is(err, vault.ErrVaultExists),
		errors.Is(err, mcpserver.ErrInvalidClientConfig),
		errors.Is(err, filtering.ErrInvalidPattern):
		slog.WarnContext(ctx, "Registry operation rejected", args...)
	default:
		slog.ErrorContext(ctx, "Registry operation failed", args...)
	}
	return false
}
