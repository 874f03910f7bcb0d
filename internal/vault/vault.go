// Package vault resolves which vault a window is working in and keeps the catalog of
// known vaults.
package vault

import (
	"context"
	"errors"
	"path/filepath"
	"time"
)

// MetadataDirName is the directory inside every vault that holds registry documents
const MetadataDirName = ".vault"

var (
	// ErrNoVaultsFound is returned when no vault is known at all
	ErrNoVaultsFound = errors.New("no vaults found")
	// ErrVaultNotFound is returned when a vault id is not in the catalog
	ErrVaultNotFound = errors.New("vault not found")
	// ErrVaultExists is returned when adding a path that is already a vault
	ErrVaultExists = errors.New("vault already exists")
)

// Vault is a directory tree registered as a workspace
type Vault struct {
	ID        string     `json:"id"`
	Path      string     `json:"path"`
	Name      string     `json:"name,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// MetadataDir returns the vault's metadata directory
func (v Vault) MetadataDir() string {
	return filepath.Join(v.Path, MetadataDirName)
}

// DisplayName returns the vault name, falling back to the last path element
func (v Vault) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return filepath.Base(v.Path)
}

// Source enumerates known vaults. The order of the returned slice is significant:
// the first vault is the fallback for windows without an active vault.
//
//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/stacklok/vault-mcp-registry/internal/vault Source
type Source interface {
	GetVaults(ctx context.Context) ([]Vault, error)
}

// StaticSource is a Source over a fixed list of vaults
type StaticSource []Vault

// GetVaults returns a copy of the list
func (s StaticSource) GetVaults(_ context.Context) ([]Vault, error) {
	out := make([]Vault, len(s))
	copy(out, s)
	return out, nil
}
