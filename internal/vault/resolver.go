package vault

import (
	"context"
	"fmt"
	"log/slog"
)

// Resolver picks the vault a registry operation runs against
type Resolver struct {
	source  Source
	windows *Windows
}

// NewResolver creates a Resolver. A nil windows table gets a fresh, empty one.
func NewResolver(source Source, windows *Windows) *Resolver {
	if windows == nil {
		windows = NewWindows()
	}
	return &Resolver{
		source:  source,
		windows: windows,
	}
}

// Windows returns the window association table used by the resolver
func (r *Resolver) Windows() *Windows {
	return r.windows
}

// ResolveActiveVault returns the active vault of windowID, or the first known vault when
// windowID is empty or has no (valid) association. It fails only when no vault exists
// or the source cannot be read.
func (r *Resolver) ResolveActiveVault(ctx context.Context, windowID string) (Vault, error) {
	vaults, err := r.source.GetVaults(ctx)
	if err != nil {
		return Vault{}, fmt.Errorf("failed to list vaults: %w", err)
	}
	if len(vaults) == 0 {
		return Vault{}, ErrNoVaultsFound
	}

	if windowID != "" {
		if v, ok := r.windows.ActiveVaultFor(windowID, vaults); ok {
			return v, nil
		}
		slog.DebugContext(ctx, "No active vault for window, using first vault",
			"window_id", windowID,
			"vault_id", vaults[0].ID,
		)
	}

	return vaults[0], nil
}
