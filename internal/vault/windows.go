package vault

import (
	"fmt"
	"maps"
	"sync"
)

// Windows maps UI window identifiers to the id of the vault active in that window.
// It is owned by whoever builds the Resolver and shared by reference.
type Windows struct {
	mu     sync.RWMutex
	active map[string]string
}

// NewWindows creates an empty window association table
func NewWindows() *Windows {
	return &Windows{
		active: make(map[string]string),
	}
}

// Set makes vaultID the active vault of windowID
func (w *Windows) Set(windowID, vaultID string) error {
	if windowID == "" {
		return fmt.Errorf("window id cannot be empty")
	}
	if vaultID == "" {
		return fmt.Errorf("vault id cannot be empty")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.active[windowID] = vaultID
	return nil
}

// Get returns the vault id associated with windowID
func (w *Windows) Get(windowID string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	vaultID, ok := w.active[windowID]
	return vaultID, ok
}

// Clear drops the association of windowID
func (w *Windows) Clear(windowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.active, windowID)
}

// ClearVault drops every association pointing at vaultID and returns how many were removed
func (w *Windows) ClearVault(vaultID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for windowID, id := range w.active {
		if id == vaultID {
			delete(w.active, windowID)
			removed++
		}
	}
	return removed
}

// List returns a snapshot of all associations
func (w *Windows) List() map[string]string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return maps.Clone(w.active)
}

// ActiveVaultFor looks up the vault associated with windowID among vaults.
// An association to a vault that is no longer in the list is treated as absent.
func (w *Windows) ActiveVaultFor(windowID string, vaults []Vault) (Vault, bool) {
	vaultID, ok := w.Get(windowID)
	if !ok {
		return Vault{}, false
	}
	for _, v := range vaults {
		if v.ID == vaultID {
			return v, true
		}
	}
	return Vault{}, false
}
