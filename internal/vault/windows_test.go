package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindows_SetGetClear(t *testing.T) {
	t.Parallel()

	w := NewWindows()

	require.Error(t, w.Set("", "v1"))
	require.Error(t, w.Set("w1", ""))

	require.NoError(t, w.Set("w1", "v1"))
	require.NoError(t, w.Set("w2", "v1"))
	require.NoError(t, w.Set("w3", "v2"))

	got, ok := w.Get("w1")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	w.Clear("w1")
	_, ok = w.Get("w1")
	assert.False(t, ok)

	assert.Equal(t, 1, w.ClearVault("v1"))
	assert.Equal(t, map[string]string{"w3": "v2"}, w.List())
}

func TestWindows_ListIsSnapshot(t *testing.T) {
	t.Parallel()

	w := NewWindows()
	require.NoError(t, w.Set("w1", "v1"))

	snapshot := w.List()
	snapshot["w1"] = "changed"

	got, _ := w.Get("w1")
	assert.Equal(t, "v1", got)
}

func TestWindows_ActiveVaultFor(t *testing.T) {
	t.Parallel()

	vaults := []Vault{{ID: "v1", Path: "/a"}, {ID: "v2", Path: "/b"}}
	w := NewWindows()
	require.NoError(t, w.Set("w1", "v2"))
	require.NoError(t, w.Set("stale", "gone"))

	got, ok := w.ActiveVaultFor("w1", vaults)
	require.True(t, ok)
	assert.Equal(t, "v2", got.ID)

	_, ok = w.ActiveVaultFor("stale", vaults)
	assert.False(t, ok)

	_, ok = w.ActiveVaultFor("unknown", vaults)
	assert.False(t, ok)
}
