package conversation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

func newTestRegistry(t *testing.T, now time.Time) (*Registry, vault.Vault) {
	t.Helper()
	v := vault.Vault{ID: "v1", Path: t.TempDir()}
	reg := NewRegistry(vault.NewResolver(vault.StaticSource{v}, nil))
	reg.now = func() time.Time { return now }
	return reg, v
}

func TestRegistry_AddStampsTimes(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg, v := newTestRegistry(t, created)
	ctx := context.Background()

	added, err := reg.Add(ctx, Conversation{Title: "Planning"}, "")
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)
	require.NotNil(t, added.CreatedAt)
	assert.True(t, created.Equal(*added.CreatedAt))
	assert.True(t, created.Equal(*added.UpdatedAt))

	assert.Equal(t, filepath.Join(v.Path, ".vault", "conversations-registry.json"), reg.Path(v))

	got, err := reg.Get(ctx, added.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Planning", got.Title)
	assert.True(t, created.Equal(*got.CreatedAt))
}

func TestRegistry_UpdateRefreshesUpdatedAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg, _ := newTestRegistry(t, created)
	ctx := context.Background()

	added, err := reg.Add(ctx, Conversation{ID: "c1", Title: "Planning"}, "")
	require.NoError(t, err)

	later := created.Add(time.Hour)
	reg.now = func() time.Time { return later }

	updated, err := reg.Update(ctx, "c1", Conversation{
		Title:     "Planning (done)",
		CreatedAt: added.CreatedAt,
		Archived:  true,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "c1", updated.ID)
	assert.True(t, later.Equal(*updated.UpdatedAt))
	assert.True(t, created.Equal(*updated.CreatedAt))
	assert.True(t, updated.Archived)
}

func TestRegistry_UpdateMissing(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, time.Now())
	_, err := reg.Update(context.Background(), "missing", Conversation{Title: "x"}, "")
	require.ErrorIs(t, err, registry.ErrRecordNotFound)
}

func TestRegistry_RemoveAndList(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t, time.Now())
	ctx := context.Background()

	_, err := reg.Add(ctx, Conversation{ID: "a"}, "")
	require.NoError(t, err)
	_, err = reg.Add(ctx, Conversation{ID: "b"}, "")
	require.NoError(t, err)

	require.NoError(t, reg.Remove(ctx, "a", ""))
	require.ErrorIs(t, reg.Remove(ctx, "a", ""), registry.ErrRecordNotFound)

	all, err := reg.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, all, "b")
}

func TestRegistry_UpdateKeepsUndeclaredFields(t *testing.T) {
	t.Parallel()

	reg, v := newTestRegistry(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	path := reg.Path(v)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(
		`{"conversations": {"a": {"id": "a", "title": "old", "pinned": true}, "b": {"id": "b", "tokens": 120}}}`), 0o600))

	existing, err := reg.Get(ctx, "a", "")
	require.NoError(t, err)
	existing.Title = "new"
	_, err = reg.Update(ctx, "a", existing, "")
	require.NoError(t, err)

	all, err := reg.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "new", all["a"].Title)
	assert.JSONEq(t, `true`, string(all["a"].Extra["pinned"]))
	assert.JSONEq(t, `120`, string(all["b"].Extra["tokens"]))
}
