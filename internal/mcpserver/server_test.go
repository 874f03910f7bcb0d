package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/vault"
)

func newTestRegistry(t *testing.T) (*Registry, vault.Vault) {
	t.Helper()
	v := vault.Vault{ID: "v1", Path: t.TempDir()}
	resolver := vault.NewResolver(vault.StaticSource{v}, nil)
	return NewRegistry(resolver), v
}

func TestRegistry_FileLayout(t *testing.T) {
	t.Parallel()

	reg, v := newTestRegistry(t)
	ctx := context.Background()

	added, err := reg.Add(ctx, Server{Name: "x"}, "")
	require.NoError(t, err)

	path := filepath.Join(v.Path, ".vault", "mcp-servers-registry.json")
	assert.Equal(t, path, reg.Path(v))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]map[string]map[string]any{
		"servers": {added.ID: {"id": added.ID, "name": "x"}},
	}, doc)
}

func TestRegistry_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	servers, err := reg.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, map[string]Server{}, servers)
}

func TestRegistry_RejectsUnknownTransport(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	_, err := reg.Add(context.Background(), Server{Name: "x", Transport: "carrier-pigeon"}, "")
	require.Error(t, err)

	servers, err := reg.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, servers)
}

func TestRegistry_FullDefinitionRoundTrips(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	in := Server{
		ID:          "github",
		Name:        "GitHub",
		Description: "GitHub tools",
		Transport:   TransportStdio,
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-github"},
		Env:         map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
		Disabled:    true,
	}
	_, err := reg.Add(ctx, in, "")
	require.NoError(t, err)

	got, err := reg.Get(ctx, "github", "")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestRegistry_UpdateUnknownServer(t *testing.T) {
	t.Parallel()

	reg, _ := newTestRegistry(t)
	_, err := reg.Update(context.Background(), "missing", Server{Name: "y"}, "")
	require.ErrorIs(t, err, ErrServerNotFound)
	require.ErrorIs(t, err, registry.ErrRecordNotFound)
}

func TestRegistry_FailedMutationLeavesVaultUntouched(t *testing.T) {
	t.Parallel()

	reg, v := newTestRegistry(t)
	ctx := context.Background()

	require.ErrorIs(t, reg.Remove(ctx, "nope", ""), registry.ErrRecordNotFound)
	_, err := reg.Update(ctx, "nope", Server{Name: "y"}, "")
	require.ErrorIs(t, err, registry.ErrRecordNotFound)

	assert.NoDirExists(t, filepath.Join(v.Path, ".vault"))
}

func TestServer_EffectiveTransportAndTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		server        Server
		wantTransport string
		wantTarget    string
	}{
		{
			name:          "command implies stdio",
			server:        Server{Command: "npx", Args: []string{"-y", "pkg"}},
			wantTransport: TransportStdio,
			wantTarget:    "npx -y pkg",
		},
		{
			name:          "url implies streamable http",
			server:        Server{URL: "https://mcp.example.com"},
			wantTransport: TransportStreamableHTTP,
			wantTarget:    "https://mcp.example.com",
		},
		{
			name:          "declared transport wins",
			server:        Server{Transport: TransportSSE, URL: "http://localhost:3000/sse", Command: "ignored"},
			wantTransport: TransportSSE,
			wantTarget:    "http://localhost:3000/sse",
		},
		{
			name: "nothing set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantTransport, tt.server.EffectiveTransport())
			assert.Equal(t, tt.wantTarget, tt.server.Target())
		})
	}
}

func TestRegistry_RewriteKeepsUndeclaredFields(t *testing.T) {
	t.Parallel()

	reg, v := newTestRegistry(t)
	ctx := context.Background()

	path := reg.Path(v)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(`{"servers": {
		"a": {"id": "a", "name": "keep", "cwd": "/srv", "timeout": 30},
		"b": {"id": "b", "name": "gone"}
	}}`), 0o600))

	require.NoError(t, reg.Remove(ctx, "b", ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"servers": {"a": {"id": "a", "name": "keep", "cwd": "/srv", "timeout": 30}}}`, string(data))

	got, err := reg.Get(ctx, "a", "")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"/srv"`), got.Extra["cwd"])
}

func TestServer_JSONExtraFields(t *testing.T) {
	t.Parallel()

	var s Server
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","command":"uvx","Name":"x","retries":[1,2]}`), &s))
	assert.Equal(t, "x", s.Name, "declared fields match case-insensitively")
	assert.Equal(t, registry.Extra{"retries": json.RawMessage(`[1,2]`)}, s.Extra)

	s.Extra["command"] = json.RawMessage(`"ignored"`)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","name":"x","command":"uvx","retries":[1,2]}`, string(data))

	var plain Server
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b"}`), &plain))
	assert.Nil(t, plain.Extra)
}
