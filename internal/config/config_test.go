package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vault-mcp-registry/internal/registry"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    *Config
		wantErr string
	}{
		{
			name: "full configuration",
			yaml: `
dataDir: /var/lib/vault-registry
vaults:
  - path: /home/me/notes
    name: Notes
  - path: /home/me/work
registry:
  collisionPolicy: reject
  fileLock: true
  renameTries: 3
  summaryConcurrency: 2
http:
  address: 127.0.0.1:9090
telemetry:
  enabled: true
  metrics:
    enabled: true
    exporters: [prometheus]
`,
			want: &Config{
				DataDir: "/var/lib/vault-registry",
				Vaults: []VaultConfig{
					{Path: "/home/me/notes", Name: "Notes"},
					{Path: "/home/me/work"},
				},
				Registry: RegistryConfig{
					CollisionPolicy:    "reject",
					FileLock:           true,
					RenameTries:        3,
					SummaryConcurrency: 2,
				},
				HTTP:     HTTPConfig{Address: "127.0.0.1:9090"},
				Telemetry: &telemetry.Config{
					Enabled: true,
					Metrics: &telemetry.MetricsConfig{Enabled: true, Exporters: []string{"prometheus"}},
				},
			},
		},
		{
			name: "empty file",
			yaml: ``,
			want: &Config{},
		},
		{
			name:    "invalid yaml",
			yaml:    "vaults: [",
			wantErr: "failed to parse YAML config",
		},
		{
			name:    "unknown collision policy",
			yaml:    "registry:\n  collisionPolicy: merge\n",
			wantErr: "unknown collision policy",
		},
		{
			name:    "negative summary concurrency",
			yaml:    "registry:\n  summaryConcurrency: -1\n",
			wantErr: "summaryConcurrency must not be negative",
		},
		{
			name:    "vault without path",
			yaml:    "vaults:\n  - name: x\n",
			wantErr: "vaults[0]: path is required",
		},
		{
			name:    "duplicate vault path",
			yaml:    "vaults:\n  - path: /a\n  - path: /a/\n",
			wantErr: "vaults[1]: duplicate path",
		},
		{
			name:    "invalid telemetry",
			yaml:    "telemetry:\n  enabled: true\n  tracing:\n    enabled: true\n    sampling: 2\n",
			wantErr: "telemetry: tracing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig(WithConfigPath(writeConfig(t, tt.yaml)))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg.DataHome, AppName), cfg.GetDataDir())
	assert.Equal(t, DefaultAddress, cfg.HTTP.GetAddress())
	assert.Equal(t, registry.CollisionOverwrite, cfg.Registry.GetCollisionPolicy())
	assert.False(t, cfg.Registry.FileLock)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to evaluate symlinks")
}

func TestWithConfigPath(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		require.Error(t, WithConfigPath("")(&loaderConfig{}))
	})

	t.Run("symlink is resolved", func(t *testing.T) {
		t.Parallel()
		target := writeConfig(t, "http:\n  address: :1\n")
		link := filepath.Join(t.TempDir(), "link.yaml")
		require.NoError(t, os.Symlink(target, link))

		lc := &loaderConfig{}
		require.NoError(t, WithConfigPath(link)(lc))
		resolved, err := filepath.EvalSymlinks(target)
		require.NoError(t, err)
		assert.Equal(t, resolved, lc.path)
	})
}

func TestGetters(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		DataDir:  "/data",
		HTTP:     HTTPConfig{Address: ":9000"},
		Registry: RegistryConfig{CollisionPolicy: "reject"},
	}
	assert.Equal(t, "/data", cfg.GetDataDir())
	assert.Equal(t, ":9000", cfg.HTTP.GetAddress())
	assert.Equal(t, registry.CollisionReject, cfg.Registry.GetCollisionPolicy())
}
