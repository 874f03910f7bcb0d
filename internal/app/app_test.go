package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/vault-mcp-registry/internal/config"
	"github.com/stacklok/vault-mcp-registry/internal/telemetry"
)

// startTestApp serves a fully wired app on a random local port
func startTestApp(t *testing.T, cfg *config.Config) (*RegistryApp, string) {
	t.Helper()

	app, err := NewRegistryApp(context.Background(), WithConfig(cfg))
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Serve(ln) }()

	t.Cleanup(func() {
		assert.NoError(t, app.Stop(5*time.Second))
		assert.NoError(t, <-serveErr)
	})

	return app, "http://" + ln.Addr().String()
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec,noctx // test server URL
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRegistryApp_ServeAndStop(t *testing.T) {
	t.Parallel()

	vaultDir := t.TempDir()
	cfg := &config.Config{
		DataDir: t.TempDir(),
		Vaults:  []config.VaultConfig{{Path: vaultDir, Name: "Notes"}},
	}
	app, baseURL := startTestApp(t, cfg)
	assert.Same(t, cfg, app.GetConfig())
	require.NotNil(t, app.GetComponents())

	status, body := get(t, baseURL+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy"}`, body)

	status, _ = get(t, baseURL+"/readiness")
	assert.Equal(t, http.StatusOK, status)

	status, body = get(t, baseURL+"/api/v1/vaults")
	require.Equal(t, http.StatusOK, status)
	var vaults []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &vaults))
	require.Len(t, vaults, 1)
	assert.Equal(t, "Notes", vaults[0]["name"])

	status, body = get(t, baseURL+"/api/v1/mcp-servers")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{}`, body)

	// Prometheus is not enabled
	status, _ = get(t, baseURL+"/metrics")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRegistryApp_PrometheusMetrics(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		DataDir: t.TempDir(),
		Vaults:  []config.VaultConfig{{Path: t.TempDir()}},
		Telemetry: &telemetry.Config{
			Enabled: true,
			Metrics: &telemetry.MetricsConfig{
				Enabled:   true,
				Exporters: []string{telemetry.ExporterPrometheus},
			},
		},
	}
	_, baseURL := startTestApp(t, cfg)

	status, _ := get(t, baseURL+"/api/v1/mcp-servers")
	require.Equal(t, http.StatusOK, status)

	status, body := get(t, baseURL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "vault_registry_operations_total")
	assert.Contains(t, body, "vault_registry_http_requests_total")
}

func TestRegistryApp_StartFailsOnBusyAddress(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	app, err := NewRegistryApp(context.Background(),
		WithConfig(&config.Config{DataDir: t.TempDir()}),
		WithAddress(ln.Addr().String()),
	)
	require.NoError(t, err)

	err = app.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to listen on %s", ln.Addr().String()))
	assert.NoError(t, app.Stop(time.Second))
}

func TestRegistryApp_MCPEndpoint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := &config.Config{
		DataDir: t.TempDir(),
		Vaults:  []config.VaultConfig{{Path: t.TempDir()}},
	}
	_, baseURL := startTestApp(t, cfg)

	c, err := client.NewStreamableHttpClient(baseURL + "/mcp")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test", Version: "1.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	req := mcp.CallToolRequest{}
	req.Params.Name = "add_mcp_server"
	req.Params.Arguments = map[string]any{"name": "github", "command": "npx"}
	res, err := c.CallTool(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	status, body := get(t, baseURL+"/api/v1/mcp-servers")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"name":"github"`)
}
