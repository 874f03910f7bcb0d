package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/vault-mcp-registry/internal/api"
	"github.com/stacklok/vault-mcp-registry/internal/mcpserver"
	"github.com/stacklok/vault-mcp-registry/internal/service/mocks"
)

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))

	rr := do(t, api.NewServer(mockSvc), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())
}

func TestReadinessEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "ready", wantStatus: http.StatusOK, wantBody: `{"status":"ready"}`},
		{
			name:       "not ready",
			err:        errors.New("catalog unreadable"),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"service not ready: catalog unreadable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))
			mockSvc.EXPECT().CheckReadiness(gomock.Any()).Return(tt.err)

			rr := do(t, api.NewServer(mockSvc), http.MethodGet, "/readiness")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestVersionEndpoint(t *testing.T) {
	t.Parallel()
	mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))

	rr := do(t, api.NewServer(mockSvc), http.MethodGet, "/version")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"go_version"`)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))

	rr := do(t, api.NewServer(mockSvc), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("vault_registry_operations_total 1\n"))
	})
	rr = do(t, api.NewServer(mockSvc, api.WithMetricsHandler(metrics)), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "vault_registry_operations_total")
}

func TestServer_MountsV1AndMiddlewares(t *testing.T) {
	t.Parallel()
	mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))
	mockSvc.EXPECT().GetMcpServers(gomock.Any(), "").Return(map[string]mcpserver.Server{})

	var seen []string
	record := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	server := api.NewServer(mockSvc, api.WithMiddlewares(record, api.LoggingMiddleware))
	rr := do(t, server, http.MethodGet, "/api/v1/mcp-servers")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())
	assert.Equal(t, []string{"/api/v1/mcp-servers"}, seen)
}

func TestMCPEndpoint(t *testing.T) {
	t.Parallel()
	mockSvc := mocks.NewMockRegistryService(gomock.NewController(t))

	rr := do(t, api.NewServer(mockSvc), http.MethodPost, "/mcp")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	mcp := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	rr = do(t, api.NewServer(mockSvc, api.WithMCPHandler(mcp)), http.MethodPost, "/mcp")
	assert.Equal(t, http.StatusAccepted, rr.Code)
}
