package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// newCollector starts a stand-in OTLP collector that accepts every export
func newCollector(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return strings.TrimPrefix(server.URL, "http://")
}

func TestNew_NoOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{name: "no config"},
		{name: "disabled", opts: []Option{WithTelemetryConfig(&Config{Enabled: false})}},
		{name: "tracing and metrics disabled", opts: []Option{WithTelemetryConfig(&Config{
			Enabled: true,
			Tracing: &TracingConfig{Enabled: false},
			Metrics: &MetricsConfig{Enabled: false},
		})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			tel, err := New(ctx, tt.opts...)
			require.NoError(t, err)

			_, ok := tel.TracerProvider().(tracenoop.TracerProvider)
			assert.True(t, ok, "expected no-op tracer provider")
			_, ok = tel.MeterProvider().(metricnoop.MeterProvider)
			assert.True(t, ok, "expected no-op meter provider")
			assert.Nil(t, tel.MetricsHandler())
			assert.NotNil(t, tel.Tracer("test"))

			require.NoError(t, tel.Shutdown(ctx))
			require.NoError(t, tel.Shutdown(ctx))
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), WithTelemetryConfig(&Config{
		Enabled: true,
		Tracing: &TracingConfig{Enabled: true, Sampling: 1.5},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid telemetry configuration")
}

func TestNew_SDKProviders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tel, err := New(ctx, WithTelemetryConfig(&Config{
		Enabled:  true,
		Endpoint: newCollector(t),
		Insecure: true,
		Tracing:  &TracingConfig{Enabled: true, Sampling: 1},
		Metrics:  &MetricsConfig{Enabled: true},
	}))
	require.NoError(t, err)

	_, ok := tel.TracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "expected SDK tracer provider")
	_, ok = tel.MeterProvider().(*sdkmetric.MeterProvider)
	assert.True(t, ok, "expected SDK meter provider")
	assert.Nil(t, tel.MetricsHandler(), "prometheus is not enabled")

	require.NoError(t, tel.Shutdown(ctx))
}

func TestNew_PrometheusHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tel, err := New(ctx, WithTelemetryConfig(&Config{
		Enabled: true,
		Metrics: &MetricsConfig{Enabled: true, Exporters: []string{ExporterPrometheus}},
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(ctx) })

	handler := tel.MetricsHandler()
	require.NotNil(t, handler)

	metrics, err := NewRegistryMetrics(tel.MeterProvider())
	require.NoError(t, err)
	metrics.RecordOperation(ctx, "mcp-servers", "add", true)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vault_registry_operations")
	assert.Contains(t, string(body), `registry="mcp-servers"`)
}
