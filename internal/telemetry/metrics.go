package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RegistryMetricsMeterName is the name used for the registry metrics meter
const RegistryMetricsMeterName = "github.com/stacklok/vault-mcp-registry/registry"

// Operation outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// RegistryMetrics holds the instruments describing registry usage.
// A nil *RegistryMetrics records nothing.
type RegistryMetrics struct {
	operations   metric.Int64Counter
	recordsTotal metric.Int64Gauge
}

// NewRegistryMetrics creates the registry instruments. A nil provider yields nil metrics.
func NewRegistryMetrics(provider metric.MeterProvider) (*RegistryMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(RegistryMetricsMeterName)

	operations, err := meter.Int64Counter(
		"vault_registry_operations",
		metric.WithDescription("Registry operations by registry, operation and outcome"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	recordsTotal, err := meter.Int64Gauge(
		"vault_registry_records_total",
		metric.WithDescription("Number of records in a registry of a vault"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	return &RegistryMetrics{
		operations:   operations,
		recordsTotal: recordsTotal,
	}, nil
}

// RecordOperation counts one registry operation
func (m *RegistryMetrics) RecordOperation(ctx context.Context, registryName, operation string, success bool) {
	if m == nil || m.operations == nil {
		return
	}

	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}

	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registryName),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordRecordsTotal records the number of records a registry holds in a vault
func (m *RegistryMetrics) RecordRecordsTotal(ctx context.Context, registryName, vaultID string, count int64) {
	if m == nil || m.recordsTotal == nil {
		return
	}

	m.recordsTotal.Record(ctx, count, metric.WithAttributes(
		attribute.String("registry", registryName),
		attribute.String("vault", vaultID),
	))
}
