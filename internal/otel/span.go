// Package otel provides OpenTelemetry tracing helpers shared by the registry packages.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Attribute keys used on registry spans
const (
	AttrRegistryName = attribute.Key("registry.name")
	AttrVaultID      = attribute.Key("vault.id")
	AttrWindowID     = attribute.Key("window.id")
	AttrRecordID     = attribute.Key("record.id")
	AttrResultCount  = attribute.Key("result.count")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise it returns a no-op
// span so callers can always defer span.End().
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, noop.Span{}
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records err on span and marks the span as failed.
// The status description stays generic; details are kept in the span event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
