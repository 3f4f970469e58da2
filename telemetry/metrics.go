package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RecordTenant records per-tenant run metrics. No-op until InitOTEL has
// created the instruments; telemetry is optional for this tool.
func RecordTenant(ctx context.Context, tenant string, devices int, seconds float64, failed bool) {
	if DevicesFetched == nil || TenantDuration == nil || TenantFailures == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("tenant", tenant))
	DevicesFetched.Add(ctx, int64(devices), attrs)
	TenantDuration.Record(ctx, seconds, attrs)
	if failed {
		TenantFailures.Add(ctx, 1, attrs)
	}
}

// RecordRunTotal records the accumulator size at the end of a run.
func RecordRunTotal(ctx context.Context, devices int) {
	if RunDevicesTotal == nil {
		return
	}
	RunDevicesTotal.Record(ctx, int64(devices))
}
