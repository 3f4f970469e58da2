// Package inventory is the orchestration core: it walks an ordered
// tenant list, runs each tenant through its own authenticate-fetch-
// normalize cycle, accumulates the tagged device records, and derives
// the per-tenant summary.
package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/LinuxLinusDE/MS-365/directory"
	"github.com/LinuxLinusDE/MS-365/telemetry"
	"github.com/LinuxLinusDE/MS-365/types"
)

// Runner folds the tenant list into one RunResult. Tenants are
// processed strictly in order and one at a time: each requires an
// interactive sign-in, and concurrent operator prompts would be
// indistinguishable.
type Runner struct {
	processor *Processor
	logger    *telemetry.Logger
}

// NewRunner creates a runner over the given device source
func NewRunner(source directory.DeviceSource, filter types.DeviceFilter) *Runner {
	return &Runner{
		processor: NewProcessor(source, filter),
		logger:    telemetry.NewLogger("inventory"),
	}
}

// Run processes every tenant and returns the accumulated result. It
// never fails as a whole: tenant-scoped failures are recorded in the
// outcomes and the loop continues. The accumulator is append-only;
// insertion order is tenant order, then fetch order within a tenant.
func (r *Runner) Run(ctx context.Context, tenants []string) *RunResult {
	result := &RunResult{StartTime: time.Now()}

	ctx, span := telemetry.Tracer.Start(ctx, "inventory.run",
		trace.WithAttributes(attribute.Int("tenants.count", len(tenants))),
	)
	defer span.End()

	for i, tenant := range tenants {
		r.logger.LogTenantStart(ctx, tenant, i+1, len(tenants))

		devices, outcome := r.processor.ProcessTenant(ctx, tenant)
		result.Devices = append(result.Devices, devices...)
		result.Outcomes = append(result.Outcomes, outcome)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	telemetry.RecordRunTotal(ctx, len(result.Devices))
	r.logger.WithContext(ctx).Info().
		Int("tenants", len(tenants)).
		Int("failed", result.FailedTenants()).
		Int("devices", len(result.Devices)).
		Dur("duration", result.Duration).
		Msg("inventory run complete")

	return result
}
