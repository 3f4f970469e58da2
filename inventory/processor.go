package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LinuxLinusDE/MS-365/directory"
	"github.com/LinuxLinusDE/MS-365/telemetry"
	"github.com/LinuxLinusDE/MS-365/types"
)

// Processor drives one tenant end to end: acquire a session, fetch the
// filtered device set, tag records with the tenant, release the session.
type Processor struct {
	source directory.DeviceSource
	filter types.DeviceFilter
	logger *telemetry.Logger
}

// NewProcessor creates a processor for the given source and filter
func NewProcessor(source directory.DeviceSource, filter types.DeviceFilter) *Processor {
	return &Processor{
		source: source,
		filter: filter,
		logger: telemetry.NewLogger("inventory"),
	}
}

// ProcessTenant runs one tenant through authenticate → fetch →
// normalize. Failures end up in the returned outcome, never in a panic
// or a returned error: a broken tenant must not stop the run. The
// session, once acquired, is released before this function returns, so
// the next tenant always starts with no session live.
func (p *Processor) ProcessTenant(ctx context.Context, tenant string) ([]types.TenantDevice, TenantOutcome) {
	start := time.Now()
	ctx, span := telemetry.Tracer.Start(ctx, "inventory.tenant",
		trace.WithAttributes(attribute.String("tenant", tenant)),
	)
	defer span.End()

	outcome := TenantOutcome{Tenant: tenant}

	session, err := p.source.AcquireSession(ctx, tenant)
	if err != nil {
		outcome.Failure = &Failure{Tenant: tenant, Kind: FailureAuth, Err: err}
		outcome.Duration = time.Since(start)
		p.logger.LogTenantFailure(ctx, tenant, "authenticating", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "authentication failed")
		telemetry.RecordTenant(ctx, tenant, 0, outcome.Duration.Seconds(), true)
		return nil, outcome
	}
	// Release must run even when the fetch fails, and before the next
	// tenant authenticates.
	defer p.source.ReleaseSession(session)

	raw, err := p.source.FetchDevices(ctx, session, p.filter)
	if err != nil {
		outcome.Failure = &Failure{Tenant: tenant, Kind: FailureQuery, Err: err}
		outcome.Duration = time.Since(start)
		p.logger.LogTenantFailure(ctx, tenant, "fetching", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "device fetch failed")
		telemetry.RecordTenant(ctx, tenant, 0, outcome.Duration.Seconds(), true)
		return nil, outcome
	}

	tagged := types.Tag(tenant, raw)
	outcome.Count = len(tagged)
	outcome.Duration = time.Since(start)

	p.logger.LogTenantComplete(ctx, tenant, outcome.Count, float64(outcome.Duration.Milliseconds()))
	span.SetAttributes(attribute.Int("devices.count", outcome.Count))
	span.SetStatus(codes.Ok, "tenant complete")
	telemetry.RecordTenant(ctx, tenant, outcome.Count, outcome.Duration.Seconds(), false)

	return tagged, outcome
}
