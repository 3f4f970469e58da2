package inventory

import (
	"time"

	"github.com/LinuxLinusDE/MS-365/types"
)

// RunResult contains the results of one full inventory run
type RunResult struct {
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time"`
	Duration  time.Duration        `json:"duration"`
	Devices   []types.TenantDevice `json:"devices"`
	Outcomes  []TenantOutcome      `json:"outcomes"`
}

// FailedTenants counts tenants that produced a recorded failure
func (r *RunResult) FailedTenants() int {
	failed := 0
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed++
		}
	}
	return failed
}

// TenantOutcome is the terminal state of one tenant: either a
// non-negative device count or a recorded failure. A zero count with a
// nil Failure means the tenant was queried and matched nothing, which
// is distinct from not being queryable at all.
type TenantOutcome struct {
	Tenant   string        `json:"tenant"`
	Count    int           `json:"count"`
	Duration time.Duration `json:"duration"`
	Failure  *Failure      `json:"failure,omitempty"`
}

// Failed reports whether the tenant ended in the failure state
func (o TenantOutcome) Failed() bool {
	return o.Failure != nil
}

// TenantCount is one row of the per-tenant summary
type TenantCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
