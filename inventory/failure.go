package inventory

import "fmt"

// FailureKind classifies tenant-scoped failures
type FailureKind string

const (
	// FailureAuth means no session could be established for the tenant
	FailureAuth FailureKind = "auth"
	// FailureQuery means the session was valid but device retrieval failed
	FailureQuery FailureKind = "query"
)

// Failure is a tenant-scoped, non-fatal failure. The run records it and
// moves on to the next tenant.
type Failure struct {
	Tenant string      `json:"tenant"`
	Kind   FailureKind `json:"kind"`
	Err    error       `json:"-"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("tenant %s: %s failure: %v", f.Tenant, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}
