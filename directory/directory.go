package directory

import (
	"context"
	"fmt"

	"github.com/LinuxLinusDE/MS-365/types"
)

// Session is a live, tenant-scoped authenticated context. It is owned
// exclusively by whoever acquired it and must be released exactly once;
// at most one session is live per process at any time.
type Session interface {
	Tenant() string
}

// DeviceSource exposes the directory service's device inventory for
// one tenant at a time.
type DeviceSource interface {
	// AcquireSession establishes a session for the tenant. This blocks
	// on the operator completing the interactive sign-in, so it can
	// fail or time out for reasons outside the program's control.
	AcquireSession(ctx context.Context, tenant string) (Session, error)

	// ReleaseSession invalidates the session. Idempotent; safe on nil.
	ReleaseSession(s Session)

	// FetchDevices returns every device matching the filter, following
	// pagination until the result set is exhausted. An empty slice with
	// a nil error means zero matching devices. On error no partial
	// records are returned.
	FetchDevices(ctx context.Context, s Session, filter types.DeviceFilter) ([]types.Device, error)

	// Source info
	Name() string
}

// SourceConfig holds source configuration
type SourceConfig struct {
	ClientID string
	Scopes   []string
}

// SourceFactory creates a device source instance
type SourceFactory func(config SourceConfig) (DeviceSource, error)

// Registry of available sources
var sources = make(map[string]SourceFactory)

// RegisterSource registers a new source factory
func RegisterSource(name string, factory SourceFactory) {
	sources[name] = factory
}

// GetSource creates a source instance by name. An unknown name is fatal
// to the run: it means the backing implementation is not linked in.
func GetSource(name string, config SourceConfig) (DeviceSource, error) {
	factory, exists := sources[name]
	if !exists {
		return nil, fmt.Errorf("device source %s not available", name)
	}
	return factory(config)
}

// ListSources returns available source names
func ListSources() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	return names
}
