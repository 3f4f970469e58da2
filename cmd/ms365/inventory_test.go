package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LinuxLinusDE/MS-365/config"
	"github.com/LinuxLinusDE/MS-365/directory"
	"github.com/LinuxLinusDE/MS-365/types"
)

// stubSource serves canned devices per tenant
type stubSource struct {
	devices map[string][]types.Device
	authErr map[string]error
}

type stubSession struct{ tenant string }

func (s *stubSession) Tenant() string { return s.tenant }

func (f *stubSource) Name() string { return "stub" }

func (f *stubSource) AcquireSession(ctx context.Context, tenant string) (directory.Session, error) {
	if err := f.authErr[tenant]; err != nil {
		return nil, err
	}
	return &stubSession{tenant: tenant}, nil
}

func (f *stubSource) ReleaseSession(s directory.Session) {}

func (f *stubSource) FetchDevices(ctx context.Context, s directory.Session, filter types.DeviceFilter) ([]types.Device, error) {
	return f.devices[s.Tenant()], nil
}

func writeTestConfig(t *testing.T, dir, source string) string {
	t.Helper()
	path := filepath.Join(dir, "ms365.yaml")
	content := fmt.Sprintf(`
version: v1
source: %s
tenants:
  - a.com
  - b.com
auth:
  client_id: client-1
output:
  devices_file: %s
  summary_file: %s
`, source, filepath.Join(dir, "devices.csv"), filepath.Join(dir, "summary.csv"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestInventoryCommand_Run(t *testing.T) {
	directory.RegisterSource("stub-ok", func(cfg directory.SourceConfig) (directory.DeviceSource, error) {
		return &stubSource{
			devices: map[string][]types.Device{
				"a.com": {
					{ID: "d-1", Name: "laptop-1", ManagementAgent: types.AgentMDM},
					{ID: "d-2", Name: "laptop-2", ManagementAgent: types.AgentMDM},
				},
			},
			authErr: map[string]error{"b.com": errors.New("sign-in declined")},
		}, nil
	})

	dir := t.TempDir()
	cmd := &InventoryCommand{ConfigPath: writeTestConfig(t, dir, "stub-ok")}

	require.NoError(t, cmd.Run(context.Background()), "a failed tenant must not fail the run")

	devices := readRows(t, filepath.Join(dir, "devices.csv"))
	require.Len(t, devices, 3)
	assert.Equal(t, "a.com", devices[1][0])
	assert.Equal(t, "d-1", devices[1][1])

	summary := readRows(t, filepath.Join(dir, "summary.csv"))
	require.Len(t, summary, 2, "failed tenant gets no summary row")
	assert.Equal(t, []string{"a.com", "2"}, summary[1])
}

func TestInventoryCommand_Run_UnknownSource(t *testing.T) {
	dir := t.TempDir()
	cmd := &InventoryCommand{ConfigPath: writeTestConfig(t, dir, "no-such-source")}

	err := cmd.Run(context.Background())
	require.Error(t, err, "a missing source implementation is fatal")
	assert.Contains(t, err.Error(), "no-such-source")
}

func TestInventoryCommand_Run_ExportFailure(t *testing.T) {
	directory.RegisterSource("stub-empty", func(cfg directory.SourceConfig) (directory.DeviceSource, error) {
		return &stubSource{}, nil
	})

	dir := t.TempDir()
	cmd := &InventoryCommand{
		ConfigPath: writeTestConfig(t, dir, "stub-empty"),
		DevicesOut: filepath.Join(dir, "missing", "devices.csv"),
	}

	err := cmd.Run(context.Background())
	require.Error(t, err, "an unwritable output file is fatal")
	assert.Contains(t, err.Error(), "export")
}

func TestInventoryCommand_ApplyOverrides(t *testing.T) {
	cfg := &config.Config{}
	cfg.Output.DevicesFile = "from-config.csv"
	cfg.Filter = types.ForMDM()

	cmd := &InventoryCommand{DevicesOut: "from-flag.csv", Agent: types.AgentEAS}
	cmd.applyOverrides(cfg)

	assert.Equal(t, "from-flag.csv", cfg.Output.DevicesFile)
	assert.Equal(t, types.AgentEAS, cfg.Filter.ManagementAgent)
}
