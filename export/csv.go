// Package export writes the run's outputs as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/LinuxLinusDE/MS-365/inventory"
	"github.com/LinuxLinusDE/MS-365/types"
)

// Column headers for the full device list
var deviceHeader = []string{
	"Tenant",
	"DeviceId",
	"DeviceName",
	"OperatingSystem",
	"OsVersion",
	"Manufacturer",
	"Model",
	"ManagementAgent",
	"ComplianceState",
	"LastCheckInDateTime",
}

// WriteDevices writes one row per accumulated device. A write failure
// here is fatal to the run: there is nothing to recover into.
func WriteDevices(path string, devices []types.TenantDevice) error {
	rows := make([][]string, 0, len(devices)+1)
	rows = append(rows, deviceHeader)
	for _, d := range devices {
		rows = append(rows, deviceRow(d))
	}
	return writeFile(path, rows)
}

// WriteSummary writes one row per tenant that contributed records
func WriteSummary(path string, summary []inventory.TenantCount) error {
	rows := make([][]string, 0, len(summary)+1)
	rows = append(rows, []string{"Name", "Count"})
	for _, row := range summary {
		rows = append(rows, []string{row.Name, strconv.Itoa(row.Count)})
	}
	return writeFile(path, rows)
}

func deviceRow(d types.TenantDevice) []string {
	lastCheckIn := ""
	if !d.LastCheckIn.IsZero() {
		lastCheckIn = d.LastCheckIn.Format(time.RFC3339)
	}
	return []string{
		d.Tenant,
		d.ID,
		d.Name,
		d.OperatingSystem,
		d.OSVersion,
		d.Manufacturer,
		d.Model,
		d.ManagementAgent,
		d.ComplianceState,
		lastCheckIn,
	}
}

func writeFile(path string, rows [][]string) error {
	f, err := os.Create(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
