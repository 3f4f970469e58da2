package types

import "time"

// Device represents one managed device as returned by the directory
// service for a single tenant.
type Device struct {
	ID              string    `json:"id"`
	Name            string    `json:"device_name"`
	OperatingSystem string    `json:"operating_system"`
	OSVersion       string    `json:"os_version"`
	Manufacturer    string    `json:"manufacturer"`
	Model           string    `json:"model"`
	ManagementAgent string    `json:"management_agent"`
	ComplianceState string    `json:"compliance_state"`
	LastCheckIn     time.Time `json:"last_check_in"`
}

// TenantDevice is a Device tagged with the tenant it was fetched under.
// This is the unit stored in the run accumulator.
type TenantDevice struct {
	Tenant string `json:"tenant"`
	Device
}

// Valid reports whether the device carries the fields required for
// inventory output. Records failing this are rejected at the API
// boundary rather than passed through half-empty.
func (d *Device) Valid() bool {
	return d.ID != "" && d.ManagementAgent != ""
}

// IsMDM reports whether the device is fully managed via MDM, as opposed
// to co-management, Exchange ActiveSync or another agent.
func (d *Device) IsMDM() bool {
	return d.ManagementAgent == AgentMDM
}

// Tag attaches a tenant identifier to a batch of devices, preserving
// fetch order.
func Tag(tenant string, devices []Device) []TenantDevice {
	tagged := make([]TenantDevice, 0, len(devices))
	for _, d := range devices {
		tagged = append(tagged, TenantDevice{Tenant: tenant, Device: d})
	}
	return tagged
}
