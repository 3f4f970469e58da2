package types

import (
	"fmt"
	"strings"
)

// Management agent values understood by the directory service.
const (
	AgentMDM          = "mdm"
	AgentEAS          = "eas"
	AgentCoManagement = "configurationManagerClientMdm"
)

// DeviceFilter restricts which device records a query returns. The
// zero value matches everything; ForMDM is the filter this tool runs
// with by default.
type DeviceFilter struct {
	ManagementAgent string `json:"management_agent,omitempty" yaml:"management_agent,omitempty"`
	ComplianceState string `json:"compliance_state,omitempty" yaml:"compliance_state,omitempty"`
	OperatingSystem string `json:"operating_system,omitempty" yaml:"operating_system,omitempty"`
}

// ForMDM returns the filter for fully MDM-managed devices.
func ForMDM() DeviceFilter {
	return DeviceFilter{ManagementAgent: AgentMDM}
}

// IsEmpty reports whether the filter matches all devices.
func (f DeviceFilter) IsEmpty() bool {
	return f.ManagementAgent == "" && f.ComplianceState == "" && f.OperatingSystem == ""
}

// Expression renders the filter as an OData $filter predicate, e.g.
// "managementAgent eq 'mdm'". Empty filters render to "".
func (f DeviceFilter) Expression() string {
	var clauses []string
	if f.ManagementAgent != "" {
		clauses = append(clauses, odataEq("managementAgent", f.ManagementAgent))
	}
	if f.ComplianceState != "" {
		clauses = append(clauses, odataEq("complianceState", f.ComplianceState))
	}
	if f.OperatingSystem != "" {
		clauses = append(clauses, odataEq("operatingSystem", f.OperatingSystem))
	}
	return strings.Join(clauses, " and ")
}

// Matches checks a device against the filter client-side. The service
// applies the predicate server-side; this exists so fetch results can
// be verified in tests and defends against lax backends.
func (f DeviceFilter) Matches(d Device) bool {
	if f.ManagementAgent != "" && d.ManagementAgent != f.ManagementAgent {
		return false
	}
	if f.ComplianceState != "" && d.ComplianceState != f.ComplianceState {
		return false
	}
	if f.OperatingSystem != "" && d.OperatingSystem != f.OperatingSystem {
		return false
	}
	return true
}

func odataEq(field, value string) string {
	// Single quotes in OData string literals are escaped by doubling.
	return fmt.Sprintf("%s eq '%s'", field, strings.ReplaceAll(value, "'", "''"))
}
