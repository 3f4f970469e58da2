package inventory

import "github.com/LinuxLinusDE/MS-365/types"

// Summarize groups the accumulated devices by tenant and returns one
// count row per tenant, ordered by first appearance. It is a pure
// function: the input is never mutated and repeated calls yield
// identical rows. Tenants that contributed no records get no row at
// all, whether they failed outright or simply matched nothing.
func Summarize(devices []types.TenantDevice) []TenantCount {
	counts := make(map[string]int, len(devices))
	var order []string

	for _, d := range devices {
		if _, seen := counts[d.Tenant]; !seen {
			order = append(order, d.Tenant)
		}
		counts[d.Tenant]++
	}

	rows := make([]TenantCount, 0, len(order))
	for _, name := range order {
		rows = append(rows, TenantCount{Name: name, Count: counts[name]})
	}
	return rows
}
