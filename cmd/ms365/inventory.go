package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/LinuxLinusDE/MS-365/config"
	"github.com/LinuxLinusDE/MS-365/directory"
	_ "github.com/LinuxLinusDE/MS-365/directory/graph" // Register Graph source
	"github.com/LinuxLinusDE/MS-365/export"
	"github.com/LinuxLinusDE/MS-365/inventory"
)

// InventoryCommand implements the 'ms365 inventory' command
type InventoryCommand struct {
	ConfigPath string
	DevicesOut string
	SummaryOut string
	Agent      string
}

// Run executes the inventory command
func (cmd *InventoryCommand) Run(ctx context.Context) error {
	cfg, err := config.LoadConfig(cmd.ConfigPath)
	if err != nil {
		return err
	}
	cmd.applyOverrides(cfg)

	if cfg.Telemetry.Enabled {
		shutdown := initTelemetry(ctx, cfg)
		defer shutdown()
	}

	source, err := directory.GetSource(cfg.Source, directory.SourceConfig{
		ClientID: cfg.Auth.ClientID,
		Scopes:   cfg.Auth.Scopes,
	})
	if err != nil {
		return fmt.Errorf("failed to create device source: %w", err)
	}

	fmt.Printf("Inventorying %d tenants (filter: %s)\n", len(cfg.Tenants), cfg.Filter.Expression())

	runner := inventory.NewRunner(source, cfg.Filter)
	result := runner.Run(ctx, cfg.Tenants)
	summary := inventory.Summarize(result.Devices)

	cmd.outputTable(result, summary)

	if err := export.WriteDevices(cfg.Output.DevicesFile, result.Devices); err != nil {
		return fmt.Errorf("failed to export device list: %w", err)
	}
	if err := export.WriteSummary(cfg.Output.SummaryFile, summary); err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}

	fmt.Printf("\nWrote %s (%d devices) and %s (%d tenants)\n",
		cfg.Output.DevicesFile, len(result.Devices),
		cfg.Output.SummaryFile, len(summary))

	return nil
}

// applyOverrides lets flags win over the config file
func (cmd *InventoryCommand) applyOverrides(cfg *config.Config) {
	if cmd.DevicesOut != "" {
		cfg.Output.DevicesFile = cmd.DevicesOut
	}
	if cmd.SummaryOut != "" {
		cfg.Output.SummaryFile = cmd.SummaryOut
	}
	if cmd.Agent != "" {
		cfg.Filter.ManagementAgent = cmd.Agent
	}
}

// outputTable prints the per-tenant results
func (cmd *InventoryCommand) outputTable(result *inventory.RunResult, summary []inventory.TenantCount) {
	fmt.Printf("\nInventory Summary:\n")
	fmt.Printf("   Tenants processed: %d\n", len(result.Outcomes))
	fmt.Printf("   Tenants failed: %d\n", result.FailedTenants())
	fmt.Printf("   Devices collected: %d\n", len(result.Devices))
	fmt.Printf("\n")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TENANT\tDEVICES\tSTATUS")
	_, _ = fmt.Fprintln(w, "------\t-------\t------")

	for _, outcome := range result.Outcomes {
		status := color.GreenString("ok")
		if outcome.Failed() {
			status = color.RedString("%s failed: %v", outcome.Failure.Kind, outcome.Failure.Err)
		} else if outcome.Count == 0 {
			status = "ok (no matching devices)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", outcome.Tenant, outcome.Count, status)
	}

	_ = w.Flush()

	if len(summary) == 0 {
		fmt.Println("\nNo tenant contributed devices.")
	}
}
