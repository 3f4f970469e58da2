package main

import (
	"github.com/spf13/cobra"
)

var (
	inventoryDevicesOut string
	inventorySummaryOut string
	inventoryAgent      string
)

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory MDM-managed devices across all configured tenants",
	Long: `Run the full inventory: for every tenant in the config, in order,
sign in with a device code, fetch all devices matching the filter
(managementAgent eq 'mdm' by default), and export two CSV files:
the consolidated device list and the per-tenant count summary.

Each tenant needs its own interactive sign-in, so tenants are
processed one at a time.`,
	Example: `  ms365 inventory                          # Use paths from ms365.yaml
  ms365 inventory --devices-out all.csv    # Override device list path
  ms365 inventory --agent eas              # Inventory EAS-enrolled devices`,
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)

	inventoryCmd.Flags().StringVar(&inventoryDevicesOut, "devices-out", "", "Device list CSV path (overrides config)")
	inventoryCmd.Flags().StringVar(&inventorySummaryOut, "summary-out", "", "Summary CSV path (overrides config)")
	inventoryCmd.Flags().StringVar(&inventoryAgent, "agent", "", "Management agent to filter on (overrides config)")
}

func runInventory(cmd *cobra.Command, args []string) error {
	command := &InventoryCommand{
		ConfigPath: configPath,
		DevicesOut: inventoryDevicesOut,
		SummaryOut: inventorySummaryOut,
		Agent:      inventoryAgent,
	}
	return command.Run(cmd.Context())
}
