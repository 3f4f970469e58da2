package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0"
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "ms365",
		Short: "Microsoft 365 multi-tenant device inventory",
		Long: `ms365 - Multi-tenant Intune device inventory

Walks a configured list of Microsoft 365 tenants, signs in to each one
interactively, fetches all MDM-managed devices via Microsoft Graph, and
exports a consolidated device list plus a per-tenant count summary.

One tenant failing to sign in or query never stops the run: the tool
records the failure and continues with the remaining tenants.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the root command
func init() {
	rootCmd.SetVersionTemplate(`ms365 {{.Version}} - Multi-tenant Intune device inventory
`)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ms365.yaml", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
