package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/buildinfo"
)

// Environment variables read by the CLI. Either may come from a .env file.
const (
	envDBPath   = "TAXCALC_DB"
	envLogLevel = "TAXCALC_LOG_LEVEL"
)

// NewRootCmd creates the root command for taxcalc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxcalc",
		Short: "Federal income tax estimator",
		Long: `taxcalc estimates federal income tax, credits and the resulting refund or
balance due for a return described in YAML.

Credits are computed automatically unless a value is entered by hand in the
return's credits section. Results can be saved to a local history database.`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("db", "", "Results database path (default $"+envDBPath+" or the XDG data directory)")

	cmd.AddCommand(NewCalculateCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewTablesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
