package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/buildinfo"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of taxcalc.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc version %s\n", buildinfo.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildinfo.Commit())
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildinfo.Date())
		},
	}
}
