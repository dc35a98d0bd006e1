package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taxwizard/tax-estimator/internal/calculation"
)

// NewTablesCmd creates the tables command.
func NewTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the active tax tables as YAML",
		Long: `Tables prints the thresholds the calculator will use: the built-in tables, or
the result of merging --tables over them. The output is a complete override
file that can be edited for another tax year.`,
		Args: cobra.NoArgs,
		RunE: runTablesCmd,
	}
	cmd.Flags().String("tables", "", "Tax table override YAML to merge over the defaults")
	return cmd
}

func runTablesCmd(cmd *cobra.Command, _ []string) error {
	calc, err := newCalculator(cmd, calculation.NopLogger{})
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(calc.Tables.Config())
	if err != nil {
		return fmt.Errorf("failed to encode tax tables: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
