package main

import (
	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/config"
	"github.com/taxwizard/tax-estimator/internal/domain"
	"github.com/taxwizard/tax-estimator/internal/output"
)

// NewCalculateCmd creates the calculate command.
func NewCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate <return.yaml>",
		Short: "Calculate federal tax for one return",
		Long: `Calculate reads a tax return from YAML, computes deductions, credits and
federal tax, and prints the refund or balance due.

Examples:
  # Detailed console report
  taxcalc calculate my_return.yaml

  # Markdown report saved to history
  taxcalc calculate my_return.yaml --format markdown --save

  # Use next year's thresholds
  taxcalc calculate my_return.yaml --tables tax_tables_2025.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runCalculateCmd,
	}
	addOutputFlags(cmd, "console")
	return cmd
}

func runCalculateCmd(cmd *cobra.Command, args []string) error {
	if err := checkFormat(cmd); err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	calc, err := newCalculator(cmd, logger)
	if err != nil {
		return err
	}
	parser, err := newParser(cmd)
	if err != nil {
		return err
	}
	sink, closeSink, err := openSink(cmd)
	if err != nil {
		return err
	}
	defer closeSink()

	report, err := calc.Run(cmd.Context(), config.NewFileSource(args[0], parser), sink)
	if err != nil {
		return err
	}

	set := output.NewReportSet([]*domain.Report{report}, output.GenerateAssumptions(calc.Tables.Config()))
	return writeReports(cmd, set)
}
