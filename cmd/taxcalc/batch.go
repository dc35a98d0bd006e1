package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/calculation"
	"github.com/taxwizard/tax-estimator/internal/config"
	"github.com/taxwizard/tax-estimator/internal/domain"
	"github.com/taxwizard/tax-estimator/internal/output"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <return.yaml>...",
		Short: "Calculate many returns concurrently",
		Long: `Batch calculates every return given on the command line and renders them in
one report, in the order given. A return that fails to load is reported and
skipped; the command exits with an error if any return failed.

Examples:
  taxcalc batch clients/*.yaml --format csv --out summary.csv
  taxcalc batch a.yaml b.yaml --concurrency 8 --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatchCmd,
	}
	addOutputFlags(cmd, "console-lite")
	cmd.Flags().IntP("concurrency", "c", calculation.DefaultConcurrency, "Returns calculated at once")
	return cmd
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	if err := checkFormat(cmd); err != nil {
		return err
	}
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
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

	sources := make([]calculation.ReturnSource, len(args))
	for i, path := range args {
		sources[i] = config.NewFileSource(path, parser)
	}

	results, err := calc.RunBatch(cmd.Context(), sources, sink, concurrency)
	if err != nil {
		return err
	}

	reports := make([]*domain.Report, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[r.Index], r.Err)
			continue
		}
		reports = append(reports, r.Report)
	}

	if len(reports) > 0 {
		set := output.NewReportSet(reports, output.GenerateAssumptions(calc.Tables.Config()))
		if err := writeReports(cmd, set); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d returns failed", failed, len(args))
	}
	return nil
}
