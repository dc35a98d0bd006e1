package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/calculation"
	"github.com/taxwizard/tax-estimator/internal/config"
	"github.com/taxwizard/tax-estimator/internal/domain"
	"github.com/taxwizard/tax-estimator/internal/output"
	"github.com/taxwizard/tax-estimator/internal/store"
)

// addOutputFlags registers the flags shared by commands that render reports.
func addOutputFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().StringP("format", "f", defaultFormat,
		fmt.Sprintf("Output format: %v", output.AvailableFormatterNames()))
	cmd.Flags().StringP("out", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().String("report-dir", "", "Write a timestamped report file into this directory (format \"all\" writes several)")
	cmd.Flags().String("tables", "", "Tax table override YAML")
	cmd.Flags().Bool("strict", false, "Reject returns that fail validation")
	cmd.Flags().Bool("save", false, "Save results to the history database")
}

// newCalculator builds a calculator from the built-in tables or the --tables override.
func newCalculator(cmd *cobra.Command, logger calculation.Logger) (*calculation.Calculator, error) {
	tablesPath, err := cmd.Flags().GetString("tables")
	if err != nil {
		return nil, err
	}

	calc := calculation.NewCalculator()
	if tablesPath != "" {
		cfg, err := config.NewInputParser().LoadTablesFromFile(tablesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load tax tables: %w", err)
		}
		calc = calculation.NewCalculatorWithConfig(cfg)
	}
	calc.SetLogger(logger)
	return calc, nil
}

// newParser returns a strict parser when --strict is set.
func newParser(cmd *cobra.Command) (*config.InputParser, error) {
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}
	if strict {
		return config.NewStrictInputParser(), nil
	}
	return config.NewInputParser(), nil
}

// dbPath resolves --db, then TAXCALC_DB, then the XDG default.
func dbPath(cmd *cobra.Command) string {
	if p, err := cmd.Flags().GetString("db"); err == nil && p != "" {
		return p
	}
	if p := os.Getenv(envDBPath); p != "" {
		return p
	}
	return store.DefaultPath()
}

// openSink opens the history database when --save is set. The returned close func is never nil.
func openSink(cmd *cobra.Command) (calculation.ResultSink, func(), error) {
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return nil, func() {}, err
	}
	if !save {
		return nil, func() {}, nil
	}
	st, err := store.Open(dbPath(cmd))
	if err != nil {
		return nil, func() {}, err
	}
	return st, func() { _ = st.Close() }, nil
}

// writeReports renders the set according to --format, --out and --report-dir.
func writeReports(cmd *cobra.Command, set *domain.ReportSet) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	reportDir, err := cmd.Flags().GetString("report-dir")
	if err != nil {
		return err
	}

	if reportDir != "" {
		if err := os.MkdirAll(reportDir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
		written, err := output.GenerateReport(set, format, reportDir)
		for _, name := range written {
			fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", name)
		}
		return err
	}

	f, err := output.ResolveFormatter(format)
	if err != nil {
		return err
	}
	if outPath == "" {
		return output.Render(cmd.OutOrStdout(), f, set)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if err := output.Render(file, f, set); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outPath)
	return nil
}

// checkFormat fails fast on an unknown --format before any work is done.
func checkFormat(cmd *cobra.Command) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if output.NormalizeFormatName(format) == "all" {
		if dir, _ := cmd.Flags().GetString("report-dir"); dir != "" {
			return nil
		}
		return fmt.Errorf("format \"all\" requires --report-dir")
	}
	_, err = output.ResolveFormatter(format)
	return err
}
