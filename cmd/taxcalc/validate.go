package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/config"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <return.yaml>",
		Short: "Check a return (and optionally a tax table file) for problems",
		Long: `Validate lists every problem found in a return: unknown filing status,
negative amounts, dependents born after the tax year, and similar. The
calculate command tolerates these unless --strict is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidateCmd,
	}
	cmd.Flags().String("tables", "", "Also validate this tax table override YAML")
	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	out := cmd.OutOrStdout()

	if tablesPath, _ := cmd.Flags().GetString("tables"); tablesPath != "" {
		if _, err := parser.LoadTablesFromFile(tablesPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s: tax tables are valid\n", tablesPath)
	}

	ret, err := parser.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	issues := parser.ValidationIssues(ret)
	if len(issues) == 0 {
		fmt.Fprintf(out, "✓ %s: return is valid\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "✗ %s: %d problem(s)\n", args[0], len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s\n", issue)
	}
	return fmt.Errorf("%w: %d problem(s) in %s", config.ErrInvalidReturn, len(issues), args[0])
}
