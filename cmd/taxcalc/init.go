package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/config"
)

// defaultReturnFile is written when init is given no path.
const defaultReturnFile = "tax_return.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write an example tax return to start from",
		Long: `Init writes a filled-in example return (a married couple with two children
and a dependent parent) that can be edited and passed to calculate.

Examples:
  taxcalc init
  taxcalc init returns/2024.yaml -f`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInitCmd,
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	return cmd
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	path := defaultReturnFile
	if len(args) == 1 {
		path = args[0]
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	parser := config.NewInputParser()
	if err := parser.SaveReturn(parser.CreateExampleReturn(), path); err != nil {
		return fmt.Errorf("failed to write example return: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Example return written to %s\n", path)
	return nil
}
