package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taxwizard/tax-estimator/internal/domain"
	"github.com/taxwizard/tax-estimator/internal/output"
	"github.com/taxwizard/tax-estimator/internal/store"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [result-id]",
		Short: "List saved results, or show one in full",
		Long: `History lists results saved with --save, newest first. Given a result id it
renders that saved report in the chosen format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}
	cmd.Flags().IntP("limit", "n", 20, "Number of results to list (0 for all)")
	cmd.Flags().StringP("format", "f", "console", "Output format when showing one result")
	cmd.Flags().String("delete", "", "Delete the result with this id")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dbPath(cmd))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if id, _ := cmd.Flags().GetString("delete"); id != "" {
		if err := st.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s\n", id)
		return nil
	}

	if len(args) == 1 {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return err
		}
		f, err := output.ResolveFormatter(format)
		if err != nil {
			return err
		}
		report, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return output.Render(out, f, output.NewReportSet([]*domain.Report{report}, nil))
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	records, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "No saved results in %s\n", st.Path())
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSAVED\tTAXPAYER\tYEAR\tSTATUS\tTAX DUE\tREFUND\tOWED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.TaxpayerName,
			r.TaxYear,
			r.FilingStatus,
			output.FormatCurrencyGrouped(r.TaxDue),
			output.FormatCurrencyGrouped(r.RefundAmount),
			output.FormatCurrencyGrouped(r.AmountOwed),
		)
	}
	return w.Flush()
}
