package output

import (
	"bytes"
	"fmt"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// ConsoleFormatter provides a concise one-line-per-return summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "TAX ESTIMATE SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, r := range sortedReports(set.Reports) {
		res := r.Results
		outcome := "Balanced"
		switch {
		case res.IsRefund():
			outcome = "Refund=" + FormatCurrency(res.RefundAmount)
		case res.AmountOwed.IsPositive():
			outcome = "Owed=" + FormatCurrency(res.AmountOwed)
		}
		fmt.Fprintf(&buf, "%s (%s): AGI=%s Taxable=%s Tax=%s Credits=%s Due=%s %s\n",
			displayName(r),
			r.FilingStatus,
			FormatCurrency(res.AdjustedGrossIncome),
			FormatCurrency(res.TaxableIncome),
			FormatCurrency(res.FederalTax),
			FormatCurrency(res.Credits),
			FormatCurrency(res.TaxDue),
			outcome,
		)
	}
	if len(set.Reports) > 1 {
		s := AnalyzeReports(set.Reports)
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Total: %d returns, refunds %s, owed %s (net %s)\n",
			s.Returns, FormatCurrency(s.TotalRefunds), FormatCurrency(s.TotalOwed), FormatCurrency(s.Net()))
	}
	return buf.Bytes(), nil
}
