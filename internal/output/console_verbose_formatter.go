package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "FEDERAL INCOME TAX ESTIMATE")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := set.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, r := range set.Reports {
		if r == nil {
			continue
		}
		writeReturnDetail(&buf, i+1, r)
	}

	if len(set.Reports) > 1 {
		writeBatchTotals(&buf, AnalyzeReports(set.Reports))
	}
	return buf.Bytes(), nil
}

func writeReturnDetail(w io.Writer, n int, r *domain.Report) {
	res := r.Results
	fmt.Fprintf(w, "RETURN %d: %s\n", n, displayName(r))
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Tax Year: %d    Filing Status: %s\n", r.TaxYear, r.FilingStatus.Label())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "INCOME:")
	amountLine(w, "Total Income", res.TotalIncome)
	amountLine(w, "Adjustments", res.Adjustments.Neg())
	amountLine(w, "ADJUSTED GROSS INCOME", res.AdjustedGrossIncome)
	fmt.Fprintln(w)

	d := r.Deductions
	method := "itemized"
	if d.UseStandard {
		method = "standard"
	}
	fmt.Fprintf(w, "DEDUCTIONS (%s):\n", method)
	amountLine(w, "Standard Deduction", d.StandardDeduction)
	if d.Itemized != nil {
		amountLine(w, "  Medical Expenses", d.Itemized.MedicalExpenses)
		amountLine(w, "  State & Local Taxes", d.SALTUncapped)
		if !d.SALTTotal.Equal(d.SALTUncapped) {
			amountLine(w, "  SALT After Cap", d.SALTTotal)
		}
		amountLine(w, "  Mortgage Interest", d.Itemized.MortgageInterest)
		amountLine(w, "  Charitable (cash)", d.Itemized.CharitableCash)
		amountLine(w, "  Charitable (non-cash)", d.Itemized.CharitableNonCash)
	}
	for _, item := range d.OtherItems {
		amountLine(w, "  "+HumanizeKey(item.Type), item.Amount)
	}
	amountLine(w, "Itemized Total", d.ItemizedTotal)
	amountLine(w, "DEDUCTION APPLIED", d.Applied)
	amountLine(w, "TAXABLE INCOME", res.TaxableIncome)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TAX & CREDITS:")
	amountLine(w, fmt.Sprintf("Federal Tax (%s bracket)", FormatRate(r.MarginalRate)), res.FederalTax)
	for _, l := range creditLines(r) {
		if l.Value.Applied().IsZero() && !l.Value.IsOverride() {
			continue
		}
		fmt.Fprintf(w, "  %-34s %16s  [%s] %s\n", l.Label, FormatCurrencyGrouped(l.Value.Applied().Neg()), l.Source(), l.Detail)
	}
	amountLine(w, "Total Credits", res.Credits.Neg())
	amountLine(w, "TAX DUE", res.TaxDue)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PAYMENTS & RESULT:")
	amountLine(w, "Total Payments", res.Payments)
	switch {
	case res.IsRefund():
		amountLine(w, "REFUND", res.RefundAmount)
	case res.AmountOwed.IsPositive():
		amountLine(w, "AMOUNT OWED", res.AmountOwed)
	default:
		fmt.Fprintln(w, "  Payments exactly cover the tax due.")
	}
	fmt.Fprintf(w, "  %-34s %16s\n", "Effective Rate (of AGI)", FormatPercentage(res.EffectiveRate()))
	fmt.Fprintln(w)
}

func writeBatchTotals(w io.Writer, s BatchSummary) {
	fmt.Fprintln(w, "BATCH TOTALS")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "  Returns: %d (refunds: %d, balances due: %d)\n", s.Returns, s.Refunds, s.Balances)
	amountLine(w, "Total Tax Due", s.TotalTaxDue)
	amountLine(w, "Total Refunds", s.TotalRefunds)
	amountLine(w, "Total Owed", s.TotalOwed)
	if s.LargestRefund != nil {
		fmt.Fprintf(w, "  Largest refund: %s (%s)\n", displayName(s.LargestRefund), FormatCurrencyGrouped(s.LargestRefund.Results.RefundAmount))
	}
	if s.LargestBalance != nil {
		fmt.Fprintf(w, "  Largest balance due: %s (%s)\n", displayName(s.LargestBalance), FormatCurrencyGrouped(s.LargestBalance.Results.AmountOwed))
	}
}

func amountLine(w io.Writer, label string, amount decimal.Decimal) {
	fmt.Fprintf(w, "  %-34s %16s\n", label+":", FormatCurrencyGrouped(amount))
}
