package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// MarkdownFormatter renders a GitHub-flavored markdown report with a credit pie chart
// and an alert for the refund or balance due.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Federal Income Tax Estimate")
	md.PlainText("")
	if len(set.Reports) > 1 {
		writeMarkdownBatch(md, AnalyzeReports(set.Reports))
	}
	for _, r := range set.Reports {
		if r == nil {
			continue
		}
		writeMarkdownReturn(md, r)
	}

	assumptions := set.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	md.H2("Assumptions")
	md.PlainText("")
	md.BulletList(assumptions...)
	md.PlainText("")

	if err := md.Build(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMarkdownBatch(md *markdown.Markdown, s BatchSummary) {
	md.H2("Batch Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Returns", "Refunds", "Balances Due", "Total Tax Due", "Total Refunds", "Total Owed"},
		Rows: [][]string{{
			fmt.Sprint(s.Returns),
			fmt.Sprint(s.Refunds),
			fmt.Sprint(s.Balances),
			FormatCurrencyGrouped(s.TotalTaxDue),
			FormatCurrencyGrouped(s.TotalRefunds),
			FormatCurrencyGrouped(s.TotalOwed),
		}},
	})
	md.PlainText("")
}

func writeMarkdownReturn(md *markdown.Markdown, r *domain.Report) {
	res := r.Results
	md.H2(displayName(r))
	md.PlainText("")
	md.PlainTextf("Tax year %d, %s", r.TaxYear, r.FilingStatus.Label())
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Line", "Amount"},
		Rows: [][]string{
			{"Total income", FormatCurrencyGrouped(res.TotalIncome)},
			{"Adjustments", FormatCurrencyGrouped(res.Adjustments)},
			{"Adjusted gross income", FormatCurrencyGrouped(res.AdjustedGrossIncome)},
			{deductionLabel(r.Deductions), FormatCurrencyGrouped(res.Deductions)},
			{"Taxable income", FormatCurrencyGrouped(res.TaxableIncome)},
			{fmt.Sprintf("Federal tax (%s bracket)", FormatRate(r.MarginalRate)), FormatCurrencyGrouped(res.FederalTax)},
			{"Credits", FormatCurrencyGrouped(res.Credits)},
			{"Tax due", FormatCurrencyGrouped(res.TaxDue)},
			{"Payments", FormatCurrencyGrouped(res.Payments)},
		},
	})
	md.PlainText("")

	md.H3("Credits")
	md.PlainText("")
	rows := make([][]string, 0, 6)
	for _, l := range creditLines(r) {
		rows = append(rows, []string{l.Label, FormatCurrencyGrouped(l.Value.Applied()), l.Source(), l.Detail})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Credit", "Amount", "Source", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
	if res.Credits.IsPositive() {
		writeCreditPieChart(md, r)
	}

	switch {
	case res.IsRefund():
		md.Tip(fmt.Sprintf("Estimated refund of %s.", FormatCurrencyGrouped(res.RefundAmount)))
	case res.AmountOwed.IsPositive():
		md.Warningf("Estimated balance due of %s.", FormatCurrencyGrouped(res.AmountOwed))
	default:
		md.Note("Payments exactly cover the tax due.")
	}
	md.PlainText("")
}

// writeCreditPieChart writes a mermaid pie chart of the credits in whole dollars.
func writeCreditPieChart(md *markdown.Markdown, r *domain.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Credits Applied"),
		piechart.WithShowData(true),
	)
	for _, l := range creditLines(r) {
		dollars := l.Value.Applied().Round(0).IntPart()
		if dollars > 0 {
			chart.LabelAndIntValue(l.Label, uint64(dollars))
		}
	}
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func deductionLabel(d domain.DeductionBreakdown) string {
	if d.UseStandard {
		return "Standard deduction"
	}
	return "Itemized deductions"
}
