package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// CSVDetailedExporter writes every line item behind each return, one row per figure.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(set *domain.ReportSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"ReturnID", "Taxpayer", "Section", "Item", "Amount", "Source"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range set.Reports {
		if r == nil {
			continue
		}
		write := func(section, item string, amount decimal.Decimal, source string) error {
			return w.Write([]string{r.ReturnID, r.TaxpayerName, section, item, amount.StringFixed(2), source})
		}
		res := r.Results
		d := r.Deductions
		rows := []struct {
			section, item string
			amount        decimal.Decimal
		}{
			{"income", "total_income", res.TotalIncome},
			{"income", "adjustments", res.Adjustments},
			{"income", "adjusted_gross_income", res.AdjustedGrossIncome},
			{"deductions", "standard_deduction", d.StandardDeduction},
			{"deductions", "salt_uncapped", d.SALTUncapped},
			{"deductions", "salt_total", d.SALTTotal},
			{"deductions", "other_items_total", d.OtherItemsTotal},
			{"deductions", "itemized_total", d.ItemizedTotal},
			{"deductions", "applied", d.Applied},
			{"tax", "taxable_income", res.TaxableIncome},
			{"tax", "federal_tax", res.FederalTax},
		}
		for _, row := range rows {
			if err := write(row.section, row.item, row.amount, ""); err != nil {
				return nil, err
			}
		}
		for _, l := range creditLines(r) {
			if err := write("credits", l.Key, l.Value.Applied(), l.Source()); err != nil {
				return nil, err
			}
		}
		tail := []struct {
			section, item string
			amount        decimal.Decimal
		}{
			{"credits", "total", res.Credits},
			{"result", "tax_due", res.TaxDue},
			{"result", "payments", res.Payments},
			{"result", "refund_amount", res.RefundAmount},
			{"result", "amount_owed", res.AmountOwed},
		}
		for _, row := range tail {
			if err := write(row.section, row.item, row.amount, ""); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
