package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// CSVSummarizer writes one row of headline figures per return.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

var summaryHeader = []string{
	"ReturnID", "Taxpayer", "TaxYear", "FilingStatus",
	"TotalIncome", "Adjustments", "AGI", "Deductions", "TaxableIncome",
	"FederalTax", "Credits", "TaxDue", "Payments", "Refund", "AmountOwed", "EffectiveRate",
}

func (c CSVSummarizer) Format(set *domain.ReportSet) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}
	for _, r := range set.Reports {
		if r == nil {
			continue
		}
		res := r.Results
		row := []string{
			r.ReturnID,
			r.TaxpayerName,
			strconv.Itoa(r.TaxYear),
			string(r.FilingStatus),
			res.TotalIncome.StringFixed(2),
			res.Adjustments.StringFixed(2),
			res.AdjustedGrossIncome.StringFixed(2),
			res.Deductions.StringFixed(2),
			res.TaxableIncome.StringFixed(2),
			res.FederalTax.StringFixed(2),
			res.Credits.StringFixed(2),
			res.TaxDue.StringFixed(2),
			res.Payments.StringFixed(2),
			res.RefundAmount.StringFixed(2),
			res.AmountOwed.StringFixed(2),
			res.EffectiveRate().StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
