package output

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// BatchSummary aggregates the outcome of several returns.
type BatchSummary struct {
	Returns        int
	Refunds        int
	Balances       int
	TotalTaxDue    decimal.Decimal
	TotalRefunds   decimal.Decimal
	TotalOwed      decimal.Decimal
	LargestRefund  *domain.Report
	LargestBalance *domain.Report
}

// Net is refunds minus balances due across the batch.
func (s BatchSummary) Net() decimal.Decimal { return s.TotalRefunds.Sub(s.TotalOwed) }

// AnalyzeReports totals a batch and picks out the largest refund and balance due.
// Extracted from embedded console logic for testability.
func AnalyzeReports(reports []*domain.Report) BatchSummary {
	s := BatchSummary{}
	for _, r := range reports {
		if r == nil {
			continue
		}
		s.Returns++
		s.TotalTaxDue = s.TotalTaxDue.Add(r.Results.TaxDue)
		switch {
		case r.Results.RefundAmount.IsPositive():
			s.Refunds++
			s.TotalRefunds = s.TotalRefunds.Add(r.Results.RefundAmount)
			if s.LargestRefund == nil || r.Results.RefundAmount.GreaterThan(s.LargestRefund.Results.RefundAmount) {
				s.LargestRefund = r
			}
		case r.Results.AmountOwed.IsPositive():
			s.Balances++
			s.TotalOwed = s.TotalOwed.Add(r.Results.AmountOwed)
			if s.LargestBalance == nil || r.Results.AmountOwed.GreaterThan(s.LargestBalance.Results.AmountOwed) {
				s.LargestBalance = r
			}
		}
	}
	return s
}

// sortedReports returns the non-nil reports ordered by taxpayer name then return id.
func sortedReports(reports []*domain.Report) []*domain.Report {
	out := make([]*domain.Report, 0, len(reports))
	for _, r := range reports {
		if r != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TaxpayerName != out[j].TaxpayerName {
			return out[i].TaxpayerName < out[j].TaxpayerName
		}
		return out[i].ReturnID < out[j].ReturnID
	})
	return out
}

// displayName identifies a report in listings.
func displayName(r *domain.Report) string {
	switch {
	case r.TaxpayerName != "":
		return r.TaxpayerName
	case r.ReturnID != "":
		return r.ReturnID
	}
	return "Unnamed return"
}

// creditLine is one credit as rendered in a report.
type creditLine struct {
	Key    string
	Label  string
	Value  domain.CreditValue
	Detail string
}

// Source returns "auto" or "override"; a blank source reads as auto.
func (l creditLine) Source() string {
	if l.Value.Source == "" {
		return string(domain.CreditAuto)
	}
	return string(l.Value.Source)
}

// creditLines lists the credits of a report in form order with a short explanation of each
// automatically computed amount.
func creditLines(r *domain.Report) []creditLine {
	d := r.CreditDetail
	lines := []creditLine{
		{"child_tax_credit", "Child Tax Credit", r.Credits.ChildTaxCredit, fmt.Sprintf("%d qualifying children", d.QualifyingChildren)},
		{"credit_for_other_dependents", "Credit for Other Dependents", r.Credits.CreditForOtherDependents, fmt.Sprintf("%d other dependents", d.OtherDependents)},
		{"child_dependent_care_credit", "Child & Dependent Care Credit", r.Credits.ChildDependentCareCredit, fmt.Sprintf("%d persons at %s", d.CareQualifyingPersons, FormatRate(d.CareCreditRate))},
		{"education_credits", "Education Credits", r.Credits.EducationCredits, fmt.Sprintf("AOTC %s, LLC %s", FormatCurrencyGrouped(d.AOTC), FormatCurrencyGrouped(d.LLC))},
		{"retirement_savings_credit", "Retirement Savings Credit", r.Credits.RetirementSavingsCredit, fmt.Sprintf("rate %s", FormatRate(d.RetirementCreditRate))},
		{"other_credits", "Other Credits", r.Credits.OtherCredits, "as entered"},
	}
	for i := range lines {
		if lines[i].Value.IsOverride() {
			lines[i].Detail = "entered by hand"
		}
	}
	return lines
}
