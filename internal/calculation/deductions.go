package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

// DeductionCalculator chooses between the standard deduction and the itemized total
type DeductionCalculator struct {
	Tables *TaxTables
	Logger Logger
}

// NewDeductionCalculator creates a deduction calculator over the given tables
func NewDeductionCalculator(tables *TaxTables) *DeductionCalculator {
	return &DeductionCalculator{Tables: tables, Logger: NopLogger{}}
}

// ComputeDeductionTotal returns the deduction that applies to the return.
// With useStandard set, the itemized values are ignored but left untouched.
// A nil itemized record counts as all zero.
func (dc *DeductionCalculator) ComputeDeductionTotal(useStandard bool, status domain.FilingStatus, itemized *domain.ItemizedDeductions, other []domain.OtherDeductionItem) decimal.Decimal {
	return dc.Breakdown(useStandard, status, itemized, other).Applied
}

// SALTTotal returns state and local taxes after the cap
func (dc *DeductionCalculator) SALTTotal(status domain.FilingStatus, itemized *domain.ItemizedDeductions) decimal.Decimal {
	return money.Min(saltUncapped(itemized), dc.Tables.SALTCap(status))
}

// ItemizedTotal returns the Schedule A total including the other deduction items
func (dc *DeductionCalculator) ItemizedTotal(status domain.FilingStatus, itemized *domain.ItemizedDeductions, other []domain.OtherDeductionItem) decimal.Decimal {
	total := dc.SALTTotal(status, itemized).Add(otherItemsTotal(other))
	if itemized != nil {
		total = total.Add(money.SumNonNegative(
			itemized.MedicalExpenses,
			itemized.MortgageInterest,
			itemized.CharitableCash,
			itemized.CharitableNonCash,
		))
	}
	return total
}

// Breakdown computes every intermediate figure behind the applied deduction
func (dc *DeductionCalculator) Breakdown(useStandard bool, status domain.FilingStatus, itemized *domain.ItemizedDeductions, other []domain.OtherDeductionItem) domain.DeductionBreakdown {
	b := domain.DeductionBreakdown{
		UseStandard:       useStandard,
		StandardDeduction: dc.Tables.StandardDeduction(status),
		SALTUncapped:      saltUncapped(itemized),
		SALTTotal:         dc.SALTTotal(status, itemized),
		OtherItemsTotal:   otherItemsTotal(other),
		ItemizedTotal:     dc.ItemizedTotal(status, itemized, other),
	}
	if itemized != nil {
		entered := *itemized
		b.Itemized = &entered
	}
	if len(other) > 0 {
		b.OtherItems = append([]domain.OtherDeductionItem(nil), other...)
	}
	if useStandard {
		b.Applied = b.StandardDeduction
	} else {
		b.Applied = b.ItemizedTotal
	}
	if b.SALTUncapped.GreaterThan(b.SALTTotal) {
		dc.Logger.Debugf("SALT capped: %s -> %s", b.SALTUncapped.StringFixed(2), b.SALTTotal.StringFixed(2))
	}
	dc.Logger.Debugf("deduction (%s, standard=%t): %s", status, useStandard, b.Applied.StringFixed(2))
	return b
}

func saltUncapped(itemized *domain.ItemizedDeductions) decimal.Decimal {
	if itemized == nil {
		return decimal.Zero
	}
	return money.SumNonNegative(itemized.StateLocalIncomeTax, itemized.RealEstateTaxes, itemized.PersonalPropertyTax)
}

func otherItemsTotal(items []domain.OtherDeductionItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(money.NonNegative(item.Amount))
	}
	return total
}
