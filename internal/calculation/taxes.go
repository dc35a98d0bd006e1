package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal Tax Brackets: ordinary rates from the configured bracket table for the
//    return's filing status. Capital gains are taxed as ordinary income.
//
// 2. No alternative minimum tax, self-employment tax or net investment income tax.
//
// 3. Credits are non-refundable: tax due never drops below zero.

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Tables *TaxTables
}

// NewFederalTaxCalculator2024 creates a federal tax calculator on the 2024 brackets
func NewFederalTaxCalculator2024() *FederalTaxCalculator {
	return &FederalTaxCalculator{Tables: NewTaxTables2024()}
}

// NewFederalTaxCalculator creates a federal tax calculator over the given tables
func NewFederalTaxCalculator(tables *TaxTables) *FederalTaxCalculator {
	return &FederalTaxCalculator{Tables: tables}
}

// CalculateFederalTax calculates federal income tax on taxable income
func (ftc *FederalTaxCalculator) CalculateFederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, bracket := range ftc.Tables.Brackets(status) {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		top := taxableIncome
		if !bracket.Max.IsZero() {
			top = decimal.Min(taxableIncome, bracket.Max)
		}
		incomeInBracket := top.Sub(bracket.Min)
		if incomeInBracket.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}

	return money.RoundCents(totalTax)
}

// MarginalRate returns the rate applied to the last dollar of taxable income
func (ftc *FederalTaxCalculator) MarginalRate(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets := ftc.Tables.Brackets(status)
	if len(brackets) == 0 {
		return decimal.Zero
	}
	rate := brackets[0].Rate
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		rate = bracket.Rate
	}
	return rate
}
