package calculation

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

// Calculator orchestrates the deduction, credit and bracket calculators.
// It holds only read-only tables, so one Calculator may serve many goroutines.
type Calculator struct {
	Tables     *TaxTables
	Deductions *DeductionCalculator
	Credits    *CreditCalculator
	FederalTax *FederalTaxCalculator
	Logger     Logger
}

// NewCalculator creates a calculator on the built-in 2024 tables
func NewCalculator() *Calculator {
	return NewCalculatorWithTables(NewTaxTables2024())
}

// NewCalculatorWithConfig creates a calculator from a loaded tax table configuration
func NewCalculatorWithConfig(config domain.TaxTablesConfig) *Calculator {
	return NewCalculatorWithTables(NewTaxTablesWithConfig(config))
}

// NewCalculatorWithTables creates a calculator over existing tables
func NewCalculatorWithTables(tables *TaxTables) *Calculator {
	c := &Calculator{
		Tables:     tables,
		Deductions: NewDeductionCalculator(tables),
		Credits:    NewCreditCalculator(tables),
		FederalTax: NewFederalTaxCalculator(tables),
	}
	c.SetLogger(nil)
	return c
}

// SetLogger sets the logger for the calculator and its sub-calculators.
// If nil is provided, a no-op logger is used.
func (c *Calculator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	c.Logger = l
	c.Deductions.Logger = l
	c.Credits.Logger = l
}

// ComputeDeductionTotal returns the standard deduction or the SALT-capped itemized total
func (c *Calculator) ComputeDeductionTotal(useStandard bool, status domain.FilingStatus, itemized *domain.ItemizedDeductions, other []domain.OtherDeductionItem) decimal.Decimal {
	return c.Deductions.ComputeDeductionTotal(useStandard, status, itemized, other)
}

// ResolveCredits fills every auto credit from the calculators and keeps override values
// as entered. OtherCredits has no calculator and is always carried over unchanged.
func (c *Calculator) ResolveCredits(ret *domain.TaxReturn) (domain.TaxCredits, domain.CreditDetail) {
	status := ret.Personal.FilingStatus
	deps := ret.Personal.Dependents
	yearEnd := ret.TaxYearEnd()
	agi := ret.Income.AdjustedGrossIncome()
	inputs := ret.CreditInputs

	resolved := ret.Credits
	detail := domain.CreditDetail{
		QualifyingChildren:    c.Credits.CountQualifyingChildren(deps, yearEnd),
		OtherDependents:       c.Credits.CountOtherDependents(deps, yearEnd),
		CareQualifyingPersons: c.Credits.CountCareQualifyingDependents(deps, yearEnd),
		RetirementCreditRate:  c.Credits.RetirementCreditRate(agi, status),
		CareCreditRate:        c.Credits.CareCreditRate(agi),
	}

	ctc, odc := c.Credits.ChildCredits(deps, agi, status, yearEnd)
	resolve(&resolved.ChildTaxCredit, ctc)
	resolve(&resolved.CreditForOtherDependents, odc)

	care := c.Credits.CalculateChildDependentCareCredit(inputs.ChildCareExpenses, agi, detail.CareQualifyingPersons)
	resolve(&resolved.ChildDependentCareCredit, care)

	detail.AOTC, detail.LLC = c.Credits.CalculateEducationCredits(inputs.Education, agi, status)
	resolve(&resolved.EducationCredits, detail.AOTC.Add(detail.LLC))

	savers := c.Credits.CalculateRetirementSavingsCredit(inputs.Retirement.Total(), agi, status, status.IsJoint())
	resolve(&resolved.RetirementSavingsCredit, savers)

	if resolved.OtherCredits.Source == "" {
		resolved.OtherCredits.Source = domain.CreditAuto
	}

	c.Logger.Debugf("credits resolved: ctc=%s odc=%s care=%s education=%s savers=%s other=%s",
		resolved.ChildTaxCredit.Amount.StringFixed(2),
		resolved.CreditForOtherDependents.Amount.StringFixed(2),
		resolved.ChildDependentCareCredit.Amount.StringFixed(2),
		resolved.EducationCredits.Amount.StringFixed(2),
		resolved.RetirementSavingsCredit.Amount.StringFixed(2),
		resolved.OtherCredits.Amount.StringFixed(2))

	return resolved, detail
}

func resolve(cv *domain.CreditValue, computed decimal.Decimal) {
	if cv.IsOverride() {
		return
	}
	*cv = domain.AutoCredit(computed)
}

// ComputeResults composes income, the deduction total, applied credits and payments
// into the final liability. Every figure is clamped at zero and rounded to cents.
func (c *Calculator) ComputeResults(status domain.FilingStatus, income domain.Income, deductionTotal decimal.Decimal, credits domain.TaxCredits, payments domain.Payments) domain.CalculatedResults {
	agi := income.AdjustedGrossIncome()
	deductions := money.NonNegative(deductionTotal)
	taxable := money.NonNegative(agi.Sub(deductions))
	federalTax := c.FederalTax.CalculateFederalTax(taxable, status)
	totalCredits := credits.Total()
	taxDue := money.NonNegative(federalTax.Sub(totalCredits))
	paid := payments.Total()

	return domain.CalculatedResults{
		TotalIncome:         money.RoundCents(income.TotalIncome()),
		Adjustments:         money.RoundCents(income.Adjustments.Total()),
		AdjustedGrossIncome: money.RoundCents(agi),
		Deductions:          money.RoundCents(deductions),
		TaxableIncome:       money.RoundCents(taxable),
		FederalTax:          money.RoundCents(federalTax),
		Credits:             money.RoundCents(totalCredits),
		TaxDue:              money.RoundCents(taxDue),
		Payments:            money.RoundCents(paid),
		RefundAmount:        money.RoundCents(money.NonNegative(paid.Sub(taxDue))),
		AmountOwed:          money.RoundCents(money.NonNegative(taxDue.Sub(paid))),
	}
}

// Calculate runs the full computation for one return. The return is not modified.
func (c *Calculator) Calculate(ret *domain.TaxReturn) *domain.Report {
	status := ret.Personal.FilingStatus
	if !c.Tables.Known(status) {
		c.Logger.Warnf("unknown filing status %q, using single thresholds", status)
	}
	if neg := ret.Income.NegativeLines(); len(neg) > 0 {
		c.Logger.Warnf("negative amounts counted as zero: %s", strings.Join(neg, ", "))
	}

	d := ret.Deductions
	breakdown := c.Deductions.Breakdown(d.UseStandard, status, d.Itemized, d.OtherItems)
	credits, detail := c.ResolveCredits(ret)
	results := c.ComputeResults(status, ret.Income, breakdown.Applied, credits, ret.Payments)

	year := ret.Personal.TaxYear
	if year == 0 {
		year = domain.DefaultTaxYear
	}

	c.Logger.Infof("calculated %s: AGI %s, tax due %s, refund %s, owed %s",
		describe(ret), results.AdjustedGrossIncome.StringFixed(2), results.TaxDue.StringFixed(2),
		results.RefundAmount.StringFixed(2), results.AmountOwed.StringFixed(2))

	return &domain.Report{
		ReturnID:     ret.ID,
		TaxpayerName: ret.Personal.FullName(),
		TaxYear:      year,
		FilingStatus: status,
		Deductions:   breakdown,
		Credits:      credits,
		CreditDetail: detail,
		MarginalRate: c.FederalTax.MarginalRate(results.TaxableIncome, status),
		Results:      results,
	}
}

// Run takes a snapshot from src, calculates it and hands the report to sink.
// A nil sink skips persistence.
func (c *Calculator) Run(ctx context.Context, src ReturnSource, sink ResultSink) (*domain.Report, error) {
	ret, err := src.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read return snapshot: %w", err)
	}
	report := c.Calculate(ret)
	if sink == nil {
		return report, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sink.SaveResults(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save results for %s: %w", describe(ret), err)
	}
	return report, nil
}

func describe(ret *domain.TaxReturn) string {
	if name := ret.Personal.FullName(); name != "" {
		return name
	}
	if ret.ID != "" {
		return ret.ID
	}
	return "return"
}
