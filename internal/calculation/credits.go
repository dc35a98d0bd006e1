package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

// CREDIT ASSUMPTIONS:
//
// 1. Child Tax Credit and Credit for Other Dependents share one phase-out: $50 for each
//    $1,000 (or fraction) of AGI over the threshold. When both are computed together the
//    reduction comes out of the CTC first and any remainder out of the ODC (Schedule 8812).
//
// 2. Dependent ages are taken on December 31 of the tax year.
//
// 3. Dependent care counts children under 13 and disabled dependents of any age.

// CreditCalculator computes the phase-out-sensitive credits from the threshold tables
type CreditCalculator struct {
	Tables *TaxTables
	Logger Logger
}

// NewCreditCalculator creates a credit calculator over the given tables
func NewCreditCalculator(tables *TaxTables) *CreditCalculator {
	return &CreditCalculator{Tables: tables, Logger: NopLogger{}}
}

// IsQualifyingChild reports whether dep qualifies for the Child Tax Credit on taxYearEnd
func (cc *CreditCalculator) IsQualifyingChild(dep domain.Dependent, taxYearEnd time.Time) bool {
	return dep.IsQualifyingChild && dep.AgeAt(taxYearEnd) < cc.Tables.cfg.ChildTaxCredit.ChildAgeLimit
}

// CountQualifyingChildren counts dependents eligible for the Child Tax Credit
func (cc *CreditCalculator) CountQualifyingChildren(dependents []domain.Dependent, taxYearEnd time.Time) int {
	n := 0
	for _, dep := range dependents {
		if cc.IsQualifyingChild(dep, taxYearEnd) {
			n++
		}
	}
	return n
}

// CountOtherDependents counts dependents eligible for the Credit for Other Dependents:
// anyone 17 or older or not flagged as a qualifying child
func (cc *CreditCalculator) CountOtherDependents(dependents []domain.Dependent, taxYearEnd time.Time) int {
	return len(dependents) - cc.CountQualifyingChildren(dependents, taxYearEnd)
}

// ChildCreditReduction returns the combined CTC/ODC phase-out reduction for agi
func (cc *CreditCalculator) ChildCreditReduction(agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	cfg := cc.Tables.cfg.ChildTaxCredit
	excess := agi.Sub(cc.Tables.ChildCreditPhaseOutThreshold(status))
	return money.Increments(excess, cfg.PhaseOutIncrement).Mul(cfg.PhaseOutReduction)
}

// CalculateChildTaxCredit returns $2,000 per qualifying child less the full phase-out reduction
func (cc *CreditCalculator) CalculateChildTaxCredit(dependents []domain.Dependent, agi decimal.Decimal, status domain.FilingStatus, taxYearEnd time.Time) decimal.Decimal {
	n := cc.CountQualifyingChildren(dependents, taxYearEnd)
	base := cc.Tables.cfg.ChildTaxCredit.PerChild.Mul(decimal.NewFromInt(int64(n)))
	return money.RoundCents(money.NonNegative(base.Sub(cc.ChildCreditReduction(money.NonNegative(agi), status))))
}

// CalculateCreditForOtherDependents returns $500 per other dependent less the full phase-out reduction
func (cc *CreditCalculator) CalculateCreditForOtherDependents(dependents []domain.Dependent, agi decimal.Decimal, status domain.FilingStatus, taxYearEnd time.Time) decimal.Decimal {
	n := cc.CountOtherDependents(dependents, taxYearEnd)
	base := cc.Tables.cfg.ChildTaxCredit.PerOtherDependent.Mul(decimal.NewFromInt(int64(n)))
	return money.RoundCents(money.NonNegative(base.Sub(cc.ChildCreditReduction(money.NonNegative(agi), status))))
}

// ChildCredits computes CTC and ODC together, spending the shared reduction on the CTC first
func (cc *CreditCalculator) ChildCredits(dependents []domain.Dependent, agi decimal.Decimal, status domain.FilingStatus, taxYearEnd time.Time) (ctc, odc decimal.Decimal) {
	cfg := cc.Tables.cfg.ChildTaxCredit
	children := cc.CountQualifyingChildren(dependents, taxYearEnd)
	others := len(dependents) - children

	ctcBase := cfg.PerChild.Mul(decimal.NewFromInt(int64(children)))
	odcBase := cfg.PerOtherDependent.Mul(decimal.NewFromInt(int64(others)))
	reduction := cc.ChildCreditReduction(money.NonNegative(agi), status)

	ctc = money.NonNegative(ctcBase.Sub(reduction))
	remaining := money.NonNegative(reduction.Sub(ctcBase))
	odc = money.NonNegative(odcBase.Sub(remaining))

	if reduction.IsPositive() {
		cc.Logger.Debugf("child credits phased out by %s (AGI %s, %s)", reduction.StringFixed(2), agi.StringFixed(2), status)
	}
	return money.RoundCents(ctc), money.RoundCents(odc)
}

// CountCareQualifyingDependents counts dependents who qualify for the dependent care credit
func (cc *CreditCalculator) CountCareQualifyingDependents(dependents []domain.Dependent, taxYearEnd time.Time) int {
	limit := cc.Tables.cfg.DependentCare.AgeLimit
	n := 0
	for _, dep := range dependents {
		if dep.IsDisabled || dep.AgeAt(taxYearEnd) < limit {
			n++
		}
	}
	return n
}

// CareCreditRate returns the applicable dependent care percentage for agi:
// 35% less one point per $2,000 (or fraction) over $15,000, never below 20%
func (cc *CreditCalculator) CareCreditRate(agi decimal.Decimal) decimal.Decimal {
	cfg := cc.Tables.cfg.DependentCare
	steps := money.Increments(agi.Sub(cfg.AGIStart), cfg.AGIIncrement)
	return money.Max(cfg.StartRate.Sub(steps.Mul(cfg.RateStep)), cfg.FloorRate)
}

// CalculateChildDependentCareCredit returns the care credit for the given expenses.
// The expense base is capped at $3,000 per qualifying person for at most two persons.
func (cc *CreditCalculator) CalculateChildDependentCareCredit(careExpenses, agi decimal.Decimal, qualifyingCount int) decimal.Decimal {
	cfg := cc.Tables.cfg.DependentCare
	if qualifyingCount <= 0 {
		return decimal.Zero
	}
	persons := min(qualifyingCount, cfg.MaxQualifyingPersons)
	limit := cfg.ExpenseLimitPerPerson.Mul(decimal.NewFromInt(int64(persons)))
	base := money.Min(money.NonNegative(careExpenses), limit)
	return money.RoundCents(base.Mul(cc.CareCreditRate(money.NonNegative(agi))))
}

// RetirementCreditRate returns the saver's credit rate (50%, 20%, 10% or 0) for agi
func (cc *CreditCalculator) RetirementCreditRate(agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	band := cc.Tables.SaversBand(status)
	switch {
	case agi.LessThanOrEqual(band.FiftyPercentMax):
		return decimal.NewFromFloat(0.5)
	case agi.LessThanOrEqual(band.TwentyPercentMax):
		return decimal.NewFromFloat(0.2)
	case agi.LessThanOrEqual(band.TenPercentMax):
		return decimal.NewFromFloat(0.1)
	}
	return decimal.Zero
}

// CalculateRetirementSavingsCredit returns the saver's credit.
// Joint filers get double the contribution limit and credit cap.
func (cc *CreditCalculator) CalculateRetirementSavingsCredit(totalContributions, agi decimal.Decimal, status domain.FilingStatus, isJointFiler bool) decimal.Decimal {
	cfg := cc.Tables.cfg.SaversCredit
	limit, creditCap := cfg.ContributionLimit, cfg.CreditCap
	if isJointFiler {
		limit, creditCap = cfg.ContributionLimitJoint, cfg.CreditCapJoint
	}
	eligible := money.Min(money.NonNegative(totalContributions), limit)
	credit := eligible.Mul(cc.RetirementCreditRate(money.NonNegative(agi), status))
	return money.RoundCents(money.Min(credit, creditCap))
}
