package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
	money "github.com/taxwizard/tax-estimator/pkg/decimal"
)

// AOTCForStudent returns the unreduced American Opportunity credit for one student:
// 100% of the first $2,000 plus 25% of the next $2,000
func (cc *CreditCalculator) AOTCForStudent(expenses decimal.Decimal) decimal.Decimal {
	cfg := cc.Tables.cfg.Education
	e := money.NonNegative(expenses)
	first := money.Min(e, cfg.AOTCFirstTier)
	second := money.Min(money.NonNegative(e.Sub(cfg.AOTCFirstTier)), cfg.AOTCSecondTier)
	return first.Add(second.Mul(cfg.AOTCSecondTierRate))
}

// EducationPhaseOutFactor returns the share of the education credits kept at agi,
// falling linearly from 1 at the start of the range to 0 at its end
func (cc *CreditCalculator) EducationPhaseOutFactor(agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	start, end, ok := cc.Tables.EducationPhaseOut(status)
	if !ok {
		return decimal.Zero
	}
	switch {
	case agi.LessThanOrEqual(start):
		return decimal.NewFromInt(1)
	case agi.GreaterThanOrEqual(end) || !end.GreaterThan(start):
		return decimal.Zero
	}
	return end.Sub(agi).Div(end.Sub(start))
}

// CalculateEducationCredits returns the American Opportunity and Lifetime Learning credits
// after the shared phase-out. Married filing separately cannot claim either.
func (cc *CreditCalculator) CalculateEducationCredits(expenses domain.EducationExpenses, agi decimal.Decimal, status domain.FilingStatus) (aotc, llc decimal.Decimal) {
	factor := cc.EducationPhaseOutFactor(money.NonNegative(agi), status)
	if factor.IsZero() {
		return decimal.Zero, decimal.Zero
	}

	aotc = decimal.Zero
	for _, e := range expenses.AOTCStudentExpenses {
		aotc = aotc.Add(cc.AOTCForStudent(e))
	}

	cfg := cc.Tables.cfg.Education
	llc = money.Min(money.NonNegative(expenses.LLCExpenses), cfg.LLCExpenseLimit).Mul(cfg.LLCRate)

	return money.RoundCents(aotc.Mul(factor)), money.RoundCents(llc.Mul(factor))
}
