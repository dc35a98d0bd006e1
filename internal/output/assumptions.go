package output

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// DefaultAssumptions lists the rules every estimate is computed under when the caller
// does not supply a table-specific list.
var DefaultAssumptions = []string{
	"Federal income tax only; no state, payroll or self-employment tax",
	"Ages for dependent credits are measured on December 31 of the tax year",
	"Credits are nonrefundable and reduce tax due to no less than zero",
	"SALT deduction capped at $10,000",
}

// GenerateAssumptions describes the threshold tables a report was computed with.
func GenerateAssumptions(cfg domain.TaxTablesConfig) []string {
	out := []string{
		fmt.Sprintf("Tax tables: %d", cfg.TaxYear),
		"Federal income tax only; no state, payroll or self-employment tax",
		fmt.Sprintf("SALT deduction cap: %s (%s married filing separately)",
			FormatCurrencyGrouped(cfg.SALTCap), FormatCurrencyGrouped(cfg.SALTCapMarriedSeparate)),
	}
	if sd, ok := cfg.StandardDeduction[domain.Single]; ok {
		out = append(out, fmt.Sprintf("Standard deduction: %s single, %s married filing jointly",
			FormatCurrencyGrouped(sd), FormatCurrencyGrouped(cfg.StandardDeduction[domain.MarriedJoint])))
	}
	ctc := cfg.ChildTaxCredit
	out = append(out,
		fmt.Sprintf("Child tax credit: %s per child under %d, %s per other dependent, reduced %s per %s of AGI over the threshold",
			FormatCurrencyGrouped(ctc.PerChild), ctc.ChildAgeLimit, FormatCurrencyGrouped(ctc.PerOtherDependent),
			FormatCurrencyGrouped(ctc.PhaseOutReduction), FormatCurrencyGrouped(ctc.PhaseOutIncrement)),
		fmt.Sprintf("Dependent care credit: %s to %s of up to %s per person for at most %d persons",
			FormatRate(cfg.DependentCare.StartRate), FormatRate(cfg.DependentCare.FloorRate),
			FormatCurrencyGrouped(cfg.DependentCare.ExpenseLimitPerPerson), cfg.DependentCare.MaxQualifyingPersons),
		fmt.Sprintf("Education credits: American Opportunity up to %s per student, Lifetime Learning %s of up to %s",
			FormatCurrencyGrouped(aotcMax(cfg.Education)), FormatRate(cfg.Education.LLCRate),
			FormatCurrencyGrouped(cfg.Education.LLCExpenseLimit)),
		"Ages for dependent credits are measured on December 31 of the tax year",
		"Credits are nonrefundable and reduce tax due to no less than zero",
	)
	return out
}

func aotcMax(e domain.EducationCreditConfig) decimal.Decimal {
	return e.AOTCFirstTier.Add(e.AOTCSecondTier.Mul(e.AOTCSecondTierRate))
}
