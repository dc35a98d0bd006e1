package domain

import (
	"github.com/shopspring/decimal"
)

// TaxTablesConfig holds the threshold tables for one tax year.
// Loaded from tax_tables.yaml; any value left out falls back to the built-in defaults.
type TaxTablesConfig struct {
	TaxYear int `yaml:"tax_year" json:"tax_year"`

	// Standard deduction amounts keyed by filing status
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`

	// SALT deduction cap. The married-separate value is kept apart so it can be halved.
	SALTCap                decimal.Decimal `yaml:"salt_cap" json:"salt_cap"`                                   // Default: 10000
	SALTCapMarriedSeparate decimal.Decimal `yaml:"salt_cap_married_separate" json:"salt_cap_married_separate"` // Default: 10000

	// Progressive brackets keyed by filing status
	Brackets map[FilingStatus][]TaxBracket `yaml:"brackets" json:"brackets"`

	ChildTaxCredit ChildCreditConfig     `yaml:"child_tax_credit" json:"child_tax_credit"`
	DependentCare  DependentCareConfig   `yaml:"dependent_care" json:"dependent_care"`
	SaversCredit   SaversCreditConfig    `yaml:"savers_credit" json:"savers_credit"`
	Education      EducationCreditConfig `yaml:"education" json:"education"`
}

// TaxBracket represents a federal tax bracket. A zero Max marks the open top bracket.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// ChildCreditConfig covers the Child Tax Credit and the Credit for Other Dependents,
// which share one phase-out
type ChildCreditConfig struct {
	PerChild          decimal.Decimal                  `yaml:"per_child" json:"per_child"`                     // Default: 2000
	PerOtherDependent decimal.Decimal                  `yaml:"per_other_dependent" json:"per_other_dependent"` // Default: 500
	ChildAgeLimit     int                              `yaml:"child_age_limit" json:"child_age_limit"`         // Default: 17 (must be under)
	PhaseOutThreshold map[FilingStatus]decimal.Decimal `yaml:"phase_out_threshold" json:"phase_out_threshold"` // Default: 400000 MFJ, 200000 others
	PhaseOutIncrement decimal.Decimal                  `yaml:"phase_out_increment" json:"phase_out_increment"` // Default: 1000
	PhaseOutReduction decimal.Decimal                  `yaml:"phase_out_reduction" json:"phase_out_reduction"` // Default: 50 per increment
}

// DependentCareConfig covers the Child and Dependent Care Credit
type DependentCareConfig struct {
	ExpenseLimitPerPerson decimal.Decimal `yaml:"expense_limit_per_person" json:"expense_limit_per_person"` // Default: 3000
	MaxQualifyingPersons  int             `yaml:"max_qualifying_persons" json:"max_qualifying_persons"`     // Default: 2
	AgeLimit              int             `yaml:"age_limit" json:"age_limit"`                               // Default: 13 (must be under)
	StartRate             decimal.Decimal `yaml:"start_rate" json:"start_rate"`                             // Default: 0.35
	FloorRate             decimal.Decimal `yaml:"floor_rate" json:"floor_rate"`                             // Default: 0.20
	RateStep              decimal.Decimal `yaml:"rate_step" json:"rate_step"`                               // Default: 0.01
	AGIStart              decimal.Decimal `yaml:"agi_start" json:"agi_start"`                               // Default: 15000
	AGIIncrement          decimal.Decimal `yaml:"agi_increment" json:"agi_increment"`                       // Default: 2000
}

// SaversCreditConfig covers the Retirement Savings Contributions Credit
type SaversCreditConfig struct {
	Bands                  map[FilingStatus]SaversBand `yaml:"bands" json:"bands"`
	ContributionLimit      decimal.Decimal             `yaml:"contribution_limit" json:"contribution_limit"`             // Default: 2000
	ContributionLimitJoint decimal.Decimal             `yaml:"contribution_limit_joint" json:"contribution_limit_joint"` // Default: 4000
	CreditCap              decimal.Decimal             `yaml:"credit_cap" json:"credit_cap"`                             // Default: 1000
	CreditCapJoint         decimal.Decimal             `yaml:"credit_cap_joint" json:"credit_cap_joint"`                 // Default: 2000
}

// SaversBand holds the three ascending AGI ceilings for the 50%, 20% and 10% rates
type SaversBand struct {
	FiftyPercentMax  decimal.Decimal `yaml:"fifty_percent_max" json:"fifty_percent_max"`
	TwentyPercentMax decimal.Decimal `yaml:"twenty_percent_max" json:"twenty_percent_max"`
	TenPercentMax    decimal.Decimal `yaml:"ten_percent_max" json:"ten_percent_max"`
}

// EducationCreditConfig covers the American Opportunity and Lifetime Learning credits
type EducationCreditConfig struct {
	AOTCFirstTier      decimal.Decimal                  `yaml:"aotc_first_tier" json:"aotc_first_tier"`             // Default: 2000 at 100%
	AOTCSecondTier     decimal.Decimal                  `yaml:"aotc_second_tier" json:"aotc_second_tier"`           // Default: 2000 at 25%
	AOTCSecondTierRate decimal.Decimal                  `yaml:"aotc_second_tier_rate" json:"aotc_second_tier_rate"` // Default: 0.25
	LLCExpenseLimit    decimal.Decimal                  `yaml:"llc_expense_limit" json:"llc_expense_limit"`         // Default: 10000
	LLCRate            decimal.Decimal                  `yaml:"llc_rate" json:"llc_rate"`                           // Default: 0.20
	PhaseOutStart      map[FilingStatus]decimal.Decimal `yaml:"phase_out_start" json:"phase_out_start"`             // Default: 80000 / 160000 MFJ
	PhaseOutEnd        map[FilingStatus]decimal.Decimal `yaml:"phase_out_end" json:"phase_out_end"`                 // Default: 90000 / 180000 MFJ
}
