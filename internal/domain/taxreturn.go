package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	money "github.com/taxwizard/tax-estimator/pkg/decimal"
	"github.com/taxwizard/tax-estimator/pkg/dateutil"
)

// DefaultTaxYear is used when a return does not name its tax year
const DefaultTaxYear = 2024

// TaxReturn is the snapshot of everything the wizard has collected for one return
type TaxReturn struct {
	ID           string       `yaml:"id,omitempty" json:"id,omitempty"`
	Personal     PersonalInfo `yaml:"personal" json:"personal"`
	Income       Income       `yaml:"income" json:"income"`
	Deductions   Deductions   `yaml:"deductions" json:"deductions"`
	CreditInputs CreditInputs `yaml:"credit_inputs" json:"credit_inputs"`
	Credits      TaxCredits   `yaml:"credits" json:"credits"`
	Payments     Payments     `yaml:"payments" json:"payments"`
}

// TaxYearEnd returns the fixed reference date used for every age test on this return
func (r *TaxReturn) TaxYearEnd() time.Time {
	year := r.Personal.TaxYear
	if year == 0 {
		year = DefaultTaxYear
	}
	return dateutil.TaxYearEnd(year)
}

// PersonalInfo holds the filer's identity, filing status and dependents
type PersonalInfo struct {
	FirstName    string       `yaml:"first_name" json:"first_name"`
	LastName     string       `yaml:"last_name" json:"last_name"`
	FilingStatus FilingStatus `yaml:"filing_status" json:"filing_status" validate:"required,oneof=single married_joint married_separate head_of_household qualifying_widow"`
	TaxYear      int          `yaml:"tax_year" json:"tax_year" validate:"omitempty,gte=2018,lte=2100"`
	Dependents   []Dependent  `yaml:"dependents,omitempty" json:"dependents,omitempty" validate:"dive"`
}

// FullName joins first and last name, skipping blanks
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Dependent is a person claimed on the return
type Dependent struct {
	Name              string    `yaml:"name" json:"name"`
	DateOfBirth       time.Time `yaml:"date_of_birth" json:"date_of_birth" validate:"required"`
	Relationship      string    `yaml:"relationship,omitempty" json:"relationship,omitempty"`
	IsQualifyingChild bool      `yaml:"is_qualifying_child" json:"is_qualifying_child"`
	IsDisabled        bool      `yaml:"is_disabled,omitempty" json:"is_disabled,omitempty"`
	IsStudent         bool      `yaml:"is_student,omitempty" json:"is_student,omitempty"`
}

// AgeAt returns the dependent's age in whole years on the given date
func (d Dependent) AgeAt(ref time.Time) int {
	return dateutil.Age(d.DateOfBirth, ref)
}

// Income is the additive record of income lines plus above-the-line adjustments.
// Total income and AGI are always derived, never stored.
type Income struct {
	Wages              decimal.Decimal     `yaml:"wages" json:"wages" validate:"gte=0"`
	InterestIncome     decimal.Decimal     `yaml:"interest_income" json:"interest_income" validate:"gte=0"`
	DividendIncome     decimal.Decimal     `yaml:"dividend_income" json:"dividend_income" validate:"gte=0"`
	BusinessIncome     decimal.Decimal     `yaml:"business_income" json:"business_income" validate:"gte=0"`
	CapitalGains       decimal.Decimal     `yaml:"capital_gains" json:"capital_gains" validate:"gte=0"`
	RentalIncome       decimal.Decimal     `yaml:"rental_income" json:"rental_income" validate:"gte=0"`
	RetirementIncome   decimal.Decimal     `yaml:"retirement_income" json:"retirement_income" validate:"gte=0"`
	UnemploymentIncome decimal.Decimal     `yaml:"unemployment_income" json:"unemployment_income" validate:"gte=0"`
	OtherIncome        decimal.Decimal     `yaml:"other_income" json:"other_income" validate:"gte=0"`
	Adjustments        AdjustmentsToIncome `yaml:"adjustments" json:"adjustments"`
}

// TotalIncome sums every income line; negative lines count as zero
func (i Income) TotalIncome() decimal.Decimal {
	return money.SumNonNegative(
		i.Wages,
		i.InterestIncome,
		i.DividendIncome,
		i.BusinessIncome,
		i.CapitalGains,
		i.RentalIncome,
		i.RetirementIncome,
		i.UnemploymentIncome,
		i.OtherIncome,
	)
}

// AdjustedGrossIncome is total income minus adjustments, floored at zero
func (i Income) AdjustedGrossIncome() decimal.Decimal {
	return money.NonNegative(i.TotalIncome().Sub(i.Adjustments.Total()))
}

// AdjustmentsToIncome are the above-the-line adjustments
type AdjustmentsToIncome struct {
	StudentLoanInterest     decimal.Decimal `yaml:"student_loan_interest" json:"student_loan_interest" validate:"gte=0"`
	RetirementContributions decimal.Decimal `yaml:"retirement_contributions" json:"retirement_contributions" validate:"gte=0"`
	HSAContributions        decimal.Decimal `yaml:"hsa_contributions" json:"hsa_contributions" validate:"gte=0"`
	Other                   decimal.Decimal `yaml:"other" json:"other" validate:"gte=0"`
}

// Total sums the adjustments, ignoring negative entries
func (a AdjustmentsToIncome) Total() decimal.Decimal {
	return money.SumNonNegative(a.StudentLoanInterest, a.RetirementContributions, a.HSAContributions, a.Other)
}

// Deductions carries the standard/itemized choice together with every itemized value
// the filer entered. Itemized values are kept even while the standard deduction is selected.
type Deductions struct {
	UseStandard bool                 `yaml:"use_standard" json:"use_standard"`
	Itemized    *ItemizedDeductions  `yaml:"itemized,omitempty" json:"itemized,omitempty"`
	OtherItems  []OtherDeductionItem `yaml:"other_items,omitempty" json:"other_items,omitempty" validate:"dive"`
}

// ItemizedDeductions are the Schedule A line items
type ItemizedDeductions struct {
	MedicalExpenses     decimal.Decimal `yaml:"medical_expenses" json:"medical_expenses" validate:"gte=0"`
	StateLocalIncomeTax decimal.Decimal `yaml:"state_local_income_tax" json:"state_local_income_tax" validate:"gte=0"`
	RealEstateTaxes     decimal.Decimal `yaml:"real_estate_taxes" json:"real_estate_taxes" validate:"gte=0"`
	PersonalPropertyTax decimal.Decimal `yaml:"personal_property_tax" json:"personal_property_tax" validate:"gte=0"`
	MortgageInterest    decimal.Decimal `yaml:"mortgage_interest" json:"mortgage_interest" validate:"gte=0"`
	CharitableCash      decimal.Decimal `yaml:"charitable_cash" json:"charitable_cash" validate:"gte=0"`
	CharitableNonCash   decimal.Decimal `yaml:"charitable_non_cash" json:"charitable_non_cash" validate:"gte=0"`
}

// OtherDeductionItem is an open-ended itemized entry outside the SALT category
type OtherDeductionItem struct {
	Type        string          `yaml:"type" json:"type" validate:"required"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount" validate:"gte=0"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// CreditInputs are the amounts the credit calculators work from
type CreditInputs struct {
	ChildCareExpenses decimal.Decimal         `yaml:"child_care_expenses" json:"child_care_expenses" validate:"gte=0"`
	Retirement        RetirementContributions `yaml:"retirement_contributions" json:"retirement_contributions"`
	Education         EducationExpenses       `yaml:"education" json:"education"`
}

// RetirementContributions are the contributions that count toward the saver's credit
type RetirementContributions struct {
	TraditionalIRA decimal.Decimal `yaml:"traditional_ira" json:"traditional_ira" validate:"gte=0"`
	RothIRA        decimal.Decimal `yaml:"roth_ira" json:"roth_ira" validate:"gte=0"`
	Plan401k       decimal.Decimal `yaml:"401k" json:"401k" validate:"gte=0"`
	Plan403b       decimal.Decimal `yaml:"403b" json:"403b" validate:"gte=0"`
	Plan457        decimal.Decimal `yaml:"457" json:"457" validate:"gte=0"`
	SimpleIRA      decimal.Decimal `yaml:"simple_ira" json:"simple_ira" validate:"gte=0"`
	SEPIRA         decimal.Decimal `yaml:"sep_ira" json:"sep_ira" validate:"gte=0"`
	ABLE           decimal.Decimal `yaml:"able" json:"able" validate:"gte=0"`
	TSP            decimal.Decimal `yaml:"tsp" json:"tsp" validate:"gte=0"`
	Other          decimal.Decimal `yaml:"other" json:"other" validate:"gte=0"`
}

// Total sums every account type
func (rc RetirementContributions) Total() decimal.Decimal {
	return money.SumNonNegative(
		rc.TraditionalIRA,
		rc.RothIRA,
		rc.Plan401k,
		rc.Plan403b,
		rc.Plan457,
		rc.SimpleIRA,
		rc.SEPIRA,
		rc.ABLE,
		rc.TSP,
		rc.Other,
	)
}

// EducationExpenses are qualified education expenses.
// AOTCStudentExpenses holds one entry per eligible student.
type EducationExpenses struct {
	AOTCStudentExpenses []decimal.Decimal `yaml:"aotc_student_expenses,omitempty" json:"aotc_student_expenses,omitempty" validate:"dive,gte=0"`
	LLCExpenses         decimal.Decimal   `yaml:"llc_expenses" json:"llc_expenses" validate:"gte=0"`
}

// Payments are the federal amounts already paid toward the year's tax
type Payments struct {
	FederalWithholding decimal.Decimal `yaml:"federal_withholding" json:"federal_withholding" validate:"gte=0"`
	EstimatedPayments  decimal.Decimal `yaml:"estimated_payments" json:"estimated_payments" validate:"gte=0"`
	Other              decimal.Decimal `yaml:"other" json:"other" validate:"gte=0"`
}

// Total sums all payments
func (p Payments) Total() decimal.Decimal {
	return money.SumNonNegative(p.FederalWithholding, p.EstimatedPayments, p.Other)
}

// CreditSource tags where an applied credit value came from
type CreditSource string

const (
	CreditAuto     CreditSource = "auto"
	CreditOverride CreditSource = "override"
)

// CreditValue is the applied value of one credit along with its origin.
// Auto values are recomputed on every calculation; override values never are.
type CreditValue struct {
	Source CreditSource    `yaml:"source" json:"source" validate:"omitempty,oneof=auto override"`
	Amount decimal.Decimal `yaml:"amount" json:"amount" validate:"gte=0"`
}

// AutoCredit returns a calculator-produced credit value
func AutoCredit(amount decimal.Decimal) CreditValue {
	return CreditValue{Source: CreditAuto, Amount: amount}
}

// OverrideCredit returns a user-entered credit value
func OverrideCredit(amount decimal.Decimal) CreditValue {
	return CreditValue{Source: CreditOverride, Amount: amount}
}

// IsOverride reports whether the user entered this value by hand
func (cv CreditValue) IsOverride() bool {
	return cv.Source == CreditOverride
}

// Applied returns the amount that counts toward total credits
func (cv CreditValue) Applied() decimal.Decimal {
	return money.NonNegative(cv.Amount)
}

// UnmarshalYAML accepts a bare amount (treated as an override), the word "auto", null,
// or a mapping. A mapping with a non-zero amount and no source is also treated as an override.
func (cv *CreditValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		if value.ShortTag() == "!!null" || value.Value == string(CreditAuto) {
			*cv = CreditValue{Source: CreditAuto}
			return nil
		}
		var amount decimal.Decimal
		if err := value.Decode(&amount); err != nil {
			return err
		}
		*cv = OverrideCredit(amount)
		return nil
	}

	type alias CreditValue
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*cv = CreditValue(aux)
	if cv.Source == "" {
		cv.Source = CreditAuto
		if !cv.Amount.IsZero() {
			cv.Source = CreditOverride
		}
	}
	return nil
}

// TaxCredits holds the currently applied value of every credit
type TaxCredits struct {
	ChildTaxCredit           CreditValue `yaml:"child_tax_credit" json:"child_tax_credit"`
	CreditForOtherDependents CreditValue `yaml:"credit_for_other_dependents" json:"credit_for_other_dependents"`
	ChildDependentCareCredit CreditValue `yaml:"child_dependent_care_credit" json:"child_dependent_care_credit"`
	EducationCredits         CreditValue `yaml:"education_credits" json:"education_credits"`
	RetirementSavingsCredit  CreditValue `yaml:"retirement_savings_credit" json:"retirement_savings_credit"`
	OtherCredits             CreditValue `yaml:"other_credits" json:"other_credits"`
}

// Total sums the applied value of every credit
func (tc TaxCredits) Total() decimal.Decimal {
	return money.SumNonNegative(
		tc.ChildTaxCredit.Applied(),
		tc.CreditForOtherDependents.Applied(),
		tc.ChildDependentCareCredit.Applied(),
		tc.EducationCredits.Applied(),
		tc.RetirementSavingsCredit.Applied(),
		tc.OtherCredits.Applied(),
	)
}

// NegativeLines names the income and adjustment lines holding a negative amount.
// The engine counts them as zero.
func (i Income) NegativeLines() []string {
	lines := []struct {
		name  string
		value decimal.Decimal
	}{
		{"wages", i.Wages},
		{"interest_income", i.InterestIncome},
		{"dividend_income", i.DividendIncome},
		{"business_income", i.BusinessIncome},
		{"capital_gains", i.CapitalGains},
		{"rental_income", i.RentalIncome},
		{"retirement_income", i.RetirementIncome},
		{"unemployment_income", i.UnemploymentIncome},
		{"other_income", i.OtherIncome},
		{"adjustments.student_loan_interest", i.Adjustments.StudentLoanInterest},
		{"adjustments.retirement_contributions", i.Adjustments.RetirementContributions},
		{"adjustments.hsa_contributions", i.Adjustments.HSAContributions},
		{"adjustments.other", i.Adjustments.Other},
	}
	var negative []string
	for _, l := range lines {
		if l.value.IsNegative() {
			negative = append(negative, l.name)
		}
	}
	return negative
}
