package domain

import (
	"github.com/shopspring/decimal"
)

// CalculatedResults is the terminal output of one calculation.
// Exactly one of RefundAmount and AmountOwed is non-zero, or both are zero
// when payments equal the tax due.
type CalculatedResults struct {
	TotalIncome         decimal.Decimal `json:"total_income"`
	Adjustments         decimal.Decimal `json:"adjustments"`
	AdjustedGrossIncome decimal.Decimal `json:"adjusted_gross_income"`
	Deductions          decimal.Decimal `json:"deductions"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	FederalTax          decimal.Decimal `json:"federal_tax"`
	Credits             decimal.Decimal `json:"credits"`
	TaxDue              decimal.Decimal `json:"tax_due"`
	Payments            decimal.Decimal `json:"payments"`
	RefundAmount        decimal.Decimal `json:"refund_amount"`
	AmountOwed          decimal.Decimal `json:"amount_owed"`
}

// IsRefund reports whether the filer gets money back
func (r CalculatedResults) IsRefund() bool {
	return r.RefundAmount.IsPositive()
}

// EffectiveRate is tax due as a percentage of AGI
func (r CalculatedResults) EffectiveRate() decimal.Decimal {
	if !r.AdjustedGrossIncome.IsPositive() {
		return decimal.Zero
	}
	return r.TaxDue.Div(r.AdjustedGrossIncome).Mul(decimal.NewFromInt(100)).Round(2)
}

// DeductionBreakdown explains how the applied deduction was reached
type DeductionBreakdown struct {
	UseStandard       bool            `json:"use_standard"`
	StandardDeduction decimal.Decimal `json:"standard_deduction"`
	SALTUncapped      decimal.Decimal `json:"salt_uncapped"`
	SALTTotal         decimal.Decimal `json:"salt_total"`
	OtherItemsTotal   decimal.Decimal `json:"other_items_total"`
	ItemizedTotal     decimal.Decimal `json:"itemized_total"`
	Applied           decimal.Decimal `json:"applied"`

	// Copies of the entered line items, kept for reporting
	Itemized   *ItemizedDeductions  `json:"itemized,omitempty"`
	OtherItems []OtherDeductionItem `json:"other_items,omitempty"`
}

// CreditDetail records the counts and sub-amounts behind the credit figures
type CreditDetail struct {
	QualifyingChildren    int             `json:"qualifying_children"`
	OtherDependents       int             `json:"other_dependents"`
	CareQualifyingPersons int             `json:"care_qualifying_persons"`
	AOTC                  decimal.Decimal `json:"aotc"`
	LLC                   decimal.Decimal `json:"llc"`
	RetirementCreditRate  decimal.Decimal `json:"retirement_credit_rate"`
	CareCreditRate        decimal.Decimal `json:"care_credit_rate"`
}

// Report bundles the results of one return with the figures that explain them
type Report struct {
	ReturnID     string             `json:"return_id,omitempty"`
	TaxpayerName string             `json:"taxpayer_name,omitempty"`
	TaxYear      int                `json:"tax_year"`
	FilingStatus FilingStatus       `json:"filing_status"`
	Deductions   DeductionBreakdown `json:"deductions"`
	Credits      TaxCredits         `json:"credits"`
	CreditDetail CreditDetail       `json:"credit_detail"`
	MarginalRate decimal.Decimal    `json:"marginal_rate"`
	Results      CalculatedResults  `json:"results"`
}

// ReportSet is the input to every output formatter: one or more reports plus the
// assumptions they were computed under
type ReportSet struct {
	Reports     []*Report `json:"reports"`
	TaxYear     int       `json:"tax_year"`
	Assumptions []string  `json:"assumptions,omitempty"`
}
