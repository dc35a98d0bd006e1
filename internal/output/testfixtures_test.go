package output

import (
	"github.com/shopspring/decimal"
	"github.com/taxwizard/tax-estimator/internal/domain"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// familyReport mirrors a married couple with two children and child care costs who are due a refund.
func familyReport() *domain.Report {
	return &domain.Report{
		ReturnID:     "family-2024",
		TaxpayerName: "Alex Morgan",
		TaxYear:      2024,
		FilingStatus: domain.MarriedJoint,
		Deductions: domain.DeductionBreakdown{
			UseStandard:       true,
			StandardDeduction: dec(29200),
			SALTUncapped:      dec(9000),
			SALTTotal:         dec(9000),
			OtherItemsTotal:   dec(500),
			ItemizedTotal:     dec(16000),
			Applied:           dec(29200),
			Itemized: &domain.ItemizedDeductions{
				StateLocalIncomeTax: dec(5000),
				RealEstateTaxes:     dec(4000),
				MortgageInterest:    dec(5500),
				CharitableCash:      dec(1000),
			},
			OtherItems: []domain.OtherDeductionItem{{Type: "gambling_losses", Amount: dec(500)}},
		},
		Credits: domain.TaxCredits{
			ChildTaxCredit:           domain.AutoCredit(dec(4000)),
			CreditForOtherDependents: domain.AutoCredit(decimal.Zero),
			ChildDependentCareCredit: domain.AutoCredit(dec(800)),
			EducationCredits:         domain.AutoCredit(decimal.Zero),
			RetirementSavingsCredit:  domain.AutoCredit(decimal.Zero),
			OtherCredits:             domain.AutoCredit(decimal.Zero),
		},
		CreditDetail: domain.CreditDetail{
			QualifyingChildren:    2,
			CareQualifyingPersons: 2,
			CareCreditRate:        decimal.RequireFromString("0.20"),
		},
		MarginalRate: decimal.RequireFromString("0.12"),
		Results: domain.CalculatedResults{
			TotalIncome:         dec(120500),
			Adjustments:         dec(2000),
			AdjustedGrossIncome: dec(118500),
			Deductions:          dec(29200),
			TaxableIncome:       dec(89300),
			FederalTax:          dec(10252),
			Credits:             dec(4800),
			TaxDue:              dec(5452),
			Payments:            dec(7000),
			RefundAmount:        dec(1548),
			AmountOwed:          decimal.Zero,
		},
	}
}

// singleReport is a single filer with wages only who owes a balance.
func singleReport() *domain.Report {
	return &domain.Report{
		ReturnID:     "single-2024",
		TaxpayerName: "Blake Chen",
		TaxYear:      2024,
		FilingStatus: domain.Single,
		Deductions: domain.DeductionBreakdown{
			UseStandard:       true,
			StandardDeduction: dec(14600),
			Applied:           dec(14600),
		},
		Credits: domain.TaxCredits{
			ChildTaxCredit: domain.AutoCredit(decimal.Zero),
			OtherCredits:   domain.OverrideCredit(dec(250)),
		},
		MarginalRate: decimal.RequireFromString("0.22"),
		Results: domain.CalculatedResults{
			TotalIncome:         dec(64600),
			AdjustedGrossIncome: dec(64600),
			Deductions:          dec(14600),
			TaxableIncome:       dec(50000),
			FederalTax:          dec(6053),
			Credits:             dec(250),
			TaxDue:              dec(5803),
			Payments:            dec(4000),
			AmountOwed:          dec(1803),
			RefundAmount:        decimal.Zero,
		},
	}
}

func testSet(reports ...*domain.Report) *domain.ReportSet {
	return NewReportSet(reports, nil)
}
