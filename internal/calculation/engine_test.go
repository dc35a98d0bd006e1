package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// recordingLogger captures warnings for assertions
type recordingLogger struct {
	NopLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func familyReturn() *domain.TaxReturn {
	return &domain.TaxReturn{
		ID: "family-2024",
		Personal: domain.PersonalInfo{
			FirstName:    "Jordan",
			LastName:     "Rivera",
			FilingStatus: domain.MarriedJoint,
			TaxYear:      2024,
			Dependents: []domain.Dependent{
				child("Ava", born(2019, time.June, 1)),
				child("Ben", born(2014, time.March, 15)),
			},
		},
		Income: domain.Income{
			Wages:          decimal.NewFromInt(120000),
			InterestIncome: decimal.NewFromInt(500),
			Adjustments: domain.AdjustmentsToIncome{
				StudentLoanInterest: decimal.NewFromInt(2000),
			},
		},
		Deductions: domain.Deductions{
			UseStandard: true,
			Itemized: &domain.ItemizedDeductions{
				StateLocalIncomeTax: decimal.NewFromInt(7000),
				MortgageInterest:    decimal.NewFromInt(9000),
			},
		},
		CreditInputs: domain.CreditInputs{
			ChildCareExpenses: decimal.NewFromInt(4000),
			Retirement: domain.RetirementContributions{
				Plan401k: decimal.NewFromInt(10000),
			},
		},
		Payments: domain.Payments{
			FederalWithholding: decimal.NewFromInt(7000),
		},
	}
}

func TestCalculateFamilyReturn(t *testing.T) {
	calc := NewCalculator()
	report := calc.Calculate(familyReturn())
	r := report.Results

	assert.Equal(t, "family-2024", report.ReturnID)
	assert.Equal(t, "Jordan Rivera", report.TaxpayerName)
	assert.Equal(t, 2024, report.TaxYear)

	assertAmount(t, "120500", r.TotalIncome)
	assertAmount(t, "2000", r.Adjustments)
	assertAmount(t, "118500", r.AdjustedGrossIncome)
	assertAmount(t, "29200", r.Deductions)
	assertAmount(t, "89300", r.TaxableIncome)
	assertAmount(t, "10252", r.FederalTax)
	assertAmount(t, "4800", r.Credits)
	assertAmount(t, "5452", r.TaxDue)
	assertAmount(t, "7000", r.Payments)
	assertAmount(t, "1548", r.RefundAmount)
	assertAmount(t, "0", r.AmountOwed)
	assert.True(t, r.IsRefund())

	assertAmount(t, "4000", report.Credits.ChildTaxCredit.Amount)
	assertAmount(t, "800", report.Credits.ChildDependentCareCredit.Amount)
	assertAmount(t, "0", report.Credits.RetirementSavingsCredit.Amount)
	assert.Equal(t, domain.CreditAuto, report.Credits.ChildTaxCredit.Source)
	assert.Equal(t, 2, report.CreditDetail.QualifyingChildren)
	assert.Equal(t, 2, report.CreditDetail.CareQualifyingPersons)
	assertAmount(t, "0.20", report.CreditDetail.CareCreditRate)
	assertAmount(t, "0.12", report.MarginalRate)
	assertAmount(t, "16000", report.Deductions.ItemizedTotal)
}

func TestOverrideCreditsAreNeverRecomputed(t *testing.T) {
	calc := NewCalculator()
	ret := familyReturn()
	ret.Credits.ChildTaxCredit = domain.OverrideCredit(decimal.NewFromInt(1000))
	ret.Credits.OtherCredits = domain.OverrideCredit(decimal.NewFromInt(250))

	report := calc.Calculate(ret)

	assert.True(t, report.Credits.ChildTaxCredit.IsOverride())
	assertAmount(t, "1000", report.Credits.ChildTaxCredit.Amount)
	assertAmount(t, "800", report.Credits.ChildDependentCareCredit.Amount)
	assertAmount(t, "2050", report.Results.Credits)
	assertAmount(t, "8202", report.Results.TaxDue)
	assertAmount(t, "1202", report.Results.AmountOwed)
	assertAmount(t, "0", report.Results.RefundAmount)

	// A zero override stays zero even though the calculator would grant the credit
	ret.Credits.ChildTaxCredit = domain.OverrideCredit(decimal.Zero)
	report = calc.Calculate(ret)
	assertAmount(t, "0", report.Credits.ChildTaxCredit.Amount)
	assert.Equal(t, domain.CreditOverride, report.Credits.ChildTaxCredit.Source)
}

func TestCalculateDoesNotModifyReturn(t *testing.T) {
	calc := NewCalculator()
	ret := familyReturn()
	itemizedBefore := *ret.Deductions.Itemized
	creditsBefore := ret.Credits

	first := calc.Calculate(ret)
	second := calc.Calculate(ret)

	assert.Equal(t, first, second)
	assert.Equal(t, itemizedBefore, *ret.Deductions.Itemized)
	assert.Equal(t, creditsBefore, ret.Credits)
}

func TestScenarios(t *testing.T) {
	calc := NewCalculator()

	t.Run("Single, no dependents, standard deduction", func(t *testing.T) {
		ret := &domain.TaxReturn{
			Personal:   domain.PersonalInfo{FilingStatus: domain.Single},
			Income:     domain.Income{Wages: decimal.NewFromInt(50000)},
			Deductions: domain.Deductions{UseStandard: true},
		}
		report := calc.Calculate(ret)
		assertAmount(t, "50000", report.Results.AdjustedGrossIncome)
		assertAmount(t, "14600", report.Results.Deductions)
		assertAmount(t, "0", report.Credits.ChildTaxCredit.Amount)
		assertAmount(t, "0", report.Credits.CreditForOtherDependents.Amount)
		assertAmount(t, "4016", report.Results.FederalTax)
		assertAmount(t, "4016", report.Results.AmountOwed)
	})

	t.Run("Everything zero", func(t *testing.T) {
		report := calc.Calculate(&domain.TaxReturn{Personal: domain.PersonalInfo{FilingStatus: domain.Single}})
		r := report.Results
		assertAmount(t, "0", r.TaxDue)
		assertAmount(t, "0", r.RefundAmount)
		assertAmount(t, "0", r.AmountOwed)
		assert.False(t, r.IsRefund())
		assert.True(t, r.EffectiveRate().IsZero())
	})
}

func TestComputeResultsNonNegativity(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name       string
		income     domain.Income
		deductions int64
		credits    int64
		payments   int64
	}{
		{
			name:   "Adjustments exceed income",
			income: domain.Income{Wages: decimal.NewFromInt(3000), Adjustments: domain.AdjustmentsToIncome{HSAContributions: decimal.NewFromInt(8000)}},
		},
		{
			name:       "Deduction exceeds AGI",
			income:     domain.Income{Wages: decimal.NewFromInt(10000)},
			deductions: 29200,
			payments:   500,
		},
		{
			name:     "Credits exceed tax",
			income:   domain.Income{Wages: decimal.NewFromInt(40000)},
			credits:  9000,
			payments: 0,
		},
		{
			name:       "Payments equal tax due",
			income:     domain.Income{Wages: decimal.NewFromInt(24600)},
			deductions: 14600,
			payments:   1000,
		},
		{
			name:       "Owes",
			income:     domain.Income{Wages: decimal.NewFromInt(90000), BusinessIncome: decimal.NewFromInt(-5000)},
			deductions: 14600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credits := domain.TaxCredits{OtherCredits: domain.OverrideCredit(decimal.NewFromInt(tt.credits))}
			payments := domain.Payments{FederalWithholding: decimal.NewFromInt(tt.payments)}
			r := calc.ComputeResults(domain.Single, tt.income, decimal.NewFromInt(tt.deductions), credits, payments)

			assert.False(t, r.TaxableIncome.IsNegative())
			assert.False(t, r.TaxDue.IsNegative())
			assert.False(t, r.RefundAmount.IsNegative())
			assert.False(t, r.AmountOwed.IsNegative())
			assert.False(t, r.RefundAmount.IsPositive() && r.AmountOwed.IsPositive(), "refund and owed both positive")

			diff := r.Payments.Sub(r.TaxDue)
			switch {
			case diff.IsPositive():
				assert.True(t, r.RefundAmount.Equal(diff))
			case diff.IsNegative():
				assert.True(t, r.AmountOwed.Equal(diff.Neg()))
			default:
				assert.True(t, r.RefundAmount.IsZero() && r.AmountOwed.IsZero())
			}
		})
	}
}

func TestUnknownFilingStatusFallsBackToSingle(t *testing.T) {
	calc := NewCalculator()
	logger := &recordingLogger{}
	calc.SetLogger(logger)

	ret := &domain.TaxReturn{
		Personal:   domain.PersonalInfo{FilingStatus: domain.FilingStatus("married_sorta")},
		Income:     domain.Income{Wages: decimal.NewFromInt(50000), OtherIncome: decimal.NewFromInt(-10)},
		Deductions: domain.Deductions{UseStandard: true},
	}
	report := calc.Calculate(ret)

	assertAmount(t, "14600", report.Results.Deductions)
	assertAmount(t, "4016", report.Results.FederalTax)
	require.Len(t, logger.warns, 2)
	assert.Contains(t, logger.warns[0], "married_sorta")
	assert.Contains(t, logger.warns[1], "other_income")
}

type memorySink struct {
	mu      sync.Mutex
	reports []*domain.Report
	err     error
}

func (s *memorySink) SaveResults(ctx context.Context, report *domain.Report) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

type failingSource struct{ err error }

func (f failingSource) Snapshot(ctx context.Context) (*domain.TaxReturn, error) {
	return nil, f.err
}

func TestRun(t *testing.T) {
	calc := NewCalculator()
	ctx := context.Background()

	t.Run("Saves the report", func(t *testing.T) {
		sink := &memorySink{}
		report, err := calc.Run(ctx, StaticSource{Return: familyReturn()}, sink)
		require.NoError(t, err)
		require.Len(t, sink.reports, 1)
		assert.Same(t, report, sink.reports[0])
	})

	t.Run("Nil sink", func(t *testing.T) {
		report, err := calc.Run(ctx, StaticSource{Return: familyReturn()}, nil)
		require.NoError(t, err)
		assertAmount(t, "1548", report.Results.RefundAmount)
	})

	t.Run("Snapshot error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := calc.Run(ctx, failingSource{err: boom}, &memorySink{})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Sink error is wrapped", func(t *testing.T) {
		boom := errors.New("disk full")
		_, err := calc.Run(ctx, StaticSource{Return: familyReturn()}, &memorySink{err: boom})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "Jordan Rivera")
	})
}
