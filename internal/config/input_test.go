package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

const validReturnYAML = `id: rivera-2024
personal:
  first_name: Jordan
  last_name: Rivera
  filing_status: MFJ
  tax_year: 2024
  dependents:
    - name: Ava
      date_of_birth: 2019-06-01
      is_qualifying_child: true
income:
  wages: 120000
  interest_income: 500
  adjustments:
    student_loan_interest: 2000
deductions:
  use_standard: true
  itemized:
    state_local_income_tax: 7000
credits:
  child_tax_credit: {source: auto}
payments:
  federal_withholding: 7000
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
	assert.False(t, parser.Strict)
	assert.True(t, NewStrictInputParser().Strict)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := writeFile(t, "return.yaml", validReturnYAML)

	for _, parser := range []*InputParser{NewInputParser(), NewStrictInputParser()} {
		ret, err := parser.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "rivera-2024", ret.ID)
		assert.Equal(t, domain.MarriedJoint, ret.Personal.FilingStatus, "alias normalized")
		require.Len(t, ret.Personal.Dependents, 1)
		assert.Equal(t, "118500.00", ret.Income.AdjustedGrossIncome().StringFixed(2))
		assert.True(t, ret.Deductions.UseStandard)
		assert.Equal(t, domain.CreditAuto, ret.Credits.ChildTaxCredit.Source)
	}
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	ret, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, ret)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "personal: [not, a, mapping\n")

	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_MalformedAmount(t *testing.T) {
	path := writeFile(t, "bad_amount.yaml", "income:\n  wages: lots\n")

	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
}

func TestPermissiveParserKeepsUnknownStatus(t *testing.T) {
	ret, err := NewInputParser().Parse([]byte("personal:\n  filing_status: divorced\nincome:\n  wages: -5\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.FilingStatus("divorced"), ret.Personal.FilingStatus)
	assert.True(t, ret.Income.Wages.IsNegative())
}

func TestStrictParserRejectsInvalidReturn(t *testing.T) {
	_, err := NewStrictInputParser().Parse([]byte("personal:\n  filing_status: divorced\nincome:\n  wages: -5\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidReturn)
	assert.Contains(t, err.Error(), "personal.filing_status")
	assert.Contains(t, err.Error(), "income.wages: must not be negative")
}

func TestValidationIssues(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name     string
		modify   func(ret *domain.TaxReturn)
		expected []string
	}{
		{
			name:     "Example return is valid",
			modify:   func(ret *domain.TaxReturn) {},
			expected: nil,
		},
		{
			name:     "Missing filing status",
			modify:   func(ret *domain.TaxReturn) { ret.Personal.FilingStatus = "" },
			expected: []string{"personal.filing_status: is required"},
		},
		{
			name:     "Tax year out of range",
			modify:   func(ret *domain.TaxReturn) { ret.Personal.TaxYear = 1999 },
			expected: []string{"personal.tax_year: must be at least 2018"},
		},
		{
			name: "Dependent without birth date",
			modify: func(ret *domain.TaxReturn) {
				ret.Personal.Dependents[1] = domain.Dependent{Name: "Nobody"}
			},
			expected: []string{"personal.dependents[1].date_of_birth: is required"},
		},
		{
			name: "Dependent born after year end",
			modify: func(ret *domain.TaxReturn) {
				ret.Personal.Dependents[0].DateOfBirth = ret.TaxYearEnd().AddDate(0, 2, 0)
			},
			expected: []string{"personal.dependents[0].date_of_birth: born after the end of tax year 2024"},
		},
		{
			name: "Negative itemized value",
			modify: func(ret *domain.TaxReturn) {
				ret.Deductions.Itemized.MortgageInterest = decimal.NewFromInt(-1)
			},
			expected: []string{"deductions.itemized.mortgage_interest: must not be negative"},
		},
		{
			name: "Other item without type",
			modify: func(ret *domain.TaxReturn) {
				ret.Deductions.OtherItems[0].Type = ""
			},
			expected: []string{"deductions.other_items[0].type: is required"},
		},
		{
			name: "Unknown credit source",
			modify: func(ret *domain.TaxReturn) {
				ret.Credits.EducationCredits.Source = "guess"
			},
			expected: []string{`credits.education_credits.source: "guess" is not one of [auto override]`},
		},
		{
			name: "Negative student expenses",
			modify: func(ret *domain.TaxReturn) {
				ret.CreditInputs.Education.AOTCStudentExpenses = []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(-100)}
			},
			expected: []string{"credit_inputs.education.aotc_student_expenses[1]: must not be negative"},
		},
		{
			name: "Separate filer claiming education credits",
			modify: func(ret *domain.TaxReturn) {
				ret.Personal.FilingStatus = domain.MarriedSeparate
				ret.CreditInputs.Education.AOTCStudentExpenses = []decimal.Decimal{decimal.NewFromInt(3000)}
			},
			expected: []string{"credit_inputs.education: married filing separately cannot claim education credits"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := parser.CreateExampleReturn()
			tt.modify(ret)
			assert.Equal(t, tt.expected, parser.ValidationIssues(ret))

			err := parser.ValidateReturn(ret)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidReturn)
			}
		})
	}
}

func TestSaveReturnRoundTrip(t *testing.T) {
	parser := NewStrictInputParser()
	original := parser.CreateExampleReturn()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveReturn(original, path))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Personal.FilingStatus, loaded.Personal.FilingStatus)
	assert.Len(t, loaded.Personal.Dependents, 3)
	assert.True(t, original.Personal.Dependents[0].DateOfBirth.Equal(loaded.Personal.Dependents[0].DateOfBirth))
	assert.True(t, original.Income.AdjustedGrossIncome().Equal(loaded.Income.AdjustedGrossIncome()))
	assert.True(t, original.Deductions.Itemized.MortgageInterest.Equal(loaded.Deductions.Itemized.MortgageInterest))
	assert.Equal(t, domain.CreditAuto, loaded.Credits.ChildTaxCredit.Source)
	assert.True(t, original.Payments.Total().Equal(loaded.Payments.Total()))
}

func TestLoadTablesFromFile(t *testing.T) {
	path := writeFile(t, "tables.yaml", `tax_year: 2025
standard_deduction:
  single: 15000
  married_joint: 30000
salt_cap_married_separate: 5000
child_tax_credit:
  per_child: 2200
brackets:
  single:
    - {min: 0, max: 11925, rate: 0.10}
    - {min: 11925, max: 48475, rate: 0.12}
    - {min: 48475, rate: 0.22}
`)

	cfg, err := NewInputParser().LoadTablesFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2025, cfg.TaxYear)
	assert.Equal(t, "15000.00", cfg.StandardDeduction[domain.Single].StringFixed(2))
	assert.Equal(t, "5000.00", cfg.SALTCapMarriedSeparate.StringFixed(2))
	assert.Equal(t, "2200.00", cfg.ChildTaxCredit.PerChild.StringFixed(2))
	require.Len(t, cfg.Brackets[domain.Single], 3)
	assert.True(t, cfg.Brackets[domain.Single][2].Max.IsZero())
}

func TestValidateTables(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.TaxTablesConfig
		wantErr string
	}{
		{
			name: "Empty override is valid",
			cfg:  domain.TaxTablesConfig{},
		},
		{
			name: "Unknown status key",
			cfg: domain.TaxTablesConfig{
				StandardDeduction: map[domain.FilingStatus]decimal.Decimal{"divorced": decimal.NewFromInt(1)},
			},
			wantErr: `unknown filing status "divorced"`,
		},
		{
			name: "Gap between brackets",
			cfg: domain.TaxTablesConfig{
				Brackets: map[domain.FilingStatus][]domain.TaxBracket{
					domain.Single: {
						{Min: decimal.Zero, Max: decimal.NewFromInt(1000), Rate: decimal.RequireFromString("0.1")},
						{Min: decimal.NewFromInt(1001), Rate: decimal.RequireFromString("0.2")},
					},
				},
			},
			wantErr: "does not continue from",
		},
		{
			name: "Rate above one",
			cfg: domain.TaxTablesConfig{
				Brackets: map[domain.FilingStatus][]domain.TaxBracket{
					domain.Single: {{Min: decimal.Zero, Rate: decimal.NewFromInt(10)}},
				},
			},
			wantErr: "outside 0..1",
		},
		{
			name: "Saver bands out of order",
			cfg: domain.TaxTablesConfig{
				SaversCredit: domain.SaversCreditConfig{
					Bands: map[domain.FilingStatus]domain.SaversBand{
						domain.Single: {FiftyPercentMax: decimal.NewFromInt(30000), TwentyPercentMax: decimal.NewFromInt(25000), TenPercentMax: decimal.NewFromInt(38250)},
					},
				},
			},
			wantErr: "ceilings must ascend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTables(tt.cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTables)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFileSource(t *testing.T) {
	path := writeFile(t, "return.yaml", validReturnYAML)
	src := NewFileSource(path, nil)
	assert.Equal(t, path, src.String())

	ret, err := src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jordan Rivera", ret.Personal.FullName())

	// Later edits are picked up by the next snapshot
	require.NoError(t, os.WriteFile(path, []byte("personal:\n  first_name: Casey\n  filing_status: single\n"), 0o644))
	ret, err = src.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Casey", ret.Personal.FullName())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
