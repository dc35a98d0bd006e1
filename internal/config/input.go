package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// ErrInvalidReturn is returned when strict validation rejects a return
var ErrInvalidReturn = errors.New("invalid tax return")

// ErrInvalidTables is returned when a tax table override is inconsistent
var ErrInvalidTables = errors.New("invalid tax tables")

// InputParser handles parsing of tax return and tax table files.
// A non-strict parser accepts anything that decodes; the engine treats bad values
// permissively. A strict parser also runs ValidateReturn.
type InputParser struct {
	Strict   bool
	validate *validator.Validate
}

// NewInputParser creates a new permissive input parser
func NewInputParser() *InputParser {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimal amounts are compared as numbers by gte/lte tags
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their YAML keys
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &InputParser{validate: v}
}

// NewStrictInputParser creates an input parser that rejects invalid returns
func NewStrictInputParser() *InputParser {
	ip := NewInputParser()
	ip.Strict = true
	return ip
}

// LoadFromFile loads a tax return from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.TaxReturn, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	ret, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ret, nil
}

// Parse decodes a tax return from YAML and normalizes its filing status.
// An unrecognized status is kept as written so the engine can fall back to single.
func (ip *InputParser) Parse(data []byte) (*domain.TaxReturn, error) {
	var ret domain.TaxReturn
	if err := yaml.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fs, err := domain.ParseFilingStatus(string(ret.Personal.FilingStatus)); err == nil {
		ret.Personal.FilingStatus = fs
	}

	if ip.Strict {
		if err := ip.ValidateReturn(&ret); err != nil {
			return nil, err
		}
	}

	return &ret, nil
}

// ValidateReturn checks a return against the struct rules and the cross-field rules.
// The error wraps ErrInvalidReturn and lists every problem found.
func (ip *InputParser) ValidateReturn(ret *domain.TaxReturn) error {
	issues := ip.ValidationIssues(ret)
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidReturn, strings.Join(issues, "; "))
}

// ValidationIssues returns a readable message for every problem in ret
func (ip *InputParser) ValidationIssues(ret *domain.TaxReturn) []string {
	var issues []string

	if err := ip.validate.Struct(ret); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return []string{err.Error()}
		}
		for _, fe := range validationErrors {
			issues = append(issues, describeFieldError(fe))
		}
	}

	yearEnd := ret.TaxYearEnd()
	for i, dep := range ret.Personal.Dependents {
		if !dep.DateOfBirth.IsZero() && dep.DateOfBirth.After(yearEnd) {
			issues = append(issues, fmt.Sprintf("personal.dependents[%d].date_of_birth: born after the end of tax year %d", i, yearEnd.Year()))
		}
	}

	if len(ret.CreditInputs.Education.AOTCStudentExpenses) > 0 && ret.Personal.FilingStatus == domain.MarriedSeparate {
		issues = append(issues, "credit_inputs.education: married filing separately cannot claim education credits")
	}

	return issues
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "TaxReturn.")
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "gte":
		if fe.Param() == "0" {
			return field + ": must not be negative"
		}
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", field, fmt.Sprint(fe.Value()), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
}

// LoadTablesFromFile loads a tax table override from a YAML file.
// Values left out fall back to the built-in tables when the calculator is built.
func (ip *InputParser) LoadTablesFromFile(filename string) (domain.TaxTablesConfig, error) {
	var cfg domain.TaxTablesConfig

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse tax tables %s: %w", filename, err)
	}
	if err := ValidateTables(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// ValidateTables checks that every bracket list is ascending and contiguous with rates
// between 0 and 1, and that every filing status key is recognized
func ValidateTables(cfg domain.TaxTablesConfig) error {
	var issues []string

	for fs := range cfg.StandardDeduction {
		if !fs.IsValid() {
			issues = append(issues, fmt.Sprintf("standard_deduction: unknown filing status %q", fs))
		}
	}

	for fs, brackets := range cfg.Brackets {
		if !fs.IsValid() {
			issues = append(issues, fmt.Sprintf("brackets: unknown filing status %q", fs))
			continue
		}
		for i, b := range brackets {
			if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
				issues = append(issues, fmt.Sprintf("brackets.%s[%d]: rate %s outside 0..1", fs, i, b.Rate))
			}
			if i == 0 && !b.Min.IsZero() {
				issues = append(issues, fmt.Sprintf("brackets.%s[0]: must start at 0", fs))
			}
			if i > 0 && !b.Min.Equal(brackets[i-1].Max) {
				issues = append(issues, fmt.Sprintf("brackets.%s[%d]: min %s does not continue from %s", fs, i, b.Min, brackets[i-1].Max))
			}
			if i < len(brackets)-1 && !b.Max.GreaterThan(b.Min) {
				issues = append(issues, fmt.Sprintf("brackets.%s[%d]: max must be above min", fs, i))
			}
		}
	}

	for fs, band := range cfg.SaversCredit.Bands {
		if band.FiftyPercentMax.GreaterThan(band.TwentyPercentMax) || band.TwentyPercentMax.GreaterThan(band.TenPercentMax) {
			issues = append(issues, fmt.Sprintf("savers_credit.bands.%s: ceilings must ascend", fs))
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTables, strings.Join(issues, "; "))
}

// SaveReturn writes a return to a YAML file
func (ip *InputParser) SaveReturn(ret *domain.TaxReturn, filename string) error {
	data, err := yaml.Marshal(ret)
	if err != nil {
		return fmt.Errorf("failed to marshal return: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleReturn creates an example return covering every section of the input file
func (ip *InputParser) CreateExampleReturn() *domain.TaxReturn {
	avaBirthDate, _ := time.Parse("2006-01-02", "2018-05-14")
	benBirthDate, _ := time.Parse("2006-01-02", "2021-09-02")
	grandpaBirthDate, _ := time.Parse("2006-01-02", "1949-11-30")

	return &domain.TaxReturn{
		ID: "example-2024",
		Personal: domain.PersonalInfo{
			FirstName:    "Alex",
			LastName:     "Morgan",
			FilingStatus: domain.MarriedJoint,
			TaxYear:      domain.DefaultTaxYear,
			Dependents: []domain.Dependent{
				{Name: "Ava", DateOfBirth: avaBirthDate, Relationship: "daughter", IsQualifyingChild: true},
				{Name: "Ben", DateOfBirth: benBirthDate, Relationship: "son", IsQualifyingChild: true},
				{Name: "Walter", DateOfBirth: grandpaBirthDate, Relationship: "parent"},
			},
		},
		Income: domain.Income{
			Wages:          decimal.NewFromInt(98000),
			InterestIncome: decimal.NewFromInt(420),
			DividendIncome: decimal.NewFromInt(1150),
			Adjustments: domain.AdjustmentsToIncome{
				StudentLoanInterest: decimal.NewFromInt(1800),
				HSAContributions:    decimal.NewFromInt(3000),
			},
		},
		Deductions: domain.Deductions{
			UseStandard: false,
			Itemized: &domain.ItemizedDeductions{
				StateLocalIncomeTax: decimal.NewFromInt(6200),
				RealEstateTaxes:     decimal.NewFromInt(5400),
				MortgageInterest:    decimal.NewFromInt(11800),
				CharitableCash:      decimal.NewFromInt(2500),
				CharitableNonCash:   decimal.NewFromInt(400),
			},
			OtherItems: []domain.OtherDeductionItem{
				{Type: "gambling_losses", Amount: decimal.NewFromInt(300), Description: "Offset by reported winnings"},
			},
		},
		CreditInputs: domain.CreditInputs{
			ChildCareExpenses: decimal.NewFromInt(7200),
			Retirement: domain.RetirementContributions{
				Plan401k: decimal.NewFromInt(6000),
				RothIRA:  decimal.NewFromInt(1500),
			},
		},
		Credits: domain.TaxCredits{
			ChildTaxCredit:           domain.AutoCredit(decimal.Zero),
			CreditForOtherDependents: domain.AutoCredit(decimal.Zero),
			ChildDependentCareCredit: domain.AutoCredit(decimal.Zero),
			EducationCredits:         domain.AutoCredit(decimal.Zero),
			RetirementSavingsCredit:  domain.AutoCredit(decimal.Zero),
			OtherCredits:             domain.AutoCredit(decimal.Zero),
		},
		Payments: domain.Payments{
			FederalWithholding: decimal.NewFromInt(6500),
			EstimatedPayments:  decimal.NewFromInt(500),
		},
	}
}
