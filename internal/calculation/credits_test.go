package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

func TestChildTaxCredit(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	twoKids := []domain.Dependent{
		child("Ava", born(2019, time.June, 1)),
		child("Ben", born(2014, time.March, 15)),
	}

	tests := []struct {
		name        string
		dependents  []domain.Dependent
		agi         int64
		status      domain.FilingStatus
		expected    string
		description string
	}{
		{
			name:        "No dependents",
			agi:         50000,
			status:      domain.Single,
			expected:    "0",
			description: "Single filer without dependents",
		},
		{
			name:        "Two children below phase-out",
			dependents:  twoKids,
			agi:         60000,
			status:      domain.MarriedJoint,
			expected:    "4000",
			description: "Ages 5 and 10, AGI well under 400000",
		},
		{
			name:        "At threshold",
			dependents:  twoKids[:1],
			agi:         200000,
			status:      domain.Single,
			expected:    "2000",
			description: "No reduction exactly at the threshold",
		},
		{
			name:        "One dollar over threshold",
			dependents:  twoKids[:1],
			agi:         200001,
			status:      domain.HeadOfHousehold,
			expected:    "1950",
			description: "A partial $1,000 counts as a full step",
		},
		{
			name:        "Ten steps over",
			dependents:  twoKids[:1],
			agi:         210000,
			status:      domain.Single,
			expected:    "1500",
			description: "10 x $50",
		},
		{
			name:        "Fully phased out",
			dependents:  twoKids[:1],
			agi:         300000,
			status:      domain.Single,
			expected:    "0",
			description: "Credit floors at zero",
		},
		{
			name:        "Joint threshold",
			dependents:  twoKids,
			agi:         410000,
			status:      domain.MarriedJoint,
			expected:    "3500",
			description: "10 steps over 400000",
		},
		{
			name:        "Unknown status uses single threshold",
			dependents:  twoKids[:1],
			agi:         210000,
			status:      domain.FilingStatus("bogus"),
			expected:    "1500",
			description: "Same as single",
		},
		{
			name:        "Unflagged child does not count",
			dependents:  []domain.Dependent{{Name: "Niece", DateOfBirth: born(2018, time.January, 1)}},
			agi:         40000,
			status:      domain.Single,
			expected:    "0",
			description: "Goes to the other-dependents credit instead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cc.CalculateChildTaxCredit(tt.dependents, decimal.NewFromInt(tt.agi), tt.status, yearEnd2024)
			assertAmount(t, tt.expected, got, tt.description)
		})
	}
}

func TestChildAgeUsesTaxYearEnd(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	turns17OnYearEnd := child("Cal", born(2007, time.December, 31))
	turns17NextYear := child("Dee", born(2008, time.January, 1))
	deps := []domain.Dependent{turns17OnYearEnd, turns17NextYear}

	assert.False(t, cc.IsQualifyingChild(turns17OnYearEnd, yearEnd2024))
	assert.True(t, cc.IsQualifyingChild(turns17NextYear, yearEnd2024))
	assert.Equal(t, 1, cc.CountQualifyingChildren(deps, yearEnd2024))
	assert.Equal(t, 1, cc.CountOtherDependents(deps, yearEnd2024))

	// The same return evaluated for an earlier year counts both children
	assert.Equal(t, 2, cc.CountQualifyingChildren(deps, born(2023, time.December, 31)))
}

func TestCreditForOtherDependents(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	others := []domain.Dependent{
		{Name: "Grandma", DateOfBirth: born(1950, time.May, 2), Relationship: "parent"},
		child("College kid", born(2004, time.September, 9)),
	}

	assertAmount(t, "1000", cc.CalculateCreditForOtherDependents(others, decimal.NewFromInt(80000), domain.Single, yearEnd2024))
	// 5500 over -> 6 steps -> 300
	assertAmount(t, "700", cc.CalculateCreditForOtherDependents(others, decimal.NewFromInt(205500), domain.Single, yearEnd2024))
	assertAmount(t, "0", cc.CalculateCreditForOtherDependents(others, decimal.NewFromInt(230000), domain.Single, yearEnd2024))
	assertAmount(t, "0", cc.CalculateCreditForOtherDependents(nil, decimal.NewFromInt(50000), domain.Single, yearEnd2024))
	assertAmount(t, "1000", cc.CalculateCreditForOtherDependents(others, decimal.NewFromInt(-5), domain.Single, yearEnd2024))
}

func TestChildCreditsShareReduction(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())
	deps := []domain.Dependent{
		child("Kid", born(2015, time.July, 4)),
		{Name: "Parent", DateOfBirth: born(1948, time.February, 1)},
	}

	tests := []struct {
		name string
		agi  int64
		ctc  string
		odc  string
	}{
		{"Below threshold", 300000, "2000", "500"},
		{"Reduction absorbed by CTC", 438500, "50", "500"},
		{"Reduction spills into ODC", 445000, "0", "250"},
		{"Both gone", 460000, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctc, odc := cc.ChildCredits(deps, decimal.NewFromInt(tt.agi), domain.MarriedJoint, yearEnd2024)
			assertAmount(t, tt.ctc, ctc)
			assertAmount(t, tt.odc, odc)
		})
	}

	// Applied alone, each credit takes the whole reduction
	assertAmount(t, "0", cc.CalculateCreditForOtherDependents(deps, decimal.NewFromInt(445000), domain.MarriedJoint, yearEnd2024))
}

func TestCareCreditRate(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	tests := []struct {
		agi      int64
		expected string
	}{
		{0, "0.35"},
		{15000, "0.35"},
		{15001, "0.34"},
		{17000, "0.34"},
		{17001, "0.33"},
		{30000, "0.27"},
		{43000, "0.21"},
		{45000, "0.20"},
		{250000, "0.20"},
	}

	for _, tt := range tests {
		got := cc.CareCreditRate(decimal.NewFromInt(tt.agi))
		assertAmount(t, tt.expected, got, "AGI %d", tt.agi)
	}
}

func TestChildDependentCareCredit(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	tests := []struct {
		name     string
		expenses int64
		agi      int64
		count    int
		expected string
	}{
		{"No qualifying persons", 5000, 30000, 0, "0"},
		{"One person capped at 3000", 5000, 30000, 1, "810"},
		{"Two persons", 5000, 30000, 2, "1350"},
		{"Three persons capped at two", 8000, 30000, 3, "1620"},
		{"Expenses under the limit", 1000, 10000, 1, "350"},
		{"High income floor", 6000, 200000, 2, "1200"},
		{"Negative expenses", -100, 30000, 1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cc.CalculateChildDependentCareCredit(decimal.NewFromInt(tt.expenses), decimal.NewFromInt(tt.agi), tt.count)
			assertAmount(t, tt.expected, got)
		})
	}
}

func TestCountCareQualifyingDependents(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())
	deps := []domain.Dependent{
		child("Twelve", born(2012, time.June, 1)),
		child("Thirteen", born(2011, time.January, 1)),
		{Name: "Brother", DateOfBirth: born(1984, time.April, 1), IsDisabled: true},
	}
	assert.Equal(t, 2, cc.CountCareQualifyingDependents(deps, yearEnd2024))
}

func TestRetirementSavingsCredit(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())

	tests := []struct {
		name          string
		contributions int64
		agi           int64
		status        domain.FilingStatus
		joint         bool
		expected      string
		description   string
	}{
		{
			name:          "Single at 50 percent",
			contributions: 5000,
			agi:           20000,
			status:        domain.Single,
			expected:      "1000",
			description:   "min(5000, 2000) x 0.5, equal to the single cap",
		},
		{
			name:          "Joint at 50 percent",
			contributions: 5000,
			agi:           40000,
			status:        domain.MarriedJoint,
			joint:         true,
			expected:      "2000",
			description:   "min(5000, 4000) x 0.5",
		},
		{
			name:          "Single at 20 percent",
			contributions: 3000,
			agi:           24000,
			status:        domain.Single,
			expected:      "400",
			description:   "2000 x 0.2",
		},
		{
			name:          "Single at top of 10 percent band",
			contributions: 2000,
			agi:           38250,
			status:        domain.Single,
			expected:      "200",
			description:   "Band ceilings are inclusive",
		},
		{
			name:          "Single above bands",
			contributions: 2000,
			agi:           38251,
			status:        domain.Single,
			expected:      "0",
			description:   "No credit above the top band",
		},
		{
			name:          "Head of household at 20 percent",
			contributions: 1500,
			agi:           35000,
			status:        domain.HeadOfHousehold,
			expected:      "300",
			description:   "1500 x 0.2",
		},
		{
			name:          "Unknown status",
			contributions: 2000,
			agi:           24000,
			status:        domain.FilingStatus("bogus"),
			expected:      "400",
			description:   "Single bands",
		},
		{
			name:          "No contributions",
			agi:           10000,
			status:        domain.Single,
			expected:      "0",
			description:   "Nothing to credit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cc.CalculateRetirementSavingsCredit(decimal.NewFromInt(tt.contributions), decimal.NewFromInt(tt.agi), tt.status, tt.joint)
			assertAmount(t, tt.expected, got, tt.description)
		})
	}
}

func TestCreditMonotonicity(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())
	deps := []domain.Dependent{
		child("A", born(2016, time.May, 5)),
		child("B", born(2020, time.October, 10)),
		{Name: "C", DateOfBirth: born(1955, time.March, 3)},
	}
	education := domain.EducationExpenses{
		AOTCStudentExpenses: []decimal.Decimal{decimal.NewFromInt(4000)},
		LLCExpenses:         decimal.NewFromInt(6000),
	}

	for _, status := range append(domain.AllFilingStatuses(), domain.FilingStatus("bogus")) {
		prev := map[string]decimal.Decimal{}
		for agi := int64(0); agi <= 500000; agi += 1750 {
			a := decimal.NewFromInt(agi)
			ctc, odc := cc.ChildCredits(deps, a, status, yearEnd2024)
			aotc, llc := cc.CalculateEducationCredits(education, a, status)
			current := map[string]decimal.Decimal{
				"ctc":      cc.CalculateChildTaxCredit(deps, a, status, yearEnd2024),
				"odc":      cc.CalculateCreditForOtherDependents(deps, a, status, yearEnd2024),
				"ctc_comb": ctc,
				"odc_comb": odc,
				"care":     cc.CalculateChildDependentCareCredit(decimal.NewFromInt(6000), a, 2),
				"savers":   cc.CalculateRetirementSavingsCredit(decimal.NewFromInt(4000), a, status, status.IsJoint()),
				"aotc":     aotc,
				"llc":      llc,
			}
			for k, v := range current {
				assert.False(t, v.IsNegative(), "%s negative at %d", k, agi)
				if p, ok := prev[k]; ok {
					assert.True(t, v.LessThanOrEqual(p), "%s increased at AGI %d (%s): %s -> %s", k, agi, status, p, v)
				}
			}
			prev = current
		}
	}
}

func TestCreditCalculatorsAreIdempotent(t *testing.T) {
	cc := NewCreditCalculator(NewTaxTables2024())
	deps := []domain.Dependent{child("A", born(2016, time.May, 5))}
	agi := decimal.NewFromInt(205300)

	first := cc.CalculateChildTaxCredit(deps, agi, domain.Single, yearEnd2024)
	second := cc.CalculateChildTaxCredit(deps, agi, domain.Single, yearEnd2024)
	assert.True(t, first.Equal(second))

	r1 := cc.CalculateRetirementSavingsCredit(decimal.NewFromInt(1800), decimal.NewFromInt(24000), domain.Single, false)
	r2 := cc.CalculateRetirementSavingsCredit(decimal.NewFromInt(1800), decimal.NewFromInt(24000), domain.Single, false)
	assert.True(t, r1.Equal(r2))
}
