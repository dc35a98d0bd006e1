package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// TAX TABLE ASSUMPTIONS:
//
// 1. Values are the 2024 IRS figures (Rev. Proc. 2023-34) and are used for every return
//    regardless of the tax year it names. A tax_tables.yaml override replaces them.
//
// 2. SALT cap: flat $10,000 for every filing status, including married filing separately.
//    Current law halves it for separate filers; set salt_cap_married_separate to 5000 to
//    apply that.
//
// 3. Unknown filing statuses use the single bands.

// TaxTables is the read-only threshold data every calculator looks up.
// It is never mutated after construction and may be shared across goroutines.
type TaxTables struct {
	cfg domain.TaxTablesConfig
}

func dollars(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ratio(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func brackets(tops [6]int64) []domain.TaxBracket {
	rates := []string{"0.10", "0.12", "0.22", "0.24", "0.32", "0.35", "0.37"}
	out := make([]domain.TaxBracket, 0, len(rates))
	lower := decimal.Zero
	for i, rate := range rates {
		b := domain.TaxBracket{Min: lower, Rate: ratio(rate)}
		if i < len(tops) {
			b.Max = dollars(tops[i])
			lower = b.Max
		}
		out = append(out, b)
	}
	return out
}

// DefaultTaxTablesConfig returns the built-in 2024 tables
func DefaultTaxTablesConfig() domain.TaxTablesConfig {
	joint := brackets([6]int64{23200, 94300, 201050, 383900, 487450, 731200})
	return domain.TaxTablesConfig{
		TaxYear: 2024,
		StandardDeduction: map[domain.FilingStatus]decimal.Decimal{
			domain.Single:          dollars(14600),
			domain.MarriedJoint:    dollars(29200),
			domain.MarriedSeparate: dollars(14600),
			domain.HeadOfHousehold: dollars(21900),
			domain.QualifyingWidow: dollars(29200),
		},
		SALTCap:                dollars(10000),
		SALTCapMarriedSeparate: dollars(10000),
		Brackets: map[domain.FilingStatus][]domain.TaxBracket{
			domain.Single:          brackets([6]int64{11600, 47150, 100525, 191950, 243725, 609350}),
			domain.MarriedJoint:    joint,
			domain.MarriedSeparate: brackets([6]int64{11600, 47150, 100525, 191950, 243725, 365600}),
			domain.HeadOfHousehold: brackets([6]int64{16550, 63100, 100500, 191950, 243700, 609350}),
			domain.QualifyingWidow: joint,
		},
		ChildTaxCredit: domain.ChildCreditConfig{
			PerChild:          dollars(2000),
			PerOtherDependent: dollars(500),
			ChildAgeLimit:     17,
			PhaseOutThreshold: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:          dollars(200000),
				domain.MarriedJoint:    dollars(400000),
				domain.MarriedSeparate: dollars(200000),
				domain.HeadOfHousehold: dollars(200000),
				domain.QualifyingWidow: dollars(200000),
			},
			PhaseOutIncrement: dollars(1000),
			PhaseOutReduction: dollars(50),
		},
		DependentCare: domain.DependentCareConfig{
			ExpenseLimitPerPerson: dollars(3000),
			MaxQualifyingPersons:  2,
			AgeLimit:              13,
			StartRate:             ratio("0.35"),
			FloorRate:             ratio("0.20"),
			RateStep:              ratio("0.01"),
			AGIStart:              dollars(15000),
			AGIIncrement:          dollars(2000),
		},
		SaversCredit: domain.SaversCreditConfig{
			Bands: map[domain.FilingStatus]domain.SaversBand{
				domain.Single:          {FiftyPercentMax: dollars(23000), TwentyPercentMax: dollars(25000), TenPercentMax: dollars(38250)},
				domain.MarriedJoint:    {FiftyPercentMax: dollars(46000), TwentyPercentMax: dollars(50000), TenPercentMax: dollars(76500)},
				domain.MarriedSeparate: {FiftyPercentMax: dollars(23000), TwentyPercentMax: dollars(25000), TenPercentMax: dollars(38250)},
				domain.HeadOfHousehold: {FiftyPercentMax: dollars(34500), TwentyPercentMax: dollars(37500), TenPercentMax: dollars(57375)},
				domain.QualifyingWidow: {FiftyPercentMax: dollars(23000), TwentyPercentMax: dollars(25000), TenPercentMax: dollars(38250)},
			},
			ContributionLimit:      dollars(2000),
			ContributionLimitJoint: dollars(4000),
			CreditCap:              dollars(1000),
			CreditCapJoint:         dollars(2000),
		},
		Education: domain.EducationCreditConfig{
			AOTCFirstTier:      dollars(2000),
			AOTCSecondTier:     dollars(2000),
			AOTCSecondTierRate: ratio("0.25"),
			LLCExpenseLimit:    dollars(10000),
			LLCRate:            ratio("0.20"),
			PhaseOutStart: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:          dollars(80000),
				domain.MarriedJoint:    dollars(160000),
				domain.HeadOfHousehold: dollars(80000),
				domain.QualifyingWidow: dollars(80000),
			},
			PhaseOutEnd: map[domain.FilingStatus]decimal.Decimal{
				domain.Single:          dollars(90000),
				domain.MarriedJoint:    dollars(180000),
				domain.HeadOfHousehold: dollars(90000),
				domain.QualifyingWidow: dollars(90000),
			},
		},
	}
}

// NewTaxTables2024 creates tables with the built-in 2024 values
func NewTaxTables2024() *TaxTables {
	return &TaxTables{cfg: DefaultTaxTablesConfig()}
}

// NewTaxTablesWithConfig creates tables from a loaded configuration.
// Any value left zero or absent falls back to the 2024 default.
func NewTaxTablesWithConfig(config domain.TaxTablesConfig) *TaxTables {
	def := DefaultTaxTablesConfig()
	cfg := def

	if config.TaxYear != 0 {
		cfg.TaxYear = config.TaxYear
	}
	cfg.StandardDeduction = mergeAmounts(def.StandardDeduction, config.StandardDeduction)
	cfg.SALTCap = orDefault(config.SALTCap, def.SALTCap)
	cfg.SALTCapMarriedSeparate = orDefault(config.SALTCapMarriedSeparate, def.SALTCapMarriedSeparate)

	cfg.Brackets = make(map[domain.FilingStatus][]domain.TaxBracket, len(def.Brackets))
	for fs, b := range def.Brackets {
		cfg.Brackets[fs] = b
	}
	for fs, b := range config.Brackets {
		if len(b) > 0 {
			cfg.Brackets[fs] = append([]domain.TaxBracket(nil), b...)
		}
	}

	ctc, dctc := config.ChildTaxCredit, def.ChildTaxCredit
	cfg.ChildTaxCredit = domain.ChildCreditConfig{
		PerChild:          orDefault(ctc.PerChild, dctc.PerChild),
		PerOtherDependent: orDefault(ctc.PerOtherDependent, dctc.PerOtherDependent),
		ChildAgeLimit:     orDefaultInt(ctc.ChildAgeLimit, dctc.ChildAgeLimit),
		PhaseOutThreshold: mergeAmounts(dctc.PhaseOutThreshold, ctc.PhaseOutThreshold),
		PhaseOutIncrement: orDefault(ctc.PhaseOutIncrement, dctc.PhaseOutIncrement),
		PhaseOutReduction: orDefault(ctc.PhaseOutReduction, dctc.PhaseOutReduction),
	}

	dc, ddc := config.DependentCare, def.DependentCare
	cfg.DependentCare = domain.DependentCareConfig{
		ExpenseLimitPerPerson: orDefault(dc.ExpenseLimitPerPerson, ddc.ExpenseLimitPerPerson),
		MaxQualifyingPersons:  orDefaultInt(dc.MaxQualifyingPersons, ddc.MaxQualifyingPersons),
		AgeLimit:              orDefaultInt(dc.AgeLimit, ddc.AgeLimit),
		StartRate:             orDefault(dc.StartRate, ddc.StartRate),
		FloorRate:             orDefault(dc.FloorRate, ddc.FloorRate),
		RateStep:              orDefault(dc.RateStep, ddc.RateStep),
		AGIStart:              orDefault(dc.AGIStart, ddc.AGIStart),
		AGIIncrement:          orDefault(dc.AGIIncrement, ddc.AGIIncrement),
	}

	sc, dsc := config.SaversCredit, def.SaversCredit
	bands := make(map[domain.FilingStatus]domain.SaversBand, len(dsc.Bands))
	for fs, b := range dsc.Bands {
		bands[fs] = b
	}
	for fs, b := range sc.Bands {
		if !b.TenPercentMax.IsZero() {
			bands[fs] = b
		}
	}
	cfg.SaversCredit = domain.SaversCreditConfig{
		Bands:                  bands,
		ContributionLimit:      orDefault(sc.ContributionLimit, dsc.ContributionLimit),
		ContributionLimitJoint: orDefault(sc.ContributionLimitJoint, dsc.ContributionLimitJoint),
		CreditCap:              orDefault(sc.CreditCap, dsc.CreditCap),
		CreditCapJoint:         orDefault(sc.CreditCapJoint, dsc.CreditCapJoint),
	}

	ed, ded := config.Education, def.Education
	cfg.Education = domain.EducationCreditConfig{
		AOTCFirstTier:      orDefault(ed.AOTCFirstTier, ded.AOTCFirstTier),
		AOTCSecondTier:     orDefault(ed.AOTCSecondTier, ded.AOTCSecondTier),
		AOTCSecondTierRate: orDefault(ed.AOTCSecondTierRate, ded.AOTCSecondTierRate),
		LLCExpenseLimit:    orDefault(ed.LLCExpenseLimit, ded.LLCExpenseLimit),
		LLCRate:            orDefault(ed.LLCRate, ded.LLCRate),
		PhaseOutStart:      mergeAmounts(ded.PhaseOutStart, ed.PhaseOutStart),
		PhaseOutEnd:        mergeAmounts(ded.PhaseOutEnd, ed.PhaseOutEnd),
	}

	return &TaxTables{cfg: cfg}
}

func orDefault(v, def decimal.Decimal) decimal.Decimal {
	if v.IsZero() {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func mergeAmounts(def, override map[domain.FilingStatus]decimal.Decimal) map[domain.FilingStatus]decimal.Decimal {
	out := make(map[domain.FilingStatus]decimal.Decimal, len(def)+len(override))
	for fs, v := range def {
		out[fs] = v
	}
	for fs, v := range override {
		if !v.IsZero() {
			out[fs] = v
		}
	}
	return out
}

// Config returns a copy of the active configuration, safe for the caller to modify
func (t *TaxTables) Config() domain.TaxTablesConfig {
	return NewTaxTablesWithConfig(t.cfg).cfg
}

// Year returns the tax year the tables describe
func (t *TaxTables) Year() int {
	return t.cfg.TaxYear
}

// Known reports whether the tables carry dedicated values for fs.
// Lookups for an unknown status fall back to single.
func (t *TaxTables) Known(fs domain.FilingStatus) bool {
	_, ok := t.cfg.StandardDeduction[fs]
	return ok
}

func statusOrSingle[V any](m map[domain.FilingStatus]V, fs domain.FilingStatus) V {
	if v, ok := m[fs]; ok {
		return v
	}
	return m[domain.Single]
}

// StandardDeduction returns the standard deduction for fs
func (t *TaxTables) StandardDeduction(fs domain.FilingStatus) decimal.Decimal {
	return statusOrSingle(t.cfg.StandardDeduction, fs)
}

// SALTCap returns the cap on combined state and local taxes for fs
func (t *TaxTables) SALTCap(fs domain.FilingStatus) decimal.Decimal {
	if fs == domain.MarriedSeparate {
		return t.cfg.SALTCapMarriedSeparate
	}
	return t.cfg.SALTCap
}

// Brackets returns the progressive brackets for fs in ascending order
func (t *TaxTables) Brackets(fs domain.FilingStatus) []domain.TaxBracket {
	return statusOrSingle(t.cfg.Brackets, fs)
}

// ChildCreditPhaseOutThreshold returns the AGI above which CTC and ODC begin to phase out
func (t *TaxTables) ChildCreditPhaseOutThreshold(fs domain.FilingStatus) decimal.Decimal {
	return statusOrSingle(t.cfg.ChildTaxCredit.PhaseOutThreshold, fs)
}

// SaversBand returns the saver's credit AGI ceilings for fs
func (t *TaxTables) SaversBand(fs domain.FilingStatus) domain.SaversBand {
	return statusOrSingle(t.cfg.SaversCredit.Bands, fs)
}

// EducationPhaseOut returns the AGI range over which education credits phase out.
// ok is false when the filing status cannot claim them.
func (t *TaxTables) EducationPhaseOut(fs domain.FilingStatus) (start, end decimal.Decimal, ok bool) {
	if fs == domain.MarriedSeparate {
		return decimal.Zero, decimal.Zero, false
	}
	return statusOrSingle(t.cfg.Education.PhaseOutStart, fs), statusOrSingle(t.cfg.Education.PhaseOutEnd, fs), true
}
