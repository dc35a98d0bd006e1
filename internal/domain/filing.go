package domain

import (
	"fmt"
	"strings"
)

// FilingStatus identifies the federal filing status that drives every threshold lookup
type FilingStatus string

const (
	Single          FilingStatus = "single"
	MarriedJoint    FilingStatus = "married_joint"
	MarriedSeparate FilingStatus = "married_separate"
	HeadOfHousehold FilingStatus = "head_of_household"
	QualifyingWidow FilingStatus = "qualifying_widow"
)

// filingStatusAliases maps common shorthand used on paper forms to the canonical status
var filingStatusAliases = map[string]FilingStatus{
	"mfj":                         MarriedJoint,
	"married_filing_jointly":      MarriedJoint,
	"mfs":                         MarriedSeparate,
	"married_filing_separately":   MarriedSeparate,
	"hoh":                         HeadOfHousehold,
	"qw":                          QualifyingWidow,
	"qss":                         QualifyingWidow,
	"qualifying_surviving_spouse": QualifyingWidow,
}

// AllFilingStatuses returns the supported statuses in form order
func AllFilingStatuses() []FilingStatus {
	return []FilingStatus{Single, MarriedJoint, MarriedSeparate, HeadOfHousehold, QualifyingWidow}
}

// IsValid reports whether fs is one of the supported statuses
func (fs FilingStatus) IsValid() bool {
	switch fs {
	case Single, MarriedJoint, MarriedSeparate, HeadOfHousehold, QualifyingWidow:
		return true
	}
	return false
}

// IsJoint reports whether the return is filed jointly by two spouses
func (fs FilingStatus) IsJoint() bool {
	return fs == MarriedJoint
}

// Label returns a human readable name for reports
func (fs FilingStatus) Label() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedJoint:
		return "Married Filing Jointly"
	case MarriedSeparate:
		return "Married Filing Separately"
	case HeadOfHousehold:
		return "Head of Household"
	case QualifyingWidow:
		return "Qualifying Surviving Spouse"
	}
	return "Unknown (" + string(fs) + ")"
}

// ParseFilingStatus normalizes user input (case, dashes, common aliases) into a FilingStatus
func ParseFilingStatus(s string) (FilingStatus, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	if fs := FilingStatus(n); fs.IsValid() {
		return fs, nil
	}
	if fs, ok := filingStatusAliases[n]; ok {
		return fs, nil
	}
	return FilingStatus(s), fmt.Errorf("unknown filing status %q", s)
}
