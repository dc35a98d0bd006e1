package output

import (
	"github.com/taxwizard/tax-estimator/internal/domain"
)

// GenerateReport writes the report set to a timestamped file in dir using the named format
// and returns the paths written. "all" writes the verbose console, detailed CSV and JSON outputs.
func GenerateReport(set *domain.ReportSet, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, JSONFormatter{}} {
			name, err := WriteFormatted(f, set, dir, Extension(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	}
	f, err := ResolveFormatter(format)
	if err != nil {
		return nil, err
	}
	name, err := WriteFormatted(f, set, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// NewReportSet bundles reports for formatting. Reports that are nil are dropped and the
// tax year is taken from the first report.
func NewReportSet(reports []*domain.Report, assumptions []string) *domain.ReportSet {
	set := &domain.ReportSet{Assumptions: assumptions}
	for _, r := range reports {
		if r == nil {
			continue
		}
		set.Reports = append(set.Reports, r)
	}
	if len(set.Reports) > 0 {
		set.TaxYear = set.Reports[0].TaxYear
	}
	return set
}
