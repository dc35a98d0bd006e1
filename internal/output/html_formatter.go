package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrencyGrouped,
	"pct":     FormatPercentage,
	"rate":    FormatRate,
	"credits": creditLines,
	"name":    displayName,
	"human":   HumanizeKey,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := set.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	reports := make([]*domain.Report, 0, len(set.Reports))
	for _, r := range set.Reports {
		if r != nil {
			reports = append(reports, r)
		}
	}

	data := struct {
		TaxYear     int
		Reports     []*domain.Report
		Summary     BatchSummary
		Assumptions []string
	}{set.TaxYear, reports, AnalyzeReports(reports), assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
