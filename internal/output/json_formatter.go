package output

import (
	"encoding/json"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// JSONFormatter serializes the report set as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(set *domain.ReportSet) ([]byte, error) {
	b, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
