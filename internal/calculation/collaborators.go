package calculation

import (
	"context"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// ReturnSource supplies the current snapshot of a return being prepared
type ReturnSource interface {
	Snapshot(ctx context.Context) (*domain.TaxReturn, error)
}

// ResultSink stores a computed report back alongside the return
type ResultSink interface {
	SaveResults(ctx context.Context, report *domain.Report) error
}

// StaticSource serves a return already held in memory
type StaticSource struct {
	Return *domain.TaxReturn
}

// Snapshot returns the held return
func (s StaticSource) Snapshot(ctx context.Context) (*domain.TaxReturn, error) {
	return s.Return, ctx.Err()
}
