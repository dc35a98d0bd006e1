package calculation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taxwizard/tax-estimator/internal/domain"
)

// DefaultConcurrency is the batch worker limit when none is configured
const DefaultConcurrency = 4

// BatchResult is the outcome of one return in a batch. Err is set when the
// snapshot could not be read or the report could not be saved.
type BatchResult struct {
	Index  int
	Report *domain.Report
	Err    error
}

// RunBatch calculates every source concurrently, at most concurrency at a time.
// Results keep the order of sources. A failing return does not stop the others;
// the returned error is non-nil only when ctx is cancelled.
func (c *Calculator) RunBatch(ctx context.Context, sources []ReturnSource, sink ResultSink, concurrency int) ([]BatchResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	c.Logger.Infof("starting batch of %d returns (concurrency %d)", len(sources), concurrency)

	// Each goroutine writes only its own slot
	results := make([]BatchResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := c.Run(ctx, src, sink)
			results[i] = BatchResult{Index: i, Report: report, Err: err}
			if err != nil {
				c.Logger.Warnf("return %d failed: %v", i+1, err)
			}
			return nil
		})
	}

	err := g.Wait()
	c.Logger.Infof("batch complete: %d returns", len(sources))
	return results, err
}

// CalculateAll calculates in-memory returns concurrently and returns the reports in input order
func (c *Calculator) CalculateAll(ctx context.Context, returns []*domain.TaxReturn, concurrency int) ([]*domain.Report, error) {
	sources := make([]ReturnSource, len(returns))
	for i, ret := range returns {
		sources[i] = StaticSource{Return: ret}
	}
	results, err := c.RunBatch(ctx, sources, nil, concurrency)
	if err != nil {
		return nil, err
	}
	reports := make([]*domain.Report, len(results))
	for i, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		reports[i] = r.Report
	}
	return reports, nil
}
