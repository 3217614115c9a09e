package explain

import (
	"context"

	"github.com/praykar/autonotebook/internal/model"
	"golang.org/x/sync/errgroup"
)

// ExplainAll issues the requests concurrently, bounded by limit, and
// returns the terminal results keyed by originating cell index.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it's simpler and handles the concurrency limit
// correctly. Each request gets its own goroutine, but only limit
// goroutines run simultaneously.
//
// This is the explicit join point before assembly: when ExplainAll
// returns, every request has reached a terminal state, so the assembler
// can assume all results are present regardless of completion order.
// Individual failures surface as failure-status results, never as errors.
func (c *Client) ExplainAll(ctx context.Context, reqs []model.ExplanationRequest, limit int) map[int]model.ExplanationResult {
	if limit < 1 {
		limit = 1
	}

	// Results are written to distinct slice slots, one per goroutine,
	// so no mutex is needed.
	results := make([]model.ExplanationResult, len(reqs))

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			results[i] = c.Explain(ctx, req)
			return nil
		})
	}

	// Explain never returns an error; Wait only joins the goroutines.
	_ = g.Wait() //nolint:errcheck // No goroutine returns an error

	byCell := make(map[int]model.ExplanationResult, len(results))
	for _, res := range results {
		byCell[res.CellIndex] = res
	}
	return byCell
}
