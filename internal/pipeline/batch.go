package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/praykar/autonotebook/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchProcessor handles concurrent processing of multiple notebooks.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-notebook execution
// 2. It preserves per-notebook isolation: one run's fatal error is
//    recorded on its own Run and never interrupts the others
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each notebook.
	// A factory ensures each run gets a fresh pipeline instance.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of notebooks processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed runs, indexed like the input paths.
	// Access is synchronized via mutex.
	results []*model.Run
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of notebooks processed
// concurrently. Default is 2 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each notebook to create a
// fresh pipeline instance, so pipeline state never leaks between runs.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     2,
		results:         make([]*model.Run, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch processes multiple notebooks concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each notebook gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Returns all runs in input order, including those that failed; a run's
// Error field records its fatal error. The error return indicates only
// that the batch itself was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.Run, error) {
	bp.logger.Info("starting batch processing",
		"total_notebooks", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain input order.
	bp.results = make([]*model.Run, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("processing notebook",
				"notebook", path,
				"index", i+1,
				"total", len(paths),
			)

			run := model.NewRun(path)
			err := bp.pipelineFactory().Execute(ctx, run)

			// Store the run regardless of error; it carries the error
			// information itself.
			bp.mu.Lock()
			bp.results[i] = run
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("notebook failed",
					"notebook", path,
					"error", err,
				)
				// Don't return the error to the errgroup: the other
				// notebooks must still be processed.
				return nil
			}

			bp.logger.Info("notebook processed",
				"notebook", path,
				"artifact", run.ArtifactPath,
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_notebooks", len(paths),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}
