package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/praykar/autonotebook/internal/assemble"
	"github.com/praykar/autonotebook/internal/config"
	"github.com/praykar/autonotebook/internal/explain"
	"github.com/praykar/autonotebook/internal/model"
	"github.com/praykar/autonotebook/internal/notebook"
	"github.com/praykar/autonotebook/internal/render"
	"github.com/praykar/autonotebook/internal/selector"
)

// ParseStep loads and parses the run's notebook file.
type ParseStep struct {
	logger *slog.Logger
}

// NewParseStep creates a ParseStep.
func NewParseStep(logger *slog.Logger) *ParseStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStep{logger: logger}
}

// Name returns the step name.
func (s *ParseStep) Name() string { return "parse" }

// Do parses the notebook and records it on the run.
// A parse failure is fatal for this run and isolated to it.
func (s *ParseStep) Do(_ context.Context, run *model.Run) error {
	nb, err := notebook.Parse(run.NotebookPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", run.NotebookPath, err)
	}
	run.Notebook = nb

	s.logger.Debug("notebook parsed",
		"notebook", run.NotebookPath,
		"cells", nb.CellCount(),
		"ml_type", nb.MLType,
	)
	return nil
}

// SelectStep chooses which cells to send for explanation.
// It resolves per-notebook configuration overrides (model, content-length
// threshold) against the notebook's filename.
type SelectStep struct {
	cfg *config.Config
}

// NewSelectStep creates a SelectStep using the given configuration.
func NewSelectStep(cfg *config.Config) *SelectStep {
	return &SelectStep{cfg: cfg}
}

// Name returns the step name.
func (s *SelectStep) Name() string { return "select" }

// Do builds the run's explanation requests from its parsed notebook.
func (s *SelectStep) Do(_ context.Context, run *model.Run) error {
	if run.Notebook == nil {
		return fmt.Errorf("select: %w", notebook.ErrInvalidNotebook)
	}

	modelID, minLen, _ := s.cfg.ForNotebook(filepath.Base(run.NotebookPath))
	sel := selector.New(modelID, minLen)

	run.Requests = sel.Select(run.Notebook)
	if s.cfg.Overview && run.Notebook.CellCount() > 0 {
		run.Requests = append(run.Requests, sel.Overview(run.Notebook))
	}
	return nil
}

// ExplainStep sends the run's requests to the explanation client and
// joins all results before the next step runs.
type ExplainStep struct {
	client      *explain.Client
	concurrency int
}

// NewExplainStep creates an ExplainStep with the given per-notebook
// concurrency limit.
func NewExplainStep(client *explain.Client, concurrency int) *ExplainStep {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ExplainStep{client: client, concurrency: concurrency}
}

// Name returns the step name.
func (s *ExplainStep) Name() string { return "explain" }

// Do issues all explanation requests and records the terminal results.
// Individual failures become failure-status results, never step errors.
func (s *ExplainStep) Do(ctx context.Context, run *model.Run) error {
	if len(run.Requests) == 0 {
		return nil
	}
	run.Results = s.client.ExplainAll(ctx, run.Requests, s.concurrency)
	return nil
}

// AssembleStep merges the parsed notebook with the explanation results
// into a render-ready page.
type AssembleStep struct{}

// NewAssembleStep creates an AssembleStep.
func NewAssembleStep() *AssembleStep {
	return &AssembleStep{}
}

// Name returns the step name.
func (s *AssembleStep) Name() string { return "assemble" }

// Do assembles the run's page.
func (s *AssembleStep) Do(_ context.Context, run *model.Run) error {
	if run.Notebook == nil {
		return fmt.Errorf("assemble: %w", notebook.ErrInvalidNotebook)
	}
	run.Page = assemble.Assemble(run.Notebook, run.Results)
	return nil
}

// RenderStep writes the assembled page to the output directory.
type RenderStep struct {
	writer render.Writer
}

// NewRenderStep creates a RenderStep using the given writer.
func NewRenderStep(writer render.Writer) *RenderStep {
	return &RenderStep{writer: writer}
}

// Name returns the step name.
func (s *RenderStep) Name() string { return "render" }

// Do renders the run's page and records the artifact path.
func (s *RenderStep) Do(_ context.Context, run *model.Run) error {
	if run.Page == nil {
		return render.ErrNilPage
	}
	path, err := s.writer.Write(run.Page)
	if err != nil {
		return err
	}
	run.ArtifactPath = path
	return nil
}
