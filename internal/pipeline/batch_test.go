package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/praykar/autonotebook/internal/model"
)

func TestBatchProcessorIsolatesFailures(t *testing.T) {
	t.Parallel()

	server := newExplanationServer(t, "Explained.")
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "docs")

	good := writeTestNotebook(t, dir, "good.ipynb")
	broken := filepath.Join(dir, "broken.ipynb")
	if err := os.WriteFile(broken, []byte("{not a notebook"), 0600); err != nil {
		t.Fatal(err)
	}
	alsoGood := writeTestNotebook(t, dir, "also_good.ipynb")

	bp := NewBatchProcessor(func() *Pipeline {
		return newTestPipeline(t, server.URL, outputDir)
	}, WithConcurrency(2))

	runs, err := bp.ProcessBatch(context.Background(), []string{good, broken, alsoGood})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("runs = %d, want 3", len(runs))
	}

	// Input order is preserved.
	for i, path := range []string{good, broken, alsoGood} {
		if runs[i].NotebookPath != path {
			t.Errorf("run %d = %q, want %q", i, runs[i].NotebookPath, path)
		}
	}

	if !runs[1].Failed() {
		t.Error("broken notebook must record a fatal error")
	}
	for _, i := range []int{0, 2} {
		if runs[i].Failed() {
			t.Errorf("run %d failed: %v", i, runs[i].Error)
		}
		if runs[i].ArtifactPath == "" {
			t.Errorf("run %d has no artifact", i)
		}
	}
}

func TestBatchProcessorRespectsConcurrencyLimit(t *testing.T) {
	t.Parallel()

	var inFlight, peak atomic.Int64

	// A probe step that records the number of simultaneously running
	// pipelines.
	probe := stepFunc(func(ctx context.Context, _ *model.Run) error {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return nil
	})

	bp := NewBatchProcessor(func() *Pipeline {
		p := New()
		p.AddStep(probe)
		return p
	}, WithConcurrency(2))

	paths := []string{"a.ipynb", "b.ipynb", "c.ipynb", "d.ipynb", "e.ipynb"}
	if _, err := bp.ProcessBatch(context.Background(), paths); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", got)
	}
}

func TestBatchProcessorCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bp := NewBatchProcessor(func() *Pipeline { return New() })
	_, err := bp.ProcessBatch(ctx, []string{"a.ipynb", "b.ipynb"})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if !strings.Contains(err.Error(), "context canceled") {
		t.Errorf("error = %v, want context cancellation", err)
	}
}

// stepFunc adapts a function to the Step interface for tests.
type stepFunc func(ctx context.Context, run *model.Run) error

func (f stepFunc) Do(ctx context.Context, run *model.Run) error { return f(ctx, run) }

func (f stepFunc) Name() string { return "probe" }
