package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/praykar/autonotebook/internal/model"
)

// recordingStep appends its name to a shared journal when executed.
type recordingStep struct {
	name    string
	journal *[]string
	err     error
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Do(_ context.Context, _ *model.Run) error {
	*s.journal = append(*s.journal, s.name)
	return s.err
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		var journal []string
		p := New()
		p.AddSteps(
			&recordingStep{name: "first", journal: &journal},
			&recordingStep{name: "second", journal: &journal},
			&recordingStep{name: "third", journal: &journal},
		)

		run := model.NewRun("a.ipynb")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"first", "second", "third"}
		if len(journal) != len(want) {
			t.Fatalf("executed %v, want %v", journal, want)
		}
		for i := range want {
			if journal[i] != want[i] {
				t.Errorf("step %d = %q, want %q", i, journal[i], want[i])
			}
		}
		if len(run.PerformedSteps) != 3 {
			t.Errorf("PerformedSteps = %v, want 3 entries", run.PerformedSteps)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		var journal []string
		stepErr := errors.New("boom")
		p := New()
		p.AddSteps(
			&recordingStep{name: "first", journal: &journal, err: stepErr},
			&recordingStep{name: "second", journal: &journal},
		)

		run := model.NewRun("a.ipynb")
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, stepErr) {
			t.Fatalf("error = %v, want %v", err, stepErr)
		}
		if len(journal) != 1 {
			t.Errorf("executed %v, want only the failing step", journal)
		}
		if !run.Failed() {
			t.Error("run must record the fatal error")
		}
	})

	t.Run("continue on error executes remaining steps", func(t *testing.T) {
		t.Parallel()

		var journal []string
		p := New(WithContinueOnError(true))
		p.AddSteps(
			&recordingStep{name: "first", journal: &journal, err: errors.New("boom")},
			&recordingStep{name: "second", journal: &journal},
		)

		if err := p.Execute(context.Background(), model.NewRun("a.ipynb")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(journal) != 2 {
			t.Errorf("executed %v, want both steps", journal)
		}
	})

	t.Run("cancelled context stops before next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var journal []string
		p := New()
		p.AddStep(&recordingStep{name: "never", journal: &journal})

		run := model.NewRun("a.ipynb")
		if err := p.Execute(ctx, run); !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
		if len(journal) != 0 {
			t.Error("no step should execute after cancellation")
		}
	})
}

func TestPipelineStepNames(t *testing.T) {
	t.Parallel()

	var journal []string
	p := New()
	p.AddSteps(
		&recordingStep{name: "parse", journal: &journal},
		&recordingStep{name: "render", journal: &journal},
	)

	if p.StepCount() != 2 {
		t.Errorf("StepCount = %d, want 2", p.StepCount())
	}
	names := p.StepNames()
	if names[0] != "parse" || names[1] != "render" {
		t.Errorf("StepNames = %v", names)
	}
}
