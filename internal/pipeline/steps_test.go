package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/praykar/autonotebook/internal/config"
	"github.com/praykar/autonotebook/internal/explain"
	"github.com/praykar/autonotebook/internal/model"
	"github.com/praykar/autonotebook/internal/render"
)

// testNotebookJSON is a 3-cell nbformat v4 document: a markdown intro,
// an explainable code cell, and a short code cell below the selection
// threshold.
const testNotebookJSON = `{
	"nbformat": 4,
	"nbformat_minor": 5,
	"metadata": {},
	"cells": [
		{
			"cell_type": "markdown",
			"metadata": {},
			"source": ["# Iris Classification\n", "A worked classification example."]
		},
		{
			"cell_type": "code",
			"execution_count": 1,
			"metadata": {},
			"source": "from sklearn.linear_model import LogisticRegression\nmodel = LogisticRegression().fit(X, y)",
			"outputs": [
				{"output_type": "stream", "name": "stdout", "text": ["fitted\n"]}
			]
		},
		{
			"cell_type": "code",
			"execution_count": 2,
			"metadata": {},
			"source": ["print(1)"],
			"outputs": []
		}
	]
}`

// writeTestNotebook writes the fixture notebook into dir and returns its path.
func writeTestNotebook(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(testNotebookJSON), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// newExplanationServer returns a test server that answers every inference
// request with the given text.
func newExplanationServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{{"generated_text": text}}) //nolint:errcheck // Test helper
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestPipeline wires the five real steps against a fake inference
// server, rendering Markdown into outputDir.
func newTestPipeline(t *testing.T, serverURL, outputDir string) *Pipeline {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Endpoint = serverURL
	cfg.APIToken = "test-token"
	cfg.OutputDir = outputDir

	client := explain.New(serverURL, cfg.APIToken, time.Second,
		explain.WithMaxAttempts(cfg.MaxAttempts),
		explain.WithInitialBackoff(0),
	)

	p := New()
	p.AddSteps(
		NewParseStep(nil),
		NewSelectStep(cfg),
		NewExplainStep(client, cfg.Concurrency),
		NewAssembleStep(),
		NewRenderStep(render.NewMarkdownWriter(outputDir)),
	)
	return p
}

func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	server := newExplanationServer(t, "This cell fits a logistic regression.")
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "docs")
	path := writeTestNotebook(t, dir, "iris_classification.ipynb")

	p := newTestPipeline(t, server.URL, outputDir)
	run := model.NewRun(path)

	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every cell must appear as a section, selected or not.
	if run.Page == nil {
		t.Fatal("run has no assembled page")
	}
	if got, want := run.Page.SectionCount(), run.Notebook.CellCount(); got != want {
		t.Errorf("sections = %d, want cell count %d", got, want)
	}
	for i, section := range run.Page.Sections {
		if section.Cell.Index != i {
			t.Errorf("section %d holds cell %d, want original order", i, section.Cell.Index)
		}
	}

	// The markdown intro and the long code cell are explained; the short
	// cell is not. An overview request is issued on top.
	if len(run.Requests) != 3 {
		t.Errorf("requests = %d, want 2 cells + overview", len(run.Requests))
	}
	if run.Page.Overview == nil || !run.Page.Overview.Succeeded() {
		t.Error("expected a successful overview")
	}
	if run.Page.Sections[2].Explanation != nil {
		t.Error("short cell must not be explained")
	}

	if run.ArtifactPath == "" {
		t.Fatal("run has no artifact path")
	}
	data, err := os.ReadFile(run.ArtifactPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "This cell fits a logistic regression.") {
		t.Error("artifact missing explanation text")
	}

	wantSteps := []string{"parse", "select", "explain", "assemble", "render"}
	if len(run.PerformedSteps) != len(wantSteps) {
		t.Fatalf("PerformedSteps = %v", run.PerformedSteps)
	}
	for i, name := range wantSteps {
		if run.PerformedSteps[i] != name {
			t.Errorf("step %d = %q, want %q", i, run.PerformedSteps[i], name)
		}
	}
}

func TestPipelineFailedExplanationsStillRender(t *testing.T) {
	t.Parallel()

	// Inference is permanently down; the page must still be written,
	// with placeholders in place of explanations.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	outputDir := filepath.Join(dir, "docs")
	path := writeTestNotebook(t, dir, "iris_classification.ipynb")

	p := newTestPipeline(t, server.URL, outputDir)
	run := model.NewRun(path)

	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Page.ExplainedCount() != 0 {
		t.Errorf("ExplainedCount = %d, want 0", run.Page.ExplainedCount())
	}
	if run.Page.FailedCount() == 0 {
		t.Error("failed explanations must be recorded on the page")
	}

	data, err := os.ReadFile(run.ArtifactPath)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if !strings.Contains(string(data), "Explanation unavailable") {
		t.Error("artifact missing the unavailable placeholder")
	}
}

func TestParseStepInvalidNotebook(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ipynb")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	run := model.NewRun(path)
	err := NewParseStep(nil).Do(context.Background(), run)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if run.Notebook != nil {
		t.Error("failed parse must not record a notebook")
	}
}

func TestSelectStepWithoutNotebook(t *testing.T) {
	t.Parallel()

	err := NewSelectStep(config.NewConfig()).Do(context.Background(), model.NewRun("a.ipynb"))
	if err == nil {
		t.Fatal("expected error when no notebook was parsed")
	}
}

func TestSelectStepOverviewDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestNotebook(t, dir, "iris.ipynb")
	run := model.NewRun(path)
	if err := NewParseStep(nil).Do(context.Background(), run); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.Overview = false
	if err := NewSelectStep(cfg).Do(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	for _, req := range run.Requests {
		if req.IsOverview() {
			t.Error("overview request issued despite being disabled")
		}
	}
}

func TestRenderStepWithoutPage(t *testing.T) {
	t.Parallel()

	step := NewRenderStep(render.NewMarkdownWriter(t.TempDir()))
	err := step.Do(context.Background(), model.NewRun("a.ipynb"))
	if !errors.Is(err, render.ErrNilPage) {
		t.Errorf("error = %v, want ErrNilPage", err)
	}
}
