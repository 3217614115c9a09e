package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/praykar/autonotebook/internal/cache"
	"github.com/praykar/autonotebook/internal/config"
	"github.com/praykar/autonotebook/internal/explain"
	"github.com/praykar/autonotebook/internal/log"
	"github.com/praykar/autonotebook/internal/model"
	"github.com/praykar/autonotebook/internal/pipeline"
	"github.com/praykar/autonotebook/internal/render"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [notebook.ipynb ...]",
		Short: "Generate explained pages from notebooks",
		Long: `Generate parses Jupyter notebooks, explains their substantive cells via
a hosted language-model service, and renders one page per notebook plus
a site index into the output directory.

Without arguments, every *.ipynb file in the notebooks directory is
processed. Notebook paths given as arguments are processed instead.

The inference credential is read from the HF_API_TOKEN environment
variable; a .env file in the working directory is loaded first if
present.

Examples:
  # Process every notebook in ./sample_notebooks into ./docs
  autonotebook generate

  # Process specific notebooks
  autonotebook generate analysis.ipynb training.ipynb

  # Render HTML instead of Markdown
  autonotebook generate --html -o site

  # Use a custom configuration file with per-notebook overrides
  autonotebook generate -c myconfig.yaml

Configuration file (.autonotebook) example:
  defaults:
    minContentLength: 30
  notebooks:
    scratch.ipynb:
      skip: true
    deep_dive.ipynb:
      model: google/flan-t5-xl`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	// Input/output flags
	cmd.Flags().StringP("notebooks", "n", config.DefaultNotebooksDir,
		"Directory scanned for *.ipynb files")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for rendered pages and assets")
	cmd.Flags().Bool("html", false,
		"Render HTML pages instead of Markdown")

	// Inference flags
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Model identifier sent to the inference service")
	cmd.Flags().String("endpoint", config.DefaultEndpoint,
		"Inference service base URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each inference call")
	cmd.Flags().IntP("max-attempts", "a", config.DefaultMaxAttempts,
		"Attempt ceiling per explanation call, including the first try")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum in-flight explanation calls per notebook")
	cmd.Flags().IntP("batch", "b", config.DefaultNotebookConcurrency,
		"Number of notebooks processed concurrently")

	// Selection flags
	cmd.Flags().IntP("min-length", "l", 0,
		"Minimum trimmed cell length to qualify for explanation (0 = default)")
	cmd.Flags().Bool("no-overview", false,
		"Skip the notebook-level overview explanation")

	// Cache flags
	cmd.Flags().Bool("no-cache", false,
		"Disable the explanation cache")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .autonotebook in current or home directory)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and environment
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential masking
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, args, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the environment.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.NotebooksDir, err = cmd.Flags().GetString("notebooks")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.HTMLOutput, err = cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}

	cfg.Model, err = cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}

	cfg.Endpoint, err = cmd.Flags().GetString("endpoint")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxAttempts, err = cmd.Flags().GetInt("max-attempts")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.NotebookConcurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.MinContentLength, err = cmd.Flags().GetInt("min-length")
	if err != nil {
		return nil, err
	}

	noOverview, err := cmd.Flags().GetBool("no-overview")
	if err != nil {
		return nil, err
	}
	cfg.Overview = !noOverview

	cfg.NoCache, err = cmd.Flags().GetBool("no-cache")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-notebook overrides from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use empty overrides.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Overrides, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Credential comes from the environment only, never a flag: flags leak
	// into shell history and process listings. A .env file in the working
	// directory is honored when present.
	_ = godotenv.Load() //nolint:errcheck // Missing .env is the normal case
	cfg.APIToken = os.Getenv(config.TokenEnvVar)

	return cfg, nil
}

// collectNotebooks returns the notebooks to process: explicit arguments
// when given, otherwise every *.ipynb in the notebooks directory, sorted.
// Notebooks marked skip in the config file are excluded.
func collectNotebooks(cfg *config.Config, args []string, logger *slog.Logger) ([]string, error) {
	paths := args
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join(cfg.NotebooksDir, "*.ipynb"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", cfg.NotebooksDir, err)
		}
		paths = matches
	}
	sort.Strings(paths)

	kept := paths[:0]
	for _, path := range paths {
		if _, _, skip := cfg.ForNotebook(filepath.Base(path)); skip {
			logger.Info("skipping notebook per configuration", "notebook", path)
			continue
		}
		kept = append(kept, path)
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("no notebooks found in %s (run 'autonotebook init' to create a sample)", cfg.NotebooksDir)
	}
	return kept, nil
}

// runGenerate executes the generation run.
func runGenerate(ctx context.Context, cfg *config.Config, args []string, logger *slog.Logger) error {
	paths, err := collectNotebooks(cfg, args, logger)
	if err != nil {
		return err
	}

	logger.Info("starting generation",
		"notebooks", len(paths),
		"output", cfg.OutputDir,
		"model", cfg.Model,
		"html", cfg.HTMLOutput,
	)

	// Open the explanation cache unless disabled. A broken cache only
	// costs repeat inference calls, so it degrades to no caching.
	clientOpts := []explain.Option{
		explain.WithMaxAttempts(cfg.MaxAttempts),
		explain.WithLogger(logger),
	}
	if !cfg.NoCache {
		store, err := cache.Open(cfg.CacheDir)
		if err != nil {
			logger.Warn("explanation cache unavailable, continuing without it", "error", err)
		} else {
			defer store.Close()
			clientOpts = append(clientOpts, explain.WithCache(store))
		}
	}

	client := explain.New(cfg.Endpoint, cfg.APIToken, cfg.Timeout, clientOpts...)

	var writer render.Writer
	if cfg.HTMLOutput {
		writer = render.NewHTMLWriter(cfg.OutputDir)
	} else {
		writer = render.NewMarkdownWriter(cfg.OutputDir)
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			p := pipeline.New(pipeline.WithLogger(logger))
			p.AddSteps(
				pipeline.NewParseStep(logger),
				pipeline.NewSelectStep(cfg),
				pipeline.NewExplainStep(client, cfg.Concurrency),
				pipeline.NewAssembleStep(),
				pipeline.NewRenderStep(writer),
			)
			return p
		},
		pipeline.WithConcurrency(cfg.NotebookConcurrency),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()
	runs, err := bp.ProcessBatch(ctx, paths)
	if err != nil {
		return err
	}

	return summarize(cfg, runs, time.Since(startTime))
}

// summarize writes the site index and prints the run summary.
// A notebook that failed is reported but does not fail the command, as
// long as at least one notebook produced a page.
func summarize(cfg *config.Config, runs []*model.Run, elapsed time.Duration) error {
	var entries []render.IndexEntry
	var failed int

	for _, run := range runs {
		if run.Failed() {
			failed++
			fmt.Fprintf(os.Stderr, "Failed: %s: %v\n", run.NotebookPath, run.Error)
			continue
		}
		entries = append(entries, render.NewIndexEntry(run.Page, filepath.Base(run.ArtifactPath)))
		fmt.Printf("Generated %s (%d cells, %d explained)\n",
			run.ArtifactPath, run.Page.SectionCount(), run.Page.ExplainedCount())
	}

	if len(entries) == 0 {
		return errors.New("all notebooks failed")
	}

	indexPath, err := render.WriteIndex(cfg.OutputDir, entries)
	if err != nil {
		return fmt.Errorf("writing index: %w", err)
	}

	fmt.Printf("\nSite written to %s (%d notebooks, %d failed) in %s\n",
		indexPath, len(entries), failed, elapsed.Round(time.Millisecond))
	return nil
}
