package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These follow the hosted Hugging Face Inference API characteristics:
// model cold starts are slow, and rate limits punish aggressive concurrency.
const (
	// DefaultEndpoint is the Hugging Face Inference API base URL.
	// The model identifier is appended as a path segment per request.
	DefaultEndpoint = "https://api-inference.huggingface.co/models"

	// DefaultModel is the text-generation model used for explanations.
	// flan-t5-large gives readable plain-language output at free-tier cost.
	DefaultModel = "google/flan-t5-large"

	// DefaultTimeout bounds each inference call. Cold model loads on the
	// hosted API routinely take tens of seconds, so this is generous;
	// a shorter timeout would misclassify cold starts as failures.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxAttempts is the per-request attempt ceiling, including the
	// first call. Three attempts ride out a cold start or a burst of 429s
	// without stalling the whole run on a genuinely dead endpoint.
	DefaultMaxAttempts = 3

	// DefaultConcurrency is the maximum in-flight explanation calls per
	// notebook. Higher values trigger the hosted API's rate limiting.
	DefaultConcurrency = 4

	// DefaultNotebookConcurrency is the maximum notebooks processed at
	// once. Notebook work is dominated by its own (already bounded)
	// explanation calls, so this stays small.
	DefaultNotebookConcurrency = 2

	// DefaultNotebooksDir is the input directory searched for *.ipynb files.
	DefaultNotebooksDir = "sample_notebooks"

	// DefaultOutputDir is where rendered pages and assets are written.
	// "docs" matches the conventional static-hosting publish directory.
	DefaultOutputDir = "docs"

	// AppName is the application name used for XDG directory paths.
	AppName = "autonotebook"

	// TokenEnvVar is the environment variable holding the inference API
	// credential.
	TokenEnvVar = "HF_API_TOKEN" //nolint:gosec // Variable name, not a credential
)

// Config holds all options for a pipeline run.
// It is populated from CLI flags and the environment, then passed through
// the application via dependency injection rather than global state, so
// tests can inject fake credentials and limits.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ExplainConfig, RenderConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// NotebooksDir is the directory scanned for *.ipynb input files.
	NotebooksDir string

	// OutputDir is the directory rendered pages and assets are written to.
	OutputDir string

	// Endpoint is the language-model service base URL.
	Endpoint string

	// Model is the target model identifier.
	Model string

	// APIToken is the bearer credential for the inference service.
	// Required: the run aborts early when it is missing.
	// Read-only and shared across all concurrent calls.
	APIToken string

	// Timeout bounds each individual inference call.
	Timeout time.Duration

	// MaxAttempts is the per-request attempt ceiling including the first
	// call. After this many transient failures the request is terminal.
	MaxAttempts int

	// Concurrency is the maximum in-flight explanation calls per notebook.
	Concurrency int

	// NotebookConcurrency is the maximum notebooks processed concurrently.
	NotebookConcurrency int

	// MinContentLength is the selector's trimmed-length threshold.
	// Zero means use the selector's default.
	MinContentLength int

	// HTMLOutput switches the renderer from Markdown (default) to HTML.
	HTMLOutput bool

	// Overview enables the notebook-level overview explanation.
	Overview bool

	// NoCache disables the explanation cache, forcing every selected cell
	// to hit the service.
	NoCache bool

	// CacheDir is the directory for the explanation cache database.
	// Defaults to the XDG data directory.
	CacheDir string

	// ConfigFilePath is an explicit path to the overrides file. If empty,
	// .autonotebook is searched for in the current and home directories.
	ConfigFilePath string

	// Overrides holds per-notebook settings loaded from the config file.
	Overrides *File

	// Verbose enables debug-level log output.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (endpoint, timeouts,
// concurrency). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		NotebooksDir:        DefaultNotebooksDir,
		OutputDir:           DefaultOutputDir,
		Endpoint:            DefaultEndpoint,
		Model:               DefaultModel,
		Timeout:             DefaultTimeout,
		MaxAttempts:         DefaultMaxAttempts,
		Concurrency:         DefaultConcurrency,
		NotebookConcurrency: DefaultNotebookConcurrency,
		CacheDir:            XDGDataDir(),
		Overview:            true,
	}
}

// XDGDataDir returns the XDG data directory for autonotebook.
// On Linux: ~/.local/share/autonotebook
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid, returning the first
// problem found. Called once after CLI parsing, before any processing:
// failing fast here beats failing mid-batch.
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}
	if c.NotebooksDir == "" {
		return ErrNoNotebooksDir
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if c.Concurrency <= 0 || c.NotebookConcurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// ForNotebook returns the effective model and selection threshold for one
// notebook, applying any per-notebook override from the config file.
func (c *Config) ForNotebook(name string) (model string, minContentLength int, skip bool) {
	model = c.Model
	minContentLength = c.MinContentLength

	if c.Overrides == nil {
		return model, minContentLength, false
	}

	override := c.Overrides.GetNotebookConfig(name)
	if override.Model != "" {
		model = override.Model
	}
	if override.MinContentLength > 0 {
		minContentLength = override.MinContentLength
	}
	return model, minContentLength, override.Skip
}
