package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validConfig returns a config that passes validation.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.APIToken = "hf_test_token"
	return cfg
}

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q", cfg.Endpoint)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d", cfg.MaxAttempts)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d", cfg.Concurrency)
	}
	if !cfg.Overview {
		t.Error("Overview should default to enabled")
	}
}

// TestConfigValidate tests validation failures.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()

		if err := validConfig().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.APIToken = "" },
			wantErr: ErrMissingToken,
		},
		{
			name:    "missing notebooks dir",
			mutate:  func(c *Config) { c.NotebooksDir = "" },
			wantErr: ErrNoNotebooksDir,
		},
		{
			name:    "missing output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: ErrNoOutputDir,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.MaxAttempts = 0 },
			wantErr: ErrInvalidMaxAttempts,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "zero notebook concurrency",
			mutate:  func(c *Config) { c.NotebookConcurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestForNotebook tests per-notebook override resolution.
func TestForNotebook(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.MinContentLength = 30
	cfg.Overrides = &File{
		Defaults: NotebookConfig{MinContentLength: 40},
		Notebooks: map[string]NotebookConfig{
			"iris.ipynb":  {Model: "bigscience/bloom", MinContentLength: 10},
			"draft.ipynb": {Skip: true},
		},
	}

	t.Run("notebook-specific override wins", func(t *testing.T) {
		t.Parallel()

		model, minLen, skip := cfg.ForNotebook("iris.ipynb")
		if model != "bigscience/bloom" {
			t.Errorf("model = %q", model)
		}
		if minLen != 10 {
			t.Errorf("minContentLength = %d", minLen)
		}
		if skip {
			t.Error("iris.ipynb must not be skipped")
		}
	})

	t.Run("defaults apply to unlisted notebooks", func(t *testing.T) {
		t.Parallel()

		model, minLen, skip := cfg.ForNotebook("other.ipynb")
		if model != cfg.Model {
			t.Errorf("model = %q, want global %q", model, cfg.Model)
		}
		if minLen != 40 {
			t.Errorf("minContentLength = %d, want file default 40", minLen)
		}
		if skip {
			t.Error("other.ipynb must not be skipped")
		}
	})

	t.Run("skip override", func(t *testing.T) {
		t.Parallel()

		if _, _, skip := cfg.ForNotebook("draft.ipynb"); !skip {
			t.Error("draft.ipynb should be skipped")
		}
	})

	t.Run("nil overrides fall back to globals", func(t *testing.T) {
		t.Parallel()

		bare := validConfig()
		bare.MinContentLength = 12
		model, minLen, skip := bare.ForNotebook("iris.ipynb")
		if model != bare.Model || minLen != 12 || skip {
			t.Errorf("unexpected resolution: %q %d %v", model, minLen, skip)
		}
	})
}

// TestLoadConfigFile tests the YAML overrides loader.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := `
defaults:
  minContentLength: 32
notebooks:
  iris.ipynb:
    model: bigscience/bloom
  wip.ipynb:
    skip: true
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		f, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if f.Defaults.MinContentLength != 32 {
			t.Errorf("defaults threshold = %d", f.Defaults.MinContentLength)
		}
		if f.Notebooks["iris.ipynb"].Model != "bigscience/bloom" {
			t.Errorf("iris model = %q", f.Notebooks["iris.ipynb"].Model)
		}
		if !f.GetNotebookConfig("wip.ipynb").Skip {
			t.Error("wip.ipynb should merge to skip=true")
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(":\t- not yaml"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

// TestFindConfigFile tests explicit-path resolution.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "overrides.yaml")
		if err := os.WriteFile(path, []byte("notebooks: {}"), 0600); err != nil {
			t.Fatal(err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "absent")); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})
}
