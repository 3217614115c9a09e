package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default overrides file name.
const DefaultConfigFile = ".autonotebook"

// ErrConfigNotFound is returned when the overrides file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// NotebookConfig holds per-notebook overrides. Keys in the file are
// notebook file names (e.g., "iris.ipynb"), not full paths.
type NotebookConfig struct {
	// Model overrides the global model identifier for this notebook.
	Model string `yaml:"model,omitempty"`

	// MinContentLength overrides the selection threshold for this notebook.
	MinContentLength int `yaml:"minContentLength,omitempty"`

	// Skip excludes the notebook from processing entirely.
	Skip bool `yaml:"skip,omitempty"`
}

// File represents the structure of the .autonotebook configuration file.
type File struct {
	// Notebooks maps notebook file names to their overrides.
	Notebooks map[string]NotebookConfig `yaml:"notebooks,omitempty"`

	// Defaults are applied to every notebook unless overridden.
	Defaults NotebookConfig `yaml:"defaults,omitempty"`
}

// GetNotebookConfig returns the effective overrides for one notebook,
// merging the notebook-specific section over the defaults.
func (f *File) GetNotebookConfig(name string) NotebookConfig {
	result := f.Defaults

	if nc, ok := f.Notebooks[name]; ok {
		if nc.Model != "" {
			result.Model = nc.Model
		}
		if nc.MinContentLength > 0 {
			result.MinContentLength = nc.MinContentLength
		}
		if nc.Skip {
			result.Skip = true
		}
	}

	return result
}

// LoadConfigFile loads per-notebook overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers decide
// whether that matters based on whether the path was explicitly given.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	if f.Notebooks == nil {
		f.Notebooks = make(map[string]NotebookConfig)
	}

	return &f, nil
}

// FindConfigFile searches for the overrides file:
//  1. the explicit path, if one was given
//  2. .autonotebook in the current directory
//  3. .autonotebook in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
