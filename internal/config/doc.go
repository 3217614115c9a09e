// Package config provides configuration structures and utilities for
// autonotebook. It defines the pipeline options (input/output directories,
// language-model endpoint and credential, retry and concurrency limits)
// and the optional per-notebook overrides file.
package config
