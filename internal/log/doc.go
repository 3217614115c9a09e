// Package log provides credential-safe logging built on the standard
// slog package.
//
// The pipeline carries a language-model API token through its
// configuration, and verbose logging records request/response details.
// The MaskingHandler guarantees the token (and anything that looks like
// one) never reaches log output, even in debug mode, so logs can be
// attached to CI runs and bug reports without leaking credentials.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
