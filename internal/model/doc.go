// Package model defines the core data structures used throughout autonotebook.
//
// This package contains the following main types:
//   - Notebook/Cell/Output: A parsed Jupyter notebook and its ordered cells
//   - ExplanationRequest/ExplanationResult: Units of work for the LLM client
//   - Page/Section: The assembled, render-ready page document
//   - Run: The per-notebook processing state threaded through the pipeline
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (notebook, selector, explain, assemble,
// render) need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for machine-readable
// summaries and cache storage.
package model
