// Package main provides the entry point for the autonotebook CLI.
//
// autonotebook turns directories of Jupyter notebooks into explained,
// publishable pages. It parses each notebook, asks a hosted language model
// to explain the substantive cells, and renders the result as Markdown or
// HTML alongside the notebook's figures.
//
// Usage:
//
//	autonotebook generate
//	autonotebook generate --notebooks mynotebooks --output site
//
// See --help for all available options.
package main

// main is the entry point for autonotebook.
func main() {
	Execute()
}
