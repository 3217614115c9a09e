// Package main provides the entry point for the autonotebook CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for autonotebook.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autonotebook",
		Short: "Generate explained pages from Jupyter notebooks",
		Long: `autonotebook turns directories of Jupyter notebooks into explained,
publishable pages. Each notebook is parsed, its substantive cells are
explained by a hosted language model, and the result is rendered as
Markdown or HTML with the notebook's figures copied alongside.

The inference credential is read from the HF_API_TOKEN environment
variable (a .env file in the working directory is honored).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
