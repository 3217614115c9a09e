package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/praykar/autonotebook/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/autonotebook.yaml templates/sample_notebook.ipynb
var initTemplates embed.FS

// sampleNotebookName is the file name of the generated sample notebook.
const sampleNotebookName = "classification_example.ipynb"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a notebooks directory and configuration file",
		Long: `Init creates a .autonotebook configuration file in the current directory
and seeds the notebooks directory with a sample classification notebook,
so 'autonotebook generate' has something to process immediately.

The generated configuration file includes:
- Commented defaults for model and selection threshold
- Commented examples for per-notebook overrides

Examples:
  # Create .autonotebook and sample_notebooks/ in the current directory
  autonotebook init

  # Seed a different notebooks directory
  autonotebook init -n mynotebooks

  # Force overwrite of existing files
  autonotebook init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("notebooks", "n", config.DefaultNotebooksDir,
		"Directory to seed with the sample notebook")
	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	notebooksDir, err := cmd.Flags().GetString("notebooks")
	if err != nil {
		return err
	}

	configPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeTemplate("templates/autonotebook.yaml", configPath, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", configPath)

	notebookPath := filepath.Join(notebooksDir, sampleNotebookName)
	if err := writeTemplate("templates/sample_notebook.ipynb", notebookPath, force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created sample notebook: %s\n", notebookPath)

	fmt.Fprintf(cmd.OutOrStdout(), "\nNext steps:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  1. Set %s in your environment or a .env file\n", config.TokenEnvVar)
	fmt.Fprintf(cmd.OutOrStdout(), "  2. Run 'autonotebook generate -n %s'\n", notebooksDir)

	return nil
}

// writeTemplate writes one embedded template to disk, refusing to
// overwrite existing files unless force is set.
func writeTemplate(templateName, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := initTemplates.ReadFile(templateName)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
