package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"passat/internal/config"
)

//go:embed templates/categories.yaml
var dictionaryTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a starter category dictionary",
		Long: `Initialize creates a starter categories.yaml dictionary in the current
directory.

The generated file includes:
- Common password base-word categories (names, seasons, sports, brands, ...)
- Documentation for the dictionary format
- Room to add organization-specific words (company names, products, locations)

Examples:
  # Create categories.yaml in current directory
  passat init

  # Create dictionary at a specific path
  passat init -o wordlists/es.yaml

  # Force overwrite existing file
  passat init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultDictionaryFile,
		"Output file path for the dictionary")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing dictionary file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("dictionary file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := dictionaryTemplate.ReadFile("templates/categories.yaml")
	if err != nil {
		return fmt.Errorf("failed to read dictionary template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write dictionary file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write dictionary file: %w", err)
	}

	fmt.Printf("Created dictionary file: %s\n", outputPath)
	fmt.Println("\nEdit this file to add base words your users are likely to pick:")
	fmt.Println("  - Company, product, and office location names")
	fmt.Println("  - Local sports teams and city names")
	fmt.Println("  - Words in the languages your users speak")

	return nil
}
