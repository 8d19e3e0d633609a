package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for passat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passat",
		Short: "Audit password quality from credential dumps",
		Long: `Passat classifies and aggregates statistics over plaintext password lists.

It reads line-oriented input (password, user:password, or user:hash:password),
recovers $HEX[...] encoded values, and reports length distributions, repeated
values, character-class patterns, charset/sequence taxonomy membership, and
fuzzy dictionary categories.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewCompareCmd())
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
