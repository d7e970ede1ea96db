// Package cmd wires the lycan subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for lycan.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lycan",
		Short: "Werewolf logic puzzle generator",
		Long: `Lycan synthesises werewolf logic puzzles with guaranteed unique
solutions. Each villager is secretly a truth-teller, a werewolf, or (in
shill mode) a single paid shill; their statements pin down exactly one
role assignment.

Puzzles are proven unique twice: by replaying precomputed truth masks and
by an independent SAT solve-and-block check.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text.
		SilenceUsage: true,
	}

	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewCacheCommand())
	cmd.AddCommand(NewSolveCommand())
	cmd.AddCommand(NewBatchCommand())

	return cmd
}
