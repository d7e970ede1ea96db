package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/lycan/internal/puzzle"
	"github.com/harrison/lycan/internal/roles"
	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/truthcache"
	"github.com/harrison/lycan/internal/verifier"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <puzzle-code>",
		Short: "Solve and verify a compact puzzle code",
		Long: `Decode a compact puzzle code, prove it has a unique solution, and
print who the werewolves are. In shill mode the shill is recovered as
the unique liar who is not a werewolf.

Examples:
  lycan solve I-3-1_N-0-2_X-1-3_F-5-0_E-0.1.2.3.5-4_B-0-3 --has-shill
  lycan solve N-1-2_I-2-0_X-1-3_B-0-2 --n 4`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .lycan/config.yaml)")
	cmd.Flags().Int("n", 0, "Number of villagers")
	cmd.Flags().Bool("has-shill", false, "Solve under shill semantics")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithFlags(cmd)
	if err != nil {
		return err
	}

	p, err := puzzle.Decode(args[0], cfg.N)
	if err != nil {
		return err
	}

	// The decoded statements may fall outside the configured library (the
	// code is the source of truth), so verify against a cache built for
	// exactly this puzzle's statements.
	cache := truthcache.BuildForStatements(cfg.N, p.Statements())

	res, err := verifier.Verify(p, cache, verifier.Options{HasShill: cfg.HasShill})
	if err != nil {
		return err
	}

	names := statement.DefaultNames(cfg.N)
	w := roles.IndexToVector(res.Assignment, cfg.N)
	wolves := make([]string, 0, cfg.N)
	for i, isWolf := range w {
		if isWolf {
			wolves = append(wolves, names[i])
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Werewolves: %s\n", strings.Join(wolves, ", "))
	if res.Shill != roles.NoShill {
		fmt.Fprintf(cmd.OutOrStdout(), "Shill: %s\n", names[res.Shill])
	}
	return nil
}
