package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/lycan/internal/config"
	"github.com/harrison/lycan/internal/generator"
	"github.com/harrison/lycan/internal/logger"
	"github.com/harrison/lycan/internal/render"
	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/truthcache"
)

// defaultConfigPath is where lycan looks for configuration unless --config
// points elsewhere.
const defaultConfigPath = ".lycan/config.yaml"

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a werewolf puzzle with a unique solution",
		Long: `Generate a puzzle: pick a hidden role assignment, give every villager
statements consistent with it, and keep tightening until exactly one
assignment survives. The result is verified before it is printed.

Configuration is loaded from .lycan/config.yaml if present; flags
override configuration file settings.

Examples:
  lycan generate
  lycan generate --n 5 --has-shill --seed 7
  lycan generate --statements-min 2 --statements-max 2 --output markdown
  lycan generate --output text --show-solution`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .lycan/config.yaml)")
	cmd.Flags().Int("n", 0, "Number of villagers")
	cmd.Flags().Int("statements-min", 0, "Minimum statements per speaker")
	cmd.Flags().Int("statements-max", 0, "Maximum statements per speaker")
	cmd.Flags().Bool("has-shill", false, "Exactly one non-werewolf lies")
	cmd.Flags().Int("max-attempts", 0, "Maximum generation attempts")
	cmd.Flags().Int64("seed", 0, "Random seed (default: current time)")
	cmd.Flags().String("cache-file", "", "Truth cache location")
	cmd.Flags().Bool("rebuild-cache", false, "Rebuild the truth cache even if present")
	cmd.Flags().String("output", "code", "Output form: code, text, or markdown")
	cmd.Flags().Bool("show-solution", false, "Include the solution in text/markdown output")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithFlags(cmd)
	if err != nil {
		return err
	}
	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)

	seed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	rebuild, _ := cmd.Flags().GetBool("rebuild-cache")
	output, _ := cmd.Flags().GetString("output")
	showSolution, _ := cmd.Flags().GetBool("show-solution")

	gc := cfg.GeneratorConfig()
	lib, err := statement.BuildLibrary(gc.N, gc.Library)
	if err != nil {
		return err
	}
	log.Debugf("library has %d statements for N=%d", lib.Len(), gc.N)

	cache, err := truthcache.LoadOrBuild(cfg.CacheFile, lib, rebuild)
	if err != nil {
		return err
	}

	start := time.Now()
	p, err := generator.Generate(gc, cache, seed)
	if err != nil {
		return err
	}
	log.Debugf("generated in %s after %d attempt(s), difficulty %d",
		time.Since(start).Round(time.Millisecond), p.Attempts, p.Difficulty)

	opts := render.Options{HasShill: gc.HasShill, ShowSolution: showSolution}
	switch output {
	case "code":
		fmt.Fprintln(cmd.OutOrStdout(), p.Encode())
	case "text":
		fmt.Fprintln(cmd.OutOrStdout(), render.Text(p, opts))
	case "markdown":
		fmt.Fprintln(cmd.OutOrStdout(), render.Markdown(p, opts))
	default:
		return fmt.Errorf("unknown output form %q (want code, text, or markdown)", output)
	}
	return nil
}

// loadConfigWithFlags loads the YAML config and applies flag overrides.
func loadConfigWithFlags(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = defaultConfigPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("n") {
		cfg.N, _ = cmd.Flags().GetInt("n")
	}
	if cmd.Flags().Changed("statements-min") {
		cfg.StatementsMin, _ = cmd.Flags().GetInt("statements-min")
	}
	if cmd.Flags().Changed("statements-max") {
		cfg.StatementsMax, _ = cmd.Flags().GetInt("statements-max")
	}
	// Raising only the minimum drags the maximum along.
	if cfg.StatementsMax < cfg.StatementsMin && !cmd.Flags().Changed("statements-max") {
		cfg.StatementsMax = cfg.StatementsMin
	}
	if cmd.Flags().Changed("has-shill") {
		cfg.HasShill, _ = cmd.Flags().GetBool("has-shill")
	}
	if cmd.Flags().Changed("max-attempts") {
		cfg.MaxAttempts, _ = cmd.Flags().GetInt("max-attempts")
	}
	if cmd.Flags().Changed("cache-file") {
		cfg.CacheFile, _ = cmd.Flags().GetString("cache-file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
