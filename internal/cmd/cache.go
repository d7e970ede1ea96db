package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/truthcache"
)

// NewCacheCommand creates the cache command.
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Build or rebuild the truth cache",
		Long: `Build the truth cache for the configured village size: for every
statement in the library, the set of role assignments under which it
holds, stored as hex bitmasks in a text file.

The cache is rebuilt from scratch every time this command runs.`,
		Args: cobra.NoArgs,
		RunE: runCache,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .lycan/config.yaml)")
	cmd.Flags().Int("n", 0, "Number of villagers")
	cmd.Flags().String("cache-file", "", "Truth cache location")

	return cmd
}

func runCache(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithFlags(cmd)
	if err != nil {
		return err
	}

	gc := cfg.GeneratorConfig()
	lib, err := statement.BuildLibrary(gc.N, gc.Library)
	if err != nil {
		return err
	}
	cache := truthcache.Build(lib)
	if err := cache.Save(cfg.CacheFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d truth masks for N=%d to %s\n",
		cache.Len(), gc.N, cfg.CacheFile)
	return nil
}
