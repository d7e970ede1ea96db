package cmd

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/lycan/internal/batchfile"
	"github.com/harrison/lycan/internal/config"
	"github.com/harrison/lycan/internal/generator"
	"github.com/harrison/lycan/internal/logger"
	"github.com/harrison/lycan/internal/statement"
	"github.com/harrison/lycan/internal/store"
	"github.com/harrison/lycan/internal/truthcache"
)

// seedStride separates the derived seeds of consecutive work items.
const seedStride = 1_000_003

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [jobs-file]",
		Short: "Generate many puzzles from a job file and archive them",
		Long: `Run every job in a job file concurrently and archive the resulting
puzzles in a SQLite database. Job files are YAML (a top-level jobs
list) or Markdown (one yaml fenced block per job).

Workers share one immutable truth cache per village size; each worker
owns its generator and its seed, so a batch is reproducible from the
base seed.

Examples:
  lycan batch jobs.yaml
  lycan batch plans/nightly.md --max-concurrency 4 --seed 99
  lycan batch --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().String("config", "", "Path to config file (default: .lycan/config.yaml)")
	cmd.Flags().String("db", "", "Puzzle archive location")
	cmd.Flags().Int("max-concurrency", 0, "Concurrent workers (0 = number of CPUs)")
	cmd.Flags().Int64("seed", 0, "Base seed for derived per-puzzle seeds (default: current time)")
	cmd.Flags().Bool("list", false, "List recently archived puzzles instead of generating")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigWithFlags(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("max-concurrency") {
		cfg.MaxConcurrency, _ = cmd.Flags().GetInt("max-concurrency")
	}
	log := logger.NewConsole(cmd.ErrOrStderr(), cfg.LogLevel)

	db, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if list, _ := cmd.Flags().GetBool("list"); list {
		return listArchive(cmd, db)
	}
	if len(args) != 1 {
		return fmt.Errorf("batch needs a jobs file (or --list)")
	}

	jobs, err := batchfile.Parse(args[0])
	if err != nil {
		return err
	}
	baseSeed, _ := cmd.Flags().GetInt64("seed")
	if !cmd.Flags().Changed("seed") {
		baseSeed = time.Now().UnixNano()
	}

	items := expandJobs(cfg, jobs, baseSeed)
	caches, err := buildCaches(cfg, items)
	if err != nil {
		return err
	}

	workers := cfg.MaxConcurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	log.Infof("running %d job(s), %d puzzle(s), %d worker(s)", len(jobs), len(items), workers)

	var generated, failed atomic.Int64
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(workers)
	start := time.Now()

	for _, item := range items {
		g.Go(func() error {
			// Cooperative cancellation between puzzles.
			if ctx.Err() != nil {
				return nil
			}
			p, err := generator.Generate(item.cfg, caches[item.cfg.N], item.seed)
			if err != nil {
				failed.Add(1)
				log.Warnf("%s: %v", item.name, err)
				return nil
			}
			if _, err := db.SavePuzzle(p); err != nil {
				return fmt.Errorf("%s: %w", item.name, err)
			}
			generated.Add(1)
			log.Debugf("%s: %s (difficulty %d, %d attempt(s))",
				item.name, p.Encode(), p.Difficulty, p.Attempts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Successf("archived %d puzzle(s) in %s (%d failed)",
		generated.Load(), time.Since(start).Round(time.Millisecond), failed.Load())
	if failed.Load() > 0 && generated.Load() == 0 {
		return generator.ErrExhausted
	}
	return nil
}

// workItem is one puzzle to generate.
type workItem struct {
	name string
	cfg  generator.Config
	seed int64
}

// expandJobs flattens jobs into per-puzzle work items with derived seeds.
func expandJobs(cfg *config.Config, jobs []batchfile.Job, baseSeed int64) []workItem {
	var items []workItem
	for _, job := range jobs {
		gc := cfg.GeneratorConfig()
		if job.N != 0 {
			gc.N = job.N
		}
		if job.StatementsMin != 0 {
			gc.StatementsMin = job.StatementsMin
		}
		if job.StatementsMax != 0 {
			gc.StatementsMax = job.StatementsMax
		}
		if job.HasShill {
			gc.HasShill = true
		}
		if job.MaxAttempts != 0 {
			gc.MaxAttempts = job.MaxAttempts
		}
		if job.MinWerewolves != 0 {
			gc.MinWerewolves = job.MinWerewolves
		}
		if job.MaxWerewolves != 0 {
			gc.MaxWerewolves = job.MaxWerewolves
		}
		jobSeed := job.Seed
		if jobSeed == 0 {
			jobSeed = baseSeed + int64(len(items))*seedStride
		}
		for k := 0; k < job.Count; k++ {
			items = append(items, workItem{
				name: fmt.Sprintf("%s[%d]", job.Name, k),
				cfg:  gc,
				seed: jobSeed + int64(k)*seedStride,
			})
		}
	}
	return items
}

// buildCaches builds one shared truth cache per distinct village size.
func buildCaches(cfg *config.Config, items []workItem) (map[int]*truthcache.Cache, error) {
	caches := make(map[int]*truthcache.Cache)
	for _, item := range items {
		if _, ok := caches[item.cfg.N]; ok {
			continue
		}
		lib, err := statement.BuildLibrary(item.cfg.N, item.cfg.Library)
		if err != nil {
			return nil, err
		}
		caches[item.cfg.N] = truthcache.Build(lib)
	}
	return caches, nil
}

func listArchive(cmd *cobra.Command, db *store.Store) error {
	total, err := db.Count()
	if err != nil {
		return err
	}
	records, err := db.Recent(20)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d puzzle(s) archived\n", total)
	for _, r := range records {
		shill := ""
		if r.Shill >= 0 {
			shill = fmt.Sprintf(" shill=%d", r.Shill)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  N=%d difficulty=%d%s  %s\n",
			r.CreatedAt.Format(time.DateTime), r.ID[:8], r.N, r.Difficulty, shill, r.Code)
	}
	return nil
}
