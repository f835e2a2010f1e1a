package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/database"
	"github.com/dbsmedya/framepairs/internal/graph"
	"github.com/dbsmedya/framepairs/internal/job"
	"github.com/dbsmedya/framepairs/internal/logger"
	"github.com/dbsmedya/framepairs/internal/publish"
	"github.com/dbsmedya/framepairs/internal/sampling"
)

var validateCheckStore bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and every job",
	Long: `Validate checks the configuration file and resolves every job to make
sure it can be sampled.

Checks performed:
  - Configuration syntax and required fields
  - Frame expressions (frames, active, valid_frames)
  - Sampling mode names and parameters
  - Pair graph coverage (isolated frames, disconnected components)
  - Store connectivity and stored pair lists (with --check-store)

Example:
  framepairs validate --config framepairs.yaml --check-store`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateCheckStore, "check-store", false,
		"Also connect to the configured store and compare stored pairs")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting validation checks...")

	fmt.Fprintf(outputWriter, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(outputWriter, "Config file: %s\n", configFile)
	fmt.Fprintf(outputWriter, "Jobs found: %d\n\n", len(cfg.Jobs))

	if err := cfg.Validate(); err != nil {
		printFail("%v", err)
		return fmt.Errorf("configuration is invalid")
	}

	jobNames := cfg.ListJobs()
	sort.Strings(jobNames)

	hasErrors := false
	sampled := make(map[string]sampling.PairSet, len(jobNames))
	for _, name := range jobNames {
		fmt.Fprintf(outputWriter, "--- Job: %s ---\n", name)
		pairs, err := validateJob(cfg, name, log)
		if err != nil {
			printFail("%v\n", err)
			hasErrors = true
			continue
		}
		sampled[name] = pairs
		fmt.Fprintln(outputWriter)
	}

	if validateCheckStore {
		fmt.Fprintf(outputWriter, "--- Store: %s ---\n", cfg.Store.Driver)
		if err := checkStore(cmd.Context(), cfg, jobNames, sampled, log); err != nil {
			printFail("%v\n", err)
			hasErrors = true
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed for one or more jobs")
	}

	fmt.Fprintln(outputWriter, "=== Validation Complete ===")
	printOK("All jobs validated successfully")
	return nil
}

func validateJob(cfg *config.Config, name string, log *logger.Logger) (sampling.PairSet, error) {
	j, err := job.BuildFromConfig(cfg, name)
	if err != nil {
		return nil, err
	}

	res, err := j.Sample(sampling.NewSampler(j.Processing.Parallelism, log.WithJob(name)))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(outputWriter, "Tag: %s\n", j.Tag())
	fmt.Fprintf(outputWriter, "Pairs: %d\n", res.Pairs.Len())

	g, err := graph.BuildFromPairs(res.Pairs, j.Range.Frames())
	if err != nil {
		return nil, err
	}
	report := g.Coverage(j.Range.Frames())
	for _, w := range report.Warnings() {
		printWarn("%s", w)
	}
	if len(j.Excluded) > 0 {
		printWarn("%d active frame(s) dropped by valid_frames", len(j.Excluded))
	}
	printOK("Job can be sampled")
	return res.Pairs, nil
}

// checkStore connects to the store and compares each job's stored pair list
// with the pairs sampled for it. Stale or missing lists are warnings.
func checkStore(ctx context.Context, cfg *config.Config, jobNames []string, sampled map[string]sampling.PairSet, log *logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dbManager := database.NewManager(&cfg.Store)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()
	if err := dbManager.Ping(ctx); err != nil {
		return err
	}
	printOK("Store reachable")

	pub, err := publish.NewPublisher(dbManager.DB, dbManager.Dialect, cfg.Store.Table, cfg.Processing.BatchSize, log)
	if err != nil {
		return err
	}
	if err := pub.EnsureSchema(ctx); err != nil {
		return err
	}

	for _, name := range jobNames {
		want, ok := sampled[name]
		if !ok {
			continue
		}
		stored, err := pub.Load(ctx, name)
		if err != nil {
			return err
		}
		switch {
		case stored.Len() == 0:
			printWarn("%s: not published yet", name)
		case stored.Equal(want):
			printOK("%s: stored pairs up to date (%d)", name, stored.Len())
		default:
			missing := 0
			for p := range want {
				if !stored.Has(p) {
					missing++
				}
			}
			stale := stored.Len() - (want.Len() - missing)
			printWarn("%s: stored pairs out of date (%d missing, %d stale), run publish", name, missing, stale)
		}
	}
	return nil
}
