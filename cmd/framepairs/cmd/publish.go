package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/database"
	"github.com/dbsmedya/framepairs/internal/job"
	"github.com/dbsmedya/framepairs/internal/lock"
	"github.com/dbsmedya/framepairs/internal/logger"
	"github.com/dbsmedya/framepairs/internal/publish"
	"github.com/dbsmedya/framepairs/internal/sampling"
	"github.com/dbsmedya/framepairs/internal/sqlutil"
)

var (
	publishJob         string
	publishAll         bool
	publishForce       bool
	publishSkipVerify  bool
	publishLockTimeout int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Sample a job and write its pairs to the store",
	Long: `Publish samples a job and replaces its pair list in the configured store
(SQLite or MySQL) inside a single transaction.

The publish process follows these steps:
  1. Resolve the job and sample its pairs
  2. Take the job lock (MySQL GET_LOCK or a lock file next to the SQLite database)
  3. Delete the previous pair list and insert the new one in batches
  4. Verify the stored row count for the new run

Example:
  framepairs publish --config framepairs.yaml --job clip01
  framepairs publish --config framepairs.yaml --all`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&publishJob, "job", "j", "",
		"Job name from configuration file")
	publishCmd.Flags().BoolVar(&publishAll, "all", false,
		"Publish every job in the configuration file")
	publishCmd.MarkFlagsMutuallyExclusive("job", "all")
	publishCmd.MarkFlagsOneRequired("job", "all")

	publishCmd.Flags().BoolVar(&publishForce, "force", false,
		"Publish without taking the job lock (use with caution)")
	publishCmd.Flags().BoolVar(&publishSkipVerify, "skip-verify", false,
		"Skip the stored row count check")
	publishCmd.Flags().IntVar(&publishLockTimeout, "lock-timeout", lock.TimeoutShort,
		"Seconds to wait for the job lock")

	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobNames := []string{publishJob}
	if publishAll {
		jobNames = cfg.ListJobs()
		sort.Strings(jobNames)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnf("Received %s - rolling back current publish...", sig)
	})
	defer cancel()

	dbManager := database.NewManager(&cfg.Store)
	if err := dbManager.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer dbManager.Close()

	var failed int
	for _, name := range jobNames {
		if err := publishOne(ctx, cfg, name, dbManager, log); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Warn("Publish cancelled by user")
				return nil
			}
			printFail("%s: %v", name, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("publish failed for %d of %d job(s)", failed, len(jobNames))
	}
	return nil
}

func publishOne(ctx context.Context, cfg *config.Config, name string, dbManager *database.Manager, log *logger.Logger) error {
	j, err := job.BuildFromConfig(cfg, name)
	if err != nil {
		return err
	}
	jobLog := log.WithJob(name)

	res, err := j.Sample(sampling.NewSampler(j.Processing.Parallelism, jobLog))
	if err != nil {
		return err
	}

	pubLog := jobLog.WithFields(map[string]interface{}{
		"tag":   j.Tag(),
		"table": cfg.Store.Table,
	})
	pub, err := publish.NewPublisher(dbManager.DB, dbManager.Dialect, cfg.Store.Table, j.Processing.BatchSize, pubLog)
	if err != nil {
		return err
	}
	if err := pub.EnsureSchema(ctx); err != nil {
		return err
	}

	var stats *publish.PublishStats
	run := func() error {
		var runErr error
		stats, runErr = pub.Publish(ctx, name, res.Pairs)
		if runErr != nil {
			return runErr
		}
		if publishSkipVerify {
			return nil
		}
		_, runErr = pub.Verify(ctx, name, stats.RunID, int64(res.Pairs.Len()))
		return runErr
	}

	if publishForce {
		jobLog.Warn("Skipping job lock (--force flag used)")
		err = run()
	} else {
		err = lock.WithLock(ctx, jobLocker(dbManager, cfg, name), publishLockTimeout, run)
		if errors.Is(err, lock.ErrLockTimeout) {
			return fmt.Errorf("job %q is being published by another instance (use --force to override)", name)
		}
	}
	if err != nil {
		return err
	}

	printOK("%s: published %d pairs as %s (run %s, %d batches, %s)",
		name, stats.RowsWritten, j.Tag(), stats.RunID, stats.Batches, stats.Duration.Round(time.Millisecond))
	return nil
}

// jobLocker picks the lock matching the store: a named lock on MySQL, a
// lock file next to a SQLite database.
func jobLocker(dbManager *database.Manager, cfg *config.Config, name string) lock.Locker {
	if dbManager.Dialect == sqlutil.MySQL {
		return lock.NewJobLock(dbManager.DB, name)
	}
	return lock.NewStoreLock(cfg.Store.Path)
}
