package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/spf13/cobra"
)

var listJobsCmd = &cobra.Command{
	Use:   "list-jobs",
	Short: "List all jobs defined in configuration",
	Long: `List-jobs displays all sampling jobs defined in the configuration file
along with their basic settings.

Example:
  framepairs list-jobs --config framepairs.yaml`,
	RunE: runListJobs,
}

func init() {
	rootCmd.AddCommand(listJobsCmd)
}

func runListJobs(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jobNames := cfg.ListJobs()
	if len(jobNames) == 0 {
		cmd.Printf("No jobs defined in %s\n", configFile)
		return nil
	}
	sort.Strings(jobNames)

	cmd.Printf("Jobs defined in %s:\n\n", configFile)

	for i, jobName := range jobNames {
		job, err := cfg.GetJob(jobName)
		if err != nil {
			return fmt.Errorf("failed to get job %q: %w", jobName, err)
		}

		cmd.Printf("%d. %s\n", i+1, jobName)
		if job.Frames != "" {
			cmd.Printf("   Frames:        %s\n", job.Frames)
		} else {
			cmd.Printf("   Frames:        %d\n", job.NumFrames)
		}
		cmd.Printf("   Active:        %s\n", orDefault(job.Active, "(all)"))
		cmd.Printf("   Valid Frames:  %s\n", orDefault(job.ValidFrames, "(all)"))

		requests := job.GetJobRequests(cfg.Sampling)
		modes := make([]string, 0, len(requests))
		for _, r := range requests {
			modes = append(modes, r.Mode)
		}
		cmd.Printf("   Requests:      %s\n", strings.Join(modes, ", "))
		cmd.Printf("   Bidirectional: %v\n", job.IsBidirectional(cfg.Sampling))
		if job.IsOneWay(cfg.Sampling) {
			cmd.Printf("   One-way:       true\n")
		}

		if job.Processing != nil {
			cmd.Printf("   Processing:    Custom (batch_size=%d, parallelism=%d)\n",
				job.Processing.BatchSize, job.Processing.Parallelism)
		}

		if i < len(jobNames)-1 {
			cmd.Println()
		}
	}

	cmd.Printf("\nTotal: %d job(s)\n", len(jobNames))
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
