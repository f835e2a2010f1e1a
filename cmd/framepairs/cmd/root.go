package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	batchSize   int
	parallelism int
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "framepairs",
	Short: "Frame pair sampler for optical-flow precomputation",
	Long: `framepairs decides which ordered pairs of video frames get an optical
flow computation and publishes the resulting pair lists to a store.

Features:
  - Exhaustive, consecutive and hierarchical (dyadic) sampling modes
  - Union of several sampling requests per clip
  - Active and valid frame subsets with sparse frame identifiers
  - Pair graph coverage report (isolated frames, components)
  - Transactional publishing to SQLite or MySQL with per-job locking`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "framepairs.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Processing overrides
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0,
		"Override batch size (pairs per INSERT statement)")
	rootCmd.PersistentFlags().IntVar(&parallelism, "parallelism", 0,
		"Override number of requests generated concurrently")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	BatchSize   int
	Parallelism int
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		BatchSize:   batchSize,
		Parallelism: parallelism,
	}
}

// loadConfig loads the config file and applies CLI overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.BatchSize, o.Parallelism)
	return cfg, nil
}

// newLogger builds the logger for cfg.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
