package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	cfgFlag := flags.Lookup("config")
	require.NotNil(t, cfgFlag)
	assert.Equal(t, "c", cfgFlag.Shorthand)
	assert.Equal(t, "framepairs.yaml", cfgFlag.DefValue)

	for _, name := range []string{"log-level", "log-format", "batch-size", "parallelism", "no-color"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"sample", "plan", "publish", "validate", "list-jobs", "modes", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestGetConfigFile(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()

	cfgFile = "/path/to/my config.yaml"
	assert.Equal(t, "/path/to/my config.yaml", GetConfigFile())
}

func TestGetCLIOverrides(t *testing.T) {
	originalLogLevel, originalLogFormat := logLevel, logFormat
	originalBatchSize, originalParallelism := batchSize, parallelism
	defer func() {
		logLevel, logFormat = originalLogLevel, originalLogFormat
		batchSize, parallelism = originalBatchSize, originalParallelism
	}()

	logLevel, logFormat, batchSize, parallelism = "debug", "json", 250, 3
	assert.Equal(t, CLIOverrides{LogLevel: "debug", LogFormat: "json", BatchSize: 250, Parallelism: 3}, GetCLIOverrides())
}

func TestLoadConfig_AppliesOverrides(t *testing.T) {
	configPath, _ := writeTestConfig(t, testJobs)

	originalCfgFile, originalBatchSize := cfgFile, batchSize
	defer func() { cfgFile, batchSize = originalCfgFile, originalBatchSize }()

	cfgFile = configPath
	batchSize = 42
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Processing.BatchSize)
	assert.Equal(t, "sqlite", cfg.Store.Driver)

	cfgFile = "/nonexistent/framepairs.yaml"
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "framepairs version "+Version)
	assert.Contains(t, out, "Go version:")
}

func TestModesCommand(t *testing.T) {
	out, err := executeCommand(t, "modes")
	require.NoError(t, err)

	for _, want := range []string{"exhaustive", "consecutive", "hierarchical2", "min_dist", "include_mid_point", "neighbouring frames only"} {
		assert.Contains(t, out, want)
	}
}

func TestListJobsCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t, testJobs)

	out, err := executeCommand(t, "list-jobs", "-c", configPath)
	require.NoError(t, err)

	clipAt := strings.Index(out, "1. clip")
	sparseAt := strings.Index(out, "2. sparse")
	assert.True(t, clipAt >= 0 && sparseAt > clipAt, "jobs should be listed in sorted order:\n%s", out)
	assert.Contains(t, out, "Frames:        8")
	assert.Contains(t, out, "Frames:        10-17")
	assert.Contains(t, out, "Active:        10,12,14,16")
	assert.Contains(t, out, "Valid Frames:  (all)")
	assert.Contains(t, out, "Requests:      consecutive")
	assert.Contains(t, out, "Requests:      hierarchical")
	assert.Contains(t, out, "Total: 2 job(s)")

	_, err = executeCommand(t, "list-jobs", "-c", "/nonexistent/framepairs.yaml")
	assert.Error(t, err)
}
