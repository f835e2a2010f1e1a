package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs the root command with args and returns everything
// written to outputWriter and the command's own output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of c and its subcommands to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeTestConfig writes a config with a SQLite store in a temp directory.
func writeTestConfig(t *testing.T, jobs string) (configPath, storePath string) {
	t.Helper()
	dir := t.TempDir()
	storePath = filepath.Join(dir, "pairs.db")
	configPath = filepath.Join(dir, "framepairs.yaml")

	content := `store:
  driver: sqlite
  path: ` + storePath + `
  table: flow_pairs

logging:
  level: error
  output: stderr

jobs:
` + jobs
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath, storePath
}

const testJobs = `  clip:
    num_frames: 8
    flow_ops: [consecutive]
  sparse:
    frames: "10-17"
    active: "10,12,14,16"
    requests:
      - mode: hierarchical
        params:
          min_dist: 2
`
