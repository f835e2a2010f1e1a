package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/sampling"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List sampling modes and their parameters",
	Long: `Modes prints every sampling mode with the parameter keys it accepts.

Example:
  framepairs modes`,
	RunE: runModes,
}

var modeDescriptions = map[sampling.Mode]string{
	sampling.Exhaustive:               "every ordered pair of distinct frames",
	sampling.Consecutive:              "neighbouring frames only",
	sampling.Hierarchical:             "dyadic distances, aligned starts",
	sampling.HierarchicalWithMidpoint: "dyadic distances, halved start spacing",
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	rows := make([][]string, 0, len(sampling.Modes()))
	for _, m := range sampling.Modes() {
		params := strings.Join(m.ParamKeys(), ", ")
		if params == "" {
			params = "-"
		}
		rows = append(rows, []string{m.String(), params, modeDescriptions[m]})
	}
	fmt.Fprintln(outputWriter, renderTable([]string{"Mode", "Parameters", "Pairs"}, rows, nil))
	return nil
}
