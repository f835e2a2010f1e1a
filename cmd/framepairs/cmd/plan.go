package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/graph"
	"github.com/dbsmedya/framepairs/internal/job"
	"github.com/dbsmedya/framepairs/internal/sampling"
)

var planFlags jobFlags

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the sampling plan for a job",
	Long: `Plan resolves a job and reports what sampling it would produce without
printing the pairs themselves.

The plan shows:
  - Frame range, active frames and frames dropped by valid_frames
  - Every request with its dyadic levels and relative pair count
  - Pair graph coverage (isolated frames, components, degree)
  - Pair counts per frame distance

Example:
  framepairs plan --config framepairs.yaml --job clip01
  framepairs plan -n 64 -m hierarchical2:min_dist=2`,
	RunE: runPlan,
}

func init() {
	planFlags.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, j, err := planFlags.resolve(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := j.Sample(sampling.NewSampler(j.Processing.Parallelism, log.WithJob(j.Name)))
	if err != nil {
		return err
	}

	g, err := graph.BuildFromPairs(res.Pairs, j.Range.Frames())
	if err != nil {
		return fmt.Errorf("failed to build pair graph: %w", err)
	}
	report := g.Coverage(j.Range.Frames())

	printPlan(j, res, report)
	return nil
}

func printPlan(j *job.Job, res *sampling.Result, report graph.CoverageReport) {
	printHeader("Sampling Plan: %s", j.Name)

	fmt.Fprintln(outputWriter)
	printSection("Job Overview")
	fmt.Fprintf(outputWriter, "  Tag:            %s\n", j.Tag())
	fmt.Fprintf(outputWriter, "  Index Space:    %d frames\n", j.Range.Len())
	fmt.Fprintf(outputWriter, "  Active Frames:  %d (%s)\n", len(j.Range.Frames()), j.Range.Name())
	if len(j.Excluded) > 0 {
		fmt.Fprintf(outputWriter, "  Excluded:       %d frame(s) not in valid_frames: %s\n",
			len(j.Excluded), joinFrames(j.Excluded, 10))
	}
	fmt.Fprintf(outputWriter, "  Bidirectional:  %v\n", j.Bidirectional)
	fmt.Fprintf(outputWriter, "  One-way:        %v\n", j.OneWay)

	fmt.Fprintln(outputWriter)
	printSection("Requests")
	rows := make([][]string, 0, len(res.Requests))
	for i, rs := range res.Requests {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rs.Request.String(),
			formatLevels(rs.Request.Mode, rs.Levels),
			strconv.Itoa(rs.RelativePairs),
		})
	}
	fmt.Fprintln(outputWriter, renderTable(
		[]string{"#", "Request", "Levels", "Pairs"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(outputWriter, "  Union (relative): %d\n", res.RelativePairs)
	fmt.Fprintf(outputWriter, "  Filtered:         %d\n", res.Filtered)
	fmt.Fprintf(outputWriter, "  Final pairs:      %s\n", paint(color.Green, strconv.Itoa(res.Pairs.Len())))

	fmt.Fprintln(outputWriter)
	printSection("Coverage")
	fmt.Fprintf(outputWriter, "  Frames Checked: %d\n", report.Frames)
	fmt.Fprintf(outputWriter, "  Degree:         min %d, max %d, mean %.2f\n",
		report.MinDegree, report.MaxDegree, report.MeanDegree)
	fmt.Fprintf(outputWriter, "  Components:     %d\n", report.Components)
	fmt.Fprintf(outputWriter, "  Reciprocal:     %d of %d pairs\n", report.Reciprocal, report.Pairs)

	if len(report.DistanceCounts) > 0 {
		fmt.Fprintln(outputWriter)
		printSection("Distances")
		distRows := make([][]string, 0, len(report.DistanceCounts))
		for _, d := range report.Distances() {
			distRows = append(distRows, []string{strconv.Itoa(d), strconv.Itoa(report.DistanceCounts[d])})
		}
		fmt.Fprintln(outputWriter, renderTable(
			[]string{"Distance", "Pairs"},
			distRows,
			[]columnAlignment{alignRight, alignRight},
		))
	}

	fmt.Fprintln(outputWriter)
	warnings := report.Warnings()
	if len(warnings) == 0 {
		printOK("Every active frame has at least one partner")
		return
	}
	for _, w := range warnings {
		printWarn("%s", w)
	}
}

func formatLevels(mode sampling.Mode, levels []int) string {
	if mode == sampling.Exhaustive {
		return "all"
	}
	if len(levels) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("%d (d=%d)", l, 1<<l))
	}
	return strings.Join(parts, ", ")
}

func joinFrames(frames []int, limit int) string {
	parts := make([]string, 0, min(len(frames), limit)+1)
	for i, f := range frames {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(frames)-limit))
			break
		}
		parts = append(parts, strconv.Itoa(f))
	}
	return strings.Join(parts, ", ")
}
