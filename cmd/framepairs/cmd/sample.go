package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/job"
	"github.com/dbsmedya/framepairs/internal/sampling"
)

var (
	sampleFlags  jobFlags
	sampleFormat string
	sampleWindow string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the frame pairs selected for a job",
	Long: `Sample runs every request of a job over its frame range and prints the
merged pair list. A job comes either from the configuration file (--job) or
from flags (--num-frames with one or more --mode).

Output formats:
  text   one "first second" line per pair
  csv    first_frame,second_frame with a header row
  json   {"tag": ..., "pairs": [{"first": .., "second": ..}]}
  table  rendered table with pair distances

Examples:
  framepairs sample --job clip01
  framepairs sample -n 8 -m hierarchical2
  framepairs sample -n 120 -m consecutive -m hierarchical:min_dist=4,max_dist=32 --one-way`,
	RunE: runSample,
}

func init() {
	sampleFlags.register(sampleCmd)
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", "text",
		"Output format (text, csv, json, table)")
	sampleCmd.Flags().StringVar(&sampleWindow, "window", "",
		"Only print pairs with both frames in [lo, hi), given as lo:hi")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	write, err := pairWriter(sampleFormat)
	if err != nil {
		return err
	}

	cfg, j, err := sampleFlags.resolve(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	sampler := sampling.NewSampler(j.Processing.Parallelism, log.WithJob(j.Name))
	res, err := j.Sample(sampler)
	if err != nil {
		return err
	}

	pairs := res.Pairs
	if sampleWindow != "" {
		lo, hi, err := parseWindow(sampleWindow)
		if err != nil {
			return err
		}
		pairs = sampling.InRange(pairs, lo, hi)
	}
	if res.Filtered > 0 {
		log.Debugf("Filtered out %d pairs with no active frame", res.Filtered)
	}

	return write(outputWriter, j, pairs.Sorted())
}

type pairWriterFunc func(w io.Writer, j *job.Job, pairs []sampling.Pair) error

func pairWriter(format string) (pairWriterFunc, error) {
	switch format {
	case "text", "":
		return writePairsText, nil
	case "csv":
		return writePairsCSV, nil
	case "json":
		return writePairsJSON, nil
	case "table":
		return writePairsTable, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: text, csv, json, table)", format)
	}
}

func writePairsText(w io.Writer, _ *job.Job, pairs []sampling.Pair) error {
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%d %d\n", p.First, p.Second); err != nil {
			return err
		}
	}
	return nil
}

func writePairsCSV(w io.Writer, _ *job.Job, pairs []sampling.Pair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"first_frame", "second_frame"}); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := cw.Write([]string{strconv.Itoa(p.First), strconv.Itoa(p.Second)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type pairListJSON struct {
	Job   string          `json:"job"`
	Tag   string          `json:"tag"`
	Count int             `json:"count"`
	Pairs []sampling.Pair `json:"pairs"`
}

func writePairsJSON(w io.Writer, j *job.Job, pairs []sampling.Pair) error {
	if pairs == nil {
		pairs = []sampling.Pair{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pairListJSON{Job: j.Name, Tag: j.Tag(), Count: len(pairs), Pairs: pairs})
}

func writePairsTable(w io.Writer, j *job.Job, pairs []sampling.Pair) error {
	rows := make([][]string, 0, len(pairs))
	for i, p := range pairs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(p.First),
			strconv.Itoa(p.Second),
			strconv.Itoa(p.Distance()),
		})
	}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight}
	_, err := fmt.Fprintf(w, "%s\n%s\n", j.Tag(), renderTable([]string{"#", "First", "Second", "Distance"}, rows, aligns))
	return err
}
