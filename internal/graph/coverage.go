package graph

import (
	"fmt"
	"sort"
	"strings"
)

// CoverageReport summarizes how well a pair set covers a set of frames.
type CoverageReport struct {
	Frames         int         // frames checked
	Pairs          int         // directed edges in the graph
	Reciprocal     int         // directed edges whose reverse is also present
	Isolated       []int       // checked frames with no partner
	MinDegree      int
	MaxDegree      int
	MeanDegree     float64
	Components     int         // connected components among all nodes
	Connected      bool
	DistanceCounts map[int]int // |first-second| -> directed pairs
}

// Coverage reports degree and connectivity statistics for the given frames.
// When frames is empty every node is checked.
func (g *Graph) Coverage(frames []int) CoverageReport {
	if len(frames) == 0 {
		frames = g.AllNodes()
	}

	report := CoverageReport{
		Frames:         len(frames),
		Pairs:          g.EdgeCount(),
		DistanceCounts: make(map[int]int),
	}

	total := 0
	for i, f := range frames {
		d := g.Degree(f)
		total += d
		if d == 0 {
			report.Isolated = append(report.Isolated, f)
		}
		if i == 0 || d < report.MinDegree {
			report.MinDegree = d
		}
		if d > report.MaxDegree {
			report.MaxDegree = d
		}
	}
	if len(frames) > 0 {
		report.MeanDegree = float64(total) / float64(len(frames))
	}
	sort.Ints(report.Isolated)

	for e := range g.edges {
		if g.HasEdge(e.To, e.From) {
			report.Reciprocal++
		}
		dist := e.To - e.From
		if dist < 0 {
			dist = -dist
		}
		report.DistanceCounts[dist]++
	}

	report.Components = len(g.Components())
	report.Connected = report.Components <= 1
	return report
}

// Distances returns the distances present in the report, ascending.
func (r CoverageReport) Distances() []int {
	out := make([]int, 0, len(r.DistanceCounts))
	for d := range r.DistanceCounts {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Warnings lists the coverage problems downstream stages care about.
func (r CoverageReport) Warnings() []string {
	var warnings []string
	if len(r.Isolated) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d frame(s) have no partner: %s",
			len(r.Isolated), joinInts(r.Isolated, 10)))
	}
	if !r.Connected {
		warnings = append(warnings, fmt.Sprintf("pairs split the clip into %d disconnected components", r.Components))
	}
	return warnings
}

func joinInts(values []int, limit int) string {
	parts := make([]string, 0, min(len(values), limit)+1)
	for i, v := range values {
		if i == limit {
			parts = append(parts, fmt.Sprintf("... (%d more)", len(values)-limit))
			break
		}
		parts = append(parts, fmt.Sprint(v))
	}
	return strings.Join(parts, ", ")
}
