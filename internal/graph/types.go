// Package graph views a sampled pair set as a correspondence graph over
// frames, so callers can check that sampling leaves no frame isolated and
// keeps the clip connected.
package graph

import "sort"

// Edge is a directed pair of frames.
type Edge struct {
	From int
	To   int
}

// Graph is a correspondence graph. Edges are directed; Neighbors holds the
// undirected view used for connectivity.
type Graph struct {
	Nodes     map[int]bool         // frame -> present
	Neighbors map[int]map[int]bool // undirected adjacency
	edges     map[Edge]bool
}

// NewGraph creates a graph holding the given frames and no edges.
func NewGraph(frames ...int) *Graph {
	g := &Graph{
		Nodes:     make(map[int]bool, len(frames)),
		Neighbors: make(map[int]map[int]bool),
		edges:     make(map[Edge]bool),
	}
	for _, f := range frames {
		g.AddNode(f)
	}
	return g
}

// AddNode adds a frame. Adding an existing frame is a no-op.
func (g *Graph) AddNode(frame int) {
	g.Nodes[frame] = true
}

// AddEdge adds a directed edge, creating missing nodes. Duplicate edges and
// self loops are ignored.
func (g *Graph) AddEdge(from, to int) {
	if from == to || g.HasEdge(from, to) {
		return
	}
	g.AddNode(from)
	g.AddNode(to)
	g.edges[Edge{From: from, To: to}] = true
	g.link(from, to)
	g.link(to, from)
}

func (g *Graph) link(a, b int) {
	if g.Neighbors[a] == nil {
		g.Neighbors[a] = make(map[int]bool)
	}
	g.Neighbors[a][b] = true
}

// HasNode reports whether frame is in the graph.
func (g *Graph) HasNode(frame int) bool {
	return g.Nodes[frame]
}

// HasEdge reports whether the directed edge from -> to exists.
func (g *Graph) HasEdge(from, to int) bool {
	return g.edges[Edge{From: from, To: to}]
}

// NodeCount returns the number of frames.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Degree returns the number of distinct frames paired with frame in either
// direction.
func (g *Graph) Degree(frame int) int {
	return len(g.Neighbors[frame])
}

// AllNodes returns every frame in ascending order.
func (g *Graph) AllNodes() []int {
	nodes := make([]int, 0, len(g.Nodes))
	for f := range g.Nodes {
		nodes = append(nodes, f)
	}
	sort.Ints(nodes)
	return nodes
}

// SortedNeighbors returns the undirected neighbours of frame, ascending.
func (g *Graph) SortedNeighbors(frame int) []int {
	out := make([]int, 0, len(g.Neighbors[frame]))
	for n := range g.Neighbors[frame] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// IsolatedNodes returns frames without any partner, ascending.
func (g *Graph) IsolatedNodes() []int {
	var out []int
	for _, f := range g.AllNodes() {
		if g.Degree(f) == 0 {
			out = append(out, f)
		}
	}
	return out
}
