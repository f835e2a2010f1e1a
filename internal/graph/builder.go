package graph

import (
	"fmt"

	"github.com/dbsmedya/framepairs/internal/sampling"
)

// Builder constructs a correspondence graph from a pair set.
type Builder struct {
	pairs  sampling.PairSet
	frames []int
}

// NewBuilder creates a builder. frames lists nodes that must be present even
// when no pair touches them, typically the active frames.
func NewBuilder(pairs sampling.PairSet, frames []int) *Builder {
	return &Builder{pairs: pairs, frames: frames}
}

// Build adds every frame and every pair. Edges are added in sorted pair
// order so adjacency lists are deterministic.
func (b *Builder) Build() (*Graph, error) {
	if b.pairs == nil {
		return nil, fmt.Errorf("pair set is nil")
	}

	g := NewGraph(b.frames...)
	for _, p := range b.pairs.Sorted() {
		if p.First == p.Second {
			return nil, fmt.Errorf("self pair %s", p)
		}
		g.AddEdge(p.First, p.Second)
	}
	return g, nil
}

// BuildFromPairs is a convenience function that builds a graph directly.
func BuildFromPairs(pairs sampling.PairSet, frames []int) (*Graph, error) {
	return NewBuilder(pairs, frames).Build()
}
