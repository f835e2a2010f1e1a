package sampling

import (
	"fmt"
	"math/bits"
)

// Generate runs the generator selected by the request's mode over relative
// indices [0, numFrames). Parameters are resolved here, not at construction.
func Generate(numFrames int, bidirectional bool, req Request) (PairSet, error) {
	switch req.Mode {
	case Exhaustive:
		if err := req.checkKeys(); err != nil {
			return nil, err
		}
		return ExhaustivePairs(numFrames, bidirectional)
	case Consecutive:
		if err := req.checkKeys(); err != nil {
			return nil, err
		}
		return ConsecutivePairs(numFrames, bidirectional)
	case Hierarchical, HierarchicalWithMidpoint:
		opts, err := req.hierarchicalOptions()
		if err != nil {
			return nil, err
		}
		return HierarchicalPairs(numFrames, bidirectional, opts)
	default:
		return nil, fmt.Errorf("mode %d: %w", int(req.Mode), ErrUnknownMode)
	}
}

// ExhaustivePairs pairs every index with every other index. Unidirectional
// output keeps only j > i. Quadratic; meant for short clips.
func ExhaustivePairs(numFrames int, bidirectional bool) (PairSet, error) {
	if numFrames < 0 {
		return nil, fmt.Errorf("exhaustive: num_frames=%d: %w", numFrames, ErrNegativeFrameCount)
	}

	size := numFrames * (numFrames - 1) / 2
	if bidirectional {
		size *= 2
	}
	pairs := make(PairSet, max(size, 0))
	for i := 0; i < numFrames; i++ {
		j := i + 1
		if bidirectional {
			j = 0
		}
		for ; j < numFrames; j++ {
			if i != j {
				pairs.Add(Pair{First: i, Second: j})
			}
		}
	}
	return pairs, nil
}

// ConsecutivePairs pairs every index with its immediate neighbour(s).
func ConsecutivePairs(numFrames int, bidirectional bool) (PairSet, error) {
	return HierarchicalPairs(numFrames, bidirectional, DefaultHierarchicalOptions().WithMaxDist(1))
}

// MidpointPairs is HierarchicalPairs with IncludeMidPoint forced on.
func MidpointPairs(numFrames int, bidirectional bool, opts HierarchicalOptions) (PairSet, error) {
	opts.IncludeMidPoint = true
	return HierarchicalPairs(numFrames, bidirectional, opts)
}

// HierarchicalPairs scans dyadic levels ceil(log2(MinDist))..floor(log2(MaxDist)).
// At each level every start index s (stepping by 2^level, or 2^(level-1)
// with midpoints) is paired with s+2^level, and with s-2^level when
// bidirectional. Candidates outside [0, numFrames) are dropped.
func HierarchicalPairs(numFrames int, bidirectional bool, opts HierarchicalOptions) (PairSet, error) {
	if opts.MinDist < 1 {
		return nil, fmt.Errorf("hierarchical: min_dist=%d: %w", opts.MinDist, ErrInvalidMinDist)
	}
	if numFrames < 0 {
		return nil, fmt.Errorf("hierarchical: num_frames=%d: %w", numFrames, ErrNegativeFrameCount)
	}

	maxDist := numFrames - 1
	if opts.MaxDist != nil {
		maxDist = *opts.MaxDist
	}

	pairs := make(PairSet)
	minLevel, maxLevel, ok := levelBounds(opts.MinDist, maxDist)
	if !ok {
		return pairs, nil
	}

	signs := []int{1}
	if bidirectional {
		signs = []int{-1, 1}
	}

	for level := minLevel; level <= maxLevel; level++ {
		dist := 1 << level
		if dist >= numFrames {
			// every candidate at this level and above is out of range
			break
		}
		step := 1 << stepLevel(level, opts.IncludeMidPoint)
		for start := 0; start < numFrames; start += step {
			for _, sign := range signs {
				end := start + sign*dist
				if end < 0 || end >= numFrames {
					continue
				}
				pairs.Add(Pair{First: start, Second: end})
			}
		}
	}
	return pairs, nil
}

// Levels returns the dyadic levels a hierarchical scan visits for the given
// bounds. MaxDist below 1 visits nothing.
func Levels(minDist, maxDist int) []int {
	minLevel, maxLevel, ok := levelBounds(minDist, maxDist)
	if !ok {
		return nil
	}
	levels := make([]int, 0, maxLevel-minLevel+1)
	for l := minLevel; l <= maxLevel; l++ {
		levels = append(levels, l)
	}
	return levels
}

// levelBounds returns ceil(log2(minDist)) and floor(log2(maxDist)).
func levelBounds(minDist, maxDist int) (int, int, bool) {
	if minDist < 1 || maxDist < 1 {
		return 0, 0, false
	}
	minLevel := bits.Len(uint(minDist - 1))
	maxLevel := bits.Len(uint(maxDist)) - 1
	if minLevel > maxLevel {
		return 0, 0, false
	}
	return minLevel, maxLevel, true
}

func stepLevel(level int, includeMidPoint bool) int {
	if includeMidPoint {
		return max(0, level-1)
	}
	return level
}
