package sampling

import (
	"fmt"
	"sort"
)

// Pair is an ordered pair of frame indices or frame identifiers.
// A pair and its reverse are distinct values.
type Pair struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// String renders the pair as (first,second).
func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.First, p.Second)
}

// Reverse returns (Second, First).
func (p Pair) Reverse() Pair {
	return Pair{First: p.Second, Second: p.First}
}

// Distance returns |First - Second|.
func (p Pair) Distance() int {
	if p.First > p.Second {
		return p.First - p.Second
	}
	return p.Second - p.First
}

// PairSet is a set of pairs keyed by value.
type PairSet map[Pair]struct{}

// NewPairSet returns a set holding the given pairs.
func NewPairSet(pairs ...Pair) PairSet {
	s := make(PairSet, len(pairs))
	for _, p := range pairs {
		s.Add(p)
	}
	return s
}

// Add inserts p.
func (s PairSet) Add(p Pair) {
	s[p] = struct{}{}
}

// Has reports whether p is in the set.
func (s PairSet) Has(p Pair) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of pairs.
func (s PairSet) Len() int {
	return len(s)
}

// Union adds every pair of other to s and returns s.
func (s PairSet) Union(other PairSet) PairSet {
	for p := range other {
		s[p] = struct{}{}
	}
	return s
}

// Equal reports whether both sets hold the same pairs.
func (s PairSet) Equal(other PairSet) bool {
	return len(s) == len(other) && s.IsSubsetOf(other)
}

// IsSubsetOf reports whether every pair of s is in other.
func (s PairSet) IsSubsetOf(other PairSet) bool {
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// Sorted returns the pairs ordered by First, then Second.
func (s PairSet) Sorted() []Pair {
	out := make([]Pair, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// ToOneWay collapses a directed set into one canonical direction per
// unordered pair: a pair with First > Second is swapped.
func ToOneWay(pairs PairSet) PairSet {
	out := make(PairSet, len(pairs))
	for p := range pairs {
		if p.First > p.Second {
			p = p.Reverse()
		}
		out.Add(p)
	}
	return out
}

// InRange keeps pairs whose endpoints both lie in [lo, hi).
func InRange(pairs PairSet, lo, hi int) PairSet {
	out := make(PairSet)
	for p := range pairs {
		if p.First >= lo && p.First < hi && p.Second >= lo && p.Second < hi {
			out.Add(p)
		}
	}
	return out
}
