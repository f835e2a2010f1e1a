package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPair(t *testing.T) {
	p := Pair{First: 3, Second: 7}
	assert.Equal(t, "(3,7)", p.String())
	assert.Equal(t, Pair{First: 7, Second: 3}, p.Reverse())
	assert.Equal(t, 4, p.Distance())
	assert.Equal(t, 4, p.Reverse().Distance())
	assert.NotEqual(t, p, p.Reverse())
}

func TestPairSet_Operations(t *testing.T) {
	a := NewPairSet(Pair{0, 1}, Pair{1, 2}, Pair{0, 1})
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has(Pair{1, 2}))
	assert.False(t, a.Has(Pair{2, 1}))

	b := NewPairSet(Pair{1, 2}, Pair{2, 3})
	assert.True(t, NewPairSet(Pair{1, 2}).IsSubsetOf(a))
	assert.False(t, b.IsSubsetOf(a))
	assert.True(t, NewPairSet().IsSubsetOf(a))

	u := a.Union(b)
	assert.Equal(t, 3, a.Len(), "Union adds to the receiver")
	assert.True(t, u.Equal(a))
	assert.True(t, b.IsSubsetOf(a))

	assert.False(t, a.Equal(b))
	assert.False(t, NewPairSet(Pair{0, 1}).Equal(NewPairSet(Pair{1, 0})))
}

func TestPairSet_Sorted(t *testing.T) {
	s := NewPairSet(Pair{2, 0}, Pair{0, 2}, Pair{0, 1}, Pair{1, 0}, Pair{10, 3})
	assert.Equal(t, []Pair{{0, 1}, {0, 2}, {1, 0}, {2, 0}, {10, 3}}, s.Sorted())
	assert.Empty(t, NewPairSet().Sorted())
}

func TestToOneWay(t *testing.T) {
	s := NewPairSet(Pair{0, 1}, Pair{1, 0}, Pair{4, 2}, Pair{5, 9})
	got := ToOneWay(s)
	assert.Equal(t, []Pair{{0, 1}, {2, 4}, {5, 9}}, got.Sorted())

	// input untouched
	assert.Equal(t, 4, s.Len())
}

func TestToOneWay_Idempotent(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 16} {
		s, err := HierarchicalPairs(n, true, DefaultHierarchicalOptions())
		assert.NoError(t, err)
		once := ToOneWay(s)
		assert.True(t, once.Equal(ToOneWay(once)), "n=%d", n)
		for p := range once {
			assert.Less(t, p.First, p.Second)
		}
	}
}

func TestInRange(t *testing.T) {
	s := NewPairSet(Pair{0, 4}, Pair{4, 8}, Pair{5, 6}, Pair{6, 5}, Pair{9, 3})
	assert.Equal(t, []Pair{{5, 6}, {6, 5}}, InRange(s, 4, 8).Sorted())
	assert.Equal(t, []Pair{{0, 4}, {5, 6}, {6, 5}}, InRange(s, 0, 7).Sorted())
	assert.Equal(t, 0, InRange(s, 3, 3).Len())
}
