package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairs(ps ...[2]int) PairSet {
	s := make(PairSet, len(ps))
	for _, p := range ps {
		s.Add(Pair{First: p[0], Second: p[1]})
	}
	return s
}

func hierarchical(minDist, maxDist int, midpoint bool) HierarchicalOptions {
	opts := DefaultHierarchicalOptions().WithMaxDist(maxDist)
	opts.MinDist = minDist
	opts.IncludeMidPoint = midpoint
	return opts
}

func TestExhaustivePairs(t *testing.T) {
	tests := []struct {
		name          string
		numFrames     int
		bidirectional bool
		want          int
	}{
		{"Zero frames", 0, false, 0},
		{"One frame", 1, true, 0},
		{"Two frames one-way", 2, false, 1},
		{"Four frames one-way", 4, false, 6},
		{"Four frames two-way", 4, true, 12},
		{"Ten frames one-way", 10, false, 45},
		{"Ten frames two-way", 10, true, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExhaustivePairs(tt.numFrames, tt.bidirectional)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Len())

			for p := range got {
				assert.NotEqual(t, p.First, p.Second, "self pair %s", p)
				if !tt.bidirectional {
					assert.Less(t, p.First, p.Second)
				}
			}
		})
	}
}

func TestExhaustivePairs_OneWayMatchesCanonicalTwoWay(t *testing.T) {
	for n := 2; n <= 9; n++ {
		oneWay, err := ExhaustivePairs(n, false)
		require.NoError(t, err)
		twoWay, err := ExhaustivePairs(n, true)
		require.NoError(t, err)

		assert.Equal(t, n*(n-1)/2, oneWay.Len())
		assert.True(t, oneWay.Equal(ToOneWay(twoWay)), "n=%d", n)
	}
}

func TestConsecutivePairs(t *testing.T) {
	got, err := ConsecutivePairs(5, true)
	require.NoError(t, err)
	assert.True(t, got.Equal(pairs(
		[2]int{0, 1}, [2]int{1, 0},
		[2]int{1, 2}, [2]int{2, 1},
		[2]int{2, 3}, [2]int{3, 2},
		[2]int{3, 4}, [2]int{4, 3},
	)), "got %v", got.Sorted())

	got, err = ConsecutivePairs(5, false)
	require.NoError(t, err)
	assert.True(t, got.Equal(pairs([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4})))
}

func TestConsecutivePairs_Counts(t *testing.T) {
	for n := 2; n <= 33; n++ {
		got, err := ConsecutivePairs(n, true)
		require.NoError(t, err)
		assert.Equal(t, 2*(n-1), got.Len(), "n=%d", n)
		assert.Equal(t, n-1, ToOneWay(got).Len(), "n=%d", n)
	}
}

func TestGenerators_EmptyForSmallClips(t *testing.T) {
	requests := []Request{
		NewRequest(Exhaustive, nil),
		NewRequest(Consecutive, nil),
		NewRequest(Hierarchical, nil),
		NewRequest(HierarchicalWithMidpoint, nil),
	}
	for _, n := range []int{0, 1} {
		for _, bidi := range []bool{false, true} {
			for _, req := range requests {
				got, err := Generate(n, bidi, req)
				require.NoError(t, err, "%s n=%d", req, n)
				assert.Equal(t, 0, got.Len(), "%s n=%d", req, n)
			}
		}
	}
}

func TestHierarchicalPairs_EightFrames(t *testing.T) {
	got, err := HierarchicalPairs(8, true, hierarchical(1, 4, false))
	require.NoError(t, err)

	// level 0
	assert.True(t, got.Has(Pair{0, 1}))
	assert.True(t, got.Has(Pair{1, 0}))
	// level 1, starts step by 2
	assert.True(t, got.Has(Pair{0, 2}))
	assert.True(t, got.Has(Pair{2, 0}))
	assert.False(t, got.Has(Pair{1, 3}))
	// level 2, starts step by 4
	assert.True(t, got.Has(Pair{0, 4}))
	assert.True(t, got.Has(Pair{4, 0}))
	assert.False(t, got.Has(Pair{0, 8}))
	assert.False(t, got.Has(Pair{2, 6}))

	// 14 at level 0, 6 at level 1, 2 at level 2
	assert.Equal(t, 22, got.Len())
}

func TestHierarchicalPairs_ExactSet(t *testing.T) {
	got, err := HierarchicalPairs(8, false, hierarchical(2, 4, false))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 2}, {0, 4}, {2, 4}, {4, 6}}, got.Sorted())
}

func TestHierarchicalPairs_DefaultMaxDist(t *testing.T) {
	opts := DefaultHierarchicalOptions()

	got, err := HierarchicalPairs(8, true, opts)
	require.NoError(t, err)
	bounded, err := HierarchicalPairs(8, true, hierarchical(1, 4, false))
	require.NoError(t, err)
	// max_dist defaults to 7, whose floor level is 2
	assert.True(t, got.Equal(bounded))

	got, err = HierarchicalPairs(9, true, opts)
	require.NoError(t, err)
	assert.True(t, got.Has(Pair{0, 8}))
	assert.True(t, got.Has(Pair{8, 0}))
}

func TestHierarchicalPairs_InRange(t *testing.T) {
	for n := 0; n <= 40; n++ {
		for _, midpoint := range []bool{false, true} {
			got, err := HierarchicalPairs(n, true, hierarchical(1, 64, midpoint))
			require.NoError(t, err)
			for p := range got {
				assert.GreaterOrEqual(t, p.First, 0)
				assert.Less(t, p.First, n)
				assert.GreaterOrEqual(t, p.Second, 0)
				assert.Less(t, p.Second, n)
				assert.NotEqual(t, p.First, p.Second)
			}
		}
	}
}

func TestHierarchicalPairs_DistancesArePowersOfTwo(t *testing.T) {
	got, err := HierarchicalPairs(100, true, hierarchical(3, 40, true))
	require.NoError(t, err)
	require.NotZero(t, got.Len())
	for p := range got {
		d := p.Distance()
		assert.True(t, d == 4 || d == 8 || d == 16 || d == 32, "distance %d of %s", d, p)
	}
}

func TestHierarchicalPairs_UnitBoundsEqualConsecutive(t *testing.T) {
	for n := 0; n <= 20; n++ {
		for _, bidi := range []bool{false, true} {
			h, err := HierarchicalPairs(n, bidi, hierarchical(1, 1, false))
			require.NoError(t, err)
			c, err := ConsecutivePairs(n, bidi)
			require.NoError(t, err)
			assert.True(t, h.Equal(c), "n=%d bidi=%v", n, bidi)
		}
	}
}

func TestHierarchicalPairs_MidpointOnlyDensifies(t *testing.T) {
	for n := 2; n <= 40; n++ {
		for d := 1; d <= 20; d++ {
			plain, err := HierarchicalPairs(n, true, hierarchical(d, d, false))
			require.NoError(t, err)
			dense, err := MidpointPairs(n, true, hierarchical(d, d, false))
			require.NoError(t, err)
			assert.True(t, plain.IsSubsetOf(dense), "n=%d d=%d", n, d)
		}
	}
}

// min_dist that is not a power of two rounds up to the next level and the
// midpoint step is taken from that level.
func TestHierarchicalPairs_MidpointWithRoundedMinDist(t *testing.T) {
	got, err := MidpointPairs(8, false, hierarchical(3, 7, false))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 4}, {2, 6}}, got.Sorted())

	got, err = MidpointPairs(8, true, hierarchical(3, 7, false))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 4}, {2, 6}, {4, 0}, {6, 2}}, got.Sorted())

	got, err = HierarchicalPairs(8, false, hierarchical(3, 7, false))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 4}}, got.Sorted())
}

func TestHierarchicalPairs_MidpointLevelZero(t *testing.T) {
	// step at level 0 stays 1
	dense, err := MidpointPairs(6, true, hierarchical(1, 1, false))
	require.NoError(t, err)
	c, err := ConsecutivePairs(6, true)
	require.NoError(t, err)
	assert.True(t, dense.Equal(c))
}

func TestHierarchicalPairs_EmptyLevelRange(t *testing.T) {
	tests := []struct {
		name string
		opts HierarchicalOptions
	}{
		{"Max below one", hierarchical(1, 0, false)},
		{"Negative max", hierarchical(1, -5, true)},
		{"Min level above max level", hierarchical(3, 3, false)},
		{"Min above max", hierarchical(8, 4, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HierarchicalPairs(16, true, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 0, got.Len())
		})
	}
}

func TestHierarchicalPairs_Errors(t *testing.T) {
	_, err := HierarchicalPairs(8, true, hierarchical(0, 4, false))
	assert.ErrorIs(t, err, ErrInvalidMinDist)

	_, err = HierarchicalPairs(8, true, hierarchical(-2, 4, false))
	assert.ErrorIs(t, err, ErrInvalidMinDist)

	// min_dist is checked before the frame count
	_, err = HierarchicalPairs(-1, true, hierarchical(0, 4, false))
	assert.ErrorIs(t, err, ErrInvalidMinDist)

	_, err = HierarchicalPairs(-1, true, DefaultHierarchicalOptions())
	assert.ErrorIs(t, err, ErrNegativeFrameCount)

	_, err = ExhaustivePairs(-3, false)
	assert.ErrorIs(t, err, ErrNegativeFrameCount)

	_, err = ConsecutivePairs(-1, true)
	assert.ErrorIs(t, err, ErrNegativeFrameCount)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		minDist, maxDist int
		want             []int
	}{
		{1, 1, []int{0}},
		{1, 4, []int{0, 1, 2}},
		{1, 7, []int{0, 1, 2}},
		{2, 16, []int{1, 2, 3, 4}},
		{3, 7, []int{2}},
		{5, 16, []int{3, 4}},
		{3, 3, nil},
		{1, 0, nil},
		{0, 8, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levels(tt.minDist, tt.maxDist), "Levels(%d, %d)", tt.minDist, tt.maxDist)
	}
}

func TestGenerate_Dispatch(t *testing.T) {
	got, err := Generate(8, true, NewRequest(HierarchicalWithMidpoint, Params{ParamMinDist: 3}))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 4}, {2, 6}, {4, 0}, {6, 2}}, got.Sorted())

	got, err = Generate(8, false, NewRequest(Hierarchical, Params{ParamMinDist: 3, ParamIncludeMidPoint: true}))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 4}, {2, 6}}, got.Sorted())

	got, err = Generate(3, false, NewRequest(Exhaustive, nil))
	require.NoError(t, err)
	assert.Equal(t, []Pair{{0, 1}, {0, 2}, {1, 2}}, got.Sorted())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"Unknown mode", NewRequest(Mode(42), nil), ErrUnknownMode},
		{"Param on exhaustive", NewRequest(Exhaustive, Params{ParamMinDist: 1}), ErrUnknownParam},
		{"Param on consecutive", NewRequest(Consecutive, Params{ParamMaxDist: 2}), ErrUnknownParam},
		{"Unknown hierarchical key", NewRequest(Hierarchical, Params{"stride": 2}), ErrUnknownParam},
		{"Midpoint key on hierarchical2", NewRequest(HierarchicalWithMidpoint, Params{ParamIncludeMidPoint: false}), ErrUnknownParam},
		{"Zero min_dist", NewRequest(Hierarchical, Params{ParamMinDist: 0}), ErrInvalidMinDist},
		{"Fractional min_dist", NewRequest(Hierarchical, Params{ParamMinDist: 2.5}), ErrInvalidParam},
		{"Bool max_dist", NewRequest(Hierarchical, Params{ParamMaxDist: true}), ErrInvalidParam},
		{"Non-bool midpoint", NewRequest(Hierarchical, Params{ParamIncludeMidPoint: "often"}), ErrInvalidParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(8, true, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}
