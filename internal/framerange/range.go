package framerange

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNegativeFrameCount is returned by New for numFrames < 0.
	ErrNegativeFrameCount = errors.New("frame count cannot be negative")
	// ErrInvalidFrame is returned for negative or duplicate frame numbers.
	ErrInvalidFrame = errors.New("invalid frame number")
)

// Range is an ordered index space of frame numbers with an active subset.
// Index i maps to the i-th smallest frame number. Range is immutable.
type Range struct {
	indexToFrame []int
	active       OptionalSet // restricted to the index space, never unset
}

// New returns a range over frames 0..numFrames-1 whose active set is the
// given set restricted to that space.
func New(numFrames int, active OptionalSet) (*Range, error) {
	if numFrames < 0 {
		return nil, fmt.Errorf("num_frames=%d: %w", numFrames, ErrNegativeFrameCount)
	}
	if numFrames > MaxFrames {
		return nil, fmt.Errorf("num_frames=%d: more than %d frames: %w", numFrames, MaxFrames, ErrTooManyFrames)
	}
	frames := make([]int, numFrames)
	for i := range frames {
		frames[i] = i
	}
	return build(frames, active), nil
}

// NewFromFrames returns a range over the given frame numbers, which need not
// be contiguous or sorted.
func NewFromFrames(frames []int, active OptionalSet) (*Range, error) {
	sorted := make([]int, len(frames))
	copy(sorted, frames)
	sort.Ints(sorted)
	for i, f := range sorted {
		if f < 0 {
			return nil, fmt.Errorf("frame %d: %w", f, ErrInvalidFrame)
		}
		if i > 0 && sorted[i-1] == f {
			return nil, fmt.Errorf("duplicate frame %d: %w", f, ErrInvalidFrame)
		}
	}
	return build(sorted, active), nil
}

func build(sorted []int, active OptionalSet) *Range {
	r := &Range{
		indexToFrame: sorted,
		active:       NewOptionalSet(),
	}
	for _, f := range sorted {
		if active.Contains(f) {
			r.active.frames[f] = struct{}{}
		}
	}
	return r
}

// Len returns the size of the index space.
func (r *Range) Len() int {
	return len(r.indexToFrame)
}

// IndexToFrame returns the frame number at index i. It panics when i is
// outside [0, Len()).
func (r *Range) IndexToFrame(i int) int {
	return r.indexToFrame[i]
}

// Contains reports whether frame is active.
func (r *Range) Contains(frame int) bool {
	return r.active.Contains(frame)
}

// Frames returns the active frames in ascending order.
func (r *Range) Frames() []int {
	return r.active.Sorted()
}

// Intersection returns a range over the same index space whose active set
// is restricted to other.
func (r *Range) Intersection(other OptionalSet) *Range {
	return build(r.indexToFrame, r.active.Intersection(other))
}

// Excluded returns the frames active in r but not in other, ascending.
func (r *Range) Excluded(other *Range) []int {
	var out []int
	for _, f := range r.Frames() {
		if !other.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

// Name renders the active set compactly.
func (r *Range) Name() string {
	return r.active.Name()
}
