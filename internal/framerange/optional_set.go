// Package framerange maps sampling indices to frame numbers and tracks which
// frames are active.
package framerange

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// MaxFrames bounds how many frames a parsed expression or a generated index
// space may hold.
const MaxFrames = 1 << 24

var (
	// ErrInvalidExpression is returned for a malformed frame list expression.
	ErrInvalidExpression = errors.New("invalid frame expression")
	// ErrTooManyFrames is returned when a set would exceed MaxFrames.
	ErrTooManyFrames = errors.New("too many frames")
)

// OptionalSet is a set of frame numbers that may be unset. The zero value is
// unset and means "every frame".
type OptionalSet struct {
	frames map[int]struct{}
}

// All returns an unset OptionalSet.
func All() OptionalSet {
	return OptionalSet{}
}

// NewOptionalSet returns a set holding exactly the given frames. With no
// arguments the result is set but empty.
func NewOptionalSet(frames ...int) OptionalSet {
	s := OptionalSet{frames: make(map[int]struct{}, len(frames))}
	for _, f := range frames {
		s.frames[f] = struct{}{}
	}
	return s
}

// ParseOptionalSet parses a comma separated list of frames and inclusive
// ranges, e.g. "0-10,15,20-29". An empty string, "all" or "*" is unset;
// "none" is the empty set.
func ParseOptionalSet(expr string) (OptionalSet, error) {
	expr = strings.TrimSpace(expr)
	switch strings.ToLower(expr) {
	case "", "all", "*":
		return All(), nil
	case "none":
		return NewOptionalSet(), nil
	}

	s := NewOptionalSet()
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return OptionalSet{}, fmt.Errorf("%q: empty element: %w", expr, ErrInvalidExpression)
		}
		lo, hi, err := parseSpan(part)
		if err != nil {
			return OptionalSet{}, fmt.Errorf("%q: %w", expr, err)
		}
		if hi-lo >= MaxFrames-len(s.frames) {
			return OptionalSet{}, fmt.Errorf("%q: more than %d frames: %w", expr, MaxFrames, ErrTooManyFrames)
		}
		for f := lo; f <= hi; f++ {
			s.frames[f] = struct{}{}
		}
	}
	return s, nil
}

func parseSpan(part string) (int, int, error) {
	loText, hiText, isRange := strings.Cut(part, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(loText))
	if err != nil || lo < 0 {
		return 0, 0, fmt.Errorf("%q: %w", part, ErrInvalidExpression)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hiText))
	if err != nil || hi < lo {
		return 0, 0, fmt.Errorf("%q: %w", part, ErrInvalidExpression)
	}
	return lo, hi, nil
}

// IsSet reports whether the set restricts anything.
func (s OptionalSet) IsSet() bool {
	return s.frames != nil
}

// Contains reports whether frame is in the set. Unset contains everything.
func (s OptionalSet) Contains(frame int) bool {
	if s.frames == nil {
		return true
	}
	_, ok := s.frames[frame]
	return ok
}

// Len returns the number of frames, or -1 when unset.
func (s OptionalSet) Len() int {
	if s.frames == nil {
		return -1
	}
	return len(s.frames)
}

// Intersection returns the frames in both sets. Unset acts as identity.
func (s OptionalSet) Intersection(other OptionalSet) OptionalSet {
	if !s.IsSet() {
		return other.clone()
	}
	if !other.IsSet() {
		return s.clone()
	}
	out := NewOptionalSet()
	for f := range s.frames {
		if other.Contains(f) {
			out.frames[f] = struct{}{}
		}
	}
	return out
}

// Sorted returns the frames in ascending order; nil when unset.
func (s OptionalSet) Sorted() []int {
	if s.frames == nil {
		return nil
	}
	out := make([]int, 0, len(s.frames))
	for f := range s.frames {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// Name renders the set compactly ("all", "none" or runs like "0-10,15").
func (s OptionalSet) Name() string {
	if !s.IsSet() {
		return "all"
	}
	if len(s.frames) == 0 {
		return "none"
	}
	return compactRuns(s.Sorted())
}

func (s OptionalSet) clone() OptionalSet {
	if s.frames == nil {
		return OptionalSet{}
	}
	out := NewOptionalSet()
	for f := range s.frames {
		out.frames[f] = struct{}{}
	}
	return out
}

// compactRuns joins sorted frames into "a-b" runs.
func compactRuns(sorted []int) string {
	var parts []string
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(sorted[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", sorted[i], sorted[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}
