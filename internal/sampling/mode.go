// Package sampling selects sparse, deterministic sets of frame pairs for
// correspondence evaluation.
package sampling

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Mode is a pairing strategy. The set of modes is closed.
type Mode int

const (
	// Exhaustive pairs every frame with every other frame.
	Exhaustive Mode = iota
	// Consecutive pairs every frame with its immediate neighbours.
	Consecutive
	// Hierarchical pairs frames at dyadic distances 2^level.
	Hierarchical
	// HierarchicalWithMidpoint is Hierarchical with halved start spacing.
	HierarchicalWithMidpoint
)

// modeTable maps canonical names to modes in declaration order.
var modeTable = func() *orderedmap.OrderedMap[string, Mode] {
	m := orderedmap.NewOrderedMap[string, Mode]()
	m.Set("exhaustive", Exhaustive)
	m.Set("consecutive", Consecutive)
	m.Set("hierarchical", Hierarchical)
	m.Set("hierarchical2", HierarchicalWithMidpoint)
	return m
}()

// modeAliases are accepted by ParseMode but never listed.
var modeAliases = map[string]Mode{
	"exhausted":                  Exhaustive,
	"hierarchical_with_midpoint": HierarchicalWithMidpoint,
}

// modeParams lists the parameter keys each mode recognizes.
var modeParams = map[Mode][]string{
	Exhaustive:               nil,
	Consecutive:              nil,
	Hierarchical:             {ParamMinDist, ParamMaxDist, ParamIncludeMidPoint},
	HierarchicalWithMidpoint: {ParamMinDist, ParamMaxDist},
}

// ModeNames returns the canonical mode names in declaration order.
func ModeNames() []string {
	return modeTable.Keys()
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, 0, modeTable.Len())
	for el := modeTable.Front(); el != nil; el = el.Next() {
		modes = append(modes, el.Value)
	}
	return modes
}

// ParseMode looks up a mode by name, ignoring case and surrounding spaces.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if mode, ok := modeTable.Get(key); ok {
		return mode, nil
	}
	if mode, ok := modeAliases[key]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("%q (valid: %s): %w", name, strings.Join(ModeNames(), ", "), ErrUnknownMode)
}

// String returns the canonical name of the mode.
func (m Mode) String() string {
	for el := modeTable.Front(); el != nil; el = el.Next() {
		if el.Value == m {
			return el.Key
		}
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := modeParams[m]
	return ok
}

// ParamKeys returns the parameter keys recognized by the mode.
func (m Mode) ParamKeys() []string {
	keys := modeParams[m]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
