package sampling

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Parameter keys recognized by the hierarchical modes.
const (
	ParamMinDist         = "min_dist"
	ParamMaxDist         = "max_dist"
	ParamIncludeMidPoint = "include_mid_point"
)

// Params holds named, optional, mode-specific values as decoded from YAML or
// CLI flags. Values are numbers or booleans.
type Params map[string]interface{}

// Request pairs a mode with its parameters. Construction does not validate;
// the parameters are resolved when the generator runs.
type Request struct {
	Mode   Mode
	Params Params
}

// NewRequest returns a request for mode with the given parameters.
func NewRequest(mode Mode, params Params) Request {
	return Request{Mode: mode, Params: params}
}

// String renders the request as mode(key=value,...) with sorted keys.
func (r Request) String() string {
	if len(r.Params) == 0 {
		return r.Mode.String()
	}
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r.Params[k]))
	}
	return fmt.Sprintf("%s(%s)", r.Mode, strings.Join(parts, ","))
}

// HierarchicalOptions configures the dyadic scan. MaxDist nil means
// numFrames-1.
type HierarchicalOptions struct {
	MinDist         int
	MaxDist         *int
	IncludeMidPoint bool
}

// DefaultHierarchicalOptions returns MinDist 1, MaxDist unset, no midpoints.
func DefaultHierarchicalOptions() HierarchicalOptions {
	return HierarchicalOptions{MinDist: 1}
}

// WithMaxDist returns a copy of o with MaxDist set to d.
func (o HierarchicalOptions) WithMaxDist(d int) HierarchicalOptions {
	o.MaxDist = &d
	return o
}

// Validate checks the parameter keys against the mode without generating.
func (r Request) Validate() error {
	if !r.Mode.Valid() {
		return fmt.Errorf("mode %d: %w", int(r.Mode), ErrUnknownMode)
	}
	if r.Mode == Hierarchical || r.Mode == HierarchicalWithMidpoint {
		_, err := r.hierarchicalOptions()
		return err
	}
	return r.checkKeys()
}

func (r Request) checkKeys() error {
	allowed := modeParams[r.Mode]
	for key := range r.Params {
		if !containsString(allowed, key) {
			return fmt.Errorf("%s: %q: %w", r.Mode, key, ErrUnknownParam)
		}
	}
	return nil
}

// hierarchicalOptions resolves the params of a hierarchical request.
func (r Request) hierarchicalOptions() (HierarchicalOptions, error) {
	if err := r.checkKeys(); err != nil {
		return HierarchicalOptions{}, err
	}

	opts := DefaultHierarchicalOptions()
	if v, ok := r.Params[ParamMinDist]; ok {
		d, err := toInt(v)
		if err != nil {
			return opts, fmt.Errorf("%s: %s: %w", r.Mode, ParamMinDist, err)
		}
		opts.MinDist = d
	}
	if v, ok := r.Params[ParamMaxDist]; ok && v != nil {
		d, err := toInt(v)
		if err != nil {
			return opts, fmt.Errorf("%s: %s: %w", r.Mode, ParamMaxDist, err)
		}
		opts = opts.WithMaxDist(d)
	}
	if v, ok := r.Params[ParamIncludeMidPoint]; ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return opts, fmt.Errorf("%s: %s=%v: %w", r.Mode, ParamIncludeMidPoint, v, ErrInvalidParam)
		}
		opts.IncludeMidPoint = b
	}
	if r.Mode == HierarchicalWithMidpoint {
		opts.IncludeMidPoint = true
	}

	if opts.MinDist < 1 {
		return opts, fmt.Errorf("%s: min_dist=%d: %w", r.Mode, opts.MinDist, ErrInvalidMinDist)
	}
	return opts, nil
}

// toInt accepts integral numbers and numeric strings.
func toInt(v interface{}) (int, error) {
	switch f := v.(type) {
	case float64:
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not an integer: %w", v, ErrInvalidParam)
		}
	case float32:
		if float64(f) != math.Trunc(float64(f)) {
			return 0, fmt.Errorf("%v is not an integer: %w", v, ErrInvalidParam)
		}
	case bool:
		return 0, fmt.Errorf("%v is not an integer: %w", v, ErrInvalidParam)
	case string:
		// decimal only; cast would read "010" as octal
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return 0, fmt.Errorf("%q: %w", f, ErrInvalidParam)
		}
		return n, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", v, ErrInvalidParam)
	}
	return n, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
