package sampling

import "errors"

// Sentinel errors. Callers branch on them with errors.Is; call sites wrap
// them with the offending values.
var (
	// ErrUnknownMode is returned for a mode name or value outside the closed set.
	ErrUnknownMode = errors.New("unknown sampling mode")

	// ErrUnknownParam is returned when a request carries a key its mode does not recognize.
	ErrUnknownParam = errors.New("unknown sampling parameter")

	// ErrInvalidParam is returned when a parameter value has the wrong type or is not integral.
	ErrInvalidParam = errors.New("invalid sampling parameter")

	// ErrInvalidMinDist is returned when min_dist is below 1.
	ErrInvalidMinDist = errors.New("min_dist must be at least 1")

	// ErrNegativeFrameCount is returned when a generator is asked for fewer than zero frames.
	ErrNegativeFrameCount = errors.New("frame count cannot be negative")

	// ErrNilFrameRange is returned when Sample is called without a frame range.
	ErrNilFrameRange = errors.New("frame range is nil")
)
