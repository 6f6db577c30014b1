package visual

import "errors"

var (
	// ErrStale indicates a write from a generation that has been superseded.
	// The write is dropped.
	ErrStale = errors.New("visual: stale generation")

	// ErrHighlightRange indicates a highlight pointing outside the published values.
	ErrHighlightRange = errors.New("visual: highlight index out of range")
)
