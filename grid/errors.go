package grid

import "errors"

// Sentinel errors returned by the gridding components. Callers should test
// with errors.Is since most are wrapped with additional context.
var (
	// ErrEmptyInput is returned when an operation that requires at least one
	// point receives zero-length coordinate or value sequences.
	ErrEmptyInput = errors.New("empty input")

	// ErrDimensionMismatch is returned when parallel coordinate/value
	// sequences disagree in length, or when array shapes inside a Grid do
	// not match its coordinate arrays.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSingularSystem is returned when a spline fit cannot be solved
	// because the collocation system is singular or too ill-conditioned.
	// Adding damping is the usual remedy.
	ErrSingularSystem = errors.New("singular or ill-conditioned system")

	// ErrInvalidSpacing is returned for non-positive spacing, or spacing
	// larger than the region extent on the corresponding axis.
	ErrInvalidSpacing = errors.New("invalid spacing")
)
