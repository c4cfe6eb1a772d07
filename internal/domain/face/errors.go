package face

import "errors"

var (
	// ErrDimensionMismatch means two descriptors of unequal length were
	// compared. Fatal to that comparison, never retried.
	ErrDimensionMismatch = errors.New("face descriptors have mismatched dimensions")

	// ErrNotEnrolled means the user has no stored enrollment descriptor.
	ErrNotEnrolled = errors.New("no face enrollment found for user")
)
