package kdtree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBuilt is returned when the index is queried before any points were set.
	ErrNotBuilt = errors.New("kdtree: index queried before points were set")

	// ErrIndexOutOfRange is returned by At for positions outside [0, Size()).
	ErrIndexOutOfRange = errors.New("kdtree: index out of range")

	// ErrNegativeRadius is returned when a ball query is given a radius below zero.
	ErrNegativeRadius = errors.New("kdtree: radius must be >= 0")

	// ErrInvalidRadius is returned when a ball query is given a NaN radius.
	ErrInvalidRadius = errors.New("kdtree: radius must not be NaN")

	// ErrInvalidK is returned when a nearest-neighbor query asks for a negative count.
	ErrInvalidK = errors.New("kdtree: number of points must be >= 0")

	// ErrInvalidTarget is returned when a target point has a NaN coordinate.
	ErrInvalidTarget = errors.New("kdtree: target coordinates must not be NaN")

	// ErrInconsistentDimensions is returned when input points disagree on their
	// number of coordinates.
	ErrInconsistentDimensions = errors.New("kdtree: inconsistent point dimensions")

	// ErrInvalidDimension is returned for non-empty point sets whose points
	// have no coordinates.
	ErrInvalidDimension = errors.New("kdtree: points must have at least one coordinate")

	// ErrEmptyIndex is returned by Value when the index holds no points.
	ErrEmptyIndex = errors.New("kdtree: index holds no points")
)

// ErrDimensionMismatch indicates that a point set or target does not have the
// dimensionality the index was configured with.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("kdtree: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}
