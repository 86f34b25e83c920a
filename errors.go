package tracktable

import (
	"errors"
	"fmt"

	"github.com/sandialabs/tracktable-sub003/dgeom"
	"github.com/sandialabs/tracktable-sub003/median"
	"github.com/sandialabs/tracktable-sub003/point"
	"github.com/sandialabs/tracktable-sub003/rtree"
)

var (
	// ErrEmptyInput is returned when an operation that requires at least
	// one element receives none.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidSampleCount indicates an out-of-range sampling parameter.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidSampleCount struct {
	Count int
	cause error
}

func (e *ErrInvalidSampleCount) Error() string {
	return fmt.Sprintf("invalid sample count: %d", e.Count)
}

func (e *ErrInvalidSampleCount) Unwrap() error { return e.cause }

// translateError normalizes subpackage error kinds onto the root taxonomy
// so callers can distinguish them without importing every subpackage.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Empty-input unification.
	if errors.Is(err, median.ErrEmptyInput) ||
		errors.Is(err, rtree.ErrEmptyIndex) ||
		errors.Is(err, point.ErrEmptyTrajectory) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, rtree.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	// Dimension and argument normalization.
	var pdm *point.ErrDimensionMismatch
	if errors.As(err, &pdm) {
		return &ErrDimensionMismatch{Expected: pdm.Expected, Actual: pdm.Actual, cause: err}
	}
	var rdm *rtree.ErrDimensionMismatch
	if errors.As(err, &rdm) {
		return &ErrDimensionMismatch{Expected: rdm.Expected, Actual: rdm.Actual, cause: err}
	}
	var sc *dgeom.ErrInvalidSampleCount
	if errors.As(err, &sc) {
		return &ErrInvalidSampleCount{Count: sc.Count, cause: err}
	}

	// Remaining kinds (assemble.ErrMalformedPoint, geom.ErrInvalidTimestampOrder,
	// geom.ErrUnsupportedDomain) are already distinguishable and pass through.
	return err
}
