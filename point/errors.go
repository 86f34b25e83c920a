package point

import (
	"errors"
	"fmt"
)

// ErrEmptyTrajectory is returned when a trajectory operation requires at
// least one point.
var ErrEmptyTrajectory = errors.New("trajectory has no points")

// ErrDimensionMismatch indicates an operand whose coordinate count does not
// match the expected dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrDomainMismatch indicates operands from different coordinate domains.
type ErrDomainMismatch struct {
	A Domain
	B Domain
}

func (e *ErrDomainMismatch) Error() string {
	return fmt.Sprintf("domain mismatch: %s vs %s", e.A, e.B)
}

// ErrTimestampOrder indicates a point sequence whose timestamps regress.
type ErrTimestampOrder struct {
	Index int
}

func (e *ErrTimestampOrder) Error() string {
	return fmt.Sprintf("timestamps not non-decreasing at point %d", e.Index)
}
