package geom

import (
	"fmt"
	"time"

	"github.com/sandialabs/tracktable-sub003/point"
)

// ErrInvalidTimestampOrder indicates a non-positive duration in a
// time-ordering-sensitive computation such as SpeedBetween.
type ErrInvalidTimestampOrder struct {
	Earlier time.Time
	Later   time.Time
}

func (e *ErrInvalidTimestampOrder) Error() string {
	return fmt.Sprintf("invalid timestamp order: %s is not after %s",
		e.Later.Format(time.RFC3339), e.Earlier.Format(time.RFC3339))
}

// ErrUnsupportedDomain indicates an operation that has no meaning in the
// operand's coordinate domain (e.g. bearing on Euclidean points).
type ErrUnsupportedDomain struct {
	Op     string
	Domain point.Domain
}

func (e *ErrUnsupportedDomain) Error() string {
	return fmt.Sprintf("%s is not defined for domain %s", e.Op, e.Domain)
}
