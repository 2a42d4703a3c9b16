package bladecost

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the cost engine. Both are fatal to the evaluation that
// produced them; callers match with errors.Is.
var (
	// ErrInvalidInput is returned when a structural precondition is violated: a negative
	// quantity, an out-of-range fraction, a non-positive divisor or an empty aggregation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrArithmeticOverflow is returned when a derived value leaves the float64 range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

func checkFinite(name string, value float64) error {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("%s: %w", name, ErrArithmeticOverflow)
	}
	return nil
}
