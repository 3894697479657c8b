package errors

import (
	"math"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckScalar returns a NonFiniteResultError when value is NaN or Inf.
func CheckScalar(operation string, value float64) error {
	if !IsFinite(value) {
		return NewNonFiniteResultError(operation, 0, 0, value)
	}
	return nil
}

// FloatReader is the read surface CheckMatrix needs.
type FloatReader interface {
	At(i, j int) (float64, error)
}

// CheckMatrix checks all values in a matrix for non-finite entries and
// reports the first one found in column-major order.
func CheckMatrix(operation string, matrix FloatReader, rows, cols int) error {
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			v, err := matrix.At(i, j)
			if err != nil {
				return err
			}
			if !IsFinite(v) {
				return NewNonFiniteResultError(operation, i, j, v)
			}
		}
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 and false if the denominator's magnitude is not above eps or the
// quotient is not finite.
func SafeDivide(numerator, denominator, eps float64) (float64, bool) {
	if math.Abs(denominator) <= eps {
		return 0, false
	}
	q := numerator / denominator
	if !IsFinite(q) {
		return 0, false
	}
	return q, true
}
