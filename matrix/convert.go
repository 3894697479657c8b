package matrix

import (
	"math/big"

	"github.com/YuminosukeSato/ctm/pkg/errors"
)

// Convert returns a matrix of the same shape with every element converted
// with Go's numeric conversion U(x). When any element changes value
// (truncated fraction, overflow, lost precision) a ConversionWarning is emitted.
func Convert[T, U Number](m *Matrix[T]) *Matrix[U] {
	m = orEmpty(m)
	out := make([]U, len(m.elements))
	lossy := 0
	for k, x := range m.elements {
		u := U(x)
		if changed(x, u) {
			lossy++
		}
		out[k] = u
	}
	r := &Matrix[U]{}
	r.install(out, m.rows, m.cols)

	if lossy > 0 {
		errors.Warn(errors.NewConversionWarning(typeName[T](), typeName[U](), lossy))
	}
	return r
}

// changed reports whether converting x to u lost information: the sign
// flipped or the value does not survive the round trip back to T. NaN maps to
// NaN and counts as kept.
func changed[T, U Number](x T, u U) bool {
	if x != x && u != u {
		return false
	}
	if (x < 0) != (u < 0) {
		return true
	}
	if isFloatKind[U]() && !isFloatKind[T]() {
		// T(u) is implementation-defined once rounding carries u past T's range
		return exactInt(x).Cmp(big.NewFloat(float64(u))) != 0
	}
	return T(u) != x
}

func exactInt[T Number](x T) *big.Float {
	if x < 0 {
		return new(big.Float).SetInt64(int64(x))
	}
	return new(big.Float).SetUint64(uint64(x))
}

// ToFloat64 converts m to float64 elements.
func ToFloat64[T Number](m *Matrix[T]) *Matrix[float64] { return Convert[T, float64](m) }

// ToInt converts m to int elements, truncating toward zero.
func ToInt[T Number](m *Matrix[T]) *Matrix[int] { return Convert[T, int](m) }

// ToInt64 converts m to int64 elements, truncating toward zero.
func ToInt64[T Number](m *Matrix[T]) *Matrix[int64] { return Convert[T, int64](m) }
