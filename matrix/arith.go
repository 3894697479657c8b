package matrix

import (
	"math"
	"sync"

	"github.com/YuminosukeSato/ctm/core/parallel"
	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// reader is the unchecked read surface shared by *Matrix and View inside
// kernels. Callers validate shape and liveness first.
type reader[T Number] interface {
	Dims() (rows, cols int)
	at(i, j int) T
}

// forColumns runs fn over [0, cols) column ranges, splitting across workers
// when the element count exceeds the configured threshold.
func forColumns(cols, elements int, fn func(start, end int)) {
	workers := parallel.ParallelizeWithThreshold(cols, elements, CurrentConfig().ParallelThreshold, fn)
	if workers > 1 {
		logger().Debug("parallel kernel", log.WorkersKey, workers, log.ColsKey, cols)
	}
}

func shapeMismatch(op string, ar, ac, br, bc int) error {
	err := errors.NewShapeMismatchError(op, ar, ac, br, bc)
	logger().Debug("shape mismatch", err,
		log.OperationKey, op,
		log.RowsKey, ar,
		log.ColsKey, ac,
		log.OtherRowsKey, br,
		log.OtherColsKey, bc,
		log.ErrorCodeKey, log.ErrorShapeMismatch,
	)
	return err
}

func orEmpty[T Number](m *Matrix[T]) *Matrix[T] {
	if m == nil {
		return &Matrix[T]{}
	}
	return m
}

// elementwise combines two matrices of identical shape. On mismatch it
// returns an empty matrix and a ShapeMismatchError.
func elementwise[T Number](op string, a, b *Matrix[T], fn func(x, y T) T) (*Matrix[T], error) {
	a, b = orEmpty(a), orEmpty(b)
	if a.rows != b.rows || a.cols != b.cols {
		return &Matrix[T]{}, shapeMismatch(op, a.rows, a.cols, b.rows, b.cols)
	}
	out := make([]T, len(a.elements))
	rows := a.rows
	forColumns(a.cols, len(out), func(start, end int) {
		for k := start * rows; k < end*rows; k++ {
			out[k] = fn(a.elements[k], b.elements[k])
		}
	})
	m := &Matrix[T]{}
	m.install(out, a.rows, a.cols)
	return m, nil
}

// Add returns a + b element-wise. Shapes must match exactly.
func Add[T Number](a, b *Matrix[T]) (*Matrix[T], error) {
	return elementwise("Add", a, b, func(x, y T) T { return x + y })
}

// Sub returns a - b element-wise. Shapes must match exactly.
func Sub[T Number](a, b *Matrix[T]) (*Matrix[T], error) {
	return elementwise("Sub", a, b, func(x, y T) T { return x - y })
}

// combineView combines m with a view of the same logical shape.
func combineView[T Number](op string, m *Matrix[T], v View[T], fn func(x, y T) T) (*Matrix[T], error) {
	m = orEmpty(m)
	if err := v.check(op); err != nil {
		return &Matrix[T]{}, err
	}
	if m.rows != v.rows || m.cols != v.cols {
		return &Matrix[T]{}, shapeMismatch(op, m.rows, m.cols, v.rows, v.cols)
	}
	out := make([]T, len(m.elements))
	rows := m.rows
	forColumns(m.cols, len(out), func(start, end int) {
		for j := start; j < end; j++ {
			for i := 0; i < rows; i++ {
				out[j*rows+i] = fn(m.elements[m.columns[j]+i], v.at(i, j))
			}
		}
	})
	r := &Matrix[T]{}
	r.install(out, m.rows, m.cols)
	return r, nil
}

// AddView returns m + v element-wise, e.g. A + Bᵀ via AddView(a, b.T()),
// without materializing the view.
func AddView[T Number](m *Matrix[T], v View[T]) (*Matrix[T], error) {
	return combineView("AddView", m, v, func(x, y T) T { return x + y })
}

// SubView returns m - v element-wise.
func SubView[T Number](m *Matrix[T], v View[T]) (*Matrix[T], error) {
	return combineView("SubView", m, v, func(x, y T) T { return x - y })
}

// product computes a·b for any two readers. a's column count must equal
// b's row count.
func product[T Number](op string, a, b reader[T]) (*Matrix[T], error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		err := errors.NewDimensionError(op, ac, br, 0)
		logger().Debug("inner dimension mismatch", err,
			log.OperationKey, log.OperationMul,
			log.ErrorCodeKey, log.ErrorDimension,
		)
		return nil, err
	}
	out := make([]T, ar*bc)
	forColumns(bc, ar*bc*max(ac, 1), func(start, end int) {
		for j := start; j < end; j++ {
			for k := 0; k < ac; k++ {
				bkj := b.at(k, j)
				for i := 0; i < ar; i++ {
					out[j*ar+i] += a.at(i, k) * bkj
				}
			}
		}
	})
	m := &Matrix[T]{}
	m.install(out, ar, bc)
	return m, nil
}

// Mul returns the matrix product a·b. a.Cols() must equal b.Rows(),
// otherwise a DimensionError is returned.
func Mul[T Number](a, b *Matrix[T]) (*Matrix[T], error) {
	return product[T]("Mul", orEmpty(a), orEmpty(b))
}

// MulView returns the matrix product m·v, e.g. A·Aᵀ via MulView(a, a.T()).
func MulView[T Number](m *Matrix[T], v View[T]) (*Matrix[T], error) {
	if err := v.check("MulView"); err != nil {
		return nil, err
	}
	return product[T]("MulView", orEmpty(m), v)
}

// nonFinite collects replaced elements across workers and keeps the first
// one in column-major order.
type nonFinite struct {
	mu    sync.Mutex
	count int
	first int
	value float64
}

func (n *nonFinite) record(k int, value float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.count == 0 || k < n.first {
		n.first, n.value = k, value
	}
	n.count++
}

// scalarOp applies fn to every element. fn reports the raw result and
// whether it is usable; unusable results become zero. When any element was
// replaced the result comes with a *errors.NonFiniteResultError describing
// the first one, and the same value is emitted through errors.Warn.
func scalarOp[T Number](op string, m *Matrix[T], fn func(x T) (T, float64, bool)) (*Matrix[T], error) {
	m = orEmpty(m)
	out := make([]T, len(m.elements))
	rows := m.rows
	var bad nonFinite
	forColumns(m.cols, len(out), func(start, end int) {
		for k := start * rows; k < end*rows; k++ {
			v, raw, ok := fn(m.elements[k])
			if !ok {
				bad.record(k, raw)
				continue
			}
			out[k] = v
		}
	})
	r := &Matrix[T]{}
	r.install(out, m.rows, m.cols)

	if bad.count == 0 {
		return r, nil
	}
	diag := errors.NewNonFiniteResultError(op, bad.first%rows, bad.first/rows, bad.value)
	diag.Count = bad.count
	errors.Warn(diag)
	return r, diag
}

// finite wraps a plain scalar kernel with the non-finite check. Integer
// kinds are always finite.
func finite[T Number](fn func(x T) T) func(x T) (T, float64, bool) {
	if !isFloatKind[T]() {
		return func(x T) (T, float64, bool) { return fn(x), 0, true }
	}
	return func(x T) (T, float64, bool) {
		v := fn(x)
		f := float64(v)
		return v, f, errors.IsFinite(f)
	}
}

// AddScalar returns s + m[i, j] for every element. The error is nil or a
// *errors.NonFiniteResultError; the matrix is usable either way.
func AddScalar[T Number](s T, m *Matrix[T]) (*Matrix[T], error) {
	return scalarOp("AddScalar", m, finite(func(x T) T { return s + x }))
}

// SubScalar returns s - m[i, j] for every element.
func SubScalar[T Number](s T, m *Matrix[T]) (*Matrix[T], error) {
	return scalarOp("SubScalar", m, finite(func(x T) T { return s - x }))
}

// MulScalar returns s * m[i, j] for every element.
func MulScalar[T Number](s T, m *Matrix[T]) (*Matrix[T], error) {
	return scalarOp("MulScalar", m, finite(func(x T) T { return s * x }))
}

// DivScalar returns s / m[i, j] for every element. A zero divisor (or, for
// float kinds, one within Config.DivisionEpsilon of zero) and any non-finite
// quotient yield zero, reported by the returned *errors.NonFiniteResultError.
func DivScalar[T Number](s T, m *Matrix[T]) (*Matrix[T], error) {
	if !isFloatKind[T]() {
		return scalarOp("DivScalar", m, func(x T) (T, float64, bool) {
			if x == 0 {
				return 0, math.NaN(), false
			}
			return s / x, 0, true
		})
	}
	eps := CurrentConfig().DivisionEpsilon
	return scalarOp("DivScalar", m, func(x T) (T, float64, bool) {
		if _, ok := errors.SafeDivide(float64(s), float64(x), eps); !ok {
			return 0, float64(s) / float64(x), false
		}
		v := s / x
		f := float64(v)
		return v, f, errors.IsFinite(f)
	})
}

// Equal reports whether a and b have the same shape and equal elements.
// Shape mismatch is false, not an error. nil compares like an empty matrix.
func Equal[T Number](a, b *Matrix[T]) bool {
	a, b = orEmpty(a), orEmpty(b)
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	for k, x := range a.elements {
		if x != b.elements[k] {
			return false
		}
	}
	return true
}
