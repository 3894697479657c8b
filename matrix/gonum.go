package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/ctm/pkg/errors"
)

// ToDense copies m into a row-major gonum Dense. gonum cannot represent an
// empty matrix, so an empty m yields ErrEmptyMatrix.
func ToDense[T Number](m *Matrix[T]) (*mat.Dense, error) {
	m = orEmpty(m)
	if m.IsEmpty() {
		return nil, errors.Wrap(errors.ErrEmptyMatrix, "ToDense")
	}
	data := make([]float64, m.rows*m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			data[i*m.cols+j] = float64(m.at(i, j))
		}
	}
	return mat.NewDense(m.rows, m.cols, data), nil
}

// FromGonum copies any gonum matrix into a new column-major Matrix.
// gonum signals bad access by panicking; such a panic is returned as an
// *errors.PanicError.
func FromGonum(a mat.Matrix) (m *Matrix[float64], err error) {
	defer errors.Recover(&err, "FromGonum")
	r, c := a.Dims()
	elements := make([]float64, r*c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			elements[j*r+i] = a.At(i, j)
		}
	}
	m = &Matrix[float64]{}
	m.install(elements, r, c)
	return m, nil
}

// CheckFinite returns a NonFiniteResultError for the first NaN or Inf in r,
// scanning column by column.
func CheckFinite(r Reader[float64]) error {
	rows, cols := r.Dims()
	return errors.CheckMatrix("CheckFinite", r, rows, cols)
}

// gonumView exposes a float64 Matrix or View to gonum without copying.
// Like gonum's own types it panics on out-of-range access; a view that
// goes stale after wrapping panics with the StaleViewError.
type gonumView struct {
	src  reader[float64]
	view *View[float64]
}

func (g gonumView) Dims() (r, c int) { return g.src.Dims() }

func (g gonumView) At(i, j int) float64 {
	if g.view != nil {
		if err := g.view.check("gonum.At"); err != nil {
			panic(err)
		}
	}
	r, c := g.src.Dims()
	if i < 0 || i >= r {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= c {
		panic(mat.ErrColAccess)
	}
	return g.src.at(i, j)
}

func (g gonumView) T() mat.Matrix { return mat.Transpose{Matrix: g} }

// AsGonum returns a zero-copy mat.Matrix over m.
func AsGonum(m *Matrix[float64]) mat.Matrix {
	return gonumView{src: orEmpty(m)}
}

// ViewAsGonum returns a zero-copy mat.Matrix over v. Degenerate and stale
// views are rejected up front.
func ViewAsGonum(v View[float64]) (mat.Matrix, error) {
	if err := v.check("ViewAsGonum"); err != nil {
		return nil, err
	}
	return gonumView{src: v, view: &v}, nil
}

// EqualApprox reports whether a and b have the same shape and all elements
// within tol of each other (absolute or relative, as gonum/floats defines it).
func EqualApprox(a, b *Matrix[float64], tol float64) bool {
	a, b = orEmpty(a), orEmpty(b)
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	return floats.EqualApprox(a.elements, b.elements, tol)
}
