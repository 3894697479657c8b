package matrix

import (
	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// Orientation tells a View how to read the column-table entries it spans.
type Orientation int

const (
	// Column views read each spanned column-table entry as one column.
	Column Orientation = iota
	// Row views read each spanned column-table entry as one row (a transpose).
	Row
)

// String returns "column" or "row".
func (o Orientation) String() string {
	if o == Row {
		return "row"
	}
	return "column"
}

// View is a read-only, non-owning window over a contiguous range of a
// matrix's column table.
//
// The zero View is the degenerate view: no source, 0x0, Column orientation.
// Views are small values; copy them freely. A View never extends the life of
// its source and never writes through it.
type View[T Number] struct {
	src         *Matrix[T]
	start       int
	rows, cols  int
	orientation Orientation
	generation  uint64
}

// NewView cuts a view over src's column table entries [begin, end).
//
// The span end-begin must equal cols for a Column view and rows for a Row
// view, and the other extent must fit in src's column height. When it does
// not, NewView returns the degenerate view together with a
// *errors.MalformedViewError and emits the same value through errors.Warn.
// The degenerate view is a usable value: Begin() == End(), every read fails.
func NewView[T Number](src *Matrix[T], begin, end, rows, cols int, o Orientation) (View[T], error) {
	span := end - begin
	if ok := viewFits(src, begin, end, rows, cols, o); !ok {
		diag := errors.NewMalformedViewError(span, rows, cols, o.String())
		errors.Warn(diag)
		return View[T]{}, diag
	}
	return View[T]{
		src:         src,
		start:       begin,
		rows:        rows,
		cols:        cols,
		orientation: o,
		generation:  src.generation,
	}, nil
}

func viewFits[T Number](src *Matrix[T], begin, end, rows, cols int, o Orientation) bool {
	if src == nil || rows <= 0 || cols <= 0 {
		return false
	}
	if begin < 0 || end < begin || end > len(src.columns) {
		return false
	}
	span, height := cols, rows
	if o == Row {
		span, height = rows, cols
	}
	return end-begin == span && height <= src.rows
}

// T returns the transpose of m as a Row view: rows and cols swap, nothing is
// copied. The view is valid until m's storage is replaced or released.
func (m *Matrix[T]) T() View[T] {
	if m.IsEmpty() {
		return View[T]{}
	}
	return View[T]{
		src:         m,
		start:       0,
		rows:        m.cols,
		cols:        m.rows,
		orientation: Row,
		generation:  m.generation,
	}
}

// ColumnRange returns a Column view over columns c0..c1 inclusive, shaped
// rows x (c1-c0+1). Indices outside the matrix are a BoundsError.
func (m *Matrix[T]) ColumnRange(c0, c1 int) (View[T], error) {
	if c0 < 0 || c0 >= m.cols {
		return View[T]{}, errors.NewBoundsError("ColumnRange", 0, c0, m.rows, m.cols)
	}
	if c1 < c0 || c1 >= m.cols {
		return View[T]{}, errors.NewBoundsError("ColumnRange", 0, c1, m.rows, m.cols)
	}
	return View[T]{
		src:         m,
		start:       c0,
		rows:        m.rows,
		cols:        c1 - c0 + 1,
		orientation: Column,
		generation:  m.generation,
	}, nil
}

// Begin is the index of the first spanned column-table entry.
func (v View[T]) Begin() int { return v.start }

// End is Begin plus the span: cols for Column views, rows for Row views.
func (v View[T]) End() int { return v.start + v.Span() }

// Span is the number of column-table entries the view covers.
func (v View[T]) Span() int {
	if v.orientation == Row {
		return v.rows
	}
	return v.cols
}

// Rows is the logical row count.
func (v View[T]) Rows() int { return v.rows }

// Cols is the logical column count.
func (v View[T]) Cols() int { return v.cols }

// Dims returns the logical shape.
func (v View[T]) Dims() (rows, cols int) { return v.rows, v.cols }

// Orientation reports whether spanned entries are read as columns or rows.
func (v View[T]) Orientation() Orientation { return v.orientation }

// IsDegenerate reports whether v is the zero View returned for invalid
// arguments. Every read through it fails.
func (v View[T]) IsDegenerate() bool { return v.src == nil }

// Equal reports structural identity: same source matrix, same start entry,
// same shape and orientation. Views over equal contents in different
// matrices are not equal. All degenerate views are equal.
func (v View[T]) Equal(o View[T]) bool {
	return v.src == o.src &&
		v.start == o.start &&
		v.rows == o.rows &&
		v.cols == o.cols &&
		v.orientation == o.orientation
}

// Stale reports whether the source storage changed since the view was cut.
func (v View[T]) Stale() bool {
	return v.src != nil && v.src.generation != v.generation
}

// Err returns nil for a live view, a wrapped ErrMalformedView for a
// degenerate one and a StaleViewError once the source has moved on.
func (v View[T]) Err() error {
	return v.check("View")
}

func (v View[T]) check(op string) error {
	if v.src == nil {
		return errors.Wrapf(errors.ErrMalformedView, "%s on degenerate view", op)
	}
	if v.src.generation != v.generation {
		err := errors.NewStaleViewError(op, v.generation, v.src.generation)
		logger().Debug("stale view", err,
			log.OperationKey, op,
			log.GenerationKey, v.src.generation,
			log.ErrorCodeKey, log.ErrorStaleView,
		)
		return err
	}
	return nil
}

// at reads logical (i, j) without checks.
func (v View[T]) at(i, j int) T {
	if v.orientation == Row {
		return v.src.elements[v.src.columns[v.start+i]+j]
	}
	return v.src.elements[v.src.columns[v.start+j]+i]
}

// At returns the element at logical row i, column j.
func (v View[T]) At(i, j int) (T, error) {
	var zero T
	if err := v.check("View.At"); err != nil {
		return zero, err
	}
	if i < 0 || i >= v.rows || j < 0 || j >= v.cols {
		return zero, errors.NewBoundsError("View.At", i, j, v.rows, v.cols)
	}
	return v.at(i, j), nil
}

// Column returns a copy of logical column j.
func (v View[T]) Column(j int) ([]T, error) {
	if err := v.check("View.Column"); err != nil {
		return nil, err
	}
	if j < 0 || j >= v.cols {
		return nil, errors.NewBoundsError("View.Column", 0, j, v.rows, v.cols)
	}
	out := make([]T, v.rows)
	for i := range out {
		out[i] = v.at(i, j)
	}
	return out, nil
}

// Materialize copies the view into a new Matrix.
func (v View[T]) Materialize() (*Matrix[T], error) {
	if err := v.check("View.Materialize"); err != nil {
		return nil, err
	}
	elements := make([]T, v.rows*v.cols)
	for j := 0; j < v.cols; j++ {
		for i := 0; i < v.rows; i++ {
			elements[j*v.rows+i] = v.at(i, j)
		}
	}
	m := &Matrix[T]{}
	m.install(elements, v.rows, v.cols)
	return m, nil
}

// Transposed returns a new matrix holding the transpose of m.
func (m *Matrix[T]) Transposed() *Matrix[T] {
	if m.IsEmpty() {
		return &Matrix[T]{}
	}
	t, _ := m.T().Materialize()
	return t
}
