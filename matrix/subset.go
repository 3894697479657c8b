package matrix

import (
	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// Subset は行r0..r1、列c0..c1（両端を含む）の要素ブロックをコピーした新しい行列を返す。
// 結果の形状は (r1-r0+1) x (c1-c0+1)。範囲外のインデックスや逆順の範囲はBoundsErrorになる。
func (m *Matrix[T]) Subset(r0, r1, c0, c1 int) (*Matrix[T], error) {
	if err := m.checkRange("Subset", r0, r1, m.rows, true); err != nil {
		return nil, err
	}
	if err := m.checkRange("Subset", c0, c1, m.cols, false); err != nil {
		return nil, err
	}
	nr, nc := r1-r0+1, c1-c0+1
	elements := make([]T, nr*nc)
	for j := 0; j < nc; j++ {
		src := m.columns[c0+j] + r0
		copy(elements[j*nr:(j+1)*nr], m.elements[src:src+nr])
	}
	out := &Matrix[T]{}
	out.install(elements, nr, nc)
	return out, nil
}

// checkRange validates an inclusive index range [lo, hi] against n.
func (m *Matrix[T]) checkRange(op string, lo, hi, n int, rowAxis bool) error {
	if lo >= 0 && lo <= hi && hi < n {
		return nil
	}
	bad := hi
	if lo < 0 || lo >= n {
		bad = lo
	}
	var err error
	if rowAxis {
		err = errors.NewBoundsError(op, bad, 0, m.rows, m.cols)
	} else {
		err = errors.NewBoundsError(op, 0, bad, m.rows, m.cols)
	}
	logger().Debug("range out of bounds", err,
		log.OperationKey, log.OperationSubset,
		log.RowsKey, m.rows,
		log.ColsKey, m.cols,
		log.ErrorCodeKey, log.ErrorOutOfBounds,
	)
	return err
}

// Axis selects the direction of Concat.
type Axis int

const (
	// AxisRows stacks b below a; column counts must match.
	AxisRows Axis = iota
	// AxisCols appends b's columns after a's; row counts must match.
	AxisCols
)

// Concat は2つの行列を連結した新しい行列を返す。
// 空行列はどちらの軸でも単位元として扱われる。
func Concat[T Number](a, b *Matrix[T], axis Axis) (*Matrix[T], error) {
	a, b = orEmpty(a), orEmpty(b)
	if a.IsEmpty() {
		return b.Clone(), nil
	}
	if b.IsEmpty() {
		return a.Clone(), nil
	}

	out := &Matrix[T]{}
	switch axis {
	case AxisRows:
		if a.cols != b.cols {
			return nil, concatMismatch(a.cols, b.cols, 1)
		}
		rows := a.rows + b.rows
		elements := make([]T, rows*a.cols)
		for j := 0; j < a.cols; j++ {
			copy(elements[j*rows:], a.elements[a.columns[j]:a.columns[j]+a.rows])
			copy(elements[j*rows+a.rows:], b.elements[b.columns[j]:b.columns[j]+b.rows])
		}
		out.install(elements, rows, a.cols)
	case AxisCols:
		if a.rows != b.rows {
			return nil, concatMismatch(a.rows, b.rows, 0)
		}
		elements := make([]T, 0, len(a.elements)+len(b.elements))
		elements = append(elements, a.elements...)
		elements = append(elements, b.elements...)
		out.install(elements, a.rows, a.cols+b.cols)
	default:
		return nil, errors.NewValidationError("axis", "must be AxisRows or AxisCols", int(axis))
	}
	return out, nil
}

func concatMismatch(expected, got, axis int) error {
	err := errors.NewDimensionError("Concat", expected, got, axis)
	logger().Debug("concat mismatch", err,
		log.OperationKey, log.OperationConcat,
		log.ErrorCodeKey, log.ErrorDimension,
	)
	return err
}
