package matrix

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"

	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// Number は行列の要素として使える数値型の制約（派生型を含む全ての整数型と浮動小数点型）
type Number interface {
	constraints.Integer | constraints.Float
}

// Reader は*MatrixとViewが共有する読み取り専用のインターフェース
type Reader[T Number] interface {
	Dims() (rows, cols int)
	At(i, j int) (T, error)
}

// Matrix は列優先（column-major）の密行列
//
// 要素(i, j)は elements[columns[j]+i] に格納され、columns[j] == j*rows が常に成り立つ。
// elementsとcolumnsは install によって必ず同時に置き換えられる。
// ゼロ値は0x0の空行列として使える。
type Matrix[T Number] struct {
	// elements は列優先で並んだ rows*cols 個の要素
	elements []T

	// columns は各列の先頭オフセット（elementsから導出される列ポインタ表）
	columns []int

	rows, cols int

	// generation はストレージが置き換えられるたびに増える。Viewはこれを保持し、
	// 読み取りのたびに比較する。
	generation uint64
}

func logger() log.Logger {
	return log.GetLoggerWithName("matrix")
}

// columnOffsets は rows x cols 行列の列ポインタ表を作る
func columnOffsets(rows, cols int) []int {
	columns := make([]int, cols)
	for j := range columns {
		columns[j] = j * rows
	}
	return columns
}

// install は要素バッファと列ポインタ表を一度に差し替え、世代を進める。
// rows*cols == 0 の場合は0x0の空行列になる。
func (m *Matrix[T]) install(elements []T, rows, cols int) {
	if rows == 0 || cols == 0 {
		m.elements, m.columns, m.rows, m.cols = nil, nil, 0, 0
	} else {
		m.elements, m.columns, m.rows, m.cols = elements, columnOffsets(rows, cols), rows, cols
	}
	m.generation++
}

func validateShape(rows, cols int) error {
	if rows < 0 {
		return errors.NewValidationError("rows", "must be non-negative", rows)
	}
	if cols < 0 {
		return errors.NewValidationError("cols", "must be non-negative", cols)
	}
	if cols != 0 && rows > math.MaxInt/cols {
		return errors.NewValidationError("shape", "rows*cols overflows int", [2]int{rows, cols})
	}
	return nil
}

// New は全要素をfillで埋めた rows x cols 行列を作成する
//
// パラメータ:
//   - fill: 全要素の初期値
//   - rows, cols: 行数と列数（どちらかが0なら空行列）
//
// 戻り値:
//   - *Matrix[T]: 新しい行列
//   - error: rowsまたはcolsが負の場合のValidationError
func New[T Number](fill T, rows, cols int) (*Matrix[T], error) {
	if err := validateShape(rows, cols); err != nil {
		logger().Debug("invalid shape", err, log.OperationKey, log.OperationNew)
		return nil, err
	}
	elements := make([]T, rows*cols)
	if fill != 0 {
		for k := range elements {
			elements[k] = fill
		}
	}
	m := &Matrix[T]{}
	m.install(elements, rows, cols)
	return m, nil
}

// FromSlice は列優先で並んだdataの先頭 rows*cols 個をコピーして行列を作成する
//
// 使用例:
//
//	a, err := matrix.FromSlice([]int{1, 2, 3, 4, 5, 6}, 2, 3)
//	// a.At(0, 0) == 1, a.At(1, 0) == 2, a.At(0, 1) == 3
func FromSlice[T Number](data []T, rows, cols int) (*Matrix[T], error) {
	if err := validateShape(rows, cols); err != nil {
		logger().Debug("invalid shape", err, log.OperationKey, log.OperationNew)
		return nil, err
	}
	n := rows * cols
	if len(data) < n {
		err := errors.NewValidationError("data", "shorter than rows*cols", len(data))
		logger().Debug("short source", err, log.OperationKey, log.OperationNew, log.RowsKey, rows, log.ColsKey, cols)
		return nil, err
	}
	elements := make([]T, n)
	copy(elements, data[:n])
	m := &Matrix[T]{}
	m.install(elements, rows, cols)
	return m, nil
}

// FromRows は行優先のリテラルから行列を作成する。全ての行は同じ長さでなければならない。
//
// 使用例:
//
//	a, err := matrix.FromRows([][]float64{
//	    {1, 2},
//	    {3, 4},
//	})
func FromRows[T Number](rowData [][]T) (*Matrix[T], error) {
	rows := len(rowData)
	if rows == 0 {
		return &Matrix[T]{}, nil
	}
	cols := len(rowData[0])
	for i, r := range rowData {
		if len(r) != cols {
			err := errors.NewDimensionError("FromRows", cols, len(r), 1)
			logger().Debug("ragged rows", err, log.OperationKey, log.OperationNew, log.RowKey, i)
			return nil, err
		}
	}
	elements := make([]T, rows*cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			elements[j*rows+i] = rowData[i][j]
		}
	}
	m := &Matrix[T]{}
	m.install(elements, rows, cols)
	return m, nil
}

// Rows は行数を返す
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols は列数を返す
func (m *Matrix[T]) Cols() int { return m.cols }

// Dims は行数と列数を返す
func (m *Matrix[T]) Dims() (rows, cols int) { return m.rows, m.cols }

// Len は要素数を返す
func (m *Matrix[T]) Len() int { return len(m.elements) }

// IsEmpty は0x0の空行列かどうかを返す
func (m *Matrix[T]) IsEmpty() bool { return len(m.elements) == 0 }

// Generation は現在のストレージ世代を返す
func (m *Matrix[T]) Generation() uint64 { return m.generation }

// Clone は要素バッファを深くコピーした新しい行列を返す。
// 返された行列への変更はmに影響しない。
func (m *Matrix[T]) Clone() *Matrix[T] {
	c := &Matrix[T]{}
	if m == nil || m.IsEmpty() {
		c.install(nil, 0, 0)
		return c
	}
	elements := make([]T, len(m.elements))
	copy(elements, m.elements)
	c.install(elements, m.rows, m.cols)
	return c
}

// Assign はsrcの内容をmに深くコピーする（コピー代入）。
//
// 新しいバッファのコピーが完了してから古いバッファを手放すため、途中で失敗しても
// mは元の状態のまま残る。自己代入は何もしない。代入後はmから作られたViewは失効する。
func (m *Matrix[T]) Assign(src *Matrix[T]) {
	if m == src {
		return
	}
	if src == nil || src.IsEmpty() {
		m.install(nil, 0, 0)
		return
	}
	elements := make([]T, len(src.elements))
	copy(elements, src.elements)
	m.install(elements, src.rows, src.cols)
	logger().Debug("assigned",
		log.OperationKey, log.OperationAssign,
		log.RowsKey, m.rows,
		log.ColsKey, m.cols,
		log.GenerationKey, m.generation,
	)
}

// Release は両方のバッファを解放して空行列にする。mから作られたViewは失効する。
func (m *Matrix[T]) Release() {
	m.install(nil, 0, 0)
}

// Reshape は要素数を保ったまま形状を変更する。要素は列優先の順序で再解釈される。
// 列ポインタ表は作り直され、世代が進む。
func (m *Matrix[T]) Reshape(rows, cols int) error {
	if err := validateShape(rows, cols); err != nil {
		return err
	}
	if rows*cols != len(m.elements) {
		err := errors.NewValidationError("shape", "reshape must preserve the element count", [2]int{rows, cols})
		logger().Debug("reshape rejected", err,
			log.OperationKey, log.OperationReshape,
			log.RowsKey, m.rows,
			log.ColsKey, m.cols,
		)
		return err
	}
	m.install(m.elements, rows, cols)
	return nil
}

// resolve は(i, j)を物理オフセットに変換する。範囲外の場合は設定された
// BoundsPolicyに従う。
func (m *Matrix[T]) resolve(op string, i, j int) (int, error) {
	if i >= 0 && i < m.rows && j >= 0 && j < m.cols {
		return m.columns[j] + i, nil
	}
	if CurrentConfig().Bounds == BoundsClamp && !m.IsEmpty() {
		ci, cj := clamp(i, m.rows), clamp(j, m.cols)
		errors.Warn(&errors.ClampWarning{Op: op, Row: i, Col: j, ClampRow: ci, ClampCol: cj})
		return m.columns[cj] + ci, nil
	}
	err := errors.NewBoundsError(op, i, j, m.rows, m.cols)
	logger().Debug("index out of bounds", err,
		log.OperationKey, op,
		log.RowKey, i,
		log.ColKey, j,
		log.RowsKey, m.rows,
		log.ColsKey, m.cols,
	)
	return 0, err
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// At は(i, j)の要素を返す。範囲外の場合はBoundsErrorを返す。
func (m *Matrix[T]) At(i, j int) (T, error) {
	k, err := m.resolve("At", i, j)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.elements[k], nil
}

// Set は(i, j)の要素をvに設定する。範囲外の場合はBoundsErrorを返す。
// 要素の書き換えはストレージを置き換えないため、Viewは失効しない。
func (m *Matrix[T]) Set(i, j int, v T) error {
	k, err := m.resolve("Set", i, j)
	if err != nil {
		return err
	}
	m.elements[k] = v
	return nil
}

// at は範囲チェックなしの読み取り
func (m *Matrix[T]) at(i, j int) T {
	return m.elements[m.columns[j]+i]
}

// IsScalar は1x1行列かどうかを返す
func (m *Matrix[T]) IsScalar() bool {
	return m.rows == 1 && m.cols == 1
}

// Scalar は1x1行列の唯一の要素を返す。それ以外の形状ではErrNotScalarを返す。
func (m *Matrix[T]) Scalar() (T, error) {
	if !m.IsScalar() {
		var zero T
		return zero, errors.Wrapf(errors.ErrNotScalar, "Scalar on %dx%d matrix", m.rows, m.cols)
	}
	return m.elements[0], nil
}

// Col は列jのコピーを返す
func (m *Matrix[T]) Col(j int) ([]T, error) {
	if j < 0 || j >= m.cols {
		return nil, errors.NewBoundsError("Col", 0, j, m.rows, m.cols)
	}
	out := make([]T, m.rows)
	copy(out, m.elements[m.columns[j]:m.columns[j]+m.rows])
	return out, nil
}

// Row は行iのコピーを返す
func (m *Matrix[T]) Row(i int) ([]T, error) {
	if i < 0 || i >= m.rows {
		return nil, errors.NewBoundsError("Row", i, 0, m.rows, m.cols)
	}
	out := make([]T, m.cols)
	for j := range out {
		out[j] = m.elements[m.columns[j]+i]
	}
	return out, nil
}

// ColumnMajor は列優先の要素バッファのコピーを返す
func (m *Matrix[T]) ColumnMajor() []T {
	out := make([]T, len(m.elements))
	copy(out, m.elements)
	return out
}

// isFloatKind はTが浮動小数点型（派生型を含む）かどうかを返す
func isFloatKind[T Number]() bool {
	switch reflect.TypeOf(*new(T)).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func typeName[T Number]() string {
	return reflect.TypeOf(*new(T)).String()
}
