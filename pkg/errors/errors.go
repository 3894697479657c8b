// Package errors はctm全体のエラーハンドリングと警告システムを提供します。
// 致命的なエラー（形状不一致、範囲外アクセス、失効したビュー）は呼び出し元に返し、
// 非致命的な診断（不正なビュー、非有限値の置換など）は警告チャネルに流します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("ctm-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はctm全体の警告ハンドラを設定し、以前のハンドラを返します。
// これにより、NonFiniteResultErrorなどの診断の処理方法を制御できます。
//
// 例:
//
//	prev := errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
//	defer errors.SetWarningHandler(prev)
func SetWarningHandler(handler func(w error)) func(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	prev := warningHandler
	warningHandler = handler
	return prev
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrShapeMismatch は要素ごとの演算で形状が一致しない場合のエラーです。
	ErrShapeMismatch = New("shape mismatch")

	// ErrOutOfBounds はインデックスが範囲外の場合のエラーです。
	ErrOutOfBounds = New("index out of bounds")

	// ErrMalformedView はビューの構築引数が向きと矛盾する場合の診断です。
	ErrMalformedView = New("malformed view")

	// ErrNonFinite は演算結果が非有限値になった場合の診断です。
	ErrNonFinite = New("non-finite result")

	// ErrStaleView はビューの元の行列が再割り当て・解放された場合のエラーです。
	ErrStaleView = New("stale view")

	// ErrNotScalar は1x1ではない行列からスカラーを取り出そうとした場合のエラーです。
	ErrNotScalar = New("matrix is not a scalar")

	// ErrEmptyMatrix は空の行列が渡された場合のエラーです。
	ErrEmptyMatrix = New("empty matrix")
)

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// ShapeMismatchError は要素ごとの二項演算（+, -, 比較）で左右の形状が異なる場合のエラーです。
type ShapeMismatchError struct {
	Op    string
	Left  [2]int // rows, cols
	Right [2]int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("ctm: %s: shape mismatch %dx%d vs %dx%d",
		e.Op, e.Left[0], e.Left[1], e.Right[0], e.Right[1])
}

// Is はErrShapeMismatchとの照合を可能にします。
func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Ints("left", e.Left[:]).
		Ints("right", e.Right[:]).
		Str("type", "ShapeMismatchError")
}

// NewShapeMismatchError は新しいShapeMismatchErrorを作成し、スタックトレースを付与します。
func NewShapeMismatchError(op string, lr, lc, rr, rc int) error {
	err := &ShapeMismatchError{Op: op, Left: [2]int{lr, lc}, Right: [2]int{rr, rc}}
	return errors.WithStack(err)
}

// BoundsError は行列の要素アクセスが範囲外の場合のエラーです。
type BoundsError struct {
	Op   string
	Row  int
	Col  int
	Rows int
	Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("ctm: %s: index (%d, %d) out of bounds for %dx%d matrix",
		e.Op, e.Row, e.Col, e.Rows, e.Cols)
}

// Is はErrOutOfBoundsとの照合を可能にします。
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *BoundsError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("row", e.Row).
		Int("col", e.Col).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Str("type", "BoundsError")
}

// NewBoundsError は新しいBoundsErrorを作成し、スタックトレースを付与します。
func NewBoundsError(op string, row, col, rows, cols int) error {
	err := &BoundsError{Op: op, Row: row, Col: col, Rows: rows, Cols: cols}
	return errors.WithStack(err)
}

// MalformedViewError はビューの列ポインタ範囲の長さが、向きから期待される長さと
// 一致しない場合の診断です。非致命的で、縮退したビューと一緒に返されます。
type MalformedViewError struct {
	Span        int // begin..endの列ポインタ数
	Rows        int
	Cols        int
	Orientation string
}

func (e *MalformedViewError) Error() string {
	return fmt.Sprintf("ctm: malformed %s view: span of %d column pointers does not fit %dx%d",
		e.Orientation, e.Span, e.Rows, e.Cols)
}

// Is はErrMalformedViewとの照合を可能にします。
func (e *MalformedViewError) Is(target error) bool {
	return target == ErrMalformedView
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (e *MalformedViewError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("span", e.Span).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Str("orientation", e.Orientation).
		Str("type", "MalformedViewError")
}

// NewMalformedViewError は新しいMalformedViewErrorを作成します。
// 警告として扱われるため、スタックトレースは付与しません。
func NewMalformedViewError(span, rows, cols int, orientation string) *MalformedViewError {
	return &MalformedViewError{Span: span, Rows: rows, Cols: cols, Orientation: orientation}
}

// NonFiniteResultError はスカラー演算の結果が非有限値（NaN, Inf）またはゼロ除算になり、
// ゼロに置き換えられたことを示す警告です。
type NonFiniteResultError struct {
	Op    string
	Row   int     // 最初に置換された要素の行
	Col   int     // 最初に置換された要素の列
	Value float64 // 置換前の値（整数型のゼロ除算ではNaN）
	Count int     // 置換された要素数
}

func (e *NonFiniteResultError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("ctm: %s: %d non-finite results replaced with zero, first %v at (%d, %d)",
			e.Op, e.Count, e.Value, e.Row, e.Col)
	}
	return fmt.Sprintf("ctm: %s: non-finite result %v at (%d, %d) replaced with zero",
		e.Op, e.Value, e.Row, e.Col)
}

// Is はErrNonFiniteとの照合を可能にします。
func (e *NonFiniteResultError) Is(target error) bool {
	return target == ErrNonFinite
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (e *NonFiniteResultError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("row", e.Row).
		Int("col", e.Col).
		Float64("value", e.Value).
		Int("count", e.Count).
		Str("type", "NonFiniteResultError")
}

// NewNonFiniteResultError は新しいNonFiniteResultErrorを作成します。
func NewNonFiniteResultError(op string, row, col int, value float64) *NonFiniteResultError {
	return &NonFiniteResultError{Op: op, Row: row, Col: col, Value: value, Count: 1}
}

// StaleViewError はビューが作られた後に元の行列が再割り当て・解放された場合のエラーです。
type StaleViewError struct {
	Op       string
	Captured uint64 // ビュー作成時の世代
	Current  uint64 // 現在の行列の世代
}

func (e *StaleViewError) Error() string {
	return fmt.Sprintf("ctm: %s: view is stale (captured generation %d, source at %d)",
		e.Op, e.Captured, e.Current)
}

// Is はErrStaleViewとの照合を可能にします。
func (e *StaleViewError) Is(target error) bool {
	return target == ErrStaleView
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *StaleViewError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Uint64("captured", e.Captured).
		Uint64("current", e.Current).
		Str("type", "StaleViewError")
}

// NewStaleViewError は新しいStaleViewErrorを作成し、スタックトレースを付与します。
func NewStaleViewError(op string, captured, current uint64) error {
	err := &StaleViewError{Op: op, Captured: captured, Current: current}
	return errors.WithStack(err)
}

// DimensionError は行列積の内側の次元や連結軸の長さが一致しない場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "cols"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("ctm: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "cols"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("ctm: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ConversionWarning は型変換で値が変化した（小数部の切り捨て、オーバーフローなど）場合の警告です。
type ConversionWarning struct {
	FromType string
	ToType   string
	Lossy    int // 値が変化した要素数
}

func (w *ConversionWarning) Error() string {
	return fmt.Sprintf("ctm: converting %s to %s changed %d element(s)", w.FromType, w.ToType, w.Lossy)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Int("lossy", w.Lossy).
		Str("type", "ConversionWarning")
}

// NewConversionWarning は新しいConversionWarningを作成します。
func NewConversionWarning(from, to string, lossy int) *ConversionWarning {
	return &ConversionWarning{FromType: from, ToType: to, Lossy: lossy}
}

// ClampWarning は範囲外のインデックスがクランプされたことを示す警告です。
type ClampWarning struct {
	Op                 string
	Row, Col           int
	ClampRow, ClampCol int
}

func (w *ClampWarning) Error() string {
	return fmt.Sprintf("ctm: %s: index (%d, %d) clamped to (%d, %d)", w.Op, w.Row, w.Col, w.ClampRow, w.ClampCol)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ClampWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("row", w.Row).
		Int("col", w.Col).
		Int("clamp_row", w.ClampRow).
		Int("clamp_col", w.ClampCol).
		Str("type", "ClampWarning")
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}
