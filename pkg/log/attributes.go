// Package log defines standard attribute keys for matrix operations.
//
// Using these keys keeps log output from the matrix, render and example
// packages consistent. Keys follow a dotted naming convention
// ("matrix.rows", "view.orientation") so they can be filtered by prefix.

package log

// Operation Context
const (
	// OperationKey names the matrix operation being performed.
	// Standard values are the Operation* constants below.
	OperationKey = "matrix.op"

	// ComponentKey identifies which package is logging.
	// Examples: "matrix", "render"
	ComponentKey = "component"

	// GenerationKey records a matrix storage generation. Views capture it
	// when they are cut and compare it on every read.
	GenerationKey = "matrix.generation"
)

// Shape Context
const (
	// RowsKey is the logical row count of the matrix or view involved.
	RowsKey = "matrix.rows"

	// ColsKey is the logical column count of the matrix or view involved.
	ColsKey = "matrix.cols"

	// RowKey and ColKey identify a single element position.
	RowKey = "matrix.row"
	ColKey = "matrix.col"

	// OtherRowsKey and OtherColsKey describe the right-hand operand of a
	// binary operation.
	OtherRowsKey = "other.rows"
	OtherColsKey = "other.cols"

	// ElementTypeKey records the Go element type, e.g. "float64".
	ElementTypeKey = "matrix.type"

	// OrientationKey records a view orientation ("column" or "row").
	OrientationKey = "view.orientation"

	// SpanKey records the number of column-table entries a view covers.
	SpanKey = "view.span"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// WorkersKey records how many workers a parallel kernel used.
	WorkersKey = "perf.workers"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationNew       = "new"
	OperationAt        = "at"
	OperationSet       = "set"
	OperationAssign    = "assign"
	OperationSubset    = "subset"
	OperationView      = "view"
	OperationTranspose = "transpose"
	OperationReshape   = "reshape"
	OperationConcat    = "concat"
	OperationAdd       = "add"
	OperationSub       = "sub"
	OperationMul       = "mul"
	OperationScalar    = "scalar"
	OperationConvert   = "convert"
	OperationRender    = "render"

	ErrorShapeMismatch = "SHAPE_MISMATCH"
	ErrorOutOfBounds   = "OUT_OF_BOUNDS"
	ErrorStaleView     = "STALE_VIEW"
	ErrorMalformedView = "MALFORMED_VIEW"
	ErrorNonFinite     = "NON_FINITE"
	ErrorDimension     = "DIMENSION_MISMATCH"
	ErrorInvalidInput  = "INVALID_INPUT"
)
