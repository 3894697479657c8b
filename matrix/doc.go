// Package matrix provides a dense, column-major matrix container with value
// semantics and zero-copy views.
//
// A *Matrix[T] owns two buffers: the column-major element buffer and a
// derived column table holding the start offset of every column. The two are
// always replaced together.
//
// A View[T] is a non-owning window over a contiguous range of a matrix's
// column table. Untransposed (Column) views read the selected columns as
// columns; transposed (Row) views read them as rows, which is how
// (*Matrix[T]).T expresses a transpose without copying elements.
//
// Views capture the storage generation of their source. Any storage
// replacement (Assign, Reshape, Release) advances the generation, and reads
// through an older view fail with errors.ErrStaleView instead of observing
// reallocated memory.
//
//	a, _ := matrix.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	at := a.T()                 // 3x2 view, no copy
//	v, _ := at.At(2, 1)         // == a.At(1, 2) == 6
//	b, _ := matrix.AddView(c, at)
//
// Shape and bounds failures are returned as errors. Malformed views and
// non-finite scalar results are non-fatal: the caller gets a documented
// default (a degenerate view, a zero element) and a warning is emitted
// through errors.Warn.
package matrix
