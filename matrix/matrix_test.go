package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// captureWarnings routes errors.Warn into a slice for the duration of a test.
func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var got []error
	prev := errors.SetWarningHandler(func(w error) { got = append(got, w) })
	t.Cleanup(func() { errors.SetWarningHandler(prev) })
	return &got
}

func mustFromRows[T Number](t *testing.T, rows [][]T) *Matrix[T] {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestFromSliceColumnMajor(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, a.Rows())
	assert.Equal(t, 3, a.Cols())
	assert.Equal(t, 6, a.Len())

	for _, tc := range []struct{ i, j, want int }{
		{0, 0, 1},
		{1, 0, 2},
		{0, 1, 3},
		{1, 2, 6},
	} {
		got, err := a.At(tc.i, tc.j)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "At(%d, %d)", tc.i, tc.j)
	}

	at := a.T()
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, 2, at.Cols())
}

func TestFromSliceCopiesInput(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	a, err := FromSlice(data, 2, 2)
	require.NoError(t, err)

	data[0] = 100
	v, _ := a.At(0, 0)
	assert.Equal(t, 1.0, v)

	_, err = FromSlice(data, 3, 2)
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNew(t *testing.T) {
	t.Run("fill", func(t *testing.T) {
		m, err := New[int32](7, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, []int32{7, 7, 7, 7, 7, 7}, m.ColumnMajor())
	})

	t.Run("zero dimension normalizes to empty", func(t *testing.T) {
		for _, shape := range [][2]int{{0, 0}, {0, 5}, {5, 0}} {
			m, err := New(1.5, shape[0], shape[1])
			require.NoError(t, err)
			assert.True(t, m.IsEmpty())
			r, c := m.Dims()
			assert.Equal(t, 0, r)
			assert.Equal(t, 0, c)
		}
	})

	t.Run("negative dimension", func(t *testing.T) {
		_, err := New(0, -1, 2)
		var verr *errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "rows", verr.ParamName)
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var m Matrix[float64]
		assert.True(t, m.IsEmpty())
		assert.Equal(t, "0x0", m.String())
	})
}

func TestFromRows(t *testing.T) {
	a := mustFromRows(t, [][]int{
		{1, 2, 3},
		{4, 5, 6},
	})
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, a.ColumnMajor())

	_, err := FromRows([][]int{{1, 2}, {3}})
	var derr *errors.DimensionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Axis)

	empty, err := FromRows[int](nil)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestCloneIsIndependent(t *testing.T) {
	a := mustFromRows(t, [][]float64{{1, 2}, {3, 4}})
	b := a.Clone()
	require.True(t, Equal(a, b))

	require.NoError(t, b.Set(0, 0, 42))
	v, _ := a.At(0, 0)
	assert.Equal(t, 1.0, v)
	assert.False(t, Equal(a, b))

	var nilMatrix *Matrix[float64]
	assert.True(t, nilMatrix.Clone().IsEmpty())
}

func TestAssign(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2}, {3, 4}})
	b := mustFromRows(t, [][]int{{9, 8, 7}})

	t.Run("self assignment keeps storage", func(t *testing.T) {
		gen := a.Generation()
		view := a.T()
		a.Assign(a)
		assert.Equal(t, gen, a.Generation())
		assert.NoError(t, view.Err())
	})

	t.Run("copy then independence", func(t *testing.T) {
		c := a.Clone()
		view := c.T()
		c.Assign(b)

		assert.True(t, Equal(c, b))
		assert.ErrorIs(t, view.Err(), errors.ErrStaleView)

		require.NoError(t, b.Set(0, 0, -1))
		v, _ := c.At(0, 0)
		assert.Equal(t, 9, v)
	})

	t.Run("assign empty", func(t *testing.T) {
		c := a.Clone()
		c.Assign(&Matrix[int]{})
		assert.True(t, c.IsEmpty())
	})
}

func TestReshape(t *testing.T) {
	a, err := FromSlice([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)
	view := a.T()

	require.NoError(t, a.Reshape(3, 2))
	assert.Equal(t, 3, a.Rows())
	v, _ := a.At(0, 1)
	assert.Equal(t, 4, v)
	assert.True(t, view.Stale())

	err = a.Reshape(4, 2)
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, a.Rows(), "failed reshape leaves the shape alone")
}

func TestRelease(t *testing.T) {
	a, err := New(1.0, 2, 2)
	require.NoError(t, err)
	view, err := a.ColumnRange(0, 1)
	require.NoError(t, err)

	a.Release()
	assert.True(t, a.IsEmpty())

	_, err = view.At(0, 0)
	var stale *errors.StaleViewError
	require.ErrorAs(t, err, &stale)
	assert.Less(t, stale.Captured, stale.Current)
}

func TestBoundsFail(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	for _, idx := range [][2]int{{2, 0}, {0, 3}, {-1, 0}, {0, -1}} {
		_, err := a.At(idx[0], idx[1])
		var berr *errors.BoundsError
		require.ErrorAs(t, err, &berr, "At(%d, %d)", idx[0], idx[1])
		assert.Equal(t, idx[0], berr.Row)
		assert.Equal(t, idx[1], berr.Col)

		assert.ErrorIs(t, a.Set(idx[0], idx[1], 0), errors.ErrOutOfBounds)
	}
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, a.ColumnMajor(), "failed Set must not write")
}

func TestBoundsClamp(t *testing.T) {
	defer SetConfig(Configure(WithBoundsPolicy(BoundsClamp)))
	warnings := captureWarnings(t)

	a := mustFromRows(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	v, err := a.At(5, -2)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	require.Len(t, *warnings, 1)
	var cw *errors.ClampWarning
	require.ErrorAs(t, (*warnings)[0], &cw)
	assert.Equal(t, 1, cw.ClampRow)
	assert.Equal(t, 0, cw.ClampCol)

	require.NoError(t, a.Set(0, 10, 30))
	v, _ = a.At(0, 2)
	assert.Equal(t, 30, v)

	var empty Matrix[int]
	_, err = empty.At(0, 0)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestSetDoesNotInvalidateViews(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2}, {3, 4}})
	at := a.T()

	require.NoError(t, a.Set(0, 1, 20))
	v, err := at.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

func TestScalar(t *testing.T) {
	s, err := New(3.5, 1, 1)
	require.NoError(t, err)
	assert.True(t, s.IsScalar())
	v, err := s.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)

	m, _ := New(1.0, 2, 1)
	assert.False(t, m.IsScalar())
	_, err = m.Scalar()
	assert.ErrorIs(t, err, errors.ErrNotScalar)
}

func TestRowAndCol(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2, 3}, {4, 5, 6}})

	col, err := a.Col(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, col)

	row, err := a.Row(1)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, row)

	col[0] = 99
	v, _ := a.At(0, 1)
	assert.Equal(t, 2, v)

	_, err = a.Col(3)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
	_, err = a.Row(-1)
	assert.ErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestDerivedElementTypes(t *testing.T) {
	type celsius float32
	a, err := New[celsius](1.5, 2, 2)
	require.NoError(t, err)
	assert.True(t, isFloatKind[celsius]())
	assert.False(t, isFloatKind[uint16]())

	b, err := MulScalar(2, a)
	require.NoError(t, err)
	v, _ := b.At(1, 1)
	assert.Equal(t, celsius(3), v)
}

func TestDebugLogging(t *testing.T) {
	provider, logger := log.NewTestLoggerProvider(log.LevelDebug)
	defer log.SetProvider(log.SetProvider(provider))

	a, _ := New(0, 2, 2)
	_, _ = a.At(9, 9)

	assert.True(t, logger.ContainsMessage("index out of bounds"))
	assert.True(t, logger.ContainsField(log.ComponentKey, "matrix"))
	assert.True(t, logger.ContainsField(log.RowKey, 9.0))
}
