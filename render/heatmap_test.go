package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/ctm/matrix"
	"github.com/YuminosukeSato/ctm/pkg/errors"
)

func TestSnapshotFlipsRows(t *testing.T) {
	a, err := matrix.FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	g, err := Snapshot[float64](a)
	require.NoError(t, err)

	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	// grid row 0 is the bottom of the plot, i.e. the last matrix row
	assert.Equal(t, 4.0, g.Z(0, 0))
	assert.Equal(t, 3.0, g.Z(2, 1))
}

func TestSnapshotOfTransposeView(t *testing.T) {
	a, err := matrix.FromSlice([]int{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	g, err := Snapshot[int](a.T())
	require.NoError(t, err)

	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)
	// top-left of the transpose is a(0,0), drawn at grid row r-1
	assert.Equal(t, 1.0, g.Z(0, r-1))
}

func TestSnapshotRejectsStaleView(t *testing.T) {
	a, err := matrix.New(1.0, 2, 2)
	require.NoError(t, err)
	v := a.T()
	a.Release()

	_, err = Snapshot[float64](v)
	assert.ErrorIs(t, err, errors.ErrStaleView)

	_, err = Snapshot[float64](&matrix.Matrix[float64]{})
	assert.ErrorIs(t, err, errors.ErrEmptyMatrix)
}

func TestSnapshotRejectsNaN(t *testing.T) {
	a, err := matrix.FromRows([][]float64{{1, math.NaN()}})
	require.NoError(t, err)

	_, err = Snapshot[float64](a)
	assert.ErrorIs(t, err, errors.ErrNonFinite)
}

func TestSaveHeatMap(t *testing.T) {
	a, err := matrix.New(3.0, 4, 5) // constant matrix exercises the range fix-up
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "a.svg")
	require.NoError(t, SaveHeatMap[float64](path, "constant", a, 3*vg.Inch, 3*vg.Inch))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
