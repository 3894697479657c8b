package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/ctm/pkg/errors"
)

func TestSubset(t *testing.T) {
	a := mustFromRows(t, [][]int{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	})

	tests := []struct {
		name           string
		r0, r1, c0, c1 int
		want           [][]int
	}{
		{"interior block", 1, 2, 1, 2, [][]int{{6, 7}, {10, 11}}},
		{"single element", 0, 0, 3, 3, [][]int{{4}}},
		{"full matrix", 0, 2, 0, 3, [][]int{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}},
		{"one row", 2, 2, 0, 3, [][]int{{9, 10, 11, 12}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Subset(tt.r0, tt.r1, tt.c0, tt.c1)
			require.NoError(t, err)
			assert.True(t, Equal(mustFromRows(t, tt.want), got), "got %v", got)
		})
	}

	sub, _ := a.Subset(0, 1, 0, 1)
	require.NoError(t, sub.Set(0, 0, 100))
	v, _ := a.At(0, 0)
	assert.Equal(t, 1, v, "subset is a copy")
}

func TestSubsetBounds(t *testing.T) {
	a, _ := New(0, 2, 2)

	for _, r := range [][4]int{
		{0, 2, 0, 1},
		{-1, 1, 0, 1},
		{1, 0, 0, 1},
		{0, 1, 1, 0},
		{0, 1, 0, 5},
	} {
		_, err := a.Subset(r[0], r[1], r[2], r[3])
		assert.ErrorIs(t, err, errors.ErrOutOfBounds, "Subset%v", r)
	}
}

func TestConcat(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2}, {3, 4}})
	b := mustFromRows(t, [][]int{{5, 6}})
	c := mustFromRows(t, [][]int{{7}, {8}})

	rows, err := Concat(a, b, AxisRows)
	require.NoError(t, err)
	assert.True(t, Equal(mustFromRows(t, [][]int{{1, 2}, {3, 4}, {5, 6}}), rows))

	cols, err := Concat(a, c, AxisCols)
	require.NoError(t, err)
	assert.True(t, Equal(mustFromRows(t, [][]int{{1, 2, 7}, {3, 4, 8}}), cols))

	_, err = Concat(a, c, AxisRows)
	var derr *errors.DimensionError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Axis)

	_, err = Concat(a, b, AxisCols)
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 0, derr.Axis)

	_, err = Concat(a, b, Axis(7))
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestConcatEmptyIsIdentity(t *testing.T) {
	a := mustFromRows(t, [][]int{{1, 2}, {3, 4}})

	for _, axis := range []Axis{AxisRows, AxisCols} {
		left, err := Concat(&Matrix[int]{}, a, axis)
		require.NoError(t, err)
		assert.True(t, Equal(a, left))

		right, err := Concat(a, nil, axis)
		require.NoError(t, err)
		assert.True(t, Equal(a, right))

		require.NoError(t, right.Set(0, 0, 9))
		v, _ := a.At(0, 0)
		assert.Equal(t, 1, v, "result never aliases an operand")
	}
}
