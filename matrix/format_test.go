package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	a, _ := FromSlice([]int{1, 2, 3, 4, 5, 60}, 2, 3)

	assert.Equal(t, "2x3\n[1 3  5]\n[2 4 60]", a.String())
	assert.Equal(t, "3x2\n[1  2]\n[3  4]\n[5 60]", a.T().String())

	cols, _ := a.ColumnRange(2, 2)
	assert.Equal(t, "2x1\n[ 5]\n[60]", cols.String())

	var nilMatrix *Matrix[int]
	assert.Equal(t, "0x0", nilMatrix.String())
	assert.Equal(t, "degenerate view", View[int]{}.String())

	v := a.T()
	a.Release()
	assert.Equal(t, "stale 3x2 row view", v.String())
}

func TestConfig(t *testing.T) {
	defer ResetConfig()

	prev := Configure(WithBoundsPolicy(BoundsClamp), WithParallelThreshold(0))
	assert.Equal(t, DefaultConfig(), prev)
	assert.Equal(t, BoundsClamp, CurrentConfig().Bounds)
	assert.Equal(t, "clamp", CurrentConfig().Bounds.String())
	assert.Equal(t, 0, CurrentConfig().ParallelThreshold)

	SetConfig(prev)
	assert.Equal(t, "fail", CurrentConfig().Bounds.String())
	assert.Equal(t, "unknown", BoundsPolicy(9).String())
}
