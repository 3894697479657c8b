package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/ctm/pkg/errors"
)

func TestConvertLossless(t *testing.T) {
	warnings := captureWarnings(t)
	a := mustFromRows(t, [][]int{{1, -2}, {3, 4}})

	f := ToFloat64(a)
	assert.Equal(t, []float64{1, 3, -2, 4}, f.ColumnMajor())

	back := ToInt(f)
	assert.True(t, Equal(a, back))
	assert.Empty(t, *warnings)
}

func TestConvertLossyWarns(t *testing.T) {
	warnings := captureWarnings(t)
	f := mustFromRows(t, [][]float64{{1.5, 2}, {-3.7, 4}})

	got := ToInt64(f)
	assert.Equal(t, []int64{1, -3, 2, 4}, got.ColumnMajor())

	require.Len(t, *warnings, 1)
	var cw *errors.ConversionWarning
	require.ErrorAs(t, (*warnings)[0], &cw)
	assert.Equal(t, "float64", cw.FromType)
	assert.Equal(t, "int64", cw.ToType)
	assert.Equal(t, 2, cw.Lossy)
}

func TestConvertNarrowing(t *testing.T) {
	warnings := captureWarnings(t)
	a := mustFromRows(t, [][]int{{1, 300}})

	got := Convert[int, uint8](a)
	v, _ := got.At(0, 1)
	assert.Equal(t, uint8(44), v)
	require.Len(t, *warnings, 1)

	p := mustFromRows(t, [][]float64{{math.Pi}})
	Convert[float64, float32](p)
	assert.Len(t, *warnings, 2, "precision loss counts as a change")
}

func TestConvertRoundTripDetectsLoss(t *testing.T) {
	cases := []struct {
		name  string
		conv  func() *Matrix[float64]
		lossy int
	}{
		{
			name: "int64 beyond float64 mantissa",
			conv: func() *Matrix[float64] {
				m, _ := FromSlice([]int64{1<<53 + 1, 1 << 53}, 1, 2)
				return ToFloat64(m)
			},
			lossy: 1,
		},
		{
			name: "int64 max rounds past range",
			conv: func() *Matrix[float64] {
				m, _ := FromSlice([]int64{math.MaxInt64}, 1, 1)
				return ToFloat64(m)
			},
			lossy: 1,
		},
		{
			name: "uint64 max rounds past range",
			conv: func() *Matrix[float64] {
				m, _ := FromSlice([]uint64{math.MaxUint64, 1 << 63}, 1, 2)
				return ToFloat64(m)
			},
			lossy: 1,
		},
		{
			name: "NaN and infinities are kept",
			conv: func() *Matrix[float64] {
				m, _ := FromSlice([]float32{float32(math.NaN()), float32(math.Inf(-1)), 0.5}, 1, 3)
				return ToFloat64(m)
			},
			lossy: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			warnings := captureWarnings(t)
			tc.conv()
			if tc.lossy == 0 {
				assert.Empty(t, *warnings)
				return
			}
			require.Len(t, *warnings, 1)
			var cw *errors.ConversionWarning
			require.ErrorAs(t, (*warnings)[0], &cw)
			assert.Equal(t, tc.lossy, cw.Lossy)
		})
	}
}

func TestConvertNaNNarrowing(t *testing.T) {
	warnings := captureWarnings(t)
	m := mustFromRows(t, [][]float64{{math.NaN(), 2}})

	got := Convert[float64, float32](m)
	v, _ := got.At(0, 0)
	assert.True(t, math.IsNaN(float64(v)))
	assert.Empty(t, *warnings)

	neg := mustFromRows(t, [][]int{{-2, 5}})
	Convert[int, uint](neg)
	require.Len(t, *warnings, 1)
	var cw *errors.ConversionWarning
	require.ErrorAs(t, (*warnings)[0], &cw)
	assert.Equal(t, 1, cw.Lossy)
}
