package metrics

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/ctm/matrix"
	"github.com/YuminosukeSato/ctm/pkg/errors"
)

func fromRows(t *testing.T, rows [][]float64) *matrix.Matrix[float64] {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMetrics(t *testing.T) {
	want := fromRows(t, [][]float64{{1, 2}, {3, 4}})
	got := fromRows(t, [][]float64{{1.5, 2.5}, {2.5, 3.5}})

	tests := []struct {
		name      string
		fn        func(a, b matrix.Reader[float64]) (float64, error)
		want      float64
		tolerance float64
	}{
		{"MSE", MSE[float64], 0.25, 1e-10},
		{"RMSE", RMSE[float64], 0.5, 1e-10},
		{"MAE", MAE[float64], 0.5, 1e-10},
		{"MaxAbs", MaxAbs[float64], 0.5, 1e-10},
		{"Frobenius", Frobenius[float64], 1.0, 1e-10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.fn(want, got)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(v-tt.want) > tt.tolerance {
				t.Errorf("%s = %v, want %v", tt.name, v, tt.want)
			}

			same, err := tt.fn(want, want)
			if err != nil || same != 0 {
				t.Errorf("%s of identical matrices = %v, %v", tt.name, same, err)
			}
		})
	}
}

func TestMetricsOverViews(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	at := fromRows(t, [][]float64{{1, 4}, {2, 5}, {3, 6}})

	v, err := MaxAbs[float64](a.T(), at)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Errorf("transpose view should match its materialized form, got %v", v)
	}

	cols, err := a.ColumnRange(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	mae, err := MAE[float64](cols, fromRows(t, [][]float64{{2, 3}, {5, 7}}))
	if err != nil {
		t.Fatal(err)
	}
	if mae != 0.25 {
		t.Errorf("MAE = %v, want 0.25", mae)
	}
}

func TestMetricsErrors(t *testing.T) {
	a := fromRows(t, [][]float64{{1, 2, 3}})
	b := fromRows(t, [][]float64{{1}, {2}, {3}})

	if _, err := MSE[float64](a, b); !errors.Is(err, errors.ErrShapeMismatch) {
		t.Errorf("expected shape mismatch, got %v", err)
	}
	if _, err := MAE[float64](&matrix.Matrix[float64]{}, &matrix.Matrix[float64]{}); !errors.Is(err, errors.ErrEmptyMatrix) {
		t.Errorf("expected empty matrix error, got %v", err)
	}

	view := a.T()
	a.Release()
	if _, err := RMSE[float64](view, b); !errors.Is(err, errors.ErrStaleView) {
		t.Errorf("expected stale view error, got %v", err)
	}
}

func TestMetricsIntegerElements(t *testing.T) {
	a, _ := matrix.FromRows([][]int{{1, 2}, {3, 4}})
	b, _ := matrix.FromRows([][]int{{1, 2}, {3, 8}})

	mse, err := MSE[int](a, b)
	if err != nil {
		t.Fatal(err)
	}
	if mse != 4 {
		t.Errorf("MSE = %v, want 4", mse)
	}
}
