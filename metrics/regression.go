// Package metrics measures how far two matrices (or views) of the same shape
// are from each other.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/ctm/matrix"
	"github.com/YuminosukeSato/ctm/pkg/errors"
)

// residuals は同じ形状の2つの行列の要素を列優先で読み出す
func residuals[T matrix.Number](op string, want, got matrix.Reader[T]) (w, g []float64, err error) {
	rw, cw := want.Dims()
	rg, cg := got.Dims()
	if rw == 0 || cw == 0 {
		return nil, nil, errors.Wrapf(errors.ErrEmptyMatrix, "%s", op)
	}
	if rw != rg || cw != cg {
		return nil, nil, errors.NewShapeMismatchError(op, rw, cw, rg, cg)
	}

	w = make([]float64, 0, rw*cw)
	g = make([]float64, 0, rw*cw)
	for j := 0; j < cw; j++ {
		for i := 0; i < rw; i++ {
			a, err := want.At(i, j)
			if err != nil {
				return nil, nil, err
			}
			b, err := got.At(i, j)
			if err != nil {
				return nil, nil, err
			}
			w = append(w, float64(a))
			g = append(g, float64(b))
		}
	}
	return w, g, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE[T matrix.Number](want, got matrix.Reader[T]) (float64, error) {
	w, g, err := residuals("MSE", want, got)
	if err != nil {
		return 0, err
	}
	// MSE = (1/n) * Σ(want - got)²
	d := floats.Distance(w, g, 2)
	return d * d / float64(len(w)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE[T matrix.Number](want, got matrix.Reader[T]) (float64, error) {
	mse, err := MSE(want, got)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE[T matrix.Number](want, got matrix.Reader[T]) (float64, error) {
	w, g, err := residuals("MAE", want, got)
	if err != nil {
		return 0, err
	}
	return floats.Distance(w, g, 1) / float64(len(w)), nil
}

// MaxAbs は要素ごとの差の絶対値の最大値（チェビシェフ距離）
func MaxAbs[T matrix.Number](want, got matrix.Reader[T]) (float64, error) {
	w, g, err := residuals("MaxAbs", want, got)
	if err != nil {
		return 0, err
	}
	return floats.Distance(w, g, math.Inf(1)), nil
}

// Frobenius は差の行列のフロベニウスノルム
func Frobenius[T matrix.Number](want, got matrix.Reader[T]) (float64, error) {
	w, g, err := residuals("Frobenius", want, got)
	if err != nil {
		return 0, err
	}
	return floats.Distance(w, g, 2), nil
}
