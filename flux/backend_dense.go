// SPDX-License-Identifier: MIT

package flux

import (
	"github.com/katalvlaran/lvflux/matrix"
)

// denseBackend works on *matrix.Dense in row-major order.
type denseBackend struct{}

func (denseBackend) Kind() matrix.Kind { return matrix.KindDense }

// GrossFlux scales the rows of T by mu∘q−, its columns by q+, then drops
// the diagonal.
// Complexity: O(n²).
func (be denseBackend) GrossFlux(T matrix.Matrix, mu, qminus, qplus []float64) (matrix.Matrix, error) {
	if err := checkKind(be, T); err != nil {
		return nil, err
	}
	w := make([]float64, len(mu))
	for i := range w {
		w[i] = mu[i] * qminus[i]
	}
	F, err := matrix.ScaleRows(T, w)
	if err != nil {
		return nil, err
	}
	if F, err = matrix.ScaleCols(F, qplus); err != nil {
		return nil, err
	}

	return matrix.ZeroDiagonal(F)
}

// NetFlux computes Fᵀ, then PositiveDiff(F, Fᵀ) = max(F − Fᵀ, 0) over the
// whole matrix.
// Complexity: O(n²).
func (be denseBackend) NetFlux(F matrix.Matrix) (matrix.Matrix, error) {
	if err := checkKind(be, F); err != nil {
		return nil, err
	}
	Ft, err := matrix.Transpose(F)
	if err != nil {
		return nil, err
	}

	return matrix.PositiveDiff(F, Ft)
}
