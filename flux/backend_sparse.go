// SPDX-License-Identifier: MIT

package flux

import (
	"github.com/katalvlaran/lvflux/matrix"
)

// sparseBackend works on *matrix.CSR and only ever touches stored entries.
type sparseBackend struct{}

func (sparseBackend) Kind() matrix.Kind { return matrix.KindSparse }

// GrossFlux walks the stored entries of T. Diagonal entries and products
// that vanish (q−_i = 0 on B, q+_j = 0 on A) are left out of the pattern.
// Complexity: O(nnz + n).
func (be sparseBackend) GrossFlux(T matrix.Matrix, mu, qminus, qplus []float64) (matrix.Matrix, error) {
	if err := checkKind(be, T); err != nil {
		return nil, err
	}
	s := T.(*matrix.CSR)
	ts := make([]matrix.Triplet, 0, s.NNZ())
	s.Do(func(i, j int, v float64) bool {
		if i == j {
			return true
		}
		if f := mu[i] * qminus[i] * v * qplus[j]; f != 0 {
			ts = append(ts, matrix.Triplet{Row: i, Col: j, Val: f})
		}
		return true
	})

	return matrix.CSRFromTriplets(s.Rows(), s.Cols(), ts)
}

// NetFlux merges F with its counting-sort transpose row by row and stores
// strictly positive differences only.
// Complexity: O(nnz + n).
func (be sparseBackend) NetFlux(F matrix.Matrix) (matrix.Matrix, error) {
	if err := checkKind(be, F); err != nil {
		return nil, err
	}
	s := F.(*matrix.CSR)

	return matrix.PositiveDiff(s, s.Transpose())
}
