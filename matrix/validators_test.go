// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateRowStochastic is a table over every rejection reason.
func TestValidateRowStochastic(t *testing.T) {
	var typedNil *matrix.CSR
	tests := []struct {
		name string
		m    matrix.Matrix
		eps  float64
		want error
	}{
		{"ok dense", chain3(t), 1e-12, nil},
		{"ok sparse", MustCSR(t, 2, 2, 0.9, 0.1, 0.2, 0.8), 1e-12, nil},
		{"ok fallback", hide{chain3(t)}, 1e-12, nil},
		{"nil", nil, 1e-12, matrix.ErrNilMatrix},
		{"typed nil", typedNil, 1e-12, matrix.ErrNilMatrix},
		{"non square", MustDense(t, 2, 3), 1e-12, matrix.ErrNonSquare},
		{"negative", MustDense(t, 2, 2, 1.1, -0.1, 0, 1), 1e-12, matrix.ErrNegativeEntry},
		{"row sum", MustDense(t, 2, 2, 0.5, 0.4, 0, 1), 1e-12, matrix.ErrNotStochastic},
		{"row sum within eps", MustDense(t, 2, 2, 0.5, 0.4999, 0, 1), 1e-3, nil},
		{"bad eps", chain3(t), math.NaN(), matrix.ErrNaNInf},
		{"negative eps", chain3(t), -1, matrix.ErrNaNInf},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateRowStochastic(tc.m, tc.eps)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestValidateVecLen distinguishes nil from a wrong length.
func TestValidateVecLen(t *testing.T) {
	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
