// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestGonumRoundTrip checks copy semantics in both directions.
func TestGonumRoundTrip(t *testing.T) {
	d := MustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	g := d.Gonum()
	g.Set(0, 0, 42)
	v, err := d.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)

	back, err := matrix.DenseFromGonum(g.T())
	require.NoError(t, err)
	require.Equal(t, "[42, 4]\n[2, 5]\n[3, 6]\n", back.String())

	_, err = matrix.DenseFromGonum(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.DenseFromGonum(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
