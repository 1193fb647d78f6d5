// SPDX-License-Identifier: MIT
package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvflux/matrix"
)

var (
	setA = []int{0, 1}
	setB = []int{8, 9}
)

// hide masks the concrete storage of a Matrix.
type hide struct{ matrix.Matrix }

func mustDense(t testing.TB, n int, vals ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, vals)
	require.NoError(t, err)

	return m
}

func mustCSR(t testing.TB, n int, vals ...float64) *matrix.CSR {
	t.Helper()
	s, err := matrix.CSRFromDense(mustDense(t, n, vals...))
	require.NoError(t, err)

	return s
}

// requireClose compares two matrices of any storage entry by entry.
func requireClose(t testing.TB, want, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%v\ngot\n%v", want, got)
}

// diamond is a net flux with two A→B routes of 0.7 and 0.3.
func diamond(t testing.TB) *matrix.CSR {
	return mustCSR(t, 4,
		0, 0.3, 0.7, 0,
		0, 0, 0, 0.3,
		0, 0, 0, 0.7,
		0, 0, 0, 0,
	)
}
