// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures (stochastic matrices, random fills).
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the generic At/Set fallback paths.
type hide struct{ matrix.Matrix }

// MustDense builds an r×c *Dense from row-major values or fails the test.
func MustDense(t testing.TB, r, c int, vals ...float64) *matrix.Dense {
	t.Helper()
	if len(vals) == 0 {
		vals = make([]float64, r*c)
	}
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustCSR compresses MustDense(r, c, vals...) or fails the test.
func MustCSR(t testing.TB, r, c int, vals ...float64) *matrix.CSR {
	t.Helper()
	s, err := matrix.CSRFromDense(MustDense(t, r, c, vals...))
	require.NoError(t, err)

	return s
}

// chain3 is a small irreducible row-stochastic matrix.
func chain3(t testing.TB) *matrix.Dense {
	return MustDense(t, 3, 3,
		0.5, 0.5, 0.0,
		0.25, 0.5, 0.25,
		0.0, 0.5, 0.5,
	)
}

// randomStochastic fills an n×n row-stochastic *Dense where every row has at
// most k nonzeros (plus the diagonal), using a fixed seed.
func randomStochastic(t testing.TB, n, k int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	var i, p int
	for i = 0; i < n; i++ {
		data[i*n+i] = rng.Float64() + 0.1
		for p = 0; p < k; p++ {
			data[i*n+rng.Intn(n)] += rng.Float64()
		}
		// Ring edge keeps the chain irreducible.
		data[i*n+(i+1)%n] += 0.1
		var s float64
		for _, v := range data[i*n : (i+1)*n] {
			s += v
		}
		for p = 0; p < n; p++ {
			data[i*n+p] /= s
		}
	}

	return MustDense(t, n, n, data...)
}
