// SPDX-License-Identifier: MIT
package markov_test

import (
	"testing"

	"github.com/katalvlaran/lvflux/internal/testutil"
	"github.com/katalvlaran/lvflux/markov"
	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
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

// TestStationaryMatchesOracle compares both storages with the closed form.
func TestStationaryMatchesOracle(t *testing.T) {
	bd := testutil.ScenarioChain()
	want := bd.Stationary()

	for name, T := range map[string]matrix.Matrix{
		"dense":  bd.TransitionMatrix(),
		"sparse": bd.TransitionCSR(),
	} {
		t.Run(name, func(t *testing.T) {
			mu, err := markov.StationaryDistribution(T)
			require.NoError(t, err)
			require.InDeltaSlice(t, want, mu, 1e-12)

			muT, err := matrix.VecMat(mu, T)
			require.NoError(t, err)
			require.InDeltaSlice(t, mu, muT, 1e-12)
		})
	}
}

// TestStationaryKinds checks the typed entry points and tiny chains.
func TestStationaryKinds(t *testing.T) {
	flip := []float64{0, 1, 1, 0} // periodic: eigenvalues ±1

	mu, err := markov.StationaryDense(mustDense(t, 2, flip...))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, mu, 1e-12)

	mu, err = markov.StationarySparse(mustCSR(t, 2, flip...))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, mu, 1e-12)

	mu, err = markov.StationaryDistribution(mustCSR(t, 1, 1))
	require.NoError(t, err)
	require.Equal(t, []float64{1}, mu)
}

// TestStationaryTransientFirstState puts the only transient state at index 0,
// where it must get zero mass on both storages.
func TestStationaryTransientFirstState(t *testing.T) {
	vals := []float64{
		0.5, 0.5, 0,
		0, 0.5, 0.5,
		0, 0.5, 0.5,
	}
	want := []float64{0, 0.5, 0.5}

	mu, err := markov.StationaryDense(mustDense(t, 3, vals...))
	require.NoError(t, err)
	require.InDeltaSlice(t, want, mu, 1e-12)

	mu, err = markov.StationarySparse(mustCSR(t, 3, vals...))
	require.NoError(t, err)
	require.InDeltaSlice(t, want, mu, 1e-12)

	// Relabelled with the transient state last.
	mu, err = markov.StationarySparse(mustCSR(t, 3,
		0.5, 0.5, 0,
		0.5, 0.5, 0,
		0.5, 0, 0.5,
	))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5, 0}, mu, 1e-12)
}

// TestStationaryErrors covers validation and solver failures.
func TestStationaryErrors(t *testing.T) {
	_, err := markov.StationaryDistribution(mustDense(t, 2, 0.5, 0.4, 0.5, 0.5))
	require.ErrorIs(t, err, markov.ErrNotStochastic)
	require.ErrorIs(t, err, markov.ErrValidation)
	require.ErrorIs(t, err, matrix.ErrNotStochastic)

	_, err = markov.StationaryDistribution(hide{mustDense(t, 1, 1)})
	require.ErrorIs(t, err, markov.ErrUnsupportedStorage)

	_, err = markov.StationaryDistribution(nil)
	require.ErrorIs(t, err, markov.ErrUnsupportedStorage)

	_, err = markov.StationaryDistribution(testutil.ScenarioChain().TransitionCSR(),
		markov.WithRestart(1), markov.WithMaxIterations(1))
	require.ErrorIs(t, err, markov.ErrNotConverged)
	require.ErrorIs(t, err, markov.ErrNumerical)
	require.ErrorIs(t, err, matrix.ErrNotConverged)
}

// TestOptionPanics checks that nonsensical options fail loudly.
func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { markov.WithCommittorTolerance(-1) })
	require.Panics(t, func() { markov.WithUnitEigenTolerance(-1) })
	require.Panics(t, func() { markov.WithMaxIterations(0) })
	require.Panics(t, func() { markov.WithRestart(0) })
	require.Panics(t, func() { markov.WithSolverTolerance(0) })
}
