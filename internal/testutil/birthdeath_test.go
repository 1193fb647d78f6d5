// SPDX-License-Identifier: MIT
package testutil

import (
	"testing"

	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
)

// TestScenarioChainClosedForms pins the oracle values of the 10-state chain.
func TestScenarioChainClosedForms(t *testing.T) {
	bd := ScenarioChain()
	T := bd.TransitionMatrix()
	require.NoError(t, matrix.ValidateRowStochastic(T, 1e-12))

	mu := bd.Stationary()
	muT, err := matrix.VecMat(mu, T)
	require.NoError(t, err)
	require.InDeltaSlice(t, mu, muT, 1e-15)

	qp := bd.ForwardCommittor(1, 8)
	qm := bd.BackwardCommittor(1, 8)
	require.Equal(t, []float64{0, 0}, qp[:2])
	require.Equal(t, []float64{1, 1}, qp[8:])
	require.Equal(t, 1.0, qm[0])
	require.Equal(t, 0.0, qm[9])

	require.InDelta(t, 7.500075000750011e-4, bd.TotalFlux(1, 8), 1e-15)
	require.InDelta(t, 8.151287903488752e-4, bd.Rate(1, 8), 1e-15)
}

// TestNewBirthDeathRejects checks the boundary-rate contract.
func TestNewBirthDeathRejects(t *testing.T) {
	_, err := NewBirthDeath([]float64{0.1, 0.5}, []float64{0.5, 0})
	require.ErrorIs(t, err, ErrBadChain)
	_, err = NewBirthDeath([]float64{0, 0.5}, []float64{0.5, 0.5})
	require.ErrorIs(t, err, ErrBadChain)
	_, err = NewBirthDeath([]float64{0}, []float64{0})
	require.ErrorIs(t, err, ErrBadChain)
}
