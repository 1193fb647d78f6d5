// SPDX-License-Identifier: MIT
package markov_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/katalvlaran/lvflux/internal/testutil"
	"github.com/katalvlaran/lvflux/markov"
	"github.com/katalvlaran/lvflux/matrix"
	"github.com/stretchr/testify/require"
)

var (
	setA = []int{0, 1}
	setB = []int{8, 9}
)

// TestCommittorMatchesOracle checks both directions on both storages.
func TestCommittorMatchesOracle(t *testing.T) {
	bd := testutil.ScenarioChain()
	wantPlus := bd.ForwardCommittor(1, 8)
	wantMinus := bd.BackwardCommittor(1, 8)

	for name, T := range map[string]matrix.Matrix{
		"dense":  bd.TransitionMatrix(),
		"sparse": bd.TransitionCSR(),
	} {
		t.Run(name, func(t *testing.T) {
			qp, err := markov.ForwardCommittor(T, setA, setB)
			require.NoError(t, err)
			require.InDeltaSlice(t, wantPlus, qp, 1e-10)
			require.Equal(t, 0.0, qp[0])
			require.Equal(t, 1.0, qp[9])

			qm, err := markov.BackwardCommittor(T, setA, setB)
			require.NoError(t, err)
			require.InDeltaSlice(t, wantMinus, qm, 1e-10)
			require.Equal(t, 1.0, qm[0])
			require.Equal(t, 0.0, qm[9])

			// A supplied distribution gives the same backward committor.
			qm2, err := markov.BackwardCommittor(T, setA, setB, markov.WithStationary(bd.Stationary()))
			require.NoError(t, err)
			require.InDeltaSlice(t, qm, qm2, 1e-12)
		})
	}
}

// TestCommittorShortCircuit verifies the closed form when A ∪ B covers all
// states and that no solver ran.
func TestCommittorShortCircuit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	T := mustCSR(t, 3,
		0.5, 0.5, 0,
		0.25, 0.5, 0.25,
		0, 0.5, 0.5,
	)

	qp, err := markov.Committor(T, []int{0, 1}, []int{2}, true, markov.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 1}, qp)

	qm, err := markov.Committor(T, []int{0, 1, 1}, []int{2}, false, markov.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 0}, qm)

	require.Contains(t, buf.String(), "committor short-circuit")
	require.NotContains(t, buf.String(), "committor solved")
	require.NotContains(t, buf.String(), "stationary distribution")
}

// TestCommittorValidation walks the set and vector checks.
func TestCommittorValidation(t *testing.T) {
	T := testutil.ScenarioChain().TransitionMatrix()
	tests := []struct {
		name string
		A, B []int
		opts []markov.Option
		want error
	}{
		{"empty A", nil, setB, nil, markov.ErrEmptySet},
		{"empty B", setA, []int{}, nil, markov.ErrEmptySet},
		{"overlap", setA, []int{1, 9}, nil, markov.ErrOverlappingSets},
		{"out of range", setA, []int{10}, nil, markov.ErrStateOutOfRange},
		{"negative index", []int{-1}, setB, nil, markov.ErrStateOutOfRange},
		{"short mu", setA, setB, []markov.Option{markov.WithStationary([]float64{1})}, markov.ErrLengthMismatch},
		{"negative mu", setA, setB, []markov.Option{markov.WithStationary([]float64{1.1, -0.1, 0, 0, 0, 0, 0, 0, 0, 0})}, markov.ErrInvalidVector},
		{"unnormalized mu", setA, setB, []markov.Option{markov.WithStationary([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1})}, markov.ErrInvalidVector},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := markov.BackwardCommittor(T, tc.A, tc.B, tc.opts...)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, markov.ErrValidation)
		})
	}
}

// TestCommittorSingular uses a transition region with an absorbing state.
func TestCommittorSingular(t *testing.T) {
	vals := []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0.25, 0.25, 0.5, 0,
		0, 0, 0, 1, // never reaches A ∪ B
	}
	for name, T := range map[string]matrix.Matrix{
		"dense":  mustDense(t, 4, vals...),
		"sparse": mustCSR(t, 4, vals...),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := markov.ForwardCommittor(T, []int{0}, []int{1})
			require.ErrorIs(t, err, markov.ErrSingularSystem)
			require.ErrorIs(t, err, markov.ErrNumerical)
		})
	}
}

// TestBackwardCommittorZeroMass rejects mu ≤ 0 on the transition region.
func TestBackwardCommittorZeroMass(t *testing.T) {
	T := mustDense(t, 3,
		0.5, 0.5, 0,
		0.25, 0.5, 0.25,
		0, 0.5, 0.5,
	)
	_, err := markov.BackwardCommittor(T, []int{0}, []int{2}, markov.WithStationary([]float64{0.5, 0, 0.5}))
	require.ErrorIs(t, err, markov.ErrSingularSystem)
}

// TestPartition checks duplicate collapsing and the index map.
func TestPartition(t *testing.T) {
	p, err := markov.NewPartition(6, []int{3, 0, 3}, []int{5})
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, p.A)
	require.Equal(t, []int{5}, p.B)
	require.Equal(t, []int{1, 2, 4}, p.C)
	require.Equal(t, 2, p.Index(4))
	require.Equal(t, -1, p.Index(3))
	require.True(t, p.InA(3))
	require.True(t, p.InB(5))
}
