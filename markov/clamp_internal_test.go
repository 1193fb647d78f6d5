// SPDX-License-Identifier: MIT
package markov

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestClampCommittor pins the tolerance-based clamp.
func TestClampCommittor(t *testing.T) {
	p, err := NewPartition(5, []int{0}, []int{4})
	require.NoError(t, err)
	o := DefaultOptions()

	q := []float64{0, -5e-11, 0.5, 1 + 5e-11, 1}
	require.NoError(t, clampCommittor(q, p, o, "forward"))
	require.Equal(t, []float64{0, 0, 0.5, 1, 1}, q)

	q = []float64{0, -1e-6, 0.5, 0.5, 1}
	require.ErrorIs(t, clampCommittor(q, p, o, "forward"), ErrCommittorOutOfRange)

	o.CommittorTolerance = 0
	q = []float64{0, -1e-15, 0.5, 0.5, 1}
	require.ErrorIs(t, clampCommittor(q, p, o, "forward"), ErrNumerical)
}

// TestNormalizeDistribution covers sign flips, tiny negatives and zero sums.
func TestNormalizeDistribution(t *testing.T) {
	v := []float64{-1, -3}
	require.NoError(t, normalizeDistribution(v, 1e-12))
	require.InDeltaSlice(t, []float64{0.25, 0.75}, v, 1e-15)

	v = []float64{1, -1e-14, 1}
	require.NoError(t, normalizeDistribution(v, 1e-12))
	require.Equal(t, 0.0, v[1])
	require.InDelta(t, 0.5, v[0], 1e-15)

	require.ErrorIs(t, normalizeDistribution([]float64{1, -1}, 1e-12), ErrNoUnitEigenvalue)
	require.ErrorIs(t, normalizeDistribution([]float64{1, -0.5}, 1e-12), ErrNoUnitEigenvalue)
}
