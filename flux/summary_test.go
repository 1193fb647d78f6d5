// SPDX-License-Identifier: MIT
package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvflux/flux"
	"github.com/katalvlaran/lvflux/internal/testutil"
)

// TestSummaryYAML renders a summary and reads it back.
func TestSummaryYAML(t *testing.T) {
	bd := testutil.ScenarioChain()
	rf, err := flux.New(bd.TransitionCSR(), setA, setB)
	require.NoError(t, err)

	s := rf.Summary()
	require.Equal(t, "sparse", s.Kind)
	require.Equal(t, 10, s.States)
	require.Equal(t, setA, s.A)
	require.Empty(t, s.RateError)
	require.InDelta(t, bd.Rate(1, 8), s.Rate, 1e-10)

	out, err := s.YAML()
	require.NoError(t, err)
	require.Contains(t, string(out), "kind: sparse")
	require.Contains(t, string(out), "a: [0, 1]")

	back, err := flux.ParseSummary(out)
	require.NoError(t, err)
	require.Equal(t, s, back)
}
