// SPDX-License-Identifier: MIT
package flux_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvflux/flux"
)

// TestParseConfig decodes partial documents on top of the defaults.
func TestParseConfig(t *testing.T) {
	cfg, err := flux.ParseConfig(nil)
	require.NoError(t, err)
	require.Equal(t, flux.DefaultConfig(), cfg)

	cfg, err = flux.ParseConfig([]byte(`
committor_tolerance: 1e-8
rate_epsilon: 0
solver:
  tolerance: 1e-12
  max_iterations: 500
  restart: 30
`))
	require.NoError(t, err)
	require.Equal(t, 1e-8, cfg.CommittorTolerance)
	require.Equal(t, flux.DefaultConfig().StochasticTolerance, cfg.StochasticTolerance)
	require.Zero(t, cfg.RateEpsilon)
	require.Equal(t, flux.SolverConfig{Tolerance: 1e-12, MaxIterations: 500, Restart: 30}, cfg.Solver)

	out, err := cfg.YAML()
	require.NoError(t, err)
	again, err := flux.ParseConfig(out)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

// TestParseConfigErrors rejects unknown keys, bad YAML and bad values.
func TestParseConfigErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":        "tolerance: 1\n",
		"malformed":          "solver: [1, 2\n",
		"negative tolerance": "committor_tolerance: -1\n",
		"solver tolerance":   "solver:\n  tolerance: 2\n",
		"negative restart":   "solver:\n  restart: -3\n",
		"negative budget":    "solver:\n  max_iterations: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := flux.ParseConfig([]byte(doc))
			require.ErrorIs(t, err, flux.ErrInvalidConfig)
			require.ErrorIs(t, err, flux.ErrValidation)
		})
	}
}

// TestOptionPanics checks that nonsensical options fail loudly.
func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { flux.WithRateEpsilon(-1) })
	require.Panics(t, func() { flux.WithCommittorTolerance(-1) })
	require.Panics(t, func() { flux.WithStochasticTolerance(-1) })
	require.Panics(t, func() { flux.WithUnitEigenTolerance(-1) })
	require.Panics(t, func() { flux.WithSolver(0, -1, 0) })
	require.Panics(t, func() { flux.WithSolver(1, 0, 0) })
	require.Panics(t, func() { flux.WithConfig(flux.Config{RateEpsilon: -1}) })
	require.NotPanics(t, func() { flux.WithConfig(flux.DefaultConfig()) })
}
