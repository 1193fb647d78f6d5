// SPDX-License-Identifier: MIT
package flux_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvflux/flux"
	"github.com/katalvlaran/lvflux/internal/testutil"
	"github.com/katalvlaran/lvflux/matrix"
)

// TestNewMatchesOracle runs cold and warm starts on both storages against
// the closed-form birth–death chain.
func TestNewMatchesOracle(t *testing.T) {
	bd := testutil.ScenarioChain()
	warm := []flux.Option{
		flux.WithStationaryDistribution(bd.Stationary()),
		flux.WithBackwardCommittor(bd.BackwardCommittor(1, 8)),
		flux.WithForwardCommittor(bd.ForwardCommittor(1, 8)),
	}

	for name, T := range map[string]matrix.Matrix{
		"dense":  bd.TransitionMatrix(),
		"sparse": bd.TransitionCSR(),
	} {
		for start, opts := range map[string][]flux.Option{"cold": nil, "warm": warm} {
			t.Run(name+"/"+start, func(t *testing.T) {
				rf, err := flux.New(T, setA, setB, opts...)
				require.NoError(t, err)
				require.Equal(t, matrix.KindOf(T), rf.Kind())
				require.Equal(t, 10, rf.N())

				require.InDeltaSlice(t, bd.Stationary(), rf.StationaryDistribution(), 1e-12)
				qm, qp := rf.BackwardCommittor(), rf.ForwardCommittor()
				require.InDeltaSlice(t, bd.BackwardCommittor(1, 8), qm, 1e-10)
				require.InDeltaSlice(t, bd.ForwardCommittor(1, 8), qp, 1e-10)
				assert.Equal(t, 1.0, qm[0])
				assert.Equal(t, 0.0, qm[9])
				assert.Equal(t, 0.0, qp[0])
				assert.Equal(t, 1.0, qp[9])

				gross, net := rf.GrossFlux(), rf.NetFlux()
				require.Equal(t, matrix.KindOf(T), matrix.KindOf(gross))
				require.Equal(t, matrix.KindOf(T), matrix.KindOf(net))
				requireClose(t, bd.GrossFlux(1, 8), gross, 1e-11)
				requireClose(t, bd.NetFlux(1, 8), net, 1e-11)

				require.InDelta(t, bd.TotalFlux(1, 8), rf.TotalFlux(), 1e-11)
				k, err := rf.Rate()
				require.NoError(t, err)
				require.InDelta(t, bd.Rate(1, 8), k, 1e-10)
				mfpt, err := rf.MFPT()
				require.NoError(t, err)
				require.InDelta(t, 1/k, mfpt, 1e-9)
			})
		}
	}
}

// TestNewDenseSparseAgree compares every exposed property across storages.
func TestNewDenseSparseAgree(t *testing.T) {
	bd := testutil.ScenarioChain()
	d, err := flux.New(bd.TransitionMatrix(), setA, setB)
	require.NoError(t, err)
	s, err := flux.New(bd.TransitionCSR(), setA, setB)
	require.NoError(t, err)

	require.InDeltaSlice(t, d.StationaryDistribution(), s.StationaryDistribution(), 1e-12)
	require.InDeltaSlice(t, d.BackwardCommittor(), s.BackwardCommittor(), 1e-10)
	require.InDeltaSlice(t, d.ForwardCommittor(), s.ForwardCommittor(), 1e-10)
	requireClose(t, d.GrossFlux(), s.GrossFlux(), 1e-11)
	requireClose(t, d.NetFlux(), s.NetFlux(), 1e-11)
	require.InDelta(t, d.TotalFlux(), s.TotalFlux(), 1e-11)
	kd, _ := d.Rate()
	ks, _ := s.Rate()
	require.InDelta(t, kd, ks, 1e-10)
}

// TestNewFluxProperties checks zero diagonal, antisymmetric support and
// conservation of the facade output.
func TestNewFluxProperties(t *testing.T) {
	rf, err := flux.New(testutil.ScenarioChain().TransitionCSR(), setA, setB)
	require.NoError(t, err)
	gross, net := rf.GrossFlux(), rf.NetFlux()

	require.NoError(t, matrix.Visit(gross, func(i, j int, v float64) bool {
		assert.GreaterOrEqual(t, v, 0.0)
		if i == j {
			assert.Zero(t, v)
		}
		return true
	}))
	require.NoError(t, matrix.Visit(net, func(i, j int, v float64) bool {
		back, err := net.At(j, i)
		require.NoError(t, err)
		assert.False(t, v > 0 && back > 0, "both directions positive at (%d,%d)", i, j)
		return true
	}))

	into, err := flux.TotalFluxInto(net, setB)
	require.NoError(t, err)
	require.InDelta(t, rf.TotalFlux(), into, 1e-12)
}

// TestNewWarmStartSkipsSolvers verifies that supplied vectors are used as is.
func TestNewWarmStartSkipsSolvers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	bd := testutil.ScenarioChain()

	_, err := flux.New(bd.TransitionCSR(), setA, setB,
		flux.WithLogger(logger),
		flux.WithStationaryDistribution(bd.Stationary()),
		flux.WithBackwardCommittor(bd.BackwardCommittor(1, 8)),
		flux.WithForwardCommittor(bd.ForwardCommittor(1, 8)),
	)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "reactive flux computed")
	require.NotContains(t, buf.String(), "committor solved")
	require.NotContains(t, buf.String(), "msg=\"stationary distribution\"")

	// Only q+ missing: exactly one committor solve.
	buf.Reset()
	_, err = flux.New(bd.TransitionCSR(), setA, setB,
		flux.WithLogger(logger),
		flux.WithStationaryDistribution(bd.Stationary()),
		flux.WithBackwardCommittor(bd.BackwardCommittor(1, 8)),
	)
	require.NoError(t, err)
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("committor solved")))
}

// TestNewShortCircuit covers A ∪ B = all states.
func TestNewShortCircuit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	T := mustDense(t, 3,
		0.5, 0.5, 0,
		0.25, 0.5, 0.25,
		0, 0.5, 0.5,
	)
	rf, err := flux.New(T, []int{0, 1}, []int{2}, flux.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 0}, rf.BackwardCommittor())
	require.Equal(t, []float64{0, 0, 1}, rf.ForwardCommittor())
	require.InDelta(t, 0.125, rf.TotalFlux(), 1e-12)
	k, err := rf.Rate()
	require.NoError(t, err)
	require.InDelta(t, 1.0/6, k, 1e-12)
	require.Contains(t, buf.String(), "committor short-circuit")
	require.NotContains(t, buf.String(), "committor solved")
}

// TestNewValidation walks the construction errors.
func TestNewValidation(t *testing.T) {
	bd := testutil.ScenarioChain()
	T := bd.TransitionMatrix()
	qp := bd.ForwardCommittor(1, 8)
	badQp := append([]float64(nil), qp...)
	badQp[0] = 0.5

	tests := []struct {
		name string
		T    matrix.Matrix
		A, B []int
		opts []flux.Option
		want error
	}{
		{"foreign storage", hide{T}, setA, setB, nil, flux.ErrUnsupportedStorage},
		{"nil matrix", nil, setA, setB, nil, flux.ErrUnsupportedStorage},
		{"not stochastic", mustDense(t, 2, 0.5, 0.6, 0.5, 0.5), []int{0}, []int{1}, nil, flux.ErrNotStochastic},
		{"empty A", T, nil, setB, nil, flux.ErrEmptySet},
		{"overlap", T, setA, []int{1, 9}, nil, flux.ErrOverlappingSets},
		{"out of range", T, setA, []int{12}, nil, flux.ErrStateOutOfRange},
		{"short mu", T, setA, setB, []flux.Option{flux.WithStationaryDistribution([]float64{1})}, flux.ErrLengthMismatch},
		{"unnormalized mu", T, setA, setB, []flux.Option{flux.WithStationaryDistribution(make([]float64, 10))}, flux.ErrInvalidVector},
		{"q+ boundary", T, setA, setB, []flux.Option{flux.WithForwardCommittor(badQp)}, flux.ErrBoundaryMismatch},
		{"q- length", T, setA, setB, []flux.Option{flux.WithBackwardCommittor(qp[:3])}, flux.ErrLengthMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rf, err := flux.New(tc.T, tc.A, tc.B, tc.opts...)
			require.Nil(t, rf)
			require.ErrorIs(t, err, tc.want)
			require.ErrorIs(t, err, flux.ErrValidation)
		})
	}
}

// TestNewNumericalFailure surfaces a singular committor system.
func TestNewNumericalFailure(t *testing.T) {
	T := mustCSR(t, 4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0.25, 0.25, 0.5, 0,
		0, 0, 0, 1,
	)
	rf, err := flux.New(T, []int{0}, []int{1}, flux.WithStationaryDistribution([]float64{0.25, 0.25, 0.25, 0.25}))
	require.Nil(t, rf)
	require.ErrorIs(t, err, flux.ErrSingularSystem)
	require.ErrorIs(t, err, flux.ErrNumerical)
}

// TestNewDegenerateRate keeps the facade but reports the rate error.
func TestNewDegenerateRate(t *testing.T) {
	// State 0 is transient: mu_A = 0, so Σ mu·q− vanishes.
	T := mustDense(t, 3,
		0, 1, 0,
		0, 0.5, 0.5,
		0, 0.5, 0.5,
	)
	rf, err := flux.New(T, []int{0}, []int{2}, flux.WithStationaryDistribution([]float64{0, 0.5, 0.5}))
	require.NoError(t, err)
	require.Zero(t, rf.TotalFlux())

	_, err = rf.Rate()
	require.ErrorIs(t, err, flux.ErrDegenerateRate)
	_, err = rf.MFPT()
	require.ErrorIs(t, err, flux.ErrDegenerateRate)
	require.NotEmpty(t, rf.Summary().RateError)
	require.NotEmpty(t, rf.Summary().MFPTError)
}

// TestNewZeroRate separates a valid zero rate from an undefined MFPT: A and
// B sit in different closed classes, so no reactive trajectory exists while
// Σ mu·q− stays positive.
func TestNewZeroRate(t *testing.T) {
	vals := []float64{
		0.5, 0.5, 0, 0,
		0.5, 0.5, 0, 0,
		0, 0, 0.5, 0.5,
		0, 0, 0.5, 0.5,
	}
	mu := []float64{0.25, 0.25, 0.25, 0.25}

	for name, T := range map[string]matrix.Matrix{
		"dense":  mustDense(t, 4, vals...),
		"sparse": mustCSR(t, 4, vals...),
	} {
		t.Run(name, func(t *testing.T) {
			rf, err := flux.New(T, []int{0}, []int{3}, flux.WithStationaryDistribution(mu))
			require.NoError(t, err)
			require.InDeltaSlice(t, []float64{1, 1, 0, 0}, rf.BackwardCommittor(), 1e-12)
			require.InDeltaSlice(t, []float64{0, 0, 1, 1}, rf.ForwardCommittor(), 1e-12)
			require.Zero(t, rf.TotalFlux())

			k, err := rf.Rate()
			require.NoError(t, err)
			require.Zero(t, k)
			_, err = rf.MFPT()
			require.ErrorIs(t, err, flux.ErrDegenerateRate)

			s := rf.Summary()
			require.Empty(t, s.RateError)
			require.Zero(t, s.Rate)
			require.NotEmpty(t, s.MFPTError)
		})
	}
}

// TestAccessorsReturnCopies guards the immutability of the facade.
func TestAccessorsReturnCopies(t *testing.T) {
	rf, err := flux.New(testutil.ScenarioChain().TransitionMatrix(), setA, setB)
	require.NoError(t, err)

	mu := rf.StationaryDistribution()
	mu[0] = 42
	require.NotEqual(t, 42.0, rf.StationaryDistribution()[0])

	a := rf.A()
	a[0] = 7
	require.Equal(t, setA, rf.A())

	g := rf.GrossFlux()
	require.NoError(t, g.Set(2, 3, 42))
	v, err := rf.GrossFlux().At(2, 3)
	require.NoError(t, err)
	require.NotEqual(t, 42.0, v)
}

// TestNewWithConfig applies a parsed configuration to a sparse solve.
func TestNewWithConfig(t *testing.T) {
	cfg, err := flux.ParseConfig([]byte("solver:\n  tolerance: 1e-12\n  restart: 5\n"))
	require.NoError(t, err)

	bd := testutil.ScenarioChain()
	rf, err := flux.New(bd.TransitionCSR(), setA, setB, flux.WithConfig(cfg))
	require.NoError(t, err)
	k, err := rf.Rate()
	require.NoError(t, err)
	require.InDelta(t, bd.Rate(1, 8), k, 1e-10)

	_, err = flux.New(bd.TransitionCSR(), setA, setB, flux.WithSolver(0, 1, 1))
	require.ErrorIs(t, err, flux.ErrNotConverged)
}
