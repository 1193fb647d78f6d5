// SPDX-License-Identifier: MIT

package markov

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvflux/matrix"
)

// Defaults (single source of truth).
const (
	// DefaultStochasticTolerance bounds |Σ_j T[i,j] − 1| for every row, and
	// |Σ mu − 1| for a supplied stationary distribution.
	DefaultStochasticTolerance = 1e-9

	// DefaultUnitEigenTolerance bounds |λ − 1| for the dense eigen-solver.
	DefaultUnitEigenTolerance = 1e-8

	// DefaultCommittorTolerance is the largest excursion outside [0,1] that is
	// clamped instead of reported as ErrCommittorOutOfRange.
	DefaultCommittorTolerance = 1e-10
)

// Panic messages of option constructors.
const (
	panicTolerance  = "markov: tolerance must be finite and >= 0"
	panicIterations = "markov: iteration count must be > 0"
)

// Options configures the stationary and committor solvers.
//
// Stationary          – precomputed stationary distribution (nil ⇒ computed).
// Logger              – structured logger; never nil after DefaultOptions.
// StochasticTolerance – row-sum tolerance of the transition matrix check.
// UnitEigenTolerance  – accepted |λ − 1| of the dense eigen-solver.
// CommittorTolerance  – clamp window outside [0,1].
// Solver              – GMRES options used by the sparse paths.
type Options struct {
	Stationary          []float64
	Logger              *slog.Logger
	StochasticTolerance float64
	UnitEigenTolerance  float64
	CommittorTolerance  float64
	Solver              []matrix.SolverOption
}

// Option represents a functional option for the solvers.
type Option func(*Options)

// DefaultOptions returns Options initialized with the documented defaults and
// a logger that discards every record.
func DefaultOptions() Options {
	return Options{
		Logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
		StochasticTolerance: DefaultStochasticTolerance,
		UnitEigenTolerance:  DefaultUnitEigenTolerance,
		CommittorTolerance:  DefaultCommittorTolerance,
	}
}

// WithStationary supplies mu so the backward committor skips the stationary
// solve. The slice is copied; it is validated when used.
func WithStationary(mu []float64) Option {
	cp := append([]float64(nil), mu...)
	return func(o *Options) { o.Stationary = cp }
}

// WithLogger routes debug and warning records to l. A nil l keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStochasticTolerance sets the row-sum tolerance. Panics on a negative or
// non-finite value.
func WithStochasticTolerance(eps float64) Option {
	mustTolerance(eps)
	return func(o *Options) { o.StochasticTolerance = eps }
}

// WithUnitEigenTolerance sets the accepted distance of the selected
// eigenvalue from 1.
func WithUnitEigenTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.UnitEigenTolerance = tol }
}

// WithCommittorTolerance sets the clamp window outside [0,1].
// Zero disables clamping: every excursion becomes ErrCommittorOutOfRange.
func WithCommittorTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.CommittorTolerance = tol }
}

// WithSolverTolerance sets the relative residual tolerance of GMRES.
func WithSolverTolerance(tol float64) Option {
	set := matrix.WithTolerance(tol) // panics on invalid tol
	return func(o *Options) { o.Solver = append(o.Solver, set) }
}

// WithMaxIterations caps the number of GMRES restart cycles.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicIterations)
	}
	set := matrix.WithMaxIterations(n)
	return func(o *Options) { o.Solver = append(o.Solver, set) }
}

// WithRestart sets the GMRES Krylov dimension.
func WithRestart(m int) Option {
	if m <= 0 {
		panic(panicIterations)
	}
	set := matrix.WithRestart(m)
	return func(o *Options) { o.Solver = append(o.Solver, set) }
}

func mustTolerance(v float64) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		panic(panicTolerance)
	}
}

// gather applies user setters on top of DefaultOptions (last-writer-wins).
func gather(user ...Option) Options {
	o := DefaultOptions()
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
