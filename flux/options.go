// SPDX-License-Identifier: MIT

// Package flux: functional configuration of the facade and the metrics.
// Defaults live in one place; constructors panic on nonsensical values
// (programmer error), while Config (config.go) reports them as errors.
package flux

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvflux/markov"
)

// Defaults (single source of truth).
const (
	// DefaultRateEpsilon is the smallest accepted rate denominator
	// Σ_i mu_i·q−_i. Anything at or below it is ErrDegenerateRate.
	DefaultRateEpsilon = 1e-300

	// DefaultPathwayFraction is the share of the total flux that Pathways
	// tries to explain before stopping.
	DefaultPathwayFraction = 1.0

	// DefaultMaxPaths caps the number of pathways returned by Pathways.
	DefaultMaxPaths = 1000

	// DefaultProductionTolerance separates producing/consuming states from
	// states whose flux production is round-off.
	DefaultProductionTolerance = 1e-12
)

// Panic messages of option constructors.
const (
	panicTolerance = "flux: tolerance must be finite and >= 0"
	panicSolverTol = "flux: solver tolerance must lie in [0, 1)"
	panicCount     = "flux: count must be > 0"
	panicFraction  = "flux: fraction must lie in (0, 1]"
	panicConfig    = "flux: WithConfig: invalid configuration"
)

// Options configures New and the stand-alone metrics.
//
// Logger              – structured logger; never nil after DefaultOptions.
// Stationary          – precomputed mu (nil ⇒ computed).
// BackwardCommittor   – precomputed q− (nil ⇒ computed).
// ForwardCommittor    – precomputed q+ (nil ⇒ computed).
// StochasticTolerance – row-sum tolerance for T and sum tolerance for mu.
// UnitEigenTolerance  – accepted |λ−1| of the dense stationary solver.
// CommittorTolerance  – clamp window outside [0,1]; also the boundary
// tolerance of supplied committors.
// RateEpsilon         – smallest accepted rate denominator.
// SolverTolerance     – GMRES relative residual (0 ⇒ matrix default).
// MaxIterations       – GMRES restart-cycle budget (0 ⇒ matrix default).
// Restart             – GMRES Krylov dimension (0 ⇒ matrix default).
type Options struct {
	Logger              *slog.Logger
	Stationary          []float64
	BackwardCommittor   []float64
	ForwardCommittor    []float64
	StochasticTolerance float64
	UnitEigenTolerance  float64
	CommittorTolerance  float64
	RateEpsilon         float64
	SolverTolerance     float64
	MaxIterations       int
	Restart             int
}

// Option represents a functional option for New, Rate and MFPT.
type Option func(*Options)

// DefaultOptions returns Options with the documented defaults and a logger
// that discards every record.
func DefaultOptions() Options {
	return Options{
		Logger:              slog.New(slog.NewTextHandler(io.Discard, nil)),
		StochasticTolerance: markov.DefaultStochasticTolerance,
		UnitEigenTolerance:  markov.DefaultUnitEigenTolerance,
		CommittorTolerance:  markov.DefaultCommittorTolerance,
		RateEpsilon:         DefaultRateEpsilon,
	}
}

// WithLogger routes solver and facade records to l. A nil l keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStationaryDistribution supplies mu. The slice is copied and validated
// at construction (length, finiteness, non-negativity, sum).
func WithStationaryDistribution(mu []float64) Option {
	cp := append([]float64(nil), mu...)
	return func(o *Options) { o.Stationary = cp }
}

// WithBackwardCommittor supplies q−. The slice is copied and validated at
// construction (length, finiteness, 1 on A, 0 on B).
func WithBackwardCommittor(q []float64) Option {
	cp := append([]float64(nil), q...)
	return func(o *Options) { o.BackwardCommittor = cp }
}

// WithForwardCommittor supplies q+. The slice is copied and validated at
// construction (length, finiteness, 0 on A, 1 on B).
func WithForwardCommittor(q []float64) Option {
	cp := append([]float64(nil), q...)
	return func(o *Options) { o.ForwardCommittor = cp }
}

// WithStochasticTolerance sets the row-sum tolerance of T.
func WithStochasticTolerance(eps float64) Option {
	mustTolerance(eps)
	return func(o *Options) { o.StochasticTolerance = eps }
}

// WithUnitEigenTolerance sets the accepted |λ−1| of the dense stationary solver.
func WithUnitEigenTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.UnitEigenTolerance = tol }
}

// WithCommittorTolerance sets the committor clamp window and the boundary
// tolerance of supplied committors.
func WithCommittorTolerance(tol float64) Option {
	mustTolerance(tol)
	return func(o *Options) { o.CommittorTolerance = tol }
}

// WithRateEpsilon sets the smallest accepted rate denominator.
func WithRateEpsilon(eps float64) Option {
	mustTolerance(eps)
	return func(o *Options) { o.RateEpsilon = eps }
}

// WithSolver sets the GMRES tolerance, iteration budget and restart length
// used by the sparse paths. Zero keeps the matrix package default.
func WithSolver(tol float64, maxIter, restart int) Option {
	mustTolerance(tol)
	if tol >= 1 {
		panic(panicSolverTol)
	}
	if maxIter < 0 || restart < 0 {
		panic(panicCount)
	}
	return func(o *Options) {
		o.SolverTolerance, o.MaxIterations, o.Restart = tol, maxIter, restart
	}
}

// WithConfig applies every field of c. Panics when c.Validate fails; use
// ParseConfig to obtain a validated Config from YAML.
func WithConfig(c Config) Option {
	if err := c.Validate(); err != nil {
		panic(panicConfig + ": " + err.Error())
	}
	return func(o *Options) {
		o.StochasticTolerance = c.StochasticTolerance
		o.UnitEigenTolerance = c.UnitEigenTolerance
		o.CommittorTolerance = c.CommittorTolerance
		o.RateEpsilon = c.RateEpsilon
		o.SolverTolerance = c.Solver.Tolerance
		o.MaxIterations = c.Solver.MaxIterations
		o.Restart = c.Solver.Restart
	}
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

// markovOptions translates o into the options of the markov solvers.
// The supplied vectors are not forwarded; New passes mu explicitly.
func (o Options) markovOptions() []markov.Option {
	opts := []markov.Option{
		markov.WithLogger(o.Logger),
		markov.WithStochasticTolerance(o.StochasticTolerance),
		markov.WithUnitEigenTolerance(o.UnitEigenTolerance),
		markov.WithCommittorTolerance(o.CommittorTolerance),
	}
	if o.SolverTolerance > 0 {
		opts = append(opts, markov.WithSolverTolerance(o.SolverTolerance))
	}
	if o.MaxIterations > 0 {
		opts = append(opts, markov.WithMaxIterations(o.MaxIterations))
	}
	if o.Restart > 0 {
		opts = append(opts, markov.WithRestart(o.Restart))
	}

	return opts
}

// PathwayOptions configures Pathways.
//
// Fraction – stop once this share of the total flux is explained, in (0,1].
// MaxPaths – upper bound on the number of pathways.
type PathwayOptions struct {
	Fraction float64
	MaxPaths int
}

// PathwayOption represents a functional option for Pathways.
type PathwayOption func(*PathwayOptions)

// WithFraction sets the share of the total flux to explain. Panics outside (0,1].
func WithFraction(f float64) PathwayOption {
	if !(f > 0 && f <= 1) {
		panic(panicFraction)
	}
	return func(o *PathwayOptions) { o.Fraction = f }
}

// WithMaxPaths caps the number of pathways. Panics when n <= 0.
func WithMaxPaths(n int) PathwayOption {
	if n <= 0 {
		panic(panicCount)
	}
	return func(o *PathwayOptions) { o.MaxPaths = n }
}

func gatherPathway(user ...PathwayOption) PathwayOptions {
	o := PathwayOptions{Fraction: DefaultPathwayFraction, MaxPaths: DefaultMaxPaths}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}
