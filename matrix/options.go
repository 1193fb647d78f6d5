// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy and the
// iterative solver. This file defines:
//   - documented defaults (constants),
//   - SolverOption / SolverOptions for SolveGMRES (linsolve settings),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherSolverOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...SolverOption.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (row sums of stochastic matrices, AllClose-like comparisons).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true
)

// Iterative solver policy.
const (
	// DefaultSolverTolerance is the relative residual ‖b−Ax‖/‖b‖ accepted by SolveGMRES.
	DefaultSolverTolerance = 1e-13

	// DefaultMaxIterations caps the number of GMRES cycles (restarts).
	DefaultMaxIterations = 10000

	// DefaultRestart is the Krylov subspace dimension between GMRES restarts.
	// The effective value is min(DefaultRestart, n).
	DefaultRestart = 100
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid     = "matrix: WithTolerance: tol must lie in (0, 1)"
	panicMaxIterationsInvalid = "matrix: WithMaxIterations: iterations must be > 0"
	panicRestartInvalid       = "matrix: WithRestart: restart must be > 0"
	panicInitialGuessInvalid  = "matrix: WithInitialGuess: guess must be finite"
)

// ---------- Public option type (functional) ----------

// SolverOption mutates internal solver options. Safe to apply repeatedly.
// Constructors MUST panic only on nonsensical values (programmer error).
type SolverOption func(*SolverOptions)

// SolverOptions stores the effective solver configuration after applying
// SolverOption setters. Fields are unexported to prevent external mutation.
type SolverOptions struct {
	tol     float64   // (0, 1); DefaultSolverTolerance
	maxIter int       // > 0; DefaultMaxIterations
	restart int       // > 0; DefaultRestart (clamped to n at solve time)
	x0      []float64 // optional initial guess (nil ⇒ zero vector)
}

// Tolerance returns the resolved relative residual tolerance.
func (o SolverOptions) Tolerance() float64 { return o.tol }

// MaxIterations returns the resolved iteration budget.
func (o SolverOptions) MaxIterations() int { return o.maxIter }

// Restart returns the resolved Krylov dimension.
func (o SolverOptions) Restart() int { return o.restart }

// ---------- Constructors (WithX) ----------

// WithTolerance sets the relative residual tolerance of SolveGMRES.
// Implementation:
//   - Stage 1: validate 0 < tol < 1.
//   - Stage 2: return a setter that writes tol.
//
// Errors:
//   - Panics with a stable message when tol is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - 1e-12..1e-14 is a good range for double precision transition matrices.
func WithTolerance(tol float64) SolverOption {
	if math.IsNaN(tol) || tol <= 0 || tol >= 1 {
		panic(panicToleranceInvalid)
	}

	return func(o *SolverOptions) { o.tol = tol }
}

// WithMaxIterations caps the number of GMRES cycles; each cycle runs up to
// restart Arnoldi steps.
// Panics when n <= 0.
func WithMaxIterations(n int) SolverOption {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}

	return func(o *SolverOptions) { o.maxIter = n }
}

// WithRestart sets the Krylov subspace dimension m of GMRES(m).
// Larger m converges in fewer outer cycles at O(n·m) extra memory.
// Panics when m <= 0.
func WithRestart(m int) SolverOption {
	if m <= 0 {
		panic(panicRestartInvalid)
	}

	return func(o *SolverOptions) { o.restart = m }
}

// WithInitialGuess starts the iteration from x0 instead of the zero vector.
// The slice is copied. Length is checked at solve time (ErrDimensionMismatch).
// Panics when x0 contains NaN or ±Inf.
func WithInitialGuess(x0 []float64) SolverOption {
	for _, v := range x0 {
		if isNonFinite(v) {
			panic(panicInitialGuessInvalid)
		}
	}
	cp := append([]float64(nil), x0...)

	return func(o *SolverOptions) { o.x0 = cp }
}

// --------------------------- Option Resolution ---------------------------

// NewSolverOptions resolves option setters against documented defaults.
// Pure function; last-writer-wins semantics.
func NewSolverOptions(opts ...SolverOption) SolverOptions {
	return gatherSolverOptions(opts...)
}

// gatherSolverOptions applies user-provided setters on top of defaults.
// Implementation:
//   - Stage 1: start from the Default* constants.
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherSolverOptions(user ...SolverOption) SolverOptions {
	o := SolverOptions{
		tol:     DefaultSolverTolerance,
		maxIter: DefaultMaxIterations,
		restart: DefaultRestart,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // apply in order; last-writer-wins semantics
		}
	}

	return o
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
