// SPDX-License-Identifier: MIT
// Package markov: sentinel error set.
//
// Errors come in three classes (ErrValidation, ErrNumerical, ErrDegenerateRate).
// Every specific sentinel wraps its class, so errors.Is matches both:
//
//	errors.Is(err, ErrEmptySet)   // the specific cause
//	errors.Is(err, ErrValidation) // its class
//
// Failures reported by the matrix package are joined with the markov sentinel
// (fmt.Errorf("%w: %w", ErrX, cause)), so matrix sentinels keep matching too.

package markov

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	// ErrValidation marks malformed input detected before any solve.
	ErrValidation = errors.New("markov: validation error")

	// ErrNumerical marks a solve that failed or produced inconsistent values.
	ErrNumerical = errors.New("markov: numerical error")

	// ErrDegenerateRate marks a rate whose denominator is zero or negligible.
	ErrDegenerateRate = errors.New("markov: degenerate rate")
)

// Validation errors.
var (
	// ErrEmptySet indicates that A or B has no states.
	ErrEmptySet = fmt.Errorf("%w: empty state set", ErrValidation)

	// ErrOverlappingSets indicates that A and B share a state.
	ErrOverlappingSets = fmt.Errorf("%w: state sets overlap", ErrValidation)

	// ErrStateOutOfRange indicates a state index outside [0, N).
	ErrStateOutOfRange = fmt.Errorf("%w: state index out of range", ErrValidation)

	// ErrLengthMismatch indicates a vector whose length differs from N.
	ErrLengthMismatch = fmt.Errorf("%w: vector length mismatch", ErrValidation)

	// ErrUnsupportedStorage indicates a matrix that is neither *matrix.Dense
	// nor *matrix.CSR, or a mix of both where one kind is required.
	ErrUnsupportedStorage = fmt.Errorf("%w: unsupported matrix storage", ErrValidation)

	// ErrNotStochastic indicates a transition matrix that is not square,
	// has negative or non-finite entries, or has a row not summing to 1.
	ErrNotStochastic = fmt.Errorf("%w: not a row-stochastic matrix", ErrValidation)

	// ErrBoundaryMismatch indicates a supplied committor that disagrees with
	// its boundary values on A or B.
	ErrBoundaryMismatch = fmt.Errorf("%w: committor boundary mismatch", ErrValidation)

	// ErrInvalidVector indicates a supplied vector with NaN/Inf, negative
	// probabilities or a sum far from one.
	ErrInvalidVector = fmt.Errorf("%w: invalid vector", ErrValidation)
)

// Numerical errors.
var (
	// ErrNoUnitEigenvalue indicates that no eigenvalue lies within tolerance
	// of 1, or that the unit eigenvector is not a probability vector.
	ErrNoUnitEigenvalue = fmt.Errorf("%w: no eigenvalue 1", ErrNumerical)

	// ErrEigenFailed indicates that the dense eigen-decomposition did not converge.
	ErrEigenFailed = fmt.Errorf("%w: eigen-decomposition failed", ErrNumerical)

	// ErrSingularSystem indicates a reduced linear system without a unique solution.
	ErrSingularSystem = fmt.Errorf("%w: singular system", ErrNumerical)

	// ErrNotConverged indicates that the iterative solver ran out of iterations.
	ErrNotConverged = fmt.Errorf("%w: solver did not converge", ErrNumerical)

	// ErrCommittorOutOfRange indicates a committor value outside [0,1] by more
	// than the committor tolerance.
	ErrCommittorOutOfRange = fmt.Errorf("%w: committor outside [0,1]", ErrNumerical)
)
