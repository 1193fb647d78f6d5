// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvflux/matrix"
)

// ValidateTransition checks that T is a *matrix.Dense or *matrix.CSR holding a
// row-stochastic matrix within eps and returns its storage kind.
//
// Errors: ErrUnsupportedStorage (nil or foreign storage), ErrNotStochastic
// joined with the matrix sentinel describing the violation.
func ValidateTransition(T matrix.Matrix, eps float64) (matrix.Kind, error) {
	kind := matrix.KindOf(T)
	if kind == matrix.KindUnknown {
		return kind, fmt.Errorf("transition matrix %T: %w", T, ErrUnsupportedStorage)
	}
	if err := matrix.ValidateRowStochastic(T, eps); err != nil {
		return kind, fmt.Errorf("%w: %w", ErrNotStochastic, err)
	}

	return kind, nil
}

// ValidateVector checks that v has length n and only finite entries.
// Errors: ErrLengthMismatch, ErrInvalidVector.
func ValidateVector(name string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: len=%d, want %d: %w", name, len(v), n, ErrLengthMismatch)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d]=%g: %w", name, i, x, ErrInvalidVector)
		}
	}

	return nil
}

// ValidateDistribution checks that mu is a probability vector of length n:
// finite, non-negative, and summing to 1 within eps.
func ValidateDistribution(mu []float64, n int, eps float64) error {
	if err := ValidateVector("stationary distribution", mu, n); err != nil {
		return err
	}
	var sum float64
	for i, x := range mu {
		if x < 0 {
			return fmt.Errorf("stationary distribution[%d]=%g: %w", i, x, ErrInvalidVector)
		}
		sum += x
	}
	if math.Abs(sum-1) > eps {
		return fmt.Errorf("stationary distribution sums to %.17g: %w", sum, ErrInvalidVector)
	}

	return nil
}

// ValidateCommittor checks a supplied committor against its boundary values
// (forward: 0 on A, 1 on B; backward: 1 on A, 0 on B) within tol and its
// range [−tol, 1+tol] on C.
// Errors: ErrLengthMismatch, ErrInvalidVector, ErrBoundaryMismatch.
func ValidateCommittor(q []float64, p Partition, forward bool, tol float64) error {
	name := direction(forward) + " committor"
	if err := ValidateVector(name, q, p.N); err != nil {
		return err
	}
	onA, onB := boundary(forward)
	for _, s := range p.A {
		if math.Abs(q[s]-onA) > tol {
			return fmt.Errorf("%s[%d]=%g on A, want %g: %w", name, s, q[s], onA, ErrBoundaryMismatch)
		}
	}
	for _, s := range p.B {
		if math.Abs(q[s]-onB) > tol {
			return fmt.Errorf("%s[%d]=%g on B, want %g: %w", name, s, q[s], onB, ErrBoundaryMismatch)
		}
	}
	for _, s := range p.C {
		if q[s] < -tol || q[s] > 1+tol {
			return fmt.Errorf("%s[%d]=%g: %w", name, s, q[s], ErrInvalidVector)
		}
	}

	return nil
}

// boundary returns the committor values on A and on B.
func boundary(forward bool) (onA, onB float64) {
	if forward {
		return 0, 1
	}

	return 1, 0
}

func direction(forward bool) string {
	if forward {
		return "forward"
	}

	return "backward"
}
