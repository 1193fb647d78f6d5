// SPDX-License-Identifier: MIT

// Package markov solves the two linear-algebra problems of transition path
// theory on a discrete Markov chain with transition matrix T:
//
//   - StationaryDistribution: the left eigenvector mu of T for eigenvalue 1,
//     normalized to sum 1.
//   - Committor: the forward committor q+ (probability to reach B before A)
//     and the backward committor q− (probability to have come from A rather
//     than B), from linear systems restricted to the transition region
//     C = {0..N−1} \ (A ∪ B).
//
// Both accept a *matrix.Dense (solved with gonum: eigen-decomposition and LU)
// or a *matrix.CSR (solved with the restarted GMRES of package matrix, never
// densified). Results are always dense []float64 of length N.
//
// Errors wrap one of three classes, ErrValidation, ErrNumerical and
// ErrDegenerateRate, so callers can branch on the class with errors.Is.
//
// Example usage:
//
//	qplus, err := markov.ForwardCommittor(T, []int{0}, []int{9})
//	if err != nil {
//	    log.Fatal(err)
//	}
package markov
