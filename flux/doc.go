// SPDX-License-Identifier: MIT

// Package flux implements transition path theory (TPT) on top of package
// markov: reactive flux between a reactant set A and a product set B of a
// discrete Markov chain.
//
// What:
//
//   - FluxMatrix:   gross flux F[i,j] = mu_i·q−_i·T[i,j]·q+_j (i≠j), optional net form.
//   - ToNetFlux:    F+ = max(F − Fᵀ, 0) in one pass.
//   - TotalFlux:    Σ_{i∈A, j∉A} F+[i,j] (TotalFluxInto is the B-side check).
//   - Rate / MFPT:  total flux over Σ_i mu_i·q−_i, and its inverse.
//   - Pathways:     decomposition of F+ into A→B pathways by bottleneck.
//   - CoarseGrain:  flux between user-defined groups of states.
//   - New:          the ReactiveFlux facade computing all of the above eagerly.
//
// Storage:
//
// Every matrix operation runs through a Backend chosen once from the kind of
// the input (matrix.KindOf): *matrix.Dense stays dense, *matrix.CSR stays
// compressed-row and is never densified. Foreign Matrix implementations are
// rejected with ErrUnsupportedStorage.
//
// Errors:
//
// Sentinels are shared with package markov and wrap one of ErrValidation,
// ErrNumerical or ErrDegenerateRate. The facade never returns a partially
// constructed value.
//
// Example usage:
//
//	rf, err := flux.New(T, []int{0, 1}, []int{8, 9}, flux.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	k, err := rf.Rate()
package flux
