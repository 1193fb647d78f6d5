// SPDX-License-Identifier: MIT

// Package matrix provides the two storages and the linear-algebra kernels
// behind Markov-chain and reactive-flux computations.
//
// The matrix package provides:
//
//   - Dense, a row-major matrix for small and medium chains, bridged to
//     gonum.org/v1/gonum/mat for eigen-decomposition and direct solves.
//   - CSR, a compressed sparse row matrix for large chains where only the
//     explicit transitions are stored.
//   - Kind-preserving kernels (Transpose, Sub, ScaleRows, ScaleCols,
//     PositiveDiff, ZeroDiagonal, Clip): a *Dense input yields a *Dense, a
//     *CSR input yields a *CSR.
//   - ValidateRowStochastic to check transition matrices once at the boundary.
//   - SolveGMRES, restarted GMRES from gonum.org/v1/exp/linsolve for the
//     sparse linear systems; *CSR implements linsolve.MulVecToer.
//
// All public accessors return errors instead of panicking; sentinels live in
// errors.go and are matched with errors.Is.
package matrix
