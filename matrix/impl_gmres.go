// SPDX-License-Identifier: MIT

// Package matrix - restarted GMRES for square nonsymmetric systems.
//
// Purpose:
//   - Solve A·x = b for the large sparse systems behind stationary distributions
//     and committors, touching A only through matrix-vector products.
//
// Implementation:
//   - gonum.org/v1/exp/linsolve drives GMRES(m); *CSR plugs in through its
//     MulVecTo method and *Dense through gonum's own MulVec.
//   - linsolve stops on its recurrence estimate of the residual. The true
//     residual ‖b − A·x‖ is recomputed here and reported in SolveStats.
//   - linsolve does not flag a rank-deficient Hessenberg system; it surfaces
//     as a non-finite iterate, which is reported as ErrSingular.
//
// Determinism:
//   - Fixed loop orders; no randomness; results depend only on inputs and options.
//
// Complexity:
//   - Per Arnoldi step O(nnz(A) + n·j); memory O(n·m) for the Krylov basis.

package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/exp/linsolve"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const opGMRES = "SolveGMRES"

// SolveStats reports how a SolveGMRES call ended.
type SolveStats struct {
	Iterations int     // completed GMRES cycles (one per restart)
	MulVec     int     // matrix-vector products, residual checks included
	Residual   float64 // final relative true residual ‖b − A·x‖ / ‖b‖
}

// denseOperator adapts gonum's dense product to linsolve.MulVecToer.
type denseOperator struct{ a *mat.Dense }

func (d denseOperator) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	if trans {
		dst.MulVec(d.a.T(), x)
		return
	}
	dst.MulVec(d.a, x)
}

// SolveGMRES solves a·x = b with restarted GMRES.
// MAIN DESCRIPTION:
//   - Iterates until the residual estimate drops below tol·‖b‖ or the cycle
//     budget is spent.
//
// Implementation:
//   - Stage 1: validate a (non-nil, square), len(b), optional x0.
//   - Stage 2: b == 0 ⇒ x = 0 immediately.
//   - Stage 3: linsolve.Iterative with GMRES(min(restart, n)).
//   - Stage 4: map linsolve failures onto the package sentinels.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrNaNInf (b).
//   - ErrSingular when the iterate or its residual is not finite.
//   - ErrNotConverged when the budget is exhausted; the last iterate is still returned.
//
// AI-Hints:
//   - Pass a *CSR to keep each product at O(nnz).
//   - Warm-start with WithInitialGuess when a previous solution is at hand.
func SolveGMRES(a Matrix, b []float64, opts ...SolverOption) ([]float64, SolveStats, error) {
	var stats SolveStats
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, stats, matrixErrorf(opGMRES, err)
	}
	n := a.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, stats, matrixErrorf(opGMRES, err)
	}
	for i, v := range b {
		if isNonFinite(v) {
			return nil, stats, matrixErrorf(opGMRES, fmt.Errorf("b[%d]: %w", i, ErrNaNInf))
		}
	}
	o := gatherSolverOptions(opts...)
	if o.x0 != nil && len(o.x0) != n {
		return nil, stats, matrixErrorf(opGMRES, fmt.Errorf("initial guess: %w", ErrDimensionMismatch))
	}

	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		return make([]float64, n), stats, nil
	}

	op, err := operatorOf(a)
	if err != nil {
		return nil, stats, matrixErrorf(opGMRES, err)
	}
	settings := &linsolve.Settings{
		Tolerance:     o.tol,
		MaxIterations: o.maxIter,
	}
	if o.x0 != nil {
		settings.InitX = mat.NewVecDense(n, append([]float64(nil), o.x0...))
	}
	bv := mat.NewVecDense(n, append([]float64(nil), b...))
	res, err := linsolve.Iterative(op, bv, &linsolve.GMRES{Restart: min(o.restart, n)}, settings)
	x := res.X.RawVector().Data
	stats.Iterations = res.Stats.Iterations
	stats.MulVec = res.Stats.MulVec

	// True residual r = b − A·x.
	var r mat.VecDense
	op.MulVecTo(&r, false, res.X)
	r.SubVec(bv, &r)
	stats.MulVec++
	stats.Residual = mat.Norm(&r, 2) / bnorm

	var breakdown *linsolve.BreakdownError
	switch {
	case hasNonFinite(x) || isNonFinite(stats.Residual):
		return x, stats, matrixErrorf(opGMRES, fmt.Errorf("%d cycles: non-finite iterate: %w", stats.Iterations, ErrSingular))
	case errors.Is(err, linsolve.ErrIterationLimit):
		return x, stats, matrixErrorf(opGMRES, fmt.Errorf("%d cycles, residual %.3g: %w",
			stats.Iterations, stats.Residual, ErrNotConverged))
	case errors.As(err, &breakdown):
		return x, stats, matrixErrorf(opGMRES, fmt.Errorf("%w: %w", ErrSingular, err))
	case err != nil:
		return x, stats, matrixErrorf(opGMRES, err)
	}

	return x, stats, nil
}

// operatorOf returns a linsolve view of a. Storages other than *CSR and
// *Dense are densified first.
func operatorOf(a Matrix) (linsolve.MulVecToer, error) {
	switch v := a.(type) {
	case *CSR:
		return v, nil
	case *Dense:
		return denseOperator{v.Gonum()}, nil
	}
	d, err := ToDense(a)
	if err != nil {
		return nil, err
	}

	return denseOperator{d.Gonum()}, nil
}

func hasNonFinite(x []float64) bool {
	for _, v := range x {
		if isNonFinite(v) {
			return true
		}
	}

	return false
}
