// SPDX-License-Identifier: MIT

package markov

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvflux/matrix"
	"gonum.org/v1/gonum/mat"
)

// ForwardCommittor returns q+: the probability of hitting B before A.
// Shorthand for Committor(T, A, B, true, opts...).
func ForwardCommittor(T matrix.Matrix, A, B []int, opts ...Option) ([]float64, error) {
	return Committor(T, A, B, true, opts...)
}

// BackwardCommittor returns q−: the probability of having last visited A
// rather than B. Shorthand for Committor(T, A, B, false, opts...).
func BackwardCommittor(T matrix.Matrix, A, B []int, opts ...Option) ([]float64, error) {
	return Committor(T, A, B, false, opts...)
}

// Committor solves the committor equations of T between A and B.
// MAIN DESCRIPTION:
//   - forward:  (I − T_CC) q_C = T_CB·1,          q = 0 on A, 1 on B.
//   - backward: (I − T_CC)ᵀ y_C = T_ACᵀ mu_A,     q_C = y_C / mu_C, q = 1 on A, 0 on B.
//
// Implementation:
//   - Stage 1: validate T and the sets; build the Partition.
//   - Stage 2: C = ∅ ⇒ closed form, no solve; otherwise every state of C must
//     reach A ∪ B, or the reduced system is singular.
//   - Stage 3: dense ⇒ slice T_CC, T_CB, T_AC with Dense.Induced; sparse ⇒
//     triplets from the stored entries of T.
//   - Stage 4: dense ⇒ gonum LU (mat.VecDense.SolveVec); sparse ⇒ GMRES on CSR.
//   - Stage 5: scatter q_C, clamp excursions within the committor tolerance.
//
// Errors:
//   - Validation: ErrUnsupportedStorage, ErrNotStochastic, ErrEmptySet,
//     ErrOverlappingSets, ErrStateOutOfRange, and for a supplied mu
//     ErrLengthMismatch / ErrInvalidVector.
//   - Numerical: ErrSingularSystem (including mu ≤ 0 on C for the backward
//     direction), ErrNotConverged, ErrCommittorOutOfRange, plus the
//     stationary-solver errors when mu is computed.
//
// AI-Hints:
//   - Pass WithStationary(mu) to reuse a known distribution for the backward direction.
func Committor(T matrix.Matrix, A, B []int, forward bool, opts ...Option) ([]float64, error) {
	o := gather(opts...)
	kind, err := ValidateTransition(T, o.StochasticTolerance)
	if err != nil {
		return nil, fmt.Errorf("Committor: %w", err)
	}
	p, err := NewPartition(T.Rows(), A, B)
	if err != nil {
		return nil, fmt.Errorf("Committor: %w", err)
	}

	return committor(T, kind, p, forward, o)
}

// CommittorWithPartition is Committor for callers that already validated T
// and built the Partition (the flux facade). T must be *Dense or *CSR.
func CommittorWithPartition(T matrix.Matrix, p Partition, forward bool, opts ...Option) ([]float64, error) {
	kind := matrix.KindOf(T)
	if kind == matrix.KindUnknown {
		return nil, fmt.Errorf("Committor: %w", ErrUnsupportedStorage)
	}
	if T.Rows() != p.N {
		return nil, fmt.Errorf("Committor: partition of %d states for %d×%d matrix: %w", p.N, T.Rows(), T.Cols(), ErrLengthMismatch)
	}

	return committor(T, kind, p, forward, gather(opts...))
}

func committor(T matrix.Matrix, kind matrix.Kind, p Partition, forward bool, o Options) ([]float64, error) {
	dir := direction(forward)
	q := closedForm(p, forward)
	if len(p.C) == 0 {
		o.Logger.Debug("committor short-circuit", "direction", dir, "n", p.N)
		return q, nil
	}

	if err := checkBoundaryReachable(T, p); err != nil {
		return nil, fmt.Errorf("Committor(%s): %w", dir, err)
	}

	var mu []float64
	if !forward {
		var err error
		if mu, err = stationaryFor(T, kind, o); err != nil {
			return nil, fmt.Errorf("Committor(%s): %w", dir, err)
		}
		for _, s := range p.C {
			if mu[s] <= 0 {
				return nil, fmt.Errorf("Committor(%s): mu[%d]=%g on the transition region: %w", dir, s, mu[s], ErrSingularSystem)
			}
		}
	}

	var (
		x   []float64
		err error
	)
	if kind == matrix.KindSparse {
		ts, rhs := reducedSystem(T, p, forward, mu)
		x, err = solveSparse(ts, rhs, o, dir)
	} else {
		var a *mat.Dense
		var rhs []float64
		if a, rhs, err = reducedDense(T.(*matrix.Dense), p, forward, mu); err == nil {
			x, err = solveDense(a, rhs, o, dir)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("Committor(%s): %w", dir, err)
	}

	for k, s := range p.C {
		if forward {
			q[s] = x[k]
		} else {
			q[s] = x[k] / mu[s]
		}
	}
	if err = clampCommittor(q, p, o, dir); err != nil {
		return nil, fmt.Errorf("Committor(%s): %w", dir, err)
	}

	return q, nil
}

// closedForm returns the committor with boundary values set and zeros on C,
// which is the full answer when C is empty.
func closedForm(p Partition, forward bool) []float64 {
	q := make([]float64, p.N)
	onA, onB := boundary(forward)
	for _, s := range p.A {
		q[s] = onA
	}
	for _, s := range p.B {
		q[s] = onB
	}

	return q
}

// stationaryFor returns the supplied mu (validated) or computes it.
func stationaryFor(T matrix.Matrix, kind matrix.Kind, o Options) ([]float64, error) {
	if o.Stationary != nil {
		if err := ValidateDistribution(o.Stationary, T.Rows(), o.StochasticTolerance); err != nil {
			return nil, err
		}
		return o.Stationary, nil
	}
	if kind == matrix.KindSparse {
		return stationarySparse(T.(*matrix.CSR), o)
	}

	return stationaryDense(T.(*matrix.Dense), o)
}

// reducedSystem assembles M x = rhs over C from the stored entries of T:
//   - forward:  M = I − T_CC,     rhs_k = Σ_{j∈B} T[c_k, j];
//   - backward: M = (I − T_CC)ᵀ,  rhs_k = Σ_{i∈A} mu_i T[i, c_k].
//
// Duplicated (row, col) triplets are summed by CSRFromTriplets.
func reducedSystem(T matrix.Matrix, p Partition, forward bool, mu []float64) ([]matrix.Triplet, []float64) {
	m := len(p.C)
	ts := make([]matrix.Triplet, 0, 4*m)
	for k := 0; k < m; k++ {
		ts = append(ts, matrix.Triplet{Row: k, Col: k, Val: 1})
	}
	rhs := make([]float64, m)
	// Visit only fails on foreign storages, which were rejected earlier.
	_ = matrix.Visit(T, func(i, j int, v float64) bool {
		if v == 0 {
			return true
		}
		ci, cj := p.Index(i), p.Index(j)
		switch {
		case ci >= 0 && cj >= 0:
			if forward {
				ts = append(ts, matrix.Triplet{Row: ci, Col: cj, Val: -v})
			} else {
				ts = append(ts, matrix.Triplet{Row: cj, Col: ci, Val: -v})
			}
		case forward && ci >= 0 && p.InB(j):
			rhs[ci] += v
		case !forward && cj >= 0 && p.InA(i):
			rhs[cj] += mu[i] * v
		}
		return true
	})

	return ts, rhs
}

// reducedDense builds the same system as reducedSystem from dense blocks of T.
func reducedDense(T *matrix.Dense, p Partition, forward bool, mu []float64) (*mat.Dense, []float64, error) {
	tcc, err := T.Induced(p.C, p.C)
	if err != nil {
		return nil, nil, err
	}
	id, err := matrix.NewIdentity(len(p.C))
	if err != nil {
		return nil, nil, err
	}
	a, err := matrix.Sub(id, tcc)
	if err != nil {
		return nil, nil, err
	}

	var rhs []float64
	if forward {
		tcb, err := T.Induced(p.C, p.B)
		if err != nil {
			return nil, nil, err
		}
		if rhs, err = matrix.RowSums(tcb); err != nil {
			return nil, nil, err
		}
	} else {
		if a, err = matrix.Transpose(a); err != nil {
			return nil, nil, err
		}
		tac, err := T.Induced(p.A, p.C)
		if err != nil {
			return nil, nil, err
		}
		muA := make([]float64, len(p.A))
		for k, s := range p.A {
			muA[k] = mu[s]
		}
		if rhs, err = matrix.VecMat(muA, tac); err != nil {
			return nil, nil, err
		}
	}

	return a.(*matrix.Dense).Gonum(), rhs, nil
}

// solveDense solves the reduced system with gonum's LU factorization.
func solveDense(a *mat.Dense, rhs []float64, o Options, dir string) ([]float64, error) {
	m := len(rhs)
	var x mat.VecDense
	err := x.SolveVec(a, mat.NewVecDense(m, append([]float64(nil), rhs...)))
	if err != nil {
		var cond mat.Condition
		switch {
		case errors.Is(err, mat.ErrSingular):
			return nil, fmt.Errorf("%w: %w", ErrSingularSystem, err)
		case errors.As(err, &cond) && math.IsInf(float64(cond), 1):
			return nil, fmt.Errorf("%w: %w", ErrSingularSystem, err)
		case errors.As(err, &cond):
			o.Logger.Warn("ill-conditioned committor system", "direction", dir, "condition", float64(cond))
		default:
			return nil, fmt.Errorf("%w: %w", ErrNumerical, err)
		}
	}
	o.Logger.Debug("committor solved", "direction", dir, "kind", matrix.KindDense.String(), "transition_states", m)

	return x.RawVector().Data, nil
}

// solveSparse solves the reduced system with GMRES on CSR.
func solveSparse(ts []matrix.Triplet, rhs []float64, o Options, dir string) ([]float64, error) {
	m := len(rhs)
	a, err := matrix.CSRFromTriplets(m, m, ts)
	if err != nil {
		return nil, err
	}
	x, stats, err := matrix.SolveGMRES(a, rhs, o.Solver...)
	if err != nil {
		return nil, solverError(err)
	}
	o.Logger.Debug("committor solved", "direction", dir, "kind", matrix.KindSparse.String(),
		"transition_states", m, "cycles", stats.Iterations, "products", stats.MulVec, "residual", stats.Residual)

	return x, nil
}

// clampCommittor pulls values within tol outside [0,1] back into range and
// rejects anything further out.
func clampCommittor(q []float64, p Partition, o Options, dir string) error {
	tol := o.CommittorTolerance
	for _, s := range p.C {
		v := q[s]
		switch {
		case math.IsNaN(v) || v < -tol || v > 1+tol:
			return fmt.Errorf("q[%d]=%g: %w", s, v, ErrCommittorOutOfRange)
		case v < 0:
			o.Logger.Debug("committor clamped", "direction", dir, "state", s, "value", v)
			q[s] = 0
		case v > 1:
			o.Logger.Debug("committor clamped", "direction", dir, "state", s, "value", v)
			q[s] = 1
		}
	}

	return nil
}
