// SPDX-License-Identifier: MIT

package markov

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/lvflux/matrix"
	"gonum.org/v1/gonum/mat"
)

// StationaryDistribution returns mu with mu·T = mu and Σ mu = 1.
// MAIN DESCRIPTION:
//   - Validates T once, then dispatches on its storage kind.
//
// Errors:
//   - ErrUnsupportedStorage, ErrNotStochastic (validation).
//   - ErrNoUnitEigenvalue, ErrEigenFailed, ErrSingularSystem, ErrNotConverged.
//
// AI-Hints:
//   - The result is always a dense vector, whatever the storage of T.
func StationaryDistribution(T matrix.Matrix, opts ...Option) ([]float64, error) {
	o := gather(opts...)
	kind, err := ValidateTransition(T, o.StochasticTolerance)
	if err != nil {
		return nil, fmt.Errorf("StationaryDistribution: %w", err)
	}
	if kind == matrix.KindSparse {
		return stationarySparse(T.(*matrix.CSR), o)
	}

	return stationaryDense(T.(*matrix.Dense), o)
}

// StationaryDense computes mu of a dense T from gonum's left eigenvectors.
// Implementation:
//   - Stage 1: mat.Eigen with mat.EigenLeft.
//   - Stage 2: select the eigenvalue closest to 1; reject when |λ−1| > tolerance.
//   - Stage 3: real part of the matching left eigenvector, normalized to sum 1.
//
// Complexity: O(n³).
func StationaryDense(T *matrix.Dense, opts ...Option) ([]float64, error) {
	o := gather(opts...)
	if _, err := ValidateTransition(T, o.StochasticTolerance); err != nil {
		return nil, fmt.Errorf("StationaryDense: %w", err)
	}

	return stationaryDense(T, o)
}

// StationarySparse computes mu of a sparse T without densifying it.
// Implementation:
//   - Stage 1: the balance equations (I − Tᵀ)·mu = 0 have rank n−1 for a chain
//     with one closed class; row 0 is replaced by the normalization Σ mu = 1.
//   - Stage 2: assemble the bordered system as CSR and solve with GMRES.
//   - Stage 3: clip round-off negatives and renormalize.
//
// Complexity: O(nnz) assembly plus the GMRES cost.
func StationarySparse(T *matrix.CSR, opts ...Option) ([]float64, error) {
	o := gather(opts...)
	if _, err := ValidateTransition(T, o.StochasticTolerance); err != nil {
		return nil, fmt.Errorf("StationarySparse: %w", err)
	}

	return stationarySparse(T, o)
}

func stationaryDense(T *matrix.Dense, o Options) ([]float64, error) {
	n := T.Rows()
	if n == 1 {
		return []float64{1}, nil
	}

	var eig mat.Eigen
	if ok := eig.Factorize(T.Gonum(), mat.EigenLeft); !ok {
		return nil, fmt.Errorf("StationaryDense: %w", ErrEigenFailed)
	}
	vals := eig.Values(nil)
	best, dist := 0, math.Inf(1)
	for k, v := range vals {
		if d := cmplx.Abs(v - 1); d < dist {
			best, dist = k, d
		}
	}
	if dist > o.UnitEigenTolerance {
		return nil, fmt.Errorf("StationaryDense: closest eigenvalue %v: %w", vals[best], ErrNoUnitEigenvalue)
	}

	var vecs mat.CDense
	eig.LeftVectorsTo(&vecs)
	mu := make([]float64, n)
	for i := range mu {
		mu[i] = real(vecs.At(i, best))
	}
	if err := normalizeDistribution(mu, o.UnitEigenTolerance); err != nil {
		return nil, fmt.Errorf("StationaryDense: %w", err)
	}
	o.Logger.Debug("stationary distribution", "kind", matrix.KindDense, "n", n, "eigenvalue", real(vals[best]))

	return mu, nil
}

func stationarySparse(T *matrix.CSR, o Options) ([]float64, error) {
	n := T.Rows()
	if n == 1 {
		return []float64{1}, nil
	}

	ts := make([]matrix.Triplet, 0, T.NNZ()+2*n)
	for k := 0; k < n; k++ {
		ts = append(ts, matrix.Triplet{Row: 0, Col: k, Val: 1})
		if k > 0 {
			ts = append(ts, matrix.Triplet{Row: k, Col: k, Val: 1})
		}
	}
	T.Do(func(i, j int, v float64) bool {
		// Transposed: the equation of state j collects in-flow from i.
		// Row 0 carries the normalization instead.
		if j != 0 {
			ts = append(ts, matrix.Triplet{Row: j, Col: i, Val: -v})
		}
		return true
	})
	a, err := matrix.CSRFromTriplets(n, n, ts)
	if err != nil {
		return nil, fmt.Errorf("StationarySparse: %w", err)
	}
	rhs := make([]float64, n)
	rhs[0] = 1
	mu, stats, err := matrix.SolveGMRES(a, rhs, o.Solver...)
	if err != nil {
		return nil, fmt.Errorf("StationarySparse: %w", solverError(err))
	}

	if err = normalizeDistribution(mu, o.UnitEigenTolerance); err != nil {
		return nil, fmt.Errorf("StationarySparse: %w", err)
	}
	o.Logger.Debug("stationary distribution", "kind", matrix.KindSparse, "n", n,
		"iterations", stats.Iterations, "residual", stats.Residual)

	return mu, nil
}

// normalizeDistribution scales v to sum 1 in place. Entries that end up in
// [−tol, 0) are set to zero; anything more negative means the vector is not a
// probability distribution (for example a reducible chain).
func normalizeDistribution(v []float64, tol float64) error {
	var sum float64
	for _, x := range v {
		sum += x
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return fmt.Errorf("vanishing normalizer: %w", ErrNoUnitEigenvalue)
	}
	var clipped bool
	for i := range v {
		v[i] /= sum
		if v[i] < 0 {
			if v[i] < -tol {
				return fmt.Errorf("entry %d is %g after normalization: %w", i, v[i], ErrNoUnitEigenvalue)
			}
			v[i] = 0
			clipped = true
		}
	}
	if clipped {
		sum = 0
		for _, x := range v {
			sum += x
		}
		for i := range v {
			v[i] /= sum
		}
	}

	return nil
}

// solverError joins a matrix solver failure with its markov class.
func solverError(err error) error {
	switch {
	case errors.Is(err, matrix.ErrNotConverged):
		return fmt.Errorf("%w: %w", ErrNotConverged, err)
	case errors.Is(err, matrix.ErrSingular):
		return fmt.Errorf("%w: %w", ErrSingularSystem, err)
	}

	return fmt.Errorf("%w: %w", ErrNumerical, err)
}
