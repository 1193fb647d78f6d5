// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvflux/markov"
	"github.com/katalvlaran/lvflux/matrix"
)

// Operation tags for error wrapping.
const (
	opFluxMatrix    = "FluxMatrix"
	opToNetFlux     = "ToNetFlux"
	opTotalFlux     = "TotalFlux"
	opTotalFluxInto = "TotalFluxInto"
	opRate          = "Rate"
	opMFPT          = "MFPT"
	opProduction    = "FluxProduction"
	opCoarseGrain   = "CoarseGrain"
)

// FluxMatrix returns the gross reactive flux of T, or its net form.
// MAIN DESCRIPTION:
//   - F[i,j] = mu_i·q−_i·T[i,j]·q+_j for i≠j; diagonal always zero.
//   - netflux ⇒ F+ = max(F − Fᵀ, 0), computed in one pass over F.
//
// Implementation:
//   - Stage 1: pick the Backend from the kind of T; check shapes.
//   - Stage 2: Backend.GrossFlux, then Backend.NetFlux when requested.
//
// Errors:
//   - ErrUnsupportedStorage, ErrNotStochastic (non-square T),
//     ErrLengthMismatch / ErrInvalidVector for the vectors.
//
// Complexity:
//   - Dense O(n²); CSR O(nnz + n) and never densified.
//
// AI-Hints:
//   - The result has the storage kind of T, so type assertions downstream are safe.
func FluxMatrix(T matrix.Matrix, mu, qminus, qplus []float64, netflux bool) (matrix.Matrix, error) {
	be, err := BackendFor(T)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFluxMatrix, err)
	}
	if err = matrix.ValidateSquare(T); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opFluxMatrix, ErrNotStochastic, err)
	}
	n := T.Rows()
	for _, v := range []struct {
		name string
		x    []float64
	}{
		{"stationary distribution", mu},
		{"backward committor", qminus},
		{"forward committor", qplus},
	} {
		if err = markov.ValidateVector(v.name, v.x, n); err != nil {
			return nil, fmt.Errorf("%s: %w", opFluxMatrix, err)
		}
	}

	return fluxMatrix(be, T, mu, qminus, qplus, netflux)
}

func fluxMatrix(be Backend, T matrix.Matrix, mu, qminus, qplus []float64, netflux bool) (matrix.Matrix, error) {
	F, err := be.GrossFlux(T, mu, qminus, qplus)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opFluxMatrix, ErrNumerical, err)
	}
	if !netflux {
		return F, nil
	}
	if F, err = be.NetFlux(F); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opFluxMatrix, ErrNumerical, err)
	}

	return F, nil
}

// ToNetFlux reduces a gross flux matrix to max(F − Fᵀ, 0).
// At most one of F+[i,j], F+[j,i] is positive; the diagonal is zero.
// Errors: ErrUnsupportedStorage, ErrValidation for a non-square F.
func ToNetFlux(F matrix.Matrix) (matrix.Matrix, error) {
	be, err := BackendFor(F)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opToNetFlux, err)
	}
	if err = matrix.ValidateSquare(F); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opToNetFlux, ErrValidation, err)
	}
	net, err := be.NetFlux(F)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opToNetFlux, ErrNumerical, err)
	}

	return net, nil
}

// TotalFlux returns Σ_{i∈A, j∉A} F[i,j] of a net flux matrix: the reactive
// current leaving A. By conservation it equals TotalFluxInto(F, B).
// Errors: ErrUnsupportedStorage, ErrEmptySet, ErrStateOutOfRange.
// Complexity: Dense O(n²); CSR O(nnz).
func TotalFlux(F matrix.Matrix, A []int) (float64, error) {
	in, err := membership(F, A)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opTotalFlux, err)
	}

	return crossing(F, func(i, j int) bool { return in[i] && !in[j] }), nil
}

// TotalFluxInto returns Σ_{i∉B, j∈B} F[i,j]: the reactive current entering B.
func TotalFluxInto(F matrix.Matrix, B []int) (float64, error) {
	in, err := membership(F, B)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opTotalFluxInto, err)
	}

	return crossing(F, func(i, j int) bool { return !in[i] && in[j] }), nil
}

// Rate returns total / Σ_i mu_i·q−_i: the reactive current normalized by
// the stationary probability of having last visited A.
//
// Errors:
//   - ErrLengthMismatch / ErrInvalidVector for mu and qminus.
//   - ErrValidation for a negative or non-finite total.
//   - ErrDegenerateRate when the denominator is non-finite or <= the rate
//     epsilon (WithRateEpsilon, default DefaultRateEpsilon).
func Rate(total float64, mu, qminus []float64, opts ...Option) (float64, error) {
	o := gather(opts...)
	if total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return 0, fmt.Errorf("%s: total flux %g: %w", opRate, total, ErrValidation)
	}
	if err := markov.ValidateVector("stationary distribution", mu, len(mu)); err != nil {
		return 0, fmt.Errorf("%s: %w", opRate, err)
	}
	if err := markov.ValidateVector("backward committor", qminus, len(mu)); err != nil {
		return 0, fmt.Errorf("%s: %w", opRate, err)
	}
	var den float64
	for i := range mu {
		den += mu[i] * qminus[i]
	}
	if math.IsNaN(den) || math.IsInf(den, 0) || den <= o.RateEpsilon {
		return 0, fmt.Errorf("%s: denominator %g: %w", opRate, den, ErrDegenerateRate)
	}

	return total / den, nil
}

// MFPT returns the mean first passage time A→B, 1/Rate.
// Errors: those of Rate, plus ErrDegenerateRate for a zero rate.
func MFPT(total float64, mu, qminus []float64, opts ...Option) (float64, error) {
	k, err := Rate(total, mu, qminus, opts...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opMFPT, err)
	}
	if k == 0 {
		return 0, fmt.Errorf("%s: zero rate: %w", opMFPT, ErrDegenerateRate)
	}

	return 1 / k, nil
}

// FluxProduction returns out-flow minus in-flow of every state of F.
// For a consistent reactive flux it vanishes on the transition region and
// is positive on A (sources) and negative on B (sinks).
// Errors: ErrUnsupportedStorage, ErrValidation for a non-square F.
func FluxProduction(F matrix.Matrix) ([]float64, error) {
	if _, err := BackendFor(F); err != nil {
		return nil, fmt.Errorf("%s: %w", opProduction, err)
	}
	if err := matrix.ValidateSquare(F); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opProduction, ErrValidation, err)
	}
	prod := make([]float64, F.Rows())
	_ = matrix.Visit(F, func(i, j int, v float64) bool {
		prod[i] += v
		prod[j] -= v
		return true
	})

	return prod, nil
}

// FluxProducers returns the states whose flux production exceeds tol.
func FluxProducers(F matrix.Matrix, tol float64) ([]int, error) {
	return productionFilter(F, func(p float64) bool { return p > tol })
}

// FluxConsumers returns the states whose flux production is below −tol.
func FluxConsumers(F matrix.Matrix, tol float64) ([]int, error) {
	return productionFilter(F, func(p float64) bool { return p < -tol })
}

func productionFilter(F matrix.Matrix, keep func(p float64) bool) ([]int, error) {
	prod, err := FluxProduction(F)
	if err != nil {
		return nil, err
	}
	var out []int
	for s, p := range prod {
		if keep(p) {
			out = append(out, s)
		}
	}

	return out, nil
}

// CoarseGrain sums the flux between groups of states:
// Fc[a,b] = Σ_{i∈sets[a], j∈sets[b]} F[i,j] for a≠b, and Fc[a,a] = 0.
// States outside every group are ignored.
//
// Errors: ErrUnsupportedStorage, ErrEmptySet (no groups or an empty group),
// ErrStateOutOfRange, ErrOverlappingSets.
//
// AI-Hints:
//   - Coarse net flux is ToNetFlux(Fc); the result is always *Dense because k is small.
func CoarseGrain(F matrix.Matrix, sets [][]int) (*matrix.Dense, error) {
	if _, err := BackendFor(F); err != nil {
		return nil, fmt.Errorf("%s: %w", opCoarseGrain, err)
	}
	if err := matrix.ValidateSquare(F); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opCoarseGrain, ErrValidation, err)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%s: no groups: %w", opCoarseGrain, ErrEmptySet)
	}
	n := F.Rows()
	group := make([]int, n)
	for s := range group {
		group[s] = -1
	}
	for g, set := range sets {
		if len(set) == 0 {
			return nil, fmt.Errorf("%s: group %d: %w", opCoarseGrain, g, ErrEmptySet)
		}
		for _, s := range set {
			if s < 0 || s >= n {
				return nil, fmt.Errorf("%s: group %d state %d: %w", opCoarseGrain, g, s, ErrStateOutOfRange)
			}
			if group[s] >= 0 && group[s] != g {
				return nil, fmt.Errorf("%s: state %d in groups %d and %d: %w", opCoarseGrain, s, group[s], g, ErrOverlappingSets)
			}
			group[s] = g
		}
	}

	k := len(sets)
	acc := make([]float64, k*k)
	_ = matrix.Visit(F, func(i, j int, v float64) bool {
		a, b := group[i], group[j]
		if a >= 0 && b >= 0 && a != b {
			acc[a*k+b] += v
		}
		return true
	})

	return matrix.NewDenseFrom(k, k, acc)
}

// membership validates F and a state set and returns the set as a mask.
func membership(F matrix.Matrix, set []int) ([]bool, error) {
	if _, err := BackendFor(F); err != nil {
		return nil, err
	}
	if err := matrix.ValidateSquare(F); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if len(set) == 0 {
		return nil, ErrEmptySet
	}
	n := F.Rows()
	in := make([]bool, n)
	for _, s := range set {
		if s < 0 || s >= n {
			return nil, fmt.Errorf("state %d: %w", s, ErrStateOutOfRange)
		}
		in[s] = true
	}

	return in, nil
}

// crossing sums the entries of F selected by cut.
func crossing(F matrix.Matrix, cut func(i, j int) bool) float64 {
	var total float64
	_ = matrix.Visit(F, func(i, j int, v float64) bool {
		if cut(i, j) {
			total += v
		}
		return true
	})

	return total
}
