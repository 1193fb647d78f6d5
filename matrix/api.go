// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Kind-preserving: *Dense in ⇒ *Dense out, *CSR in ⇒ *CSR out.
//
// AI-Hints:
//   - Prefer *Dense for small chains and *CSR for large sparse ones; never mix
//     kinds inside one computation unless a dense result is acceptable.
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewSparseIdentity returns I_n as a *CSR with n stored entries.
func NewSparseIdentity(n int) (*CSR, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	m := &CSR{
		r:              n,
		c:              n,
		indptr:         make([]int, n+1),
		ind:            make([]int, n),
		data:           make([]float64, n),
		validateNaNInf: DefaultValidateNaNInf,
	}
	for i := 0; i < n; i++ {
		m.indptr[i+1] = i + 1
		m.ind[i] = i
		m.data[i] = 1.0
	}

	return m, nil
}

// CloneMatrix returns a structural clone of m (same dynamic type).
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// ---------- Element-wise (facades map 1:1 to ew* kernels) ----------

// ScaleRows returns diag(s)·m.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(s) != Rows).
func ScaleRows(m Matrix, s []float64) (Matrix, error) { return ewScaleRows(m, s) }

// ScaleCols returns m·diag(s).
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(s) != Cols).
func ScaleCols(m Matrix, s []float64) (Matrix, error) { return ewScaleCols(m, s) }

// Clip clamps every stored element into [lo, hi].
// Errors: ErrNilMatrix, ErrNaNInf (NaN bound or lo > hi).
func Clip(m Matrix, lo, hi float64) (Matrix, error) { return ewClipRange(m, lo, hi) }

// ZeroDiagonal returns a copy of the square or rectangular m with m[i,i] = 0.
func ZeroDiagonal(m Matrix) (Matrix, error) { return ewZeroDiagonal(m) }

// PositiveDiff returns max(a − b, 0) element-wise.
// AI-Hints: PositiveDiff(F, Transpose(F)) is the net flux of a gross flux F.
func PositiveDiff(a, b Matrix) (Matrix, error) { return ewPositiveDiff(a, b) }

// AllClose reports whether a and b agree within |a−b| ≤ atol + rtol·|b| everywhere.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (bad tolerances).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) { return ewAllClose(a, b, rtol, atol) }

// ---------- Traversal ----------

// Visit calls f for every element of m in row-major order, stopping when f
// returns false. *CSR visits stored entries only; any other kind visits all
// r*c cells.
// Errors: ErrNilMatrix, or the first At error of a foreign implementation.
func Visit(m Matrix, f func(i, j int, v float64) bool) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf("Visit", err)
	}
	switch v := m.(type) {
	case *Dense:
		v.Do(f)
		return nil
	case *CSR:
		v.Do(f)
		return nil
	}
	r, c := m.Rows(), m.Cols()
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			x, err := m.At(i, j)
			if err != nil {
				return matrixErrorf("Visit", err)
			}
			if !f(i, j, x) {
				return nil
			}
		}
	}

	return nil
}

// Sum returns Σ_ij m[i,j].
func Sum(m Matrix) (float64, error) {
	var s float64
	err := Visit(m, func(_, _ int, v float64) bool {
		s += v
		return true
	})

	return s, err
}

// ToDense converts m into a *Dense (a copy for *Dense inputs).
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	switch v := m.(type) {
	case *Dense:
		return v.Clone().(*Dense), nil
	case *CSR:
		return v.ToDense(), nil
	}

	return ewMapGeneric("ToDense", m, func(_, _ int, v float64) float64 { return v })
}

// ToCSR converts m into a *CSR (a copy for *CSR inputs). Zeros are dropped.
func ToCSR(m Matrix) (*CSR, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToCSR", err)
	}
	if s, ok := m.(*CSR); ok {
		return s.Clone().(*CSR), nil
	}
	d, err := ToDense(m)
	if err != nil {
		return nil, err
	}

	return CSRFromDense(d)
}
