// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) to avoid
//     duplicating tight loops across the public facades in api.go.
//   - Keep all loops deterministic, with *Dense (flat buffer) and *CSR (stored
//     entries only) fast-paths that preserve the storage kind.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels).
//   - Generic Matrix implementations fall back to At/Set and yield *Dense.
//
// AI-Hints:
//   - Gross flux is ewScaleCols(ewScaleRows(T, mu∘q−), q+) with a zeroed diagonal.
//   - Net flux is ewPositiveDiff(F, Fᵀ).

package matrix

import (
	"math"
)

// Operation tags for error wrapping.
const (
	opScaleRows    = "ScaleRows"
	opScaleCols    = "ScaleCols"
	opClip         = "Clip"
	opPositiveDiff = "PositiveDiff"
	opZeroDiagonal = "ZeroDiagonal"
	opAllClose     = "AllClose"
)

// ewMapGeneric builds a *Dense with out[i,j] = f(i, j, X[i,j]) via At.
func ewMapGeneric(tag string, X Matrix, f func(i, j int, v float64) float64) (*Dense, error) {
	r, c := X.Rows(), X.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			out.data[i*c+j] = f(i, j, v)
		}
	}

	return out, nil
}

// ewMapCSR applies f to the stored entries of s; entries for which the result
// is exactly zero are dropped when drop is true.
func ewMapCSR(s *CSR, f func(i, j int, v float64) float64, drop bool) *CSR {
	out := &CSR{
		r:              s.r,
		c:              s.c,
		indptr:         make([]int, s.r+1),
		ind:            make([]int, 0, len(s.ind)),
		data:           make([]float64, 0, len(s.data)),
		validateNaNInf: s.validateNaNInf,
	}
	var i, k int
	var v float64
	for i = 0; i < s.r; i++ {
		for k = s.indptr[i]; k < s.indptr[i+1]; k++ {
			v = f(i, s.ind[k], s.data[k])
			if drop && v == 0 {
				continue
			}
			out.ind = append(out.ind, s.ind[k])
			out.data = append(out.data, v)
		}
		out.indptr[i+1] = len(out.ind)
	}

	return out
}

// ewMapDense returns a new *Dense with out[i,j] = f(i, j, d[i,j]).
func ewMapDense(d *Dense, f func(i, j int, v float64) float64) *Dense {
	out := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data)), validateNaNInf: d.validateNaNInf}
	var i, j, base int
	for i = 0; i < d.r; i++ {
		base = i * d.c
		for j = 0; j < d.c; j++ {
			out.data[base+j] = f(i, j, d.data[base+j])
		}
	}

	return out
}

// ewMap dispatches f over X keeping the storage kind.
func ewMap(tag string, X Matrix, f func(i, j int, v float64) float64, drop bool) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	switch v := X.(type) {
	case *Dense:
		return ewMapDense(v, f), nil
	case *CSR:
		return ewMapCSR(v, f, drop), nil
	}

	return ewMapGeneric(tag, X, f)
}

// ewScaleRows computes out[i,j] = X[i,j] * scale[i].
// Time: O(r*c) dense, O(nnz) sparse. Deterministic i→j loops.
func ewScaleRows(X Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if len(scale) != X.Rows() {
		return nil, matrixErrorf(opScaleRows, ErrDimensionMismatch)
	}

	return ewMap(opScaleRows, X, func(i, _ int, v float64) float64 { return v * scale[i] }, true)
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
// AI-Hint: a zero factor removes the column from a *CSR result entirely.
func ewScaleCols(X Matrix, scale []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleCols, err)
	}
	if len(scale) != X.Cols() {
		return nil, matrixErrorf(opScaleCols, ErrDimensionMismatch)
	}

	return ewMap(opScaleCols, X, func(_, j int, v float64) float64 { return v * scale[j] }, true)
}

// ewClipRange clamps each element into [lo, hi]. Stored entries only on *CSR,
// so structural zeros stay zero even when 0 ∉ [lo, hi].
func ewClipRange(X Matrix, lo, hi float64) (Matrix, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		return nil, matrixErrorf(opClip, ErrNaNInf)
	}

	return ewMap(opClip, X, func(_, _ int, v float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}, true)
}

// ewZeroDiagonal returns a copy of X with every diagonal entry set to 0.
// On *CSR the diagonal entries are removed from the pattern.
func ewZeroDiagonal(X Matrix) (Matrix, error) {
	return ewMap(opZeroDiagonal, X, func(i, j int, v float64) float64 {
		if i == j {
			return 0
		}
		return v
	}, true)
}

// ewPositiveDiff computes out = max(a − b, 0) element-wise.
// *CSR pairs are merged row by row and only strictly positive results are stored.
func ewPositiveDiff(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opPositiveDiff, err)
	}
	if sa, ok := a.(*CSR); ok {
		if sb, ok2 := b.(*CSR); ok2 {
			return csrCombine(sa, sb,
				func(x, y float64) float64 { return x - y },
				func(v float64) bool { return v > 0 }), nil
		}
	}
	diff, err := Sub(a, b)
	if err != nil {
		return nil, matrixErrorf(opPositiveDiff, err)
	}

	return ewClipRange(diff, 0, math.Inf(1))
}

// ewAllClose reports whether |a[i,j] − b[i,j]| ≤ atol + rtol·|b[i,j]| everywhere.
// Mixed storage kinds are compared through At.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if isNonFinite(rtol) || isNonFinite(atol) || rtol < 0 || atol < 0 {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	near := func(x, y float64) bool { return math.Abs(x-y) <= atol+rtol*math.Abs(y) }

	if da, ok := a.(*Dense); ok {
		if db, ok2 := b.(*Dense); ok2 {
			for k := range da.data {
				if !near(da.data[k], db.data[k]) {
					return false, nil
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var i, j int
	var x, y float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if x, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if y, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !near(x, y) {
				return false, nil
			}
		}
	}

	return true, nil
}
