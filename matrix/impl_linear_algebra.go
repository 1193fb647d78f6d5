// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// element-wise subtraction, transpose, matrix-vector and vector-matrix
// products. All functions perform strict fail-fast validation and return
// clear errors on dimension mismatches.
//
// Purpose:
//   - Declare canonical linear-algebra kernels used by the Markov and flux layers.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Every kernel keeps the storage kind: *Dense in ⇒ *Dense out, *CSR in ⇒ *CSR out.
//   - Other Matrix implementations take the generic At/Set fallback and yield *Dense.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial sum value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub       = "Sub"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opVecMat    = "VecMat"
	opRowSums   = "RowSums"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Sub computes a − b element-wise.
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b).
//   - Stage 2: *Dense pair ⇒ flat loop; *CSR pair ⇒ sorted row merge (CSR out);
//     otherwise At/Set fallback with fixed i→j order (Dense out).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Dense: O(r*c). CSR: O(nnz(a) + nnz(b) + r).
//
// AI-Hints:
//   - Net flux is Sub(F, Transpose(F)) followed by a clip at zero.
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	rows, cols := a.Rows(), a.Cols()

	if da, ok := a.(*Dense); ok {
		if db, ok2 := b.(*Dense); ok2 {
			res, err := NewDense(rows, cols)
			if err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			var idx int
			for idx = 0; idx < len(da.data); idx++ {
				res.data[idx] = da.data[idx] - db.data[idx]
			}
			return res, nil
		}
	}
	if sa, ok := a.(*CSR); ok {
		if sb, ok2 := b.(*CSR); ok2 {
			return csrCombine(sa, sb, func(x, y float64) float64 { return x - y }, nil), nil
		}
	}

	// Fallback: generic interface loop using At/Set.
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// csrCombine merges two same-shape CSR matrices row by row: out = op(a, b),
// where a missing entry reads as 0. When keep is non-nil, only values for which
// keep(v) holds are stored; otherwise every union entry is stored.
// Complexity: O(nnz(a) + nnz(b) + r).
func csrCombine(a, b *CSR, op func(x, y float64) float64, keep func(v float64) bool) *CSR {
	out := &CSR{
		r:              a.r,
		c:              a.c,
		indptr:         make([]int, a.r+1),
		validateNaNInf: a.validateNaNInf,
	}
	var i, ka, kb, ea, eb, col int
	var v float64
	for i = 0; i < a.r; i++ {
		ka, ea = a.indptr[i], a.indptr[i+1]
		kb, eb = b.indptr[i], b.indptr[i+1]
		for ka < ea || kb < eb {
			switch {
			case kb >= eb || (ka < ea && a.ind[ka] < b.ind[kb]):
				col, v = a.ind[ka], op(a.data[ka], 0)
				ka++
			case ka >= ea || b.ind[kb] < a.ind[ka]:
				col, v = b.ind[kb], op(0, b.data[kb])
				kb++
			default: // same column in both rows
				col, v = a.ind[ka], op(a.data[ka], b.data[kb])
				ka++
				kb++
			}
			if keep != nil && !keep(v) {
				continue
			}
			out.ind = append(out.ind, col)
			out.data = append(out.data, v)
		}
		out.indptr[i+1] = len(out.ind)
	}

	return out
}

// Transpose returns mᵀ with the same storage kind as m.
// Implementation:
//   - Stage 1: ValidateNotNil.
//   - Stage 2: *CSR ⇒ counting-sort transpose; *Dense ⇒ flat index swap;
//     otherwise generic At/Set.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Dense: O(r*c). CSR: O(nnz + r + c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	if s, ok := m.(*CSR); ok {
		return s.Transpose(), nil
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	if d, ok := m.(*Dense); ok {
		res.validateNaNInf = d.validateNaNInf
		var i, j int
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}
		return res, nil
	}

	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// MatVec computes y = m · x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-paths: *Dense flat rows; *CSR stored entries only.
// Complexity: Dense O(r*c); CSR O(nnz + r).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	switch v := m.(type) {
	case *CSR:
		v.mulVecTo(y, x)
		return y, nil
	case *Dense:
		var i, j, base int
		var acc float64
		for i = 0; i < v.r; i++ {
			acc = ZeroSum
			base = i * v.c
			for j = 0; j < v.c; j++ {
				acc += v.data[base+j] * x[j]
			}
			y[i] = acc
		}
		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// VecMat computes the row vector y = xᵀ · m (left multiplication).
//
// Contract: len(x) == m.Rows(); result length m.Cols().
// AI-Hints: mu·T == mu is the stationarity check for a transition matrix.
// Complexity: Dense O(r*c); CSR O(nnz + c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, cols)

	switch v := m.(type) {
	case *CSR:
		v.mulTransVecTo(y, x)
		return y, nil
	case *Dense:
		var i, j, base int
		var xi float64
		for i = 0; i < v.r; i++ {
			xi = x[i]
			if xi == 0 {
				continue
			}
			base = i * v.c
			for j = 0; j < v.c; j++ {
				y[j] += xi * v.data[base+j]
			}
		}
		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opVecMat, err)
			}
			y[j] += x[i] * mv
		}
	}

	return y, nil
}

// RowSums returns r where r[i] = Σ_j m[i,j].
// Implementation: MatVec(m, ones(cols)). No custom loops.
// AI-Hints: Used by ValidateRowStochastic.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1.0
	}

	return MatVec(m, ones)
}

// mulVecTo overwrites dst with m·x. Lengths are the caller's responsibility.
func (m *CSR) mulVecTo(dst, x []float64) {
	var i, k int
	var acc float64
	for i = 0; i < m.r; i++ {
		acc = ZeroSum
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			acc += m.data[k] * x[m.ind[k]]
		}
		dst[i] = acc
	}
}

// mulTransVecTo overwrites dst with mᵀ·x. Lengths are the caller's responsibility.
func (m *CSR) mulTransVecTo(dst, x []float64) {
	for j := range dst {
		dst[j] = ZeroSum
	}
	var i, k int
	for i = 0; i < m.r; i++ {
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			dst[m.ind[k]] += m.data[k] * x[i]
		}
	}
}
