// SPDX-License-Identifier: MIT

// Package matrix - bridge to gonum.org/v1/gonum/mat.
//
// Purpose:
//   - Hand *Dense data to gonum's LAPACK-backed routines (eigen-decomposition,
//     LU solves) without re-implementing them.
//   - Bring gonum results back into the package's own storage.
//   - Expose *CSR as a linsolve.MulVecToer so gonum's iterative solvers run on
//     it at O(nnz) per product.
//
// AI-Hints:
//   - Gonum() copies; mutations of the returned *mat.Dense never leak back.
//   - Use DenseFromGonum for any mat.Matrix (views and transposes included).
//   - MulVecTo panics on length mismatch, like the gonum kernels it serves.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Gonum returns a copy of m as a *mat.Dense.
// Complexity: O(r*c).
func (m *Dense) Gonum() *mat.Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return mat.NewDense(m.r, m.c, buf)
}

// DenseFromGonum copies any gonum matrix into a *Dense.
// Errors: ErrNilMatrix, ErrInvalidDimensions (empty), ErrNaNInf.
// Complexity: O(r*c).
func DenseFromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, fmt.Errorf("DenseFromGonum: %w", ErrNilMatrix)
	}
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, fmt.Errorf("DenseFromGonum: %w", err)
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = g.At(i, j)
			if isNonFinite(v) {
				return nil, denseErrorf("FromGonum", i, j, ErrNaNInf)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// MulVecTo stores m·x (or mᵀ·x when trans) into dst. An empty dst is resized.
// Panics with mat.ErrShape when the lengths do not fit m.
// Complexity: O(nnz).
func (m *CSR) MulVecTo(dst *mat.VecDense, trans bool, x mat.Vector) {
	in, out := m.c, m.r
	if trans {
		in, out = m.r, m.c
	}
	if x.Len() != in {
		panic(mat.ErrShape)
	}
	if dst.IsEmpty() {
		dst.ReuseAsVec(out)
	}
	if dst.Len() != out {
		panic(mat.ErrShape)
	}

	src := rawVec(x)
	if v, ok := x.(*mat.VecDense); ok && v == dst {
		src = append([]float64(nil), src...)
	}
	res := dst.RawVector()
	buf := res.Data[:out]
	if res.Inc != 1 {
		buf = make([]float64, out)
	}
	if trans {
		m.mulTransVecTo(buf, src)
	} else {
		m.mulVecTo(buf, src)
	}
	if res.Inc != 1 {
		for i, v := range buf {
			dst.SetVec(i, v)
		}
	}
}

// rawVec returns the elements of x, sharing storage when x is contiguous.
func rawVec(x mat.Vector) []float64 {
	if v, ok := x.(*mat.VecDense); ok && v.RawVector().Inc == 1 {
		return v.RawVector().Data[:v.Len()]
	}
	out := make([]float64, x.Len())
	for i := range out {
		out[i] = x.AtVec(i)
	}

	return out
}
