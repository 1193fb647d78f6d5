// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels/facades minimal by delegating shape/nil/stochasticity checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure and deterministic; structural checks allocate nothing.
//  - Stochasticity runs O(r*c) on *Dense, O(nnz) on *CSR.
//
// AI-Hints:
//  - Use ValidateRowStochastic before stationary or committor solves to fail fast.
//  - Use ValidateVecLen for any MatVec-like operations to avoid ad hoc length code.
//
// Note:
//  - Each composite validator follows a fixed sequence (e.g. NotNil → Shape).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the matrix reference is non-nil, including typed nil
// pointers of the package storages.
//
// Returns ErrNilMatrix if m == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *CSR:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape – Ensures matrices a and b have equal dimensions.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols).
//
// Errors: ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	// nil vectors are rejected to avoid subtle bugs in MatVec-like routines.
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
//
// Errors: Combines ErrNilMatrix and ErrDimensionMismatch.
// Complexity: O(1).
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateSquareNonNil – Composite: NotNil → Square.
//
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateSquareNonNil", err)
	}

	return nil
}

// ValidateRowStochastic checks that m is a transition matrix:
// square, finite, entry-wise non-negative, and every row sums to 1 within eps.
//
// Implementation:
//   - Stage 1: NotNil → Square.
//   - Stage 2: scan entries (stored entries only on *CSR) for NaN/Inf and negatives.
//   - Stage 3: RowSums and compare |s_i − 1| ≤ eps.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (also for a non-finite or negative eps),
// ErrNegativeEntry, ErrNotStochastic.
// Complexity: O(r*c) dense, O(nnz + r) sparse.
func ValidateRowStochastic(m Matrix, eps float64) error {
	const tag = "ValidateRowStochastic"
	if isNonFinite(eps) || eps < 0 {
		return validatorErrorf(tag, ErrNaNInf)
	}
	if err := ValidateSquareNonNil(m); err != nil {
		return validatorErrorf(tag, err)
	}

	var bad error
	visit := func(i, j int, v float64) bool {
		switch {
		case isNonFinite(v):
			bad = fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf)
		case v < 0:
			bad = fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNegativeEntry)
		}
		return bad == nil
	}
	switch v := m.(type) {
	case *Dense:
		v.Do(visit)
	case *CSR:
		v.Do(visit)
	default:
		n := m.Rows()
		var i, j int
		for i = 0; i < n && bad == nil; i++ {
			for j = 0; j < n; j++ {
				x, err := m.At(i, j)
				if err != nil {
					return validatorErrorf(tag, err)
				}
				if !visit(i, j, x) {
					break
				}
			}
		}
	}
	if bad != nil {
		return validatorErrorf(tag, bad)
	}

	sums, err := RowSums(m)
	if err != nil {
		return validatorErrorf(tag, err)
	}
	for i, s := range sums {
		if math.Abs(s-1) > eps {
			return validatorErrorf(tag, fmt.Errorf("row %d sums to %.17g: %w", i, s, ErrNotStochastic))
		}
	}

	return nil
}
