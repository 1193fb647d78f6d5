// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense and compressed-row storages.
// This file intentionally contains ONLY domain-facing types (the Matrix
// interface, storage kinds, triplets). Errors and options live in dedicated
// files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Implemented by *Dense (row-major) and *CSR (compressed sparse row).
//
// Complexity notes: Rows/Cols are O(1); At/Set are O(1) on *Dense and
// O(log nnz(row)) / O(nnz) on *CSR; Clone copies the backing storage.
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original and keeps its kind.
	Clone() Matrix
}

// Kind identifies the storage layout behind a Matrix value.
type Kind int

const (
	// KindUnknown marks a Matrix implementation outside this package.
	KindUnknown Kind = iota
	// KindDense marks a row-major *Dense.
	KindDense
	// KindSparse marks a compressed-row *CSR.
	KindSparse
)

// String returns a short lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// KindOf reports the storage kind of m. A nil matrix is KindUnknown.
// Complexity: O(1).
func KindOf(m Matrix) Kind {
	switch v := m.(type) {
	case *Dense:
		if v == nil {
			return KindUnknown
		}
		return KindDense
	case *CSR:
		if v == nil {
			return KindUnknown
		}
		return KindSparse
	default:
		return KindUnknown
	}
}

// Triplet is one (row, col, value) entry used to assemble a *CSR.
// Duplicated (row, col) pairs are summed during assembly.
type Triplet struct {
	Row int     // zero-based row index
	Col int     // zero-based column index
	Val float64 // entry value
}
