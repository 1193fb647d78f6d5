// SPDX-License-Identifier: MIT

// Package matrix - CSR storage (compressed sparse row) & safe accessors.
//
// Purpose:
//   - Store only explicit entries of large, sparse transition and flux matrices.
//   - Keep the same safety contract as Dense: At/Set return errors, never panic.
//   - Keep column indices sorted and unique inside each row, so row merges
//     (net flux, transposition) are single linear passes.
//
// Layout:
//   - indptr has Rows()+1 entries; row i occupies ind/data[indptr[i]:indptr[i+1]].
//   - ind holds column indices (strictly increasing within a row).
//   - data holds the values aligned with ind.
//
// Complexity quicksheet:
//   - At: O(log nnz(row)); Set on a stored entry: O(log nnz(row));
//     Set inserting a new entry: O(nnz); Do: O(nnz); Transpose: O(nnz + r + c).

package matrix

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ctxCSR          = "CSR"
	ctxNewCSR       = "NewCSR"
	ctxFromTriplets = "CSRFromTriplets"
)

// csrErrorf wraps an error with a uniform CSR context and callsite indices.
func csrErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("%s.%s(%d,%d): %w", ctxCSR, method, row, col, err)
}

// CSR is a compressed sparse row matrix of float64 values.
// Structural zeros are never materialized; explicit zeros may be stored.
type CSR struct {
	r, c           int
	indptr         []int     // len r+1, indptr[0]==0, nondecreasing
	ind            []int     // column indices, sorted & unique per row
	data           []float64 // values aligned with ind
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*CSR)(nil)
	_ fmt.Stringer = (*CSR)(nil)
)

// NewCSR builds a CSR from raw compressed-row arrays (all three are copied).
// MAIN DESCRIPTION:
//   - Strict constructor: validates the layout before accepting it.
//
// Implementation:
//   - Stage 1: validate shape (rows>0, cols>0) and array lengths.
//   - Stage 2: validate indptr monotonicity and per-row strictly increasing columns.
//   - Stage 3: enforce finite values under the default numeric policy.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape (malformed indptr / unsorted or duplicate
//     columns / length mismatch), ErrOutOfRange (column index), ErrNaNInf.
//
// Complexity:
//   - Time O(r + nnz), Space O(r + nnz).
func NewCSR(rows, cols int, indptr, ind []int, data []float64) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(indptr) != rows+1 || len(ind) != len(data) {
		return nil, fmt.Errorf("%s: array lengths: %w", ctxNewCSR, ErrBadShape)
	}
	if indptr[0] != 0 || indptr[rows] != len(ind) {
		return nil, fmt.Errorf("%s: indptr bounds: %w", ctxNewCSR, ErrBadShape)
	}
	var i, k int
	for i = 0; i < rows; i++ {
		if indptr[i+1] < indptr[i] {
			return nil, fmt.Errorf("%s: indptr decreases at row %d: %w", ctxNewCSR, i, ErrBadShape)
		}
		for k = indptr[i]; k < indptr[i+1]; k++ {
			if ind[k] < 0 || ind[k] >= cols {
				return nil, fmt.Errorf("%s: row %d col %d: %w", ctxNewCSR, i, ind[k], ErrOutOfRange)
			}
			if k > indptr[i] && ind[k] <= ind[k-1] {
				return nil, fmt.Errorf("%s: row %d columns not strictly increasing: %w", ctxNewCSR, i, ErrBadShape)
			}
			if DefaultValidateNaNInf && isNonFinite(data[k]) {
				return nil, fmt.Errorf("%s: row %d col %d: %w", ctxNewCSR, i, ind[k], ErrNaNInf)
			}
		}
	}

	return &CSR{
		r:              rows,
		c:              cols,
		indptr:         append([]int(nil), indptr...),
		ind:            append([]int(nil), ind...),
		data:           append([]float64(nil), data...),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// CSRFromTriplets assembles a CSR from (row, col, value) entries.
// MAIN DESCRIPTION:
//   - Order-independent assembly; duplicated (row, col) pairs are summed.
//
// Implementation:
//   - Stage 1: validate shape, indices and finiteness of every triplet.
//   - Stage 2: stable sort a copy by (row, col).
//   - Stage 3: one pass merging duplicates and filling indptr.
//
// Errors:
//   - ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - Time O(nnz log nnz + r), Space O(nnz + r).
//
// AI-Hints:
//   - Explicit zeros are kept as stored entries; use CSRFromDense to drop zeros.
func CSRFromTriplets(rows, cols int, ts []Triplet) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	sorted := make([]Triplet, len(ts))
	copy(sorted, ts)
	for _, t := range sorted {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return nil, fmt.Errorf("%s: (%d,%d): %w", ctxFromTriplets, t.Row, t.Col, ErrOutOfRange)
		}
		if isNonFinite(t.Val) {
			return nil, fmt.Errorf("%s: (%d,%d): %w", ctxFromTriplets, t.Row, t.Col, ErrNaNInf)
		}
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	m := &CSR{
		r:              rows,
		c:              cols,
		indptr:         make([]int, rows+1),
		ind:            make([]int, 0, len(sorted)),
		data:           make([]float64, 0, len(sorted)),
		validateNaNInf: DefaultValidateNaNInf,
	}
	var last int
	for k, t := range sorted {
		last = len(m.ind) - 1
		if k > 0 && t.Row == sorted[k-1].Row && t.Col == sorted[k-1].Col {
			m.data[last] += t.Val // duplicate: accumulate
			continue
		}
		m.ind = append(m.ind, t.Col)
		m.data = append(m.data, t.Val)
		m.indptr[t.Row+1]++
	}
	// Prefix-sum the per-row counts into offsets.
	var i int
	for i = 0; i < rows; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	return m, nil
}

// CSRFromDense compresses d, keeping only nonzero entries.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func CSRFromDense(d *Dense) (*CSR, error) {
	if d == nil {
		return nil, fmt.Errorf("CSRFromDense: %w", ErrNilMatrix)
	}
	m := &CSR{
		r:              d.r,
		c:              d.c,
		indptr:         make([]int, d.r+1),
		validateNaNInf: d.validateNaNInf,
	}
	var i, j int
	var v float64
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			v = d.data[i*d.c+j]
			if v != 0 {
				m.ind = append(m.ind, j)
				m.data = append(m.data, v)
			}
		}
		m.indptr[i+1] = len(m.ind)
	}

	return m, nil
}

// Rows returns the row count.
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count.
func (m *CSR) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *CSR) Shape() (rows, cols int) { return m.r, m.c }

// NNZ returns the number of stored entries (explicit zeros included).
func (m *CSR) NNZ() int { return len(m.ind) }

// find locates column col inside row row.
// Returns the insertion position and whether the entry is stored.
// Complexity: O(log nnz(row)).
func (m *CSR) find(row, col int) (int, bool) {
	lo, hi := m.indptr[row], m.indptr[row+1]
	pos := lo + sort.SearchInts(m.ind[lo:hi], col)

	return pos, pos < hi && m.ind[pos] == col
}

// At returns the value at (row, col); structural zeros read as 0.
// Errors: ErrOutOfRange.
func (m *CSR) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, csrErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	if pos, ok := m.find(row, col); ok {
		return m.data[pos], nil
	}

	return 0, nil
}

// Set stores v at (row, col).
// MAIN DESCRIPTION:
//   - Updates a stored entry in place; inserts a new entry only when v != 0.
//
// Implementation:
//   - Stage 1: bounds and numeric policy checks.
//   - Stage 2: binary search the row; overwrite when present.
//   - Stage 3: otherwise splice into ind/data and shift later indptr offsets.
//
// Errors:
//   - ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - O(log nnz(row)) on update, O(nnz + r) on insert.
func (m *CSR) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return csrErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return csrErrorf(ctxSet, row, col, ErrNaNInf)
	}
	pos, ok := m.find(row, col)
	if ok {
		m.data[pos] = v
		return nil
	}
	if v == 0 {
		return nil // writing a structural zero keeps the sparsity pattern
	}
	m.ind = append(m.ind, 0)
	copy(m.ind[pos+1:], m.ind[pos:])
	m.ind[pos] = col
	m.data = append(m.data, 0)
	copy(m.data[pos+1:], m.data[pos:])
	m.data[pos] = v
	var i int
	for i = row + 1; i <= m.r; i++ {
		m.indptr[i]++
	}

	return nil
}

// Clone returns a deep copy with the same sparsity pattern and policy.
func (m *CSR) Clone() Matrix {
	return &CSR{
		r:              m.r,
		c:              m.c,
		indptr:         append([]int(nil), m.indptr...),
		ind:            append([]int(nil), m.ind...),
		data:           append([]float64(nil), m.data...),
		validateNaNInf: m.validateNaNInf,
	}
}

// Do visits every stored entry in row-major order; stops when f returns false.
// Complexity: O(nnz).
func (m *CSR) Do(f func(i, j int, v float64) bool) {
	var i, k int
	for i = 0; i < m.r; i++ {
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			if !f(i, m.ind[k], m.data[k]) {
				return
			}
		}
	}
}

// DoRow visits the stored entries of row i in column order.
// Errors: ErrOutOfRange.
// Complexity: O(nnz(row)).
func (m *CSR) DoRow(i int, f func(j int, v float64) bool) error {
	if i < 0 || i >= m.r {
		return fmt.Errorf("%s.DoRow(%d): %w", ctxCSR, i, ErrOutOfRange)
	}
	var k int
	for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
		if !f(m.ind[k], m.data[k]) {
			return nil
		}
	}

	return nil
}

// ToDense expands m into a row-major *Dense.
// Complexity: Time O(r*c + nnz), Space O(r*c).
func (m *CSR) ToDense() *Dense {
	d := &Dense{
		r:              m.r,
		c:              m.c,
		data:           make([]float64, m.r*m.c),
		validateNaNInf: m.validateNaNInf,
	}
	var i, k int
	for i = 0; i < m.r; i++ {
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			d.data[i*m.c+m.ind[k]] = m.data[k]
		}
	}

	return d
}

// Transpose returns mᵀ as a new CSR.
// MAIN DESCRIPTION:
//   - Counting-sort transposition; output rows come out column-sorted for free
//     because source rows are scanned in increasing order.
//
// Complexity:
//   - Time O(nnz + r + c), Space O(nnz + c).
func (m *CSR) Transpose() *CSR {
	t := &CSR{
		r:              m.c,
		c:              m.r,
		indptr:         make([]int, m.c+1),
		ind:            make([]int, len(m.ind)),
		data:           make([]float64, len(m.data)),
		validateNaNInf: m.validateNaNInf,
	}
	var i, k, dst int
	for k = 0; k < len(m.ind); k++ {
		t.indptr[m.ind[k]+1]++
	}
	for i = 0; i < m.c; i++ {
		t.indptr[i+1] += t.indptr[i]
	}
	next := append([]int(nil), t.indptr[:m.c]...)
	for i = 0; i < m.r; i++ {
		for k = m.indptr[i]; k < m.indptr[i+1]; k++ {
			dst = next[m.ind[k]]
			t.ind[dst] = i
			t.data[dst] = m.data[k]
			next[m.ind[k]]++
		}
	}

	return t
}

// String lists stored entries as "(i, j) v" lines.
func (m *CSR) String() string {
	var b strings.Builder
	m.Do(func(i, j int, v float64) bool {
		b.WriteString(fmt.Sprintf("(%d, %d) %g\n", i, j, v))
		return true
	})

	return b.String()
}
