// SPDX-License-Identifier: MIT

// Package matrix - compressed sparse row storage.
//
// Purpose:
//   - Hold recipe×ingredient volume matrices, which are extremely sparse
//     (a recipe uses a handful of the corpus ingredients).
//   - Sum duplicate (row, col) triplets at construction so the stored
//     pattern is canonical: columns strictly ascending within each row.
//
// Complexity quicksheet:
//   - NewCSR: O(nnz log nnz); At: O(log nnz(row)); RowNonZeros: O(1) (no copy).

package matrix

import (
	"fmt"
	"sort"
)

// Triplet is a single (row, col, value) entry used to assemble a CSR matrix.
type Triplet struct {
	Row, Col int
	Value    float64
}

// CSR is a compressed sparse row matrix.
//   - indptr has length r+1; row i occupies indices[indptr[i]:indptr[i+1]].
//   - indices hold column ids (strictly ascending per row).
//   - values hold the matching entries.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	values  []float64
}

func csrErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CSR.%s(%d,%d): %w", method, row, col, err)
}

// NewCSR assembles an r×c CSR matrix from triplets, summing duplicates.
// Implementation:
//   - Stage 1: validate shape and every triplet (bounds, finiteness).
//   - Stage 2: stable-sort a copy by (row, col).
//   - Stage 3: fold duplicates and build indptr.
//
// Errors: ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf.
// Complexity: O(nnz log nnz) time, O(nnz) space.
func NewCSR(rows, cols int, entries []Triplet) (*CSR, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	sorted := make([]Triplet, len(entries))
	for k, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, csrErrorf("New", e.Row, e.Col, ErrOutOfRange)
		}
		if isNonFinite(e.Value) {
			return nil, csrErrorf("New", e.Row, e.Col, ErrNaNInf)
		}
		sorted[k] = e
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}
		return sorted[a].Col < sorted[b].Col
	})

	m := &CSR{
		r:       rows,
		c:       cols,
		indptr:  make([]int, rows+1),
		indices: make([]int, 0, len(sorted)),
		values:  make([]float64, 0, len(sorted)),
	}
	for k := 0; k < len(sorted); k++ {
		e := sorted[k]
		last := len(m.indices) - 1
		if k > 0 && sorted[k-1].Row == e.Row && sorted[k-1].Col == e.Col {
			m.values[last] += e.Value
			continue
		}
		m.indices = append(m.indices, e.Col)
		m.values = append(m.values, e.Value)
		m.indptr[e.Row+1]++
	}
	for i := 0; i < rows; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.values) }

// find locates (row, col) in the stored pattern.
func (m *CSR) find(row, col int) (int, bool) {
	lo, hi := m.indptr[row], m.indptr[row+1]
	k := lo + sort.SearchInts(m.indices[lo:hi], col)
	if k < hi && m.indices[k] == col {
		return k, true
	}

	return 0, false
}

// At returns the element at (row, col); cells outside the pattern are 0.
func (m *CSR) At(row, col int) (float64, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, csrErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	if k, ok := m.find(row, col); ok {
		return m.values[k], nil
	}

	return 0, nil
}

// Set overwrites a stored entry. The sparsity pattern is immutable, so
// writing outside it returns ErrSparseStructure.
func (m *CSR) Set(row, col int, v float64) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return csrErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if isNonFinite(v) {
		return csrErrorf(ctxSet, row, col, ErrNaNInf)
	}
	k, ok := m.find(row, col)
	if !ok {
		return csrErrorf(ctxSet, row, col, ErrSparseStructure)
	}
	m.values[k] = v

	return nil
}

// Clone returns a deep copy.
func (m *CSR) Clone() Matrix {
	return &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		values:  append([]float64(nil), m.values...),
	}
}

// RowNonZeros returns the column indices and values stored for row i.
// The slices alias internal storage and must not be modified.
func (m *CSR) RowNonZeros(i int) ([]int, []float64, error) {
	if i < 0 || i >= m.r {
		return nil, nil, csrErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]

	return m.indices[lo:hi], m.values[lo:hi], nil
}

// ToDense materializes the matrix as *Dense.
// Complexity: O(r*c + nnz).
func (m *CSR) ToDense() (*Dense, error) {
	out, err := NewDense(m.r, m.c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			out.data[i*m.c+m.indices[k]] = m.values[k]
		}
	}

	return out, nil
}
