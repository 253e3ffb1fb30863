// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Small reductions and transforms the pipeline needs on square matrices:
//     row sums, dense row extraction, off-diagonal collection and median,
//     symmetrization and tolerance comparison.
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense and CSR fast paths avoid At on flat buffers.

package matrix

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// RowSums returns Σ_j m[i,j] for every row.
// Complexity: O(r*c) dense, O(nnz) sparse.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	sums := make([]float64, m.Rows())
	switch t := m.(type) {
	case *Dense:
		for i := 0; i < t.r; i++ {
			sums[i] = floats.Sum(t.data[i*t.c : (i+1)*t.c])
		}
	case *CSR:
		for i := 0; i < t.r; i++ {
			sums[i] = floats.Sum(t.values[t.indptr[i]:t.indptr[i+1]])
		}
	default:
		for i := 0; i < m.Rows(); i++ {
			for j := 0; j < m.Cols(); j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, err
				}
				sums[i] += v
			}
		}
	}

	return sums, nil
}

// RowInto copies row i of m into dst (len(dst) must equal m.Cols()).
// CSR rows are scattered into a zeroed dst.
// Complexity: O(c).
func RowInto(dst []float64, m Matrix, i int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if len(dst) != m.Cols() {
		return validatorErrorf("RowInto", ErrDimensionMismatch)
	}
	switch t := m.(type) {
	case *Dense:
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		copy(dst, row)
	case *CSR:
		cols, vals, err := t.RowNonZeros(i)
		if err != nil {
			return err
		}
		for k := range dst {
			dst[k] = 0
		}
		for k, j := range cols {
			dst[j] = vals[k]
		}
	default:
		for j := range dst {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			dst[j] = v
		}
	}

	return nil
}

// OffDiagonal returns all m[i,j] with i != j in row-major order.
// Complexity: O(n²).
func OffDiagonal(m *Dense) []float64 {
	n := m.r
	out := make([]float64, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < m.c; j++ {
			if i != j {
				out = append(out, m.data[i*m.c+j])
			}
		}
	}

	return out
}

// Median returns the median of xs (mean of the two middle values for even
// lengths). xs is not modified. Returns 0 for an empty slice.
// Complexity: O(n log n).
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}

	return 0.5 * (s[mid-1] + s[mid])
}

// Symmetrize replaces m with 0.5*(m + mᵀ) in place.
// Errors: ErrNonSquare.
// Complexity: O(n²).
func Symmetrize(m *Dense) error {
	if m.r != m.c {
		return validatorErrorf("Symmetrize", ErrNonSquare)
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := 0.5 * (m.data[i*n+j] + m.data[j*n+i])
			m.data[i*n+j] = avg
			m.data[j*n+i] = avg
		}
	}

	return nil
}

// AllClose checks element-wise |a-b| <= atol + rtol*|b| for identical shapes.
// Complexity: O(r*c).
func AllClose(a, b *Dense, rtol, atol float64) bool {
	if a.r != b.r || a.c != b.c {
		return false
	}
	for k := range a.data {
		if math.Abs(a.data[k]-b.data[k]) > atol+rtol*math.Abs(b.data[k]) {
			return false
		}
	}

	return true
}

// MeanAbsDiff returns mean |a-b| over all cells; used as a convergence signal.
func MeanAbsDiff(a, b *Dense) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, err
	}
	diff := make([]float64, len(a.data))
	floats.SubTo(diff, a.data, b.data)

	return floats.Norm(diff, 1) / float64(len(diff)), nil
}
