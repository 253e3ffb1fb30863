// Package knn selects the k nearest recipes of every row of a distance
// matrix and turns their distances into Boltzmann neighbor weights.
package knn

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/barmetric/matrix"
)

var (
	// ErrNonSquare is returned when the distance matrix is not square.
	ErrNonSquare = errors.New("knn: distance matrix is not square")

	// ErrBadK is returned for k < 1.
	ErrBadK = errors.New("knn: k must be >= 1")

	// ErrBadBeta is returned for a negative or non-finite beta.
	ErrBadBeta = errors.New("knn: beta must be finite and >= 0")

	// ErrBadNeighbor is returned when a neighbor set points outside the matrix.
	ErrBadNeighbor = errors.New("knn: neighbor index out of range")
)

// zeroSumEpsilon guards the Boltzmann normalization.
const zeroSumEpsilon = 1e-12

// Neighbors is the ordered neighbor list of one row. Weight is nil until
// weights are assigned.
type Neighbors struct {
	Row      int
	Index    []int
	Distance []float64
	Weight   []float64
}

// Len returns the number of neighbors.
func (n Neighbors) Len() int { return len(n.Index) }

// Extract returns, for every row i, the min(k, n−1) smallest off-diagonal
// entries in ascending order. NaN and ±Inf count as +Inf (unreachable and
// ranked last). Ties go to the lower column index.
//
// Errors: matrix.ErrNilMatrix, ErrNonSquare, ErrBadK.
// Complexity: O(n² log n).
func Extract(d matrix.Matrix, k int) ([]Neighbors, error) {
	if err := matrix.ValidateNotNil(d); err != nil {
		return nil, fmt.Errorf("knn: Extract: %w", err)
	}
	if d.Rows() != d.Cols() {
		return nil, fmt.Errorf("knn: Extract: %dx%d: %w", d.Rows(), d.Cols(), ErrNonSquare)
	}
	if k < 1 {
		return nil, fmt.Errorf("knn: Extract: k=%d: %w", k, ErrBadK)
	}

	n := d.Rows()
	k = min(k, n-1)
	out := make([]Neighbors, n)
	row := make([]float64, n)
	cand := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if err := matrix.RowInto(row, d, i); err != nil {
			return nil, fmt.Errorf("knn: Extract: %w", err)
		}
		cand = cand[:0]
		for j, v := range row {
			if j == i {
				continue
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[j] = math.Inf(1)
			}
			cand = append(cand, j)
		}
		// cand is ascending, so a stable sort on distance breaks ties by index.
		slices.SortStableFunc(cand, func(a, b int) int {
			switch {
			case row[a] < row[b]:
				return -1
			case row[a] > row[b]:
				return 1
			default:
				return 0
			}
		})

		nb := Neighbors{Row: i, Index: make([]int, k), Distance: make([]float64, k)}
		for m := 0; m < k; m++ {
			nb.Index[m] = cand[m]
			nb.Distance[m] = row[cand[m]]
		}
		out[i] = nb
	}

	return out, nil
}

// Boltzmann returns exp(−β·(d − min d)) normalized to sum 1. Infinite
// distances get weight 0; if no distance is finite the weights are uniform.
// An empty input yields an empty slice.
func Boltzmann(dist []float64, beta float64) []float64 {
	w := make([]float64, len(dist))
	if len(dist) == 0 {
		return w
	}

	lo := math.Inf(1)
	for _, d := range dist {
		if !math.IsInf(d, 0) && !math.IsNaN(d) && d < lo {
			lo = d
		}
	}
	if math.IsInf(lo, 1) {
		return uniform(w)
	}

	for i, d := range dist {
		if math.IsInf(d, 0) || math.IsNaN(d) {
			continue
		}
		w[i] = math.Exp(-beta * (d - lo))
	}
	sum := floats.Sum(w)
	if !(sum > zeroSumEpsilon) {
		return uniform(w)
	}
	floats.Scale(1/sum, w)

	return w
}

func uniform(w []float64) []float64 {
	for i := range w {
		w[i] = 1 / float64(len(w))
	}

	return w
}

// Weighted runs Extract and fills every neighbor set's Weight with
// Boltzmann(Distance, beta).
//
// Errors: those of Extract, ErrBadBeta.
func Weighted(d matrix.Matrix, k int, beta float64) ([]Neighbors, error) {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return nil, fmt.Errorf("knn: Weighted: beta=%v: %w", beta, ErrBadBeta)
	}
	sets, err := Extract(d, k)
	if err != nil {
		return nil, err
	}
	for i := range sets {
		sets[i].Weight = Boltzmann(sets[i].Distance, beta)
	}

	return sets, nil
}

// WeightMatrix scatters each set's weights into row Row of an n×n matrix
// (accumulating repeats) and, if symmetrize is set, returns 0.5·(W + Wᵀ).
//
// Errors: matrix.ErrInvalidDimensions, ErrBadNeighbor.
// Complexity: O(n² + Σ|set|).
func WeightMatrix(n int, sets []Neighbors, symmetrize bool) (*matrix.Dense, error) {
	w, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("knn: WeightMatrix: %w", err)
	}
	data := w.Data()
	for _, s := range sets {
		if s.Row < 0 || s.Row >= n || len(s.Weight) != len(s.Index) {
			return nil, fmt.Errorf("knn: WeightMatrix: row %d: %w", s.Row, ErrBadNeighbor)
		}
		for m, j := range s.Index {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("knn: WeightMatrix: (%d,%d): %w", s.Row, j, ErrBadNeighbor)
			}
			data[s.Row*n+j] += s.Weight[m]
		}
	}
	if symmetrize {
		if err = matrix.Symmetrize(w); err != nil {
			return nil, fmt.Errorf("knn: WeightMatrix: %w", err)
		}
	}

	return w, nil
}
