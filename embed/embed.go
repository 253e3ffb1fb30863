// Package embed maps a distance matrix to low-dimensional coordinates.
//
// Embedding is an injected capability: callers hold an Embedder and choose
// MDS or the Nop default once, at wiring time.
package embed

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/barmetric/matrix"
)

var (
	// ErrBadDims is returned when dims is < 1 or larger than the point count.
	ErrBadDims = errors.New("embed: dims out of range")

	// ErrFactorize is returned when the eigendecomposition does not converge.
	ErrFactorize = errors.New("embed: eigendecomposition failed")
)

// Embedder turns an n×n distance matrix into n points of dims coordinates.
type Embedder interface {
	Embed(d matrix.Matrix, dims int) (*matrix.Dense, error)
}

// Nop returns all-zero coordinates.
type Nop struct{}

// Embed implements Embedder.
func (Nop) Embed(d matrix.Matrix, dims int) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(d); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if dims < 1 {
		return nil, fmt.Errorf("embed: dims=%d: %w", dims, ErrBadDims)
	}

	return matrix.NewDense(d.Rows(), dims)
}

// MDS is classical (Torgerson) multidimensional scaling.
type MDS struct{}

var (
	_ Embedder = Nop{}
	_ Embedder = MDS{}
)

// Embed double-centers the squared distances, B = −½·J·D²·J, and returns the
// eigenvectors of the dims largest eigenvalues scaled by √λ. Directions with
// λ ≤ 0 are left at 0. Each axis is oriented so its largest-magnitude
// coordinate is positive.
//
// Errors: matrix.ErrNonSquare, ErrBadDims, ErrFactorize.
// Complexity: O(n³).
func (MDS) Embed(d matrix.Matrix, dims int) (*matrix.Dense, error) {
	src, err := matrix.ToDense(d)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if err = matrix.ValidateSquare(src); err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	n := src.Rows()
	if dims < 1 || dims > n {
		return nil, fmt.Errorf("embed: dims=%d for %d points: %w", dims, n, ErrBadDims)
	}

	sq := make([]float64, n*n)
	for k, v := range src.Data() {
		sq[k] = v * v
	}
	rowMean := make([]float64, n)
	colMean := make([]float64, n)
	var grand float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rowMean[i] += sq[i*n+j]
			colMean[j] += sq[i*n+j]
		}
		grand += rowMean[i]
	}
	for i := range rowMean {
		rowMean[i] /= float64(n)
		colMean[i] /= float64(n)
	}
	grand /= float64(n * n)

	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			bij := -0.5 * (sq[i*n+j] - rowMean[i] - colMean[j] + grand)
			bji := -0.5 * (sq[j*n+i] - rowMean[j] - colMean[i] + grand)
			b.SetSym(i, j, 0.5*(bij+bji))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(b, true); !ok {
		return nil, ErrFactorize
	}
	values := eig.Values(nil) // ascending
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	out, err := matrix.NewDense(n, dims)
	if err != nil {
		return nil, err
	}
	data := out.Data()
	for axis := 0; axis < dims; axis++ {
		col := n - 1 - axis
		lambda := values[col]
		if lambda <= 0 {
			continue
		}
		scale := math.Sqrt(lambda)
		var peak float64
		for i := 0; i < n; i++ {
			if v := vectors.At(i, col); math.Abs(v) > math.Abs(peak) {
				peak = v
			}
		}
		if peak < 0 {
			scale = -scale
		}
		for i := 0; i < n; i++ {
			data[i*dims+axis] = vectors.At(i, col) * scale
		}
	}

	return out, nil
}
