// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/matrix"
)

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, matrix.Median(nil))
	assert.Equal(t, 2.0, matrix.Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, matrix.Median([]float64{4, 1, 3, 2}))

	xs := []float64{3, 1, 2}
	matrix.Median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs, "input must not be reordered")
}

func TestSymmetrizeAndOffDiagonal(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{5, 1, 3, 7})
	require.NoError(t, err)
	require.NoError(t, matrix.Symmetrize(m))

	assert.Equal(t, []float64{5, 2, 2, 7}, m.Data())
	assert.Equal(t, []float64{2, 2}, matrix.OffDiagonal(m))

	rect := MustDense(t, 2, 3)
	assert.ErrorIs(t, matrix.Symmetrize(rect), matrix.ErrNonSquare)
}

func TestRowSumsAndMeanAbsDiff(t *testing.T) {
	a, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	sums, err := matrix.RowSums(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, sums)

	b, err := matrix.NewDenseFrom(2, 2, []float64{1, 1, 3, 2})
	require.NoError(t, err)
	d, err := matrix.MeanAbsDiff(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, d, 1e-12)

	assert.True(t, matrix.AllClose(a, a.Copy(), 0, 0))
	assert.False(t, matrix.AllClose(a, b, 1e-9, 1e-9))
}

func TestEncodeDecodeShape(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 3, []float64{0, 1.5, -2, math.MaxFloat64, 1e-300, 4})
	require.NoError(t, err)
	blob := matrix.Encode(m)
	assert.Len(t, blob, 48)

	back, err := matrix.Decode(2, 3, blob)
	require.NoError(t, err)
	assert.Equal(t, m.Data(), back.Data())

	_, err = matrix.Decode(3, 3, blob)
	assert.ErrorIs(t, err, matrix.ErrCorruptBlob)
}
