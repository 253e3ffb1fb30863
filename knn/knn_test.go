package knn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/knn"
	"github.com/katalvlaran/barmetric/matrix"
)

func square(t *testing.T, n int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(n, n, data, matrix.WithAllowInf())
	require.NoError(t, err)

	return m
}

func TestExtract_OrderAndTies(t *testing.T) {
	d := square(t, 4,
		0, 2, 1, 2,
		2, 0, 3, 3,
		1, 3, 0, math.Inf(1),
		2, 3, math.Inf(1), 0,
	)
	sets, err := knn.Extract(d, 2)
	require.NoError(t, err)
	require.Len(t, sets, 4)

	assert.Equal(t, []int{2, 1}, sets[0].Index, "tie 1↔3 resolved by index")
	assert.Equal(t, []float64{1, 2}, sets[0].Distance)
	assert.Equal(t, []int{0, 2}, sets[1].Index)
	assert.Equal(t, []int{0, 1}, sets[2].Index)
	assert.Equal(t, []int{0, 1}, sets[3].Index)
	for i, s := range sets {
		assert.Equal(t, i, s.Row)
		assert.NotContains(t, s.Index, i)
	}
}

func TestExtract_KLargerThanRow(t *testing.T) {
	d := square(t, 3,
		0, 5, math.Inf(1),
		5, 0, 1,
		math.Inf(1), 1, 0,
	)
	sets, err := knn.Extract(d, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sets[0].Index)
	assert.True(t, math.IsInf(sets[0].Distance[1], 1))
}

func TestExtract_NaNIsUnreachable(t *testing.T) {
	d, err := matrix.NewDenseFrom(3, 3, []float64{
		0, math.NaN(), 4,
		math.NaN(), 0, 1,
		4, 1, 0,
	}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	sets, err := knn.Extract(d, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sets[0].Index)
}

func TestExtract_Errors(t *testing.T) {
	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = knn.Extract(rect, 1)
	assert.ErrorIs(t, err, knn.ErrNonSquare)

	_, err = knn.Extract(square(t, 2, 0, 1, 1, 0), 0)
	assert.ErrorIs(t, err, knn.ErrBadK)

	_, err = knn.Weighted(square(t, 2, 0, 1, 1, 0), 1, -1)
	assert.ErrorIs(t, err, knn.ErrBadBeta)
}

func TestBoltzmann(t *testing.T) {
	w := knn.Boltzmann([]float64{1, 2, 3}, 1)
	e1, e2 := math.Exp(-1), math.Exp(-2)
	z := 1 + e1 + e2
	assert.InDeltaSlice(t, []float64{1 / z, e1 / z, e2 / z}, w, 1e-15)

	assert.Equal(t, []float64{0.5, 0.5}, knn.Boltzmann([]float64{7, 7}, 3))
	assert.Equal(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, knn.Boltzmann([]float64{1, 5, 9}, 0))

	inf := math.Inf(1)
	assert.Equal(t, []float64{1, 0}, knn.Boltzmann([]float64{2, inf}, 1))
	assert.Equal(t, []float64{0.5, 0.5}, knn.Boltzmann([]float64{inf, inf}, 1))
	assert.Empty(t, knn.Boltzmann(nil, 1))

	// Large beta underflows everything but the minimum.
	assert.Equal(t, []float64{1, 0}, knn.Boltzmann([]float64{0, 1}, 1e6))
}

func TestWeightMatrix(t *testing.T) {
	d := square(t, 3,
		0, 1, 2,
		1, 0, 4,
		2, 4, 0,
	)
	sets, err := knn.Weighted(d, 1, 1)
	require.NoError(t, err)

	w, err := knn.WeightMatrix(3, sets, false)
	require.NoError(t, err)
	sums, err := matrix.RowSums(w)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, sums)
	v, _ := w.At(2, 0)
	assert.Equal(t, 1.0, v)

	sym, err := knn.WeightMatrix(3, sets, true)
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateSymmetric(sym, 0))
	v, _ = sym.At(0, 1)
	assert.Equal(t, 1.0, v, "0↔1 are mutual nearest neighbors")
	v, _ = sym.At(0, 2)
	assert.Equal(t, 0.5, v)

	_, err = knn.WeightMatrix(2, sets, false)
	assert.ErrorIs(t, err, knn.ErrBadNeighbor)
}
