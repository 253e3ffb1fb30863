// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/matrix"
)

func TestValidateCostMatrix(t *testing.T) {
	good, err := matrix.NewDenseFrom(3, 3, []float64{
		0, 1, 2,
		1, 0, 3,
		2, 3, 0,
	})
	require.NoError(t, err)
	assert.NoError(t, matrix.ValidateCostMatrix(good, matrix.DefaultEpsilon))

	asym := good.Copy()
	require.NoError(t, asym.Set(0, 1, 5))
	assert.ErrorIs(t, matrix.ValidateCostMatrix(asym, matrix.DefaultEpsilon), matrix.ErrAsymmetry)

	diag := good.Copy()
	require.NoError(t, diag.Set(2, 2, 1))
	assert.ErrorIs(t, matrix.ValidateCostMatrix(diag, matrix.DefaultEpsilon), matrix.ErrNonZeroDiagonal)

	neg := good.Copy()
	require.NoError(t, neg.Set(0, 2, -1))
	assert.ErrorIs(t, matrix.ValidateCostMatrix(neg, matrix.DefaultEpsilon), matrix.ErrNegative)

	rect := MustDense(t, 2, 3)
	assert.ErrorIs(t, matrix.ValidateCostMatrix(rect, matrix.DefaultEpsilon), matrix.ErrNonSquare)
	assert.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
}

func TestValidateRowStochastic(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{0.5, 0.5, 0.3, 0.6})
	require.NoError(t, err)

	row, err := matrix.ValidateRowStochastic(m, 1e-6)
	assert.ErrorIs(t, err, matrix.ErrRowNotStochastic)
	assert.Equal(t, 1, row)

	require.NoError(t, m.Set(1, 1, 0.7))
	row, err = matrix.ValidateRowStochastic(m, 1e-6)
	assert.NoError(t, err)
	assert.Equal(t, -1, row)
}
