// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/matrix"
)

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c, opts...)
	require.NoError(t, err)

	return m
}

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense(2, -1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSetBounds(t *testing.T) {
	m := MustDense(t, 2, 3)
	require.NoError(t, m.Set(1, 2, 4.5))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 3, 1), matrix.ErrOutOfRange)
}

func TestDense_NumericPolicy(t *testing.T) {
	m := MustDense(t, 1, 1)
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	inf := MustDense(t, 1, 1, matrix.WithAllowInf())
	assert.NoError(t, inf.Set(0, 0, math.Inf(1)))
	assert.ErrorIs(t, inf.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	loose := MustDense(t, 1, 1, matrix.WithNoValidateNaNInf())
	assert.NoError(t, loose.Set(0, 0, math.NaN()))
}

func TestDense_CloneIsIndependent(t *testing.T) {
	m := MustDense(t, 2, 2)
	require.NoError(t, m.Set(0, 1, 3))
	cp := m.Copy()
	require.NoError(t, cp.Set(0, 1, 7))

	v, _ := m.At(0, 1)
	assert.Equal(t, 3.0, v)
}

func TestDense_RowAliasesBuffer(t *testing.T) {
	m := MustDense(t, 2, 2)
	row, err := m.Row(1)
	require.NoError(t, err)
	row[0] = 9

	v, _ := m.At(1, 0)
	assert.Equal(t, 9.0, v)

	_, err = m.Row(2)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_ApplyRejectsNaN(t *testing.T) {
	m := MustDense(t, 1, 2)
	err := m.Apply(func(_, j int, _ float64) float64 {
		if j == 1 {
			return math.NaN()
		}
		return 1
	})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v, "cells before the violation stay written")
}

func TestNewDenseFrom(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	v, _ := m.At(1, 0)
	assert.Equal(t, 3.0, v)

	_, err = matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 1, []float64{math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestWithEpsilon_PanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Equal(t, 1e-3, matrix.NewOptions(matrix.WithEpsilon(1e-3)).Epsilon())
}
