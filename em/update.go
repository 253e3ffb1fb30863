// SPDX-License-Identifier: MIT
// Package: barmetric/em
//
// update.go — M-step: BLOSUM-style log-odds cost from expected matches.

package em

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/barmetric/matrix"
)

// UpdateConfig controls the M-step.
//
//   - Alpha: Laplace pseudo-count added to every cell of T_sum.
//   - Epsilon: guard added to E and S before division and log.
//   - TargetMedian: the off-diagonal median of the output; must be > 0.
//   - Prior, PriorBlend: optional EMA toward a previous cost matrix,
//     C = (1−λ)·C_new + λ·Prior. PriorBlend 0 (default) is pure replacement.
type UpdateConfig struct {
	Alpha        float64
	Epsilon      float64
	TargetMedian float64
	Prior        *matrix.Dense
	PriorBlend   float64
}

// DefaultUpdateConfig returns Alpha=1, Epsilon=1e-9, TargetMedian=1, no prior blend.
func DefaultUpdateConfig() UpdateConfig {
	return UpdateConfig{Alpha: 1, Epsilon: 1e-9, TargetMedian: 1}
}

func (c UpdateConfig) validate(n int) error {
	switch {
	case !finite(c.Alpha) || c.Alpha < 0:
		return fmt.Errorf("em: Alpha=%v: %w", c.Alpha, ErrBadConfig)
	case !finite(c.Epsilon) || c.Epsilon <= 0:
		return fmt.Errorf("em: Epsilon=%v: %w", c.Epsilon, ErrBadConfig)
	case !finite(c.TargetMedian) || c.TargetMedian <= 0:
		return fmt.Errorf("em: TargetMedian=%v: %w", c.TargetMedian, ErrBadConfig)
	case !finite(c.PriorBlend) || c.PriorBlend < 0 || c.PriorBlend > 1:
		return fmt.Errorf("em: PriorBlend=%v: %w", c.PriorBlend, ErrBadConfig)
	}
	if c.PriorBlend == 0 || c.Prior == nil {
		return nil
	}
	if c.Prior.Rows() != n || c.Prior.Cols() != n {
		return fmt.Errorf("em: prior %dx%d for %d ingredients: %w",
			c.Prior.Rows(), c.Prior.Cols(), n, ErrPriorShape)
	}
	if err := matrix.ValidateNonNegative(c.Prior); err != nil {
		return fmt.Errorf("em: prior: %w", err)
	}

	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// UpdateCost derives the next ingredient cost matrix from T_sum.
//
// Stage 1 (Smooth):   T' = T + α; row/column marginals and total of T'.
// Stage 2 (Score):    E = rowᵢ·colⱼ / total, S = T' / (E + ε),
// C = −log(S + ε).
// Stage 3 (Normalize): shift so min C = 0, optional prior blend,
// symmetrize, zero the diagonal, rescale so the off-diagonal median equals
// TargetMedian (skipped when the median is 0).
//
// The result is symmetric, non-negative and zero-diagonal.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrNegativeMatch,
// ErrBadConfig, ErrPriorShape.
// Complexity: O(n² log n) (median).
func UpdateCost(tSum *matrix.Dense, cfg UpdateConfig) (*matrix.Dense, error) {
	if tSum == nil {
		return nil, fmt.Errorf("em: UpdateCost: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(tSum); err != nil {
		return nil, fmt.Errorf("em: UpdateCost: %w", err)
	}
	n := tSum.Rows()
	if err := cfg.validate(n); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNonNegative(tSum); err != nil {
		return nil, fmt.Errorf("em: UpdateCost: %w: %w", ErrNegativeMatch, err)
	}

	// Stage 1: smoothing and marginals.
	smooth := append([]float64(nil), tSum.Data()...)
	floats.AddConst(cfg.Alpha, smooth)
	rows := make([]float64, n)
	cols := make([]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = floats.Sum(smooth[i*n : (i+1)*n])
		for j := 0; j < n; j++ {
			cols[j] += smooth[i*n+j]
		}
	}
	total := floats.Sum(rows)

	// Stage 2: log-odds cost.
	c, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("em: UpdateCost: %w", err)
	}
	out := c.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var e float64
			if total > 0 {
				e = rows[i] * cols[j] / total
			}
			s := smooth[i*n+j] / (e + cfg.Epsilon)
			out[i*n+j] = -math.Log(s + cfg.Epsilon)
		}
	}

	// Stage 3: normalize.
	floats.AddConst(-floats.Min(out), out)
	if cfg.PriorBlend > 0 && cfg.Prior != nil {
		floats.Scale(1-cfg.PriorBlend, out)
		floats.AddScaled(out, cfg.PriorBlend, cfg.Prior.Data())
	}
	if err = matrix.Symmetrize(c); err != nil {
		return nil, fmt.Errorf("em: UpdateCost: %w", err)
	}
	for i := 0; i < n; i++ {
		out[i*n+i] = 0
	}
	if med := matrix.Median(matrix.OffDiagonal(c)); med > 0 {
		floats.Scale(cfg.TargetMedian/med, out)
	}

	return c, nil
}
