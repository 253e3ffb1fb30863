// SPDX-License-Identifier: MIT
// Package: barmetric/em
//
// aggregate.go — E-step: neighbor-weighted accumulation of transport plans
// into the expected ingredient match matrix T_sum.

package em

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/barmetric/emd"
	"github.com/katalvlaran/barmetric/knn"
	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/pairwise"
)

// AggregateConfig controls the E-step.
//
//   - K, Beta: neighbor count and Boltzmann temperature (see package knn).
//   - TopFlows: keep only the TopFlows heaviest flows of each plan; 0 keeps all.
//   - MinFlowFraction: drop flows lighter than this fraction of the plan's
//     heaviest flow; 0 keeps all.
//   - Symmetrize: return 0.5·(T + Tᵀ).
type AggregateConfig struct {
	K               int
	Beta            float64
	TopFlows        int
	MinFlowFraction float64
	Symmetrize      bool
}

// DefaultAggregateConfig returns K=5, Beta=1, no sparsification, symmetrized.
func DefaultAggregateConfig() AggregateConfig {
	return AggregateConfig{K: 5, Beta: 1, Symmetrize: true}
}

func (c AggregateConfig) validate() error {
	if c.TopFlows < 0 {
		return fmt.Errorf("em: TopFlows=%d: %w", c.TopFlows, ErrBadConfig)
	}
	if math.IsNaN(c.MinFlowFraction) || c.MinFlowFraction < 0 || c.MinFlowFraction > 1 {
		return fmt.Errorf("em: MinFlowFraction=%v: %w", c.MinFlowFraction, ErrBadConfig)
	}

	return nil
}

// Aggregate computes T_sum for the recipe distance matrix d: for every recipe
// r and each of its weighted nearest neighbors s, the (min(r,s), max(r,s))
// plan is sparsified and weight(r,s)·mass is added at [from, to].
//
// Neighbor pairs without a stored plan contribute nothing.
//
// Errors: knn errors (ErrNonSquare, ErrBadK, ErrBadBeta), ErrBadConfig,
// ErrPlanIndex, matrix.ErrInvalidDimensions.
// Complexity: O(r² log r + r·K·F log F) for plans of F flows.
func Aggregate(d matrix.Matrix, plans map[pairwise.Pair]emd.Plan, nIngredients int, cfg AggregateConfig) (*matrix.Dense, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sets, err := knn.Weighted(d, cfg.K, cfg.Beta)
	if err != nil {
		return nil, err
	}
	t, _, err := aggregateSets(sets, plans, nIngredients, cfg)

	return t, err
}

// aggregateSets is the accumulation half of Aggregate; it also reports how
// many neighbor pairs had no plan.
func aggregateSets(sets []knn.Neighbors, plans map[pairwise.Pair]emd.Plan, n int, cfg AggregateConfig) (*matrix.Dense, int, error) {
	t, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, 0, fmt.Errorf("em: Aggregate: %w", err)
	}
	data := t.Data()
	missing := 0
	for _, set := range sets {
		for m, s := range set.Index {
			plan, ok := plans[pairwise.NewPair(set.Row, s)]
			if !ok {
				missing++
				continue
			}
			w := set.Weight[m]
			for _, f := range sparsify(plan, cfg.TopFlows, cfg.MinFlowFraction) {
				if f.From < 0 || f.From >= n || f.To < 0 || f.To >= n {
					return nil, missing, fmt.Errorf("em: Aggregate: flow (%d,%d) for %d ingredients: %w",
						f.From, f.To, n, ErrPlanIndex)
				}
				data[f.From*n+f.To] += w * f.Mass
			}
		}
	}
	if cfg.Symmetrize {
		if err = matrix.Symmetrize(t); err != nil {
			return nil, missing, fmt.Errorf("em: Aggregate: %w", err)
		}
	}

	return t, missing, nil
}

// sparsify keeps the heaviest flows of p. The input plan is not modified.
func sparsify(p emd.Plan, top int, frac float64) emd.Plan {
	if (top == 0 || top >= len(p)) && frac == 0 {
		return p
	}

	out := slices.Clone(p)
	if frac > 0 {
		var peak float64
		for _, f := range out {
			peak = math.Max(peak, f.Mass)
		}
		cut := frac * peak
		out = slices.DeleteFunc(out, func(f emd.Flow) bool { return f.Mass < cut })
	}
	if top > 0 && top < len(out) {
		slices.SortFunc(out, func(a, b emd.Flow) int {
			if c := cmp.Compare(b.Mass, a.Mass); c != 0 {
				return c
			}
			if c := cmp.Compare(a.From, b.From); c != 0 {
				return c
			}
			return cmp.Compare(a.To, b.To)
		})
		out = out[:top]
	}

	return out
}
