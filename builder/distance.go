// SPDX-License-Identifier: MIT
// Package: barmetric/builder
//
// distance.go — IngredientDistances: seed cost matrix from tree distances.

package builder

import (
	"fmt"

	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/registry"
	"github.com/katalvlaran/barmetric/tree"
)

const methodIngredientDistances = "IngredientDistances"

// IngredientDistances builds the ingredient Registry (tree breadth-first
// order, root excluded) and the n×n matrix D[i][j] = tree.Distance(id_i, id_j).
//
// Stage 1 (Validate): t must be non-nil with at least one ingredient.
// Stage 2 (Prepare):  registry from t.Ingredients(), names from the nodes.
// Stage 3 (Execute):  fill the upper triangle, mirror into the lower one so
// the result is exactly symmetric; the diagonal stays 0.
//
// Errors: ErrEmptyTree, *tree.NoCommonAncestorError (forest input),
// registry errors.
// Complexity: O(n²·h) time for tree height h, O(n²) memory.
func IngredientDistances(t *tree.Tree, opts ...BuilderOption) (*registry.Registry, *matrix.Dense, error) {
	cfg := newBuilderConfig(opts...)
	if t == nil || t.Len() == 0 {
		return nil, nil, builderErrorf(methodIngredientDistances, ErrEmptyTree)
	}

	ids := t.Ingredients()
	entries := make([]registry.Entry, len(ids))
	for i, id := range ids {
		node, _ := t.Node(id)
		entries[i] = registry.Entry{ID: id, Name: node.Name}
	}
	reg, err := registry.New(entries)
	if err != nil {
		return nil, nil, builderErrorf(methodIngredientDistances, err)
	}

	n := len(ids)
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, builderErrorf(methodIngredientDistances, err)
	}
	data := d.Data()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v, err := t.Distance(ids[i], ids[j])
			if err != nil {
				return nil, nil, builderErrorf(methodIngredientDistances,
					fmt.Errorf("pair (%s,%s): %w", ids[i], ids[j], err))
			}
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}

	cfg.logger.Debug().
		Int("ingredients", n).
		Msg("ingredient distance matrix built")

	return reg, d, nil
}
