// SPDX-License-Identifier: MIT
// Package: barmetric/builder
//
// volume.go — VolumeMatrix: recipe×ingredient row-stochastic matrix.

package builder

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/registry"
)

const methodVolumeMatrix = "VolumeMatrix"

// RecipeIngredient is one row of the recipe snapshot: a single ingredient of
// a single recipe together with its volume fraction.
type RecipeIngredient struct {
	RecipeID     string   `json:"recipe_id" yaml:"recipe_id"`
	RecipeName   string   `json:"recipe_name,omitempty" yaml:"recipe_name,omitempty"`
	IngredientID string   `json:"ingredient_id" yaml:"ingredient_id"`
	Volume       *float64 `json:"volume_fraction" yaml:"volume_fraction"`
}

// recipeRow accumulates one recipe while records are scanned.
type recipeRow struct {
	id     string
	name   string
	values map[int]float64
}

// VolumeMatrix builds the recipe Registry (first-appearance order) and the
// r×n matrix V where V[r][i] is the volume fraction of ingredient i in
// recipe r. Repeated (recipe, ingredient) records are summed.
//
// Stage 1 (Validate): every record needs a recipe id, a known ingredient and
// a finite non-negative volume.
// Stage 2 (Prepare):  group records per recipe.
// Stage 3 (Execute):  optionally normalize, check |Σ row − 1| ≤ tolerance,
// emit *matrix.Dense or *matrix.CSR (WithSparse).
//
// Errors: ErrNilRegistry, ErrNoRecipes, ErrEmptyRecipeID, ErrMissingVolume,
// ErrInvalidVolume, ErrUnknownIngredient, *RowSumInvariantError.
// Complexity: O(m log m + r·n) for m records (O(m log m + nnz) sparse).
func VolumeMatrix(records []RecipeIngredient, ingredients *registry.Registry, opts ...BuilderOption) (*registry.Registry, matrix.Matrix, error) {
	cfg := newBuilderConfig(opts...)
	if ingredients == nil {
		return nil, nil, builderErrorf(methodVolumeMatrix, ErrNilRegistry)
	}
	if len(records) == 0 {
		return nil, nil, builderErrorf(methodVolumeMatrix, ErrNoRecipes)
	}

	// Stage 2: group per recipe in first-appearance order.
	var rows []*recipeRow
	byID := make(map[string]*recipeRow)
	for k, rec := range records {
		if rec.RecipeID == "" {
			return nil, nil, builderErrorf(methodVolumeMatrix, fmt.Errorf("record %d: %w", k, ErrEmptyRecipeID))
		}
		col, ok := ingredients.Index(rec.IngredientID)
		if !ok {
			return nil, nil, builderErrorf(methodVolumeMatrix,
				fmt.Errorf("recipe %q ingredient %q: %w", rec.RecipeID, rec.IngredientID, ErrUnknownIngredient))
		}
		if rec.Volume == nil {
			return nil, nil, builderErrorf(methodVolumeMatrix,
				fmt.Errorf("recipe %q ingredient %q: %w", rec.RecipeID, rec.IngredientID, ErrMissingVolume))
		}
		v := *rec.Volume
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, nil, builderErrorf(methodVolumeMatrix,
				fmt.Errorf("recipe %q ingredient %q volume %v: %w", rec.RecipeID, rec.IngredientID, v, ErrInvalidVolume))
		}

		row, seen := byID[rec.RecipeID]
		if !seen {
			row = &recipeRow{id: rec.RecipeID, name: rec.RecipeName, values: make(map[int]float64)}
			byID[rec.RecipeID] = row
			rows = append(rows, row)
		}
		if row.name == "" {
			row.name = rec.RecipeName
		}
		row.values[col] += v
	}

	entries := make([]registry.Entry, len(rows))
	for r, row := range rows {
		entries[r] = registry.Entry{ID: row.id, Name: row.name}
	}
	recipes, err := registry.New(entries)
	if err != nil {
		return nil, nil, builderErrorf(methodVolumeMatrix, err)
	}

	// Stage 3: per-row check in ascending column order for stable rounding.
	n := ingredients.Len()
	triplets := make([]matrix.Triplet, 0, len(records))
	for r, row := range rows {
		cols := make([]int, 0, len(row.values))
		for c := range row.values {
			cols = append(cols, c)
		}
		sort.Ints(cols)
		vals := make([]float64, len(cols))
		for k, c := range cols {
			vals[k] = row.values[c]
		}

		sum := floats.Sum(vals)
		if cfg.normalize {
			if sum <= 0 {
				return nil, nil, builderErrorf(methodVolumeMatrix,
					&RowSumInvariantError{RecipeID: row.id, Sum: sum, Tolerance: cfg.tolerance})
			}
			floats.Scale(1/sum, vals)
			sum = floats.Sum(vals)
		}
		if math.Abs(sum-1) > cfg.tolerance {
			return nil, nil, builderErrorf(methodVolumeMatrix,
				&RowSumInvariantError{RecipeID: row.id, Sum: sum, Tolerance: cfg.tolerance})
		}
		for k, c := range cols {
			if vals[k] == 0 {
				continue
			}
			triplets = append(triplets, matrix.Triplet{Row: r, Col: c, Value: vals[k]})
		}
	}

	var out matrix.Matrix
	if cfg.sparse {
		csr, err := matrix.NewCSR(len(rows), n, triplets)
		if err != nil {
			return nil, nil, builderErrorf(methodVolumeMatrix, err)
		}
		out = csr
	} else {
		d, err := matrix.NewDense(len(rows), n)
		if err != nil {
			return nil, nil, builderErrorf(methodVolumeMatrix, err)
		}
		data := d.Data()
		for _, tr := range triplets {
			data[tr.Row*n+tr.Col] = tr.Value
		}
		out = d
	}

	cfg.logger.Debug().
		Int("recipes", len(rows)).
		Int("ingredients", n).
		Int("nnz", len(triplets)).
		Bool("sparse", cfg.sparse).
		Msg("volume matrix built")

	return recipes, out, nil
}
