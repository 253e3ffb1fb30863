// SPDX-License-Identifier: MIT
// Package: barmetric/builder
//
// errors.go — sentinel and typed errors for the builder package.
//
// Error policy:
//   • Sentinels are package-level; callers branch with errors.Is.
//   • RowSumInvariantError carries the offending recipe and unwraps to ErrRowSum.
//   • Option constructors panic on meaningless values; builders never panic.

package builder

import (
	"errors"
	"fmt"
)

// ErrEmptyTree indicates that the hierarchy has no ingredient nodes.
var ErrEmptyTree = errors.New("builder: hierarchy has no ingredients")

// ErrNoRecipes indicates that the recipe snapshot produced no rows.
var ErrNoRecipes = errors.New("builder: no recipe records")

// ErrNilRegistry indicates a nil ingredient registry was supplied.
var ErrNilRegistry = errors.New("builder: ingredient registry is nil")

// ErrMissingVolume indicates a record without a volume fraction.
var ErrMissingVolume = errors.New("builder: missing volume fraction")

// ErrInvalidVolume indicates a NaN, ±Inf or negative volume fraction.
var ErrInvalidVolume = errors.New("builder: invalid volume fraction")

// ErrUnknownIngredient indicates a recipe references an ingredient id that is
// absent from the ingredient registry.
var ErrUnknownIngredient = errors.New("builder: unknown ingredient")

// ErrEmptyRecipeID indicates a record without a recipe id.
var ErrEmptyRecipeID = errors.New("builder: empty recipe id")

// ErrRowSum is matched by every *RowSumInvariantError.
var ErrRowSum = errors.New("builder: volume row does not sum to 1")

// RowSumInvariantError reports a recipe whose volume fractions do not sum to
// 1 within Tolerance.
type RowSumInvariantError struct {
	RecipeID  string
	Sum       float64
	Tolerance float64
}

func (e *RowSumInvariantError) Error() string {
	return fmt.Sprintf("builder: recipe %q volume sum %.9g deviates from 1 by more than %g",
		e.RecipeID, e.Sum, e.Tolerance)
}

// Unwrap lets errors.Is(err, ErrRowSum) match.
func (e *RowSumInvariantError) Unwrap() error { return ErrRowSum }

// builderErrorf wraps err with the builder method context.
func builderErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
