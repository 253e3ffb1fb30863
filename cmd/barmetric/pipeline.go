package main

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/barmetric/builder"
	"github.com/katalvlaran/barmetric/internal/logging"
	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/pairwise"
	"github.com/katalvlaran/barmetric/registry"
	"github.com/katalvlaran/barmetric/snapshot"
	"github.com/katalvlaran/barmetric/tree"
)

var errNoInput = errors.New("both --hierarchy and --recipes (or input.hierarchy and input.recipes) are required")

// corpus is everything derived from the two input snapshots.
type corpus struct {
	ingredients *registry.Registry
	treeCost    *matrix.Dense
	recipes     *registry.Registry
	volumes     matrix.Matrix
}

func (a *app) loadCorpus() (*corpus, error) {
	in := a.cfg.Input
	if in.Hierarchy == "" || in.Recipes == "" {
		return nil, errNoInput
	}

	hrecs, err := snapshot.LoadHierarchy(in.Hierarchy)
	if err != nil {
		return nil, err
	}
	t, err := tree.Build(hrecs, a.cfg.TreeOptions()...)
	if err != nil {
		return nil, fmt.Errorf("hierarchy %s: %w", in.Hierarchy, err)
	}

	blog := builder.WithLogger(logging.Component(a.log, "builder"))
	ingredients, cost, err := builder.IngredientDistances(t, blog)
	if err != nil {
		return nil, err
	}

	rrecs, err := snapshot.LoadRecipes(in.Recipes)
	if err != nil {
		return nil, err
	}
	recipes, volumes, err := builder.VolumeMatrix(rrecs, ingredients, append(a.cfg.VolumeOptions(), blog)...)
	if err != nil {
		return nil, fmt.Errorf("recipes %s: %w", in.Recipes, err)
	}

	a.log.Info().
		Int("ingredients", ingredients.Len()).
		Int("recipes", recipes.Len()).
		Msg("corpus loaded")

	return &corpus{
		ingredients: ingredients,
		treeCost:    cost,
		recipes:     recipes,
		volumes:     volumes,
	}, nil
}

// engine builds a pairwise engine from the pairwise config section.
func (a *app) engine(plans bool) *pairwise.Engine {
	opts := []pairwise.Option{
		pairwise.WithConcurrency(a.cfg.Pairwise.Concurrency),
		pairwise.WithProgressEvery(a.cfg.Pairwise.ProgressEvery),
		pairwise.WithLogger(logging.Component(a.log, "pairwise")),
	}
	if plans {
		opts = append(opts, pairwise.WithPlans())
	}
	if a.progress != nil {
		opts = append(opts, pairwise.WithProgress(a.progress))
	}

	return pairwise.NewEngine(opts...)
}
