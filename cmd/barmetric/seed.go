package main

import (
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/store"
)

// artifactReport is printed by seed and learn.
type artifactReport struct {
	Command     string  `json:"command"`
	Version     string  `json:"version"`
	Ingredients int     `json:"ingredients"`
	Recipes     int     `json:"recipes"`
	Rounds      int     `json:"rounds,omitempty"`
	Missing     int     `json:"missing_plans,omitempty"`
	MeanCost    float64 `json:"mean_cost"`
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store hierarchy costs and the recipe distances they induce",
		Long: `Build the ingredient cost from hierarchy distances, compute recipe
distances under it, and store both as a new artifact version.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command) error {
			ctx := cmd.Context()
			c, err := a.loadCorpus()
			if err != nil {
				return err
			}
			res, err := a.engine(false).Compute(ctx, c.volumes, c.treeCost)
			if err != nil {
				return err
			}

			version := store.NewVersion(time.Now())
			if err = store.SaveArtifact(ctx, a.store, store.Ingredient, version, c.ingredients, c.treeCost); err != nil {
				return err
			}
			if err = store.SaveArtifact(ctx, a.store, store.Recipe, version, c.recipes, res.Distances); err != nil {
				return err
			}

			return a.report(artifactReport{
				Command:     "seed",
				Version:     version,
				Ingredients: c.ingredients.Len(),
				Recipes:     c.recipes.Len(),
				MeanCost:    meanCost(c.treeCost),
			})
		}),
	}
}

// meanCost is the mean off-diagonal entry of m, 0 for fewer than two rows.
func meanCost(m *matrix.Dense) float64 {
	off := matrix.OffDiagonal(m)
	if len(off) == 0 {
		return 0
	}

	return stat.Mean(off, nil)
}
