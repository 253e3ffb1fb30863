package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/barmetric/em"
	"github.com/katalvlaran/barmetric/internal/logging"
	"github.com/katalvlaran/barmetric/store"
)

func newLearnCmd(a *app) *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Run EM rounds from the hierarchy cost and store the learned cost",
		Long: `Run a fixed number of EM rounds starting from hierarchy distances.
Each round recomputes recipe distances, collects the ingredient matches of
neighboring recipes and turns them into a log-odds cost. The final cost and
the recipe distances under it are stored as a new artifact version.

With update.prior_blend > 0 the hierarchy cost is blended into every update.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("rounds") {
				rounds = a.cfg.Learn.Rounds
			}

			c, err := a.loadCorpus()
			if err != nil {
				return err
			}

			upd := a.cfg.UpdateConfig()
			if upd.PriorBlend > 0 {
				upd.Prior = c.treeCost
			}
			l := &em.Learner{
				Engine:    a.engine(true),
				Aggregate: a.cfg.AggregateConfig(),
				Update:    upd,
				Logger:    logging.Component(a.log, "em"),
			}
			if a.progress != nil {
				l.Observer = a.progress
			}

			res, err := l.Run(ctx, c.volumes, c.treeCost, rounds)
			if err != nil {
				return err
			}
			final, err := a.engine(false).Compute(ctx, c.volumes, res.Cost)
			if err != nil {
				return err
			}

			version := store.NewVersion(time.Now())
			if err = store.SaveArtifact(ctx, a.store, store.Ingredient, version, c.ingredients, res.Cost); err != nil {
				return err
			}
			if err = store.SaveArtifact(ctx, a.store, store.Recipe, version, c.recipes, final.Distances); err != nil {
				return err
			}

			return a.report(artifactReport{
				Command:     "learn",
				Version:     version,
				Ingredients: c.ingredients.Len(),
				Recipes:     c.recipes.Len(),
				Rounds:      rounds,
				Missing:     res.Missing,
				MeanCost:    meanCost(res.Cost),
			})
		}),
	}
	cmd.Flags().IntVar(&rounds, "rounds", 0, "EM rounds (default learn.rounds)")

	return cmd
}
