package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/barmetric/embed"
	"github.com/katalvlaran/barmetric/store"
)

// point is one embedded registry entry.
type point struct {
	ID     string    `json:"id"`
	Name   string    `json:"name,omitempty"`
	Coords []float64 `json:"coords"`
}

type embedReport struct {
	Analytics store.Analytics `json:"analytics"`
	Version   string          `json:"version"`
	Points    []point         `json:"points"`
}

func newEmbedCmd(a *app) *cobra.Command {
	var (
		analytics string
		version   string
		dims      int
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed a stored artifact in low dimensions with classical MDS",
		Long: `Load a stored ingredient cost or recipe distance matrix and print
classical MDS coordinates for every entry. Reads from the configured store,
so a persistent backend (store.backend=badger) is needed across invocations.`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command) error {
			ctx := cmd.Context()
			kind := store.Analytics(analytics)
			if kind != store.Ingredient && kind != store.Recipe {
				return fmt.Errorf("--analytics %q: want %s or %s", analytics, store.Ingredient, store.Recipe)
			}
			if !cmd.Flags().Changed("dims") {
				dims = a.cfg.Learn.EmbedDims
			}
			if version == "" {
				v, err := store.Latest(ctx, a.store, kind)
				if err != nil {
					return err
				}
				version = v
			}

			reg, m, err := store.LoadArtifact(ctx, a.store, kind, version)
			if err != nil {
				return err
			}
			coords, err := embed.MDS{}.Embed(m, dims)
			if err != nil {
				return err
			}

			pts := make([]point, reg.Len())
			for i := range pts {
				row, err := coords.Row(i)
				if err != nil {
					return err
				}
				pts[i] = point{ID: reg.ID(i), Name: reg.Name(i), Coords: row}
			}

			return a.report(embedReport{Analytics: kind, Version: version, Points: pts})
		}),
	}
	f := cmd.Flags()
	f.StringVar(&analytics, "analytics", string(store.Ingredient), "artifact family: ingredient or recipe")
	f.StringVar(&version, "version", "", "artifact version (default latest)")
	f.IntVar(&dims, "dims", 0, "embedding dimensions (default learn.embed_dims)")

	return cmd
}
