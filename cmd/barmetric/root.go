package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/barmetric/internal/config"
	"github.com/katalvlaran/barmetric/internal/logging"
	"github.com/katalvlaran/barmetric/internal/metrics"
	"github.com/katalvlaran/barmetric/store"
)

// app is the per-invocation state shared by every subcommand.
type app struct {
	out io.Writer

	cfgPath   string
	hierarchy string
	recipes   string

	cfg      *config.Config
	log      zerolog.Logger
	store    store.BlobStore
	registry *prometheus.Registry
	progress *metrics.Progress
	closers  []func() error
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "barmetric",
		Short: "Learn ingredient substitution costs from recipes",
		Long: `barmetric learns a substitution cost between cocktail ingredients.

It starts from distances in the ingredient hierarchy, compares recipes with
the earth mover's distance, and refines the cost from the ingredients that
similar recipes exchange. Results are stored as versioned artifacts.

Configuration is read from --config (YAML), then BARMETRIC_* environment
variables, e.g. BARMETRIC_KNN_K=8 or BARMETRIC_STORE_BACKEND=badger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML config file (default $"+config.PathEnvVar+")")
	pf.StringVar(&a.hierarchy, "hierarchy", "", "ingredient hierarchy snapshot (.json, .yaml)")
	pf.StringVar(&a.recipes, "recipes", "", "recipe ingredient snapshot (.json, .yaml)")

	root.AddCommand(newSeedCmd(a), newLearnCmd(a), newEmbedCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hierarchy") {
		cfg.Input.Hierarchy = a.hierarchy
	}
	if cmd.Flags().Changed("recipes") {
		cfg.Input.Recipes = a.recipes
	}
	a.cfg = cfg

	lc := cfg.Logging()
	lc.Output = cmd.ErrOrStderr()
	a.log = logging.New(lc)

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.progress = metrics.New(cfg.Metrics.Namespace, a.registry)
	}

	switch cfg.Store.Backend {
	case "badger":
		db, err := store.OpenBadger(cfg.Store.Dir)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)
		a.store = store.NewBadger(db)
	default:
		a.store = store.NewMemory()
	}

	a.log.Debug().
		Str("command", cmd.Name()).
		Str("store", cfg.Store.Backend).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("barmetric configured")

	return nil
}

// run adapts fn to cobra.RunE and releases the store whatever fn returns.
func (a *app) run(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		err := fn(cmd)
		return errors.Join(err, a.teardown())
	}
}

func (a *app) teardown() error {
	var errs []error
	if a.registry != nil && a.cfg.Metrics.Textfile != "" {
		errs = append(errs, metrics.WriteTextfile(a.cfg.Metrics.Textfile, a.registry))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil

	return errors.Join(errs...)
}

// report writes v to the command output as one JSON line.
func (a *app) report(v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(blob))

	return err
}
