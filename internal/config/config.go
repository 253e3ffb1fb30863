// Package config loads barmetric's layered configuration: struct defaults,
// an optional YAML file, then BARMETRIC_* environment variables, validated
// with go-playground/validator struct tags.
package config

import (
	"github.com/katalvlaran/barmetric/builder"
	"github.com/katalvlaran/barmetric/em"
	"github.com/katalvlaran/barmetric/internal/logging"
	"github.com/katalvlaran/barmetric/tree"
)

// Config is the root configuration.
type Config struct {
	Input    InputConfig    `koanf:"input"`
	Tree     TreeConfig     `koanf:"tree"`
	Volume   VolumeConfig   `koanf:"volume"`
	Pairwise PairwiseConfig `koanf:"pairwise"`
	KNN      KNNConfig      `koanf:"knn"`
	Update   UpdateConfig   `koanf:"update"`
	Learn    LearnConfig    `koanf:"learn"`
	Store    StoreConfig    `koanf:"store"`
	Log      LogConfig      `koanf:"log"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// InputConfig points at the hierarchy and recipe snapshots (.json/.yaml).
type InputConfig struct {
	Hierarchy string `koanf:"hierarchy"`
	Recipes   string `koanf:"recipes"`
}

// TreeConfig configures hierarchy construction.
type TreeConfig struct {
	DefaultWeight float64 `koanf:"default_weight" validate:"gte=0"`
}

// VolumeConfig configures the recipe volume matrix.
type VolumeConfig struct {
	Tolerance float64 `koanf:"tolerance" validate:"gte=0"`
	Normalize bool    `koanf:"normalize"`
	Sparse    bool    `koanf:"sparse"`
}

// PairwiseConfig configures the all-pairs EMD engine.
type PairwiseConfig struct {
	// Concurrency bounds parallel rows; 1 runs sequentially.
	Concurrency   int `koanf:"concurrency" validate:"gte=1"`
	ProgressEvery int `koanf:"progress_every" validate:"gte=1"`
}

// KNNConfig configures neighbor extraction and match aggregation.
type KNNConfig struct {
	K               int     `koanf:"k" validate:"gte=1"`
	Beta            float64 `koanf:"beta" validate:"gt=0"`
	TopFlows        int     `koanf:"top_flows" validate:"gte=0"`
	MinFlowFraction float64 `koanf:"min_flow_fraction" validate:"gte=0,lt=1"`
	Symmetrize      bool    `koanf:"symmetrize"`
}

// UpdateConfig configures the cost update.
type UpdateConfig struct {
	Alpha        float64 `koanf:"alpha" validate:"gte=0"`
	Epsilon      float64 `koanf:"epsilon" validate:"gt=0"`
	TargetMedian float64 `koanf:"target_median" validate:"gt=0"`
	PriorBlend   float64 `koanf:"prior_blend" validate:"gte=0,lte=1"`
}

// LearnConfig configures the learning loop driven by the CLI.
type LearnConfig struct {
	Rounds    int `koanf:"rounds" validate:"gte=1"`
	EmbedDims int `koanf:"embed_dims" validate:"gte=1"`
}

// StoreConfig selects the artifact store. An empty Dir with the badger
// backend opens an in-memory database.
type StoreConfig struct {
	Backend string `koanf:"backend" validate:"oneof=memory badger"`
	Dir     string `koanf:"dir"`
}

// LogConfig mirrors logging.Config without the writer.
type LogConfig struct {
	Level     string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format    string `koanf:"format" validate:"oneof=json console"`
	Caller    bool   `koanf:"caller"`
	Timestamp bool   `koanf:"timestamp"`
}

// MetricsConfig configures prometheus instrumentation. A non-empty Textfile
// receives the registry in text exposition format after each command.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace" validate:"required_if=Enabled true"`
	Textfile  string `koanf:"textfile"`
}

func defaultConfig() *Config {
	ac, uc := em.DefaultAggregateConfig(), em.DefaultUpdateConfig()
	lc := logging.DefaultConfig()

	return &Config{
		Tree:   TreeConfig{DefaultWeight: 1},
		Volume: VolumeConfig{Tolerance: builder.DefaultTolerance},
		Pairwise: PairwiseConfig{
			Concurrency:   1,
			ProgressEvery: 64,
		},
		KNN: KNNConfig{
			K:               ac.K,
			Beta:            ac.Beta,
			TopFlows:        ac.TopFlows,
			MinFlowFraction: ac.MinFlowFraction,
			Symmetrize:      ac.Symmetrize,
		},
		Update: UpdateConfig{
			Alpha:        uc.Alpha,
			Epsilon:      uc.Epsilon,
			TargetMedian: uc.TargetMedian,
			PriorBlend:   uc.PriorBlend,
		},
		Learn: LearnConfig{Rounds: 3, EmbedDims: 2},
		Store: StoreConfig{Backend: "memory"},
		Log: LogConfig{
			Level:     lc.Level,
			Format:    lc.Format,
			Caller:    lc.Caller,
			Timestamp: lc.Timestamp,
		},
		Metrics: MetricsConfig{Namespace: "barmetric"},
	}
}

// Logging converts the log section for logging.New.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:     c.Log.Level,
		Format:    c.Log.Format,
		Caller:    c.Log.Caller,
		Timestamp: c.Log.Timestamp,
	}
}

// TreeOptions returns the tree.Build options.
func (c *Config) TreeOptions() []tree.Option {
	return []tree.Option{tree.WithDefaultWeight(c.Tree.DefaultWeight)}
}

// VolumeOptions returns the builder.VolumeMatrix options.
func (c *Config) VolumeOptions() []builder.BuilderOption {
	opts := []builder.BuilderOption{builder.WithTolerance(c.Volume.Tolerance)}
	if c.Volume.Normalize {
		opts = append(opts, builder.WithNormalize())
	}
	if c.Volume.Sparse {
		opts = append(opts, builder.WithSparse())
	}

	return opts
}

// AggregateConfig returns the E-step configuration.
func (c *Config) AggregateConfig() em.AggregateConfig {
	return em.AggregateConfig{
		K:               c.KNN.K,
		Beta:            c.KNN.Beta,
		TopFlows:        c.KNN.TopFlows,
		MinFlowFraction: c.KNN.MinFlowFraction,
		Symmetrize:      c.KNN.Symmetrize,
	}
}

// UpdateConfig returns the M-step configuration without a prior; the
// caller attaches one when PriorBlend > 0.
func (c *Config) UpdateConfig() em.UpdateConfig {
	return em.UpdateConfig{
		Alpha:        c.Update.Alpha,
		Epsilon:      c.Update.Epsilon,
		TargetMedian: c.Update.TargetMedian,
		PriorBlend:   c.Update.PriorBlend,
	}
}
