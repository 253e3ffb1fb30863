// SPDX-License-Identifier: MIT

// Package em runs the expectation–maximization loop that learns ingredient
// substitution costs from recipe co-occurrence.
//
// One round:
//
//	SeedCost → ComputeRecipeDistances → ComputeNeighborsAndWeights →
//	AggregateMatches → UpdateCost → Done
//
// The E-step (Aggregate) turns pairwise transport plans between neighboring
// recipes into expected ingredient matches T_sum; the M-step (UpdateCost)
// turns T_sum into a BLOSUM-style log-odds cost. Nothing survives a round
// except the cost matrix handed to the next one.
package em

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/barmetric/knn"
	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/pairwise"
)

// seedTolerance bounds the asymmetry and diagonal accepted for a seed cost.
const seedTolerance = 1e-9

// StageObserver receives the wall time of every completed stage. Optional.
type StageObserver interface {
	ObserveStage(stage Stage, elapsed time.Duration)
}

// Learner wires the engine and the two EM steps. The zero value is usable:
// a nil Engine becomes a sequential engine that retains plans, and zero
// configs take their defaults.
type Learner struct {
	Engine    *pairwise.Engine
	Aggregate AggregateConfig
	Update    UpdateConfig
	Logger    zerolog.Logger
	Observer  StageObserver
}

// RoundResult carries a round's outputs. Stage is StageDone on success and
// the failing stage otherwise.
type RoundResult struct {
	Cost      *matrix.Dense
	Distances *matrix.Dense
	Matches   *matrix.Dense
	Stage     Stage
	Missing   int // neighbor pairs without a plan
}

func (l *Learner) engine() *pairwise.Engine {
	if l.Engine == nil {
		return pairwise.NewEngine(pairwise.WithPlans(), pairwise.WithLogger(l.Logger))
	}

	return l.Engine
}

func (l *Learner) aggregateConfig() AggregateConfig {
	if l.Aggregate == (AggregateConfig{}) {
		return DefaultAggregateConfig()
	}

	return l.Aggregate
}

func (l *Learner) updateConfig() UpdateConfig {
	if l.Update == (UpdateConfig{}) {
		return DefaultUpdateConfig()
	}

	return l.Update
}

// Round runs one EM round from cost.
//
// Errors: matrix validation errors (seed), pairwise errors including
// ctx.Err(), ErrPlansDisabled, knn and em configuration errors.
func (l *Learner) Round(ctx context.Context, volumes matrix.Matrix, cost *matrix.Dense) (*RoundResult, error) {
	res := &RoundResult{Stage: StageSeedCost}
	agg, upd := l.aggregateConfig(), l.updateConfig()
	start := time.Now()
	mark := start
	advance := func(next Stage) {
		if l.Observer != nil {
			now := time.Now()
			l.Observer.ObserveStage(res.Stage, now.Sub(mark))
			mark = now
		}
		res.Stage = next
	}

	if cost == nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateCostMatrix(cost, seedTolerance); err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	advance(StageComputeRecipeDistances)

	pw, err := l.engine().Compute(ctx, volumes, cost)
	if err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	if pw.Plans == nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, ErrPlansDisabled)
	}
	res.Distances = pw.Distances
	advance(StageComputeNeighborsAndWeights)

	if err = agg.validate(); err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	sets, err := knn.Weighted(pw.Distances, agg.K, agg.Beta)
	if err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	advance(StageAggregateMatches)

	res.Matches, res.Missing, err = aggregateSets(sets, pw.Plans, cost.Rows(), agg)
	if err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	if res.Missing > 0 {
		l.Logger.Debug().Int("missing", res.Missing).Msg("neighbor pairs without transport plan skipped")
	}
	advance(StageUpdateCost)

	res.Cost, err = UpdateCost(res.Matches, upd)
	if err != nil {
		return res, fmt.Errorf("em: Round: %s: %w", res.Stage, err)
	}
	advance(StageDone)

	l.Logger.Info().
		Int("recipes", volumes.Rows()).
		Int("ingredients", cost.Rows()).
		Dur("elapsed", time.Since(start)).
		Msg("em round finished")

	return res, nil
}

// Run performs rounds EM rounds starting from seed and returns the last
// round's result. Each round's mean absolute cost change is logged.
func (l *Learner) Run(ctx context.Context, volumes matrix.Matrix, seed *matrix.Dense, rounds int) (*RoundResult, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("em: Run: rounds=%d: %w", rounds, ErrBadConfig)
	}

	cost := seed
	var last *RoundResult
	for round := 1; round <= rounds; round++ {
		res, err := l.Round(ctx, volumes, cost)
		if err != nil {
			return res, fmt.Errorf("em: Run: round %d: %w", round, err)
		}
		delta, err := matrix.MeanAbsDiff(res.Cost, cost)
		if err != nil {
			return res, fmt.Errorf("em: Run: round %d: %w", round, err)
		}
		l.Logger.Info().
			Int("round", round).
			Int("rounds", rounds).
			Float64("mean_abs_delta", delta).
			Msg("em round complete")
		cost, last = res.Cost, res
	}

	return last, nil
}
